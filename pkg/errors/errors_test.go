package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_HTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		code int
		want int
	}{
		{"缺少Token", ErrCodeTokenRequired, http.StatusBadRequest},
		{"重复记录", ErrCodeTitleDuplicate, http.StatusBadRequest},
		{"Token过期", ErrCodeTokenExpired, http.StatusUnauthorized},
		{"无权修改", ErrCodeForbidden, http.StatusForbidden},
		{"图书不存在", ErrCodeBookNotFound, http.StatusNotFound},
		{"数据库错误", ErrCodeDatabaseError, http.StatusInternalServerError},
		{"非法错误码", 12, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.code, "x").HTTPStatus())
		})
	}
}

func TestAppError_Is(t *testing.T) {
	notFound := New(ErrCodeBookNotFound, "No book exists")
	rewritten := notFound.WithMessage("Given bookId does not exist")

	assert.True(t, errors.Is(rewritten, notFound))
	assert.False(t, errors.Is(rewritten, ErrForbidden))

	wrapped := fmt.Errorf("service: %w", rewritten)
	assert.True(t, errors.Is(wrapped, notFound))
	assert.True(t, HasCode(wrapped, ErrCodeBookNotFound))
}

func TestGetAppError(t *testing.T) {
	t.Run("已是AppError", func(t *testing.T) {
		appErr := GetAppError(ErrTokenRequired)
		assert.Equal(t, ErrCodeTokenRequired, appErr.Code)
	})

	t.Run("普通错误包装为Internal", func(t *testing.T) {
		cause := errors.New("connection refused")
		appErr := GetAppError(cause)
		assert.Equal(t, ErrCodeInternal, appErr.Code)
		assert.ErrorIs(t, appErr, cause)
		assert.Contains(t, appErr.Error(), "connection refused")
	})
}

func TestWrapCode(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	appErr := WrapCode(cause, ErrCodeRedisError, "Session store error")

	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPStatus())
	assert.Equal(t, cause, errors.Unwrap(appErr))
}
