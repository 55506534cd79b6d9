package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// bindJSON 空请求体视为空对象，由领域服务返回具体的"请求体为空"错误
func bindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperrors.WrapCode(err, apperrors.ErrCodeBindError, apperrors.ErrBindError.Message)
	}
	return nil
}
