package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/response"
	"github.com/xiebiao/bookcatalog/pkg/validator"
)

var (
	errMissingBookID = apperrors.New(apperrors.ErrCodeMissingPathParam, "Please enter bookId to proceed!")
	errBookIDInvalid = apperrors.New(apperrors.ErrCodeInvalidID, "bookId is invalid!")
	// 不区分"已删除"与"从未存在"
	errBookMissing = apperrors.New(apperrors.ErrCodeResourceNotFound, "We are sorry; Given bookId does not exist!")
)

// BookOwners 查询图书发布者（book.Service实现）
type BookOwners interface {
	OwnerOf(ctx context.Context, bookID string) (string, error)
}

// OwnershipMiddleware 资源所有权检查，必须放在RequireAuth之后
type OwnershipMiddleware struct {
	books BookOwners
}

// NewOwnershipMiddleware 创建所有权中间件
func NewOwnershipMiddleware(books book.Service) *OwnershipMiddleware {
	return &OwnershipMiddleware{books: books}
}

// RequireBookOwner 路径参数bookId对应的图书必须属于当前用户
func (m *OwnershipMiddleware) RequireBookOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		bookID := c.Param("bookId")
		if bookID == "" || bookID == ":bookId" {
			response.Abort(c, errMissingBookID)
			return
		}
		if !validator.IsValidObjectID(bookID) {
			response.Abort(c, errBookIDInvalid)
			return
		}

		ownerID, err := m.books.OwnerOf(c.Request.Context(), bookID)
		if err != nil {
			if errors.Is(err, book.ErrBookNotFound) {
				response.Abort(c, errBookMissing)
				return
			}
			response.Abort(c, err)
			return
		}

		if ownerID != GetUserID(c) {
			response.Abort(c, apperrors.ErrAuthorization)
			return
		}
		c.Next()
	}
}
