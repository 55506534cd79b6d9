package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	createBookUseCase *appbook.CreateBookUseCase
	listBooksUseCase  *appbook.ListBooksUseCase
	getBookUseCase    *appbook.GetBookUseCase
	updateBookUseCase *appbook.UpdateBookUseCase
	deleteBookUseCase *appbook.DeleteBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	createBookUseCase *appbook.CreateBookUseCase,
	listBooksUseCase *appbook.ListBooksUseCase,
	getBookUseCase *appbook.GetBookUseCase,
	updateBookUseCase *appbook.UpdateBookUseCase,
	deleteBookUseCase *appbook.DeleteBookUseCase,
) *BookHandler {
	return &BookHandler{
		createBookUseCase: createBookUseCase,
		listBooksUseCase:  listBooksUseCase,
		getBookUseCase:    getBookUseCase,
		updateBookUseCase: updateBookUseCase,
		deleteBookUseCase: deleteBookUseCase,
	}
}

// CreateBook 创建图书
// @Summary      创建图书
// @Description  请求体中的userId必须是当前登录用户
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} response.Response{data=appbook.BookResponse}
// @Failure      400 {object} response.Response "参数错误、书名或ISBN已存在"
// @Failure      401 {object} response.Response "未登录或userId与登录用户不符"
// @Failure      404 {object} response.Response "用户不存在"
// @Router       /books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.createBookUseCase.Execute(c.Request.Context(), req.ToInput(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Book created successfully", result)
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  只返回未删除的图书，按书名升序（不区分大小写）
// @Tags         图书
// @Produce      json
// @Security     ApiKeyAuth
// @Param        userId      query string false "发布者ID"
// @Param        category    query string false "分类"
// @Param        subcategory query string false "子分类"
// @Success      200 {object} response.Response{data=[]appbook.BookListItem}
// @Failure      400 {object} response.Response "userId格式错误"
// @Failure      404 {object} response.Response "没有符合条件的图书"
// @Router       /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var query dto.ListBooksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			response.Error(c, apperrors.New(apperrors.ErrCodeInvalidID, "userId is invalid!"))
			return
		}
		response.Error(c, apperrors.WrapCode(err, apperrors.ErrCodeBindError, apperrors.ErrBindError.Message))
		return
	}

	items, err := h.listBooksUseCase.Execute(c.Request.Context(), appbook.ListBooksRequest{
		UserID:      query.UserID,
		Category:    query.Category,
		Subcategory: query.Subcategory,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "Books list", items)
}

// GetBook 图书详情
// @Summary      图书详情
// @Description  附带未删除的评论，已删除的图书返回404
// @Tags         图书
// @Produce      json
// @Security     ApiKeyAuth
// @Param        bookId path string true "图书ID"
// @Success      200 {object} response.Response{data=appbook.BookDetail}
// @Failure      400 {object} response.Response "bookId格式错误"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{bookId} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	result, err := h.getBookUseCase.Execute(c.Request.Context(), c.Param("bookId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "Success", result)
}

// UpdateBook 更新图书
// @Summary      更新图书
// @Description  只修改请求体中出现的title、excerpt、releasedAt、ISBN
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        bookId  path string                true "图书ID"
// @Param        request body dto.UpdateBookRequest true "更新字段"
// @Success      200 {object} response.Response{data=appbook.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      401 {object} response.Response "不是图书所有者"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{bookId} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	var req dto.UpdateBookRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.updateBookUseCase.Execute(c.Request.Context(), c.Param("bookId"), middleware.MustGetUserID(c), req.ToPatch())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "Book updated successfully", result)
}

// DeleteBook 删除图书（软删除）
// @Summary      删除图书
// @Tags         图书
// @Produce      json
// @Security     ApiKeyAuth
// @Param        bookId path string true "图书ID"
// @Success      200 {object} response.Response
// @Failure      401 {object} response.Response "不是图书所有者"
// @Failure      404 {object} response.Response "图书不存在或已删除"
// @Router       /books/{bookId} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	if err := h.deleteBookUseCase.Execute(c.Request.Context(), c.Param("bookId")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "Deletion Successful", nil)
}
