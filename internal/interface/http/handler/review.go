package handler

import (
	"github.com/gin-gonic/gin"

	appreview "github.com/xiebiao/bookcatalog/internal/application/review"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// ReviewHandler 评论HTTP处理器（无需登录）
type ReviewHandler struct {
	createReviewUseCase *appreview.CreateReviewUseCase
	deleteReviewUseCase *appreview.DeleteReviewUseCase
}

// NewReviewHandler 创建评论处理器
func NewReviewHandler(
	createReviewUseCase *appreview.CreateReviewUseCase,
	deleteReviewUseCase *appreview.DeleteReviewUseCase,
) *ReviewHandler {
	return &ReviewHandler{
		createReviewUseCase: createReviewUseCase,
		deleteReviewUseCase: deleteReviewUseCase,
	}
}

// CreateReview 创建评论
// @Summary      创建评论
// @Description  rating必须是1到5的整数，成功后图书评论数+1
// @Tags         评论
// @Accept       json
// @Produce      json
// @Param        bookId  path string                  true "图书ID"
// @Param        request body dto.CreateReviewRequest true "评论"
// @Success      201 {object} response.Response{data=appreview.ReviewResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{bookId}/reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req dto.CreateReviewRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.createReviewUseCase.Execute(c.Request.Context(), c.Param("bookId"), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Review created successfully", result)
}

// DeleteReview 删除评论（软删除）
// @Summary      删除评论
// @Tags         评论
// @Produce      json
// @Param        reviewId path string true "评论ID"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "reviewId缺失或格式错误"
// @Failure      404 {object} response.Response "评论不存在"
// @Router       /reviews/{reviewId} [delete]
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	if err := h.deleteReviewUseCase.Execute(c.Request.Context(), c.Param("reviewId")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "Deletion successful", nil)
}
