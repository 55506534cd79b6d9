package dto

import (
	"github.com/xiebiao/bookcatalog/internal/domain/review"
	"github.com/xiebiao/bookcatalog/pkg/optional"
)

// CreateReviewRequest 创建评论请求
// reviewedBy与review可选，rating必填
type CreateReviewRequest struct {
	ReviewedBy optional.Value[string]  `json:"reviewedBy" swaggertype:"string"`
	Rating     optional.Value[float64] `json:"rating" swaggertype:"integer" example:"5"`
	Review     optional.Value[string]  `json:"review" swaggertype:"string"`
}

// ToInput 转换为领域输入
func (r CreateReviewRequest) ToInput() review.CreateInput {
	return review.CreateInput{
		ReviewedBy: r.ReviewedBy,
		Rating:     r.Rating,
		Review:     r.Review,
	}
}
