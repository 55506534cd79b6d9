package review

import (
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/review"
)

// ReviewResponse 评论DTO
type ReviewResponse struct {
	ID         string    `json:"_id"`
	BookID     string    `json:"bookId"`
	ReviewedBy string    `json:"reviewedBy"`
	ReviewedAt time.Time `json:"reviewedAt"`
	Rating     int       `json:"rating"`
	Review     string    `json:"review,omitempty"`
	IsDeleted  bool      `json:"isDeleted"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// NewReviewResponse 领域实体 → DTO
func NewReviewResponse(r *review.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		BookID:     r.BookID,
		ReviewedBy: r.ReviewedBy,
		ReviewedAt: r.ReviewedAt,
		Rating:     r.Rating,
		Review:     r.Review,
		IsDeleted:  r.IsDeleted,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// NewReviewList 保证空列表序列化为[]
func NewReviewList(reviews []*review.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, NewReviewResponse(r))
	}
	return out
}
