package book

import (
	"time"

	"github.com/xiebiao/bookcatalog/internal/application/review"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// BookResponse 完整图书DTO
type BookResponse struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt"`
	UserID      string     `json:"userId"`
	ISBN        string     `json:"ISBN"`
	Category    string     `json:"category"`
	Subcategory []string   `json:"subcategory"`
	Reviews     int        `json:"reviews"`
	IsDeleted   bool       `json:"isDeleted"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
	ReleasedAt  string     `json:"releasedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// NewBookResponse 领域实体 → DTO
func NewBookResponse(b *book.Book) *BookResponse {
	return &BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Excerpt:     b.Excerpt,
		UserID:      b.UserID,
		ISBN:        b.ISBN,
		Category:    b.Category,
		Subcategory: b.Subcategory,
		Reviews:     b.Reviews,
		IsDeleted:   b.IsDeleted,
		DeletedAt:   b.DeletedAt,
		ReleasedAt:  b.ReleasedAt,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// BookListItem 列表项（投影字段）
type BookListItem struct {
	ID         string `json:"_id"`
	Title      string `json:"title"`
	Excerpt    string `json:"excerpt"`
	UserID     string `json:"userId"`
	Category   string `json:"category"`
	Reviews    int    `json:"reviews"`
	ReleasedAt string `json:"releasedAt"`
}

// BookDetail 图书详情，附带未删除的评论
type BookDetail struct {
	*BookResponse
	ReviewsData []review.ReviewResponse `json:"reviewsData"`
}
