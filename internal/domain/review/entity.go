package review

import "time"

// DefaultReviewer 未提供reviewedBy时的评论人
const DefaultReviewer = "Guest"

// Review 评论实体
// 隶属于一本图书，可独立软删除
type Review struct {
	ID         string
	BookID     string
	ReviewedBy string
	Rating     int // 1-5
	Review     string
	ReviewedAt time.Time
	IsDeleted  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewReview 创建评论（工厂方法），reviewedAt取服务端时间
func NewReview(bookID, reviewedBy string, rating int, text string, now time.Time) *Review {
	if reviewedBy == "" {
		reviewedBy = DefaultReviewer
	}
	return &Review{
		BookID:     bookID,
		ReviewedBy: reviewedBy,
		Rating:     rating,
		Review:     text,
		ReviewedAt: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
