package review

import (
	"context"
)

// Repository 评论仓储接口
type Repository interface {
	// Create ID为空时生成新ID
	Create(ctx context.Context, review *Review) error

	// FindByID 包含已删除的评论，不存在时返回ErrReviewNotFound
	FindByID(ctx context.Context, id string) (*Review, error)

	// ListByBook 未删除的评论，按评论时间升序
	ListByBook(ctx context.Context, bookID string) ([]*Review, error)

	// SoftDelete 标记删除
	SoftDelete(ctx context.Context, id string) error
}
