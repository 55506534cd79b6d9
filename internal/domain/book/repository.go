package book

import (
	"context"
	"time"
)

// Filter 列表过滤条件，空字段表示不过滤
type Filter struct {
	UserID      string
	Category    string
	Subcategory string
}

// Applied 是否提供了任一过滤条件
func (f Filter) Applied() bool {
	return f.UserID != "" || f.Category != "" || f.Subcategory != ""
}

// Repository 图书仓储接口
type Repository interface {
	// Create 创建图书，ID为空时生成新ID
	// 书名或ISBN冲突时返回ErrTitleDuplicate/ErrISBNDuplicate
	Create(ctx context.Context, book *Book) error

	// FindByID 包含已删除的图书，不存在时返回ErrBookNotFound
	FindByID(ctx context.Context, id string) (*Book, error)

	// FindByTitle 不区分是否删除
	FindByTitle(ctx context.Context, title string) (*Book, error)

	// FindByISBN 不区分是否删除
	FindByISBN(ctx context.Context, isbn string) (*Book, error)

	// List 只返回未删除的图书，顺序不保证
	List(ctx context.Context, filter Filter) ([]*Book, error)

	// Update 保存可修改字段（title/excerpt/ISBN/releasedAt）
	Update(ctx context.Context, book *Book) error

	// SoftDelete 标记删除
	SoftDelete(ctx context.Context, id string, at time.Time) error

	// IncrReviews 调整评论计数，结果不小于0
	IncrReviews(ctx context.Context, id string, delta int) error
}
