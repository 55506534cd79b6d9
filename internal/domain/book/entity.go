package book

import (
	"strings"
	"time"
)

// Book 图书实体（聚合根）
// 1. Title与ISBN全局唯一（包括已软删除的图书），由唯一索引保证
// 2. 只做软删除：IsDeleted=true且记录DeletedAt，之后对外表现为不存在
// 3. Reviews是评论数的冗余计数，随评论创建/删除增减
type Book struct {
	ID          string
	Title       string
	Excerpt     string
	UserID      string   // 发布者用户ID
	ISBN        string
	Category    string
	Subcategory []string // 请求中可用逗号分隔多个值
	ReleasedAt  string   // YYYY-MM-DD
	Reviews     int
	IsDeleted   bool
	DeletedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewBook 创建新图书（工厂方法），调用方负责校验字段
func NewBook(title, excerpt, userID, isbn, category string, subcategory []string, releasedAt string) *Book {
	now := time.Now()
	return &Book{
		Title:       title,
		Excerpt:     excerpt,
		UserID:      userID,
		ISBN:        isbn,
		Category:    category,
		Subcategory: subcategory,
		ReleasedAt:  releasedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsOwnedBy 检查图书是否由指定用户发布
func (b *Book) IsOwnedBy(userID string) bool {
	return b.UserID == userID
}

// Visible 未删除的图书才对外可见
func (b *Book) Visible() bool {
	return !b.IsDeleted
}

// MarkDeleted 软删除（领域行为）
func (b *Book) MarkDeleted(at time.Time) {
	b.IsDeleted = true
	b.DeletedAt = &at
	b.UpdatedAt = at
}

// ParseSubcategory 拆分逗号分隔的子分类，去掉空白项
func ParseSubcategory(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// HasSubcategory 是否包含指定子分类
func (b *Book) HasSubcategory(sub string) bool {
	for _, s := range b.Subcategory {
		if s == sub {
			return true
		}
	}
	return false
}
