package dto

import (
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/optional"
)

// CreateBookRequest 创建图书请求
// deletedAt即使出现也会被忽略
type CreateBookRequest struct {
	Title       optional.Value[string] `json:"title" swaggertype:"string"`
	Excerpt     optional.Value[string] `json:"excerpt" swaggertype:"string"`
	UserID      optional.Value[string] `json:"userId" swaggertype:"string"`
	ISBN        optional.Value[string] `json:"ISBN" swaggertype:"string" example:"978-0-13-468599-1"`
	Category    optional.Value[string] `json:"category" swaggertype:"string"`
	Subcategory optional.Value[string] `json:"subcategory" swaggertype:"string" example:"Fiction,Drama"`
	ReleasedAt  optional.Value[string] `json:"releasedAt" swaggertype:"string" example:"2020-01-01"`
	IsDeleted   optional.Value[bool]   `json:"isDeleted" swaggertype:"boolean"`
}

// ToInput 转换为领域输入
func (r CreateBookRequest) ToInput() book.CreateInput {
	return book.CreateInput{
		Title:       r.Title,
		Excerpt:     r.Excerpt,
		UserID:      r.UserID,
		ISBN:        r.ISBN,
		Category:    r.Category,
		Subcategory: r.Subcategory,
		ReleasedAt:  r.ReleasedAt,
		IsDeleted:   r.IsDeleted,
	}
}

// UpdateBookRequest 部分更新请求，只有出现的键会被校验和修改
type UpdateBookRequest struct {
	Title      optional.Value[string] `json:"title" swaggertype:"string"`
	Excerpt    optional.Value[string] `json:"excerpt" swaggertype:"string"`
	ReleasedAt optional.Value[string] `json:"releasedAt" swaggertype:"string"`
	ISBN       optional.Value[string] `json:"ISBN" swaggertype:"string"`
}

// ToPatch 转换为领域Patch
func (r UpdateBookRequest) ToPatch() book.Patch {
	return book.Patch{
		Title:      r.Title,
		Excerpt:    r.Excerpt,
		ReleasedAt: r.ReleasedAt,
		ISBN:       r.ISBN,
	}
}

// ListBooksQuery 列表过滤参数
// 空白的userId视为未填写，其余值必须是合法ID
type ListBooksQuery struct {
	UserID      string `form:"userId" binding:"objectid_or_blank"`
	Category    string `form:"category"`
	Subcategory string `form:"subcategory"`
}
