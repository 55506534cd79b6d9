package book

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// ListBooksUseCase 图书列表查询用例
// 只返回投影字段，排序由领域服务完成
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookService: bookService,
	}
}

// ListBooksRequest 查询参数，空值表示不过滤
type ListBooksRequest struct {
	UserID      string
	Category    string
	Subcategory string
}

// Execute 执行列表查询
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) ([]BookListItem, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "ListBooks")
	defer span.End()

	books, err := uc.bookService.List(ctx, book.Filter{
		UserID:      req.UserID,
		Category:    req.Category,
		Subcategory: req.Subcategory,
	})
	if err != nil {
		return nil, err
	}

	items := make([]BookListItem, 0, len(books))
	for _, b := range books {
		items = append(items, BookListItem{
			ID:         b.ID,
			Title:      b.Title,
			Excerpt:    b.Excerpt,
			UserID:     b.UserID,
			Category:   b.Category,
			Reviews:    b.Reviews,
			ReleasedAt: b.ReleasedAt,
		})
	}
	return items, nil
}
