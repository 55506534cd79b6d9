package book

import (
	"context"

	appreview "github.com/xiebiao/bookcatalog/internal/application/review"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/review"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// GetBookUseCase 图书详情用例
type GetBookUseCase struct {
	bookService   book.Service
	reviewService review.Service
}

// NewGetBookUseCase 创建用例
func NewGetBookUseCase(bookService book.Service, reviewService review.Service) *GetBookUseCase {
	return &GetBookUseCase{bookService: bookService, reviewService: reviewService}
}

// Execute 已删除的图书返回ErrBookNotFound
func (uc *GetBookUseCase) Execute(ctx context.Context, bookID string) (*BookDetail, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "GetBook")
	defer span.End()

	b, err := uc.bookService.Get(ctx, bookID)
	if err != nil {
		return nil, err
	}

	reviews, err := uc.reviewService.ListByBook(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	return &BookDetail{
		BookResponse: NewBookResponse(b),
		ReviewsData:  appreview.NewReviewList(reviews),
	}, nil
}
