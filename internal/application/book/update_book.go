package book

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/event"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// UpdateBookUseCase 部分更新用例
type UpdateBookUseCase struct {
	bookService book.Service
	publisher   event.Publisher
}

// NewUpdateBookUseCase 创建用例
func NewUpdateBookUseCase(bookService book.Service, publisher event.Publisher) *UpdateBookUseCase {
	return &UpdateBookUseCase{bookService: bookService, publisher: publisher}
}

// Execute 只修改patch中出现的字段
func (uc *UpdateBookUseCase) Execute(ctx context.Context, bookID, callerID string, patch book.Patch) (*BookResponse, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "UpdateBook")
	defer span.End()

	b, err := uc.bookService.Update(ctx, bookID, callerID, patch)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	metrics.IncCounter(metrics.BooksUpdatedTotal)
	uc.publisher.Publish(ctx, event.BookUpdated, b.ID, updatedFields(patch))

	return NewBookResponse(b), nil
}

func updatedFields(patch book.Patch) []string {
	var fields []string
	if patch.Title.Set {
		fields = append(fields, "title")
	}
	if patch.Excerpt.Set {
		fields = append(fields, "excerpt")
	}
	if patch.ReleasedAt.Set {
		fields = append(fields, "releasedAt")
	}
	if patch.ISBN.Set {
		fields = append(fields, "ISBN")
	}
	return fields
}
