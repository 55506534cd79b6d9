package book

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/event"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// DeleteBookUseCase 软删除用例，所有者检查由授权中间件完成
type DeleteBookUseCase struct {
	bookService book.Service
	publisher   event.Publisher
}

// NewDeleteBookUseCase 创建用例
func NewDeleteBookUseCase(bookService book.Service, publisher event.Publisher) *DeleteBookUseCase {
	return &DeleteBookUseCase{bookService: bookService, publisher: publisher}
}

// Execute 执行
func (uc *DeleteBookUseCase) Execute(ctx context.Context, bookID string) error {
	ctx, span := tracing.StartSpan(ctx, tracerName, "DeleteBook")
	defer span.End()

	b, err := uc.bookService.SoftDelete(ctx, bookID)
	if err != nil {
		span.RecordError(err)
		return err
	}

	metrics.IncCounter(metrics.BooksDeletedTotal)
	uc.publisher.Publish(ctx, event.BookDeleted, b.ID, map[string]interface{}{"deletedAt": b.DeletedAt})
	return nil
}
