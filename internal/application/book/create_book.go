package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/event"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

const tracerName = "application/book"

// CreateBookUseCase 创建图书用例
// 字段校验、唯一性与发布者身份由领域服务按固定顺序检查
type CreateBookUseCase struct {
	bookService book.Service
	publisher   event.Publisher
}

// NewCreateBookUseCase 创建用例
func NewCreateBookUseCase(bookService book.Service, publisher event.Publisher) *CreateBookUseCase {
	return &CreateBookUseCase{
		bookService: bookService,
		publisher:   publisher,
	}
}

// Execute callerID来自认证中间件
func (uc *CreateBookUseCase) Execute(ctx context.Context, in book.CreateInput, callerID string) (*BookResponse, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "CreateBook")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", callerID))

	b, err := uc.bookService.Create(ctx, in, callerID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	metrics.IncCounter(metrics.BooksCreatedTotal)
	uc.publisher.Publish(ctx, event.BookCreated, b.ID, map[string]string{
		"title":  b.Title,
		"userId": b.UserID,
		"ISBN":   b.ISBN,
	})

	return NewBookResponse(b), nil
}
