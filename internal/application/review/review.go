package review

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/bookcatalog/internal/domain/review"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/event"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

const tracerName = "application/review"

// CreateReviewUseCase 创建评论用例
// 评论写入与图书评论数+1在领域服务的同一事务中完成
type CreateReviewUseCase struct {
	reviewService review.Service
	publisher     event.Publisher
}

// NewCreateReviewUseCase 创建用例
func NewCreateReviewUseCase(reviewService review.Service, publisher event.Publisher) *CreateReviewUseCase {
	return &CreateReviewUseCase{reviewService: reviewService, publisher: publisher}
}

// Execute 执行
func (uc *CreateReviewUseCase) Execute(ctx context.Context, bookID string, in review.CreateInput) (*ReviewResponse, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "CreateReview")
	defer span.End()
	span.SetAttributes(attribute.String("book.id", bookID))

	r, err := uc.reviewService.Create(ctx, bookID, in)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	metrics.IncCounter(metrics.ReviewsCreatedTotal)
	uc.publisher.Publish(ctx, event.ReviewCreated, r.ID, map[string]interface{}{
		"bookId": r.BookID,
		"rating": r.Rating,
	})

	resp := NewReviewResponse(r)
	return &resp, nil
}

// DeleteReviewUseCase 删除评论用例
type DeleteReviewUseCase struct {
	reviewService review.Service
	publisher     event.Publisher
}

// NewDeleteReviewUseCase 创建用例
func NewDeleteReviewUseCase(reviewService review.Service, publisher event.Publisher) *DeleteReviewUseCase {
	return &DeleteReviewUseCase{reviewService: reviewService, publisher: publisher}
}

// Execute 执行
func (uc *DeleteReviewUseCase) Execute(ctx context.Context, reviewID string) error {
	ctx, span := tracing.StartSpan(ctx, tracerName, "DeleteReview")
	defer span.End()

	r, err := uc.reviewService.SoftDelete(ctx, reviewID)
	if err != nil {
		span.RecordError(err)
		return err
	}

	metrics.IncCounter(metrics.ReviewsDeletedTotal)
	uc.publisher.Publish(ctx, event.ReviewDeleted, r.ID, map[string]string{"bookId": r.BookID})
	return nil
}
