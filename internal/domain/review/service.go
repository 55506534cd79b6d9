package review

import (
	"context"
	"strings"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/transaction"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/optional"
	"github.com/xiebiao/bookcatalog/pkg/validator"
)

// BookStore 评论服务用到的图书仓储能力
type BookStore interface {
	FindByID(ctx context.Context, id string) (*book.Book, error)
	IncrReviews(ctx context.Context, id string, delta int) error
}

// CreateInput 创建评论参数
// reviewedBy与review可选，出现即校验；rating必填
type CreateInput struct {
	ReviewedBy optional.Value[string]
	Rating     optional.Value[float64]
	Review     optional.Value[string]
}

// Service 评论领域服务
type Service interface {
	// Create 创建评论并在同一事务中增加图书评论数
	Create(ctx context.Context, bookID string, in CreateInput) (*Review, error)

	// SoftDelete 删除评论并在同一事务中减少图书评论数
	SoftDelete(ctx context.Context, reviewID string) (*Review, error)

	// ListByBook 图书的未删除评论
	ListByBook(ctx context.Context, bookID string) ([]*Review, error)
}

type service struct {
	repo  Repository
	books BookStore
	tx    transaction.Manager
	now   func() time.Time
}

// NewService 创建评论服务
func NewService(repo Repository, books BookStore, tx transaction.Manager) Service {
	return &service{repo: repo, books: books, tx: tx, now: time.Now}
}

// Create 顺序：bookId → 图书存在且未删除 → reviewedBy → review → rating
func (s *service) Create(ctx context.Context, bookID string, in CreateInput) (*Review, error) {
	if !validator.IsValidObjectID(bookID) {
		return nil, ErrInvalidBookID
	}
	b, err := s.books.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !b.Visible() {
		return nil, book.ErrBookNotFound
	}

	if in.ReviewedBy.Set && !validator.IsValid(in.ReviewedBy.V) {
		return nil, apperrors.Validation("reviewedBy should be in valid format")
	}
	if in.Review.Set && !validator.IsValid(in.Review.V) {
		return nil, apperrors.Validation("please give a valid book review")
	}

	rating, ok := in.Rating.Get()
	if !ok {
		return nil, ErrRatingRequired
	}
	if !validator.IsValidRating(rating) {
		return nil, ErrInvalidRating
	}

	r := NewReview(bookID, strings.TrimSpace(in.ReviewedBy.V), int(rating), strings.TrimSpace(in.Review.V), s.now())
	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, r); err != nil {
			return err
		}
		return s.books.IncrReviews(ctx, bookID, 1)
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// SoftDelete 顺序：路径参数 → reviewId格式 → 存在且未删除
func (s *service) SoftDelete(ctx context.Context, reviewID string) (*Review, error) {
	if reviewID == "" || reviewID == ":reviewId" {
		return nil, ErrMissingReviewID
	}
	if !validator.IsValidObjectID(reviewID) {
		return nil, ErrInvalidReviewID
	}
	r, err := s.repo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if r.IsDeleted {
		return nil, ErrReviewNotFound
	}

	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.repo.SoftDelete(ctx, r.ID); err != nil {
			return err
		}
		return s.books.IncrReviews(ctx, r.BookID, -1)
	})
	if err != nil {
		return nil, err
	}
	r.IsDeleted = true
	r.UpdatedAt = s.now()
	return r, nil
}

func (s *service) ListByBook(ctx context.Context, bookID string) ([]*Review, error) {
	return s.repo.ListByBook(ctx, bookID)
}
