package memory

import (
	"context"
	"sort"

	"github.com/xiebiao/bookcatalog/internal/domain/review"
)

// ReviewRepository 评论仓储内存实现
type ReviewRepository struct {
	store *Store
}

// NewReviewRepository 创建评论仓储
func NewReviewRepository(store *Store) *ReviewRepository {
	return &ReviewRepository{store: store}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *review.Review) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if rv.ID == "" {
		rv.ID = newID()
	}
	r.store.rememberReview(ctx, rv.ID)
	r.store.reviews[rv.ID] = *rv
	return nil
}

func (r *ReviewRepository) FindByID(ctx context.Context, id string) (*review.Review, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rv, ok := r.store.reviews[id]
	if !ok {
		return nil, review.ErrReviewNotFound
	}
	return &rv, nil
}

func (r *ReviewRepository) ListByBook(ctx context.Context, bookID string) ([]*review.Review, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	reviews := make([]*review.Review, 0)
	for _, rv := range r.store.reviews {
		if rv.BookID == bookID && !rv.IsDeleted {
			found := rv
			reviews = append(reviews, &found)
		}
	}
	sort.Slice(reviews, func(i, j int) bool {
		if reviews[i].ReviewedAt.Equal(reviews[j].ReviewedAt) {
			return reviews[i].ID < reviews[j].ID
		}
		return reviews[i].ReviewedAt.Before(reviews[j].ReviewedAt)
	})
	return reviews, nil
}

// SoftDelete 已删除的评论返回ErrReviewNotFound
func (r *ReviewRepository) SoftDelete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rv, ok := r.store.reviews[id]
	if !ok || rv.IsDeleted {
		return review.ErrReviewNotFound
	}
	r.store.rememberReview(ctx, id)
	rv.IsDeleted = true
	r.store.reviews[id] = rv
	return nil
}
