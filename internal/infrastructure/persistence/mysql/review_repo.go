package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/review"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// reviewRepository 评论仓储实现（MySQL）
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评论仓储
func NewReviewRepository(db *gorm.DB) review.Repository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, rv *review.Review) error {
	if rv.ID == "" {
		rv.ID = newID()
	}
	model := &ReviewModel{
		ID:         rv.ID,
		BookID:     rv.BookID,
		ReviewedBy: rv.ReviewedBy,
		Rating:     rv.Rating,
		Review:     rv.Review,
		ReviewedAt: rv.ReviewedAt,
		IsDeleted:  rv.IsDeleted,
		CreatedAt:  rv.CreatedAt,
		UpdatedAt:  rv.UpdatedAt,
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "Failed to create review")
	}
	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id string) (*review.Review, error) {
	var model ReviewModel
	err := getDB(ctx, r.db).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, review.ErrReviewNotFound
		}
		return nil, apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "Failed to query review")
	}
	return toReviewEntity(&model), nil
}

func (r *reviewRepository) ListByBook(ctx context.Context, bookID string) ([]*review.Review, error) {
	var models []ReviewModel
	err := getDB(ctx, r.db).
		Where("book_id = ? AND is_deleted = ?", bookID, false).
		Order("reviewed_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "Failed to list reviews")
	}

	reviews := make([]*review.Review, 0, len(models))
	for i := range models {
		reviews = append(reviews, toReviewEntity(&models[i]))
	}
	return reviews, nil
}

func (r *reviewRepository) SoftDelete(ctx context.Context, id string) error {
	result := getDB(ctx, r.db).Model(&ReviewModel{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if result.Error != nil {
		return apperrors.WrapCode(result.Error, apperrors.ErrCodeDatabaseError, "Failed to delete review")
	}
	if result.RowsAffected == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

func toReviewEntity(m *ReviewModel) *review.Review {
	return &review.Review{
		ID:         m.ID,
		BookID:     m.BookID,
		ReviewedBy: m.ReviewedBy,
		Rating:     m.Rating,
		Review:     m.Review,
		ReviewedAt: m.ReviewedAt,
		IsDeleted:  m.IsDeleted,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
