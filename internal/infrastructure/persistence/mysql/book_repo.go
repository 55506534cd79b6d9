package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// bookRepository 图书仓储实现（MySQL）
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	if b.ID == "" {
		b.ID = newID()
	}
	model := toBookModel(b)

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return translateBookError(err, "Failed to create book")
	}

	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 不过滤is_deleted
func (r *bookRepository) FindByID(ctx context.Context, id string) (*book.Book, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *bookRepository) FindByTitle(ctx context.Context, title string) (*book.Book, error) {
	return r.first(ctx, "title = ?", title)
}

func (r *bookRepository) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	return r.first(ctx, "isbn = ?", isbn)
}

// List 空过滤条件不参与查询，is_deleted=false始终生效
func (r *bookRepository) List(ctx context.Context, filter book.Filter) ([]*book.Book, error) {
	query := getDB(ctx, r.db).Model(&BookModel{}).Where("is_deleted = ?", false)
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Subcategory != "" {
		query = query.Where("FIND_IN_SET(?, subcategory) > 0", filter.Subcategory)
	}

	var models []BookModel
	if err := query.Order("title ASC").Find(&models).Error; err != nil {
		return nil, apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "Failed to list books")
	}

	books := make([]*book.Book, 0, len(models))
	for i := range models {
		books = append(books, toBookEntity(&models[i]))
	}
	return books, nil
}

// Update 只写入允许修改的字段
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	result := getDB(ctx, r.db).Model(&BookModel{}).
		Where("id = ? AND is_deleted = ?", b.ID, false).
		Updates(map[string]interface{}{
			"title":       b.Title,
			"excerpt":     b.Excerpt,
			"isbn":        b.ISBN,
			"released_at": b.ReleasedAt,
			"updated_at":  b.UpdatedAt,
		})
	if result.Error != nil {
		return translateBookError(result.Error, "Failed to update book")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// SoftDelete 条件更新，并发重复删除只有一个成功
func (r *bookRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	result := getDB(ctx, r.db).Model(&BookModel{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"deleted_at": at,
			"updated_at": at,
		})
	if result.Error != nil {
		return apperrors.WrapCode(result.Error, apperrors.ErrCodeDatabaseError, "Failed to delete book")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// IncrReviews 原子增减，GREATEST保证计数不为负
func (r *bookRepository) IncrReviews(ctx context.Context, id string, delta int) error {
	err := getDB(ctx, r.db).Model(&BookModel{}).
		Where("id = ?", id).
		Update("reviews", gorm.Expr("GREATEST(reviews + ?, 0)", delta)).Error
	if err != nil {
		return apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "Failed to update review count")
	}
	return nil
}

func (r *bookRepository) first(ctx context.Context, query string, arg interface{}) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).Where(query, arg).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "Failed to query book")
	}
	return toBookEntity(&model), nil
}

func translateBookError(err error, message string) error {
	switch {
	case violates(err, ukBooksTitle):
		return book.ErrTitleDuplicate
	case violates(err, ukBooksISBN):
		return book.ErrISBNDuplicate
	case isDuplicateError(err):
		return apperrors.WrapCode(err, apperrors.ErrCodeDuplicateEntry, "Book already exists")
	case isDataTooLong(err):
		return apperrors.WrapCode(err, apperrors.ErrCodeValidation, "Book details are too long")
	}
	return apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, message)
}

func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:          b.ID,
		Title:       b.Title,
		Excerpt:     b.Excerpt,
		UserID:      b.UserID,
		ISBN:        b.ISBN,
		Category:    b.Category,
		Subcategory: joinSubcategory(b.Subcategory),
		ReleasedAt:  b.ReleasedAt,
		Reviews:     b.Reviews,
		IsDeleted:   b.IsDeleted,
		DeletedAt:   b.DeletedAt,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toBookEntity(m *BookModel) *book.Book {
	return &book.Book{
		ID:          m.ID,
		Title:       m.Title,
		Excerpt:     m.Excerpt,
		UserID:      m.UserID,
		ISBN:        m.ISBN,
		Category:    m.Category,
		Subcategory: splitSubcategory(m.Subcategory),
		ReleasedAt:  m.ReleasedAt,
		Reviews:     m.Reviews,
		IsDeleted:   m.IsDeleted,
		DeletedAt:   m.DeletedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
