package memory

import (
	"context"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// BookRepository 图书仓储内存实现
type BookRepository struct {
	store *Store
}

// NewBookRepository 创建图书仓储
func NewBookRepository(store *Store) *BookRepository {
	return &BookRepository{store: store}
}

// Create 书名、ISBN在全部图书（含已删除）中唯一
func (r *BookRepository) Create(ctx context.Context, b *book.Book) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.checkUnique(b); err != nil {
		return err
	}
	if b.ID == "" {
		b.ID = newID()
	}
	r.store.rememberBook(ctx, b.ID)
	r.store.books[b.ID] = cloneBook(*b)
	return nil
}

func (r *BookRepository) FindByID(ctx context.Context, id string) (*book.Book, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	b, ok := r.store.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	found := cloneBook(b)
	return &found, nil
}

func (r *BookRepository) FindByTitle(ctx context.Context, title string) (*book.Book, error) {
	return r.findBy(func(b book.Book) bool { return b.Title == title })
}

func (r *BookRepository) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	return r.findBy(func(b book.Book) bool { return b.ISBN == isbn })
}

// List 过滤条件为空时不参与匹配
func (r *BookRepository) List(ctx context.Context, filter book.Filter) ([]*book.Book, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	books := make([]*book.Book, 0)
	for _, b := range r.store.books {
		if b.IsDeleted {
			continue
		}
		if filter.UserID != "" && b.UserID != filter.UserID {
			continue
		}
		if filter.Category != "" && b.Category != filter.Category {
			continue
		}
		if filter.Subcategory != "" && !b.HasSubcategory(filter.Subcategory) {
			continue
		}
		found := cloneBook(b)
		books = append(books, &found)
	}
	return books, nil
}

func (r *BookRepository) Update(ctx context.Context, b *book.Book) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, ok := r.store.books[b.ID]
	if !ok {
		return book.ErrBookNotFound
	}
	if err := r.checkUnique(b); err != nil {
		return err
	}
	r.store.rememberBook(ctx, b.ID)
	current.Title = b.Title
	current.Excerpt = b.Excerpt
	current.ISBN = b.ISBN
	current.ReleasedAt = b.ReleasedAt
	current.UpdatedAt = b.UpdatedAt
	r.store.books[b.ID] = current
	return nil
}

// SoftDelete 已删除的图书返回ErrBookNotFound
func (r *BookRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	b, ok := r.store.books[id]
	if !ok || b.IsDeleted {
		return book.ErrBookNotFound
	}
	r.store.rememberBook(ctx, id)
	b.MarkDeleted(at)
	r.store.books[id] = b
	return nil
}

func (r *BookRepository) IncrReviews(ctx context.Context, id string, delta int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	b, ok := r.store.books[id]
	if !ok {
		return book.ErrBookNotFound
	}
	r.store.rememberBook(ctx, id)
	b.Reviews += delta
	if b.Reviews < 0 {
		b.Reviews = 0
	}
	r.store.books[id] = b
	return nil
}

func (r *BookRepository) findBy(match func(book.Book) bool) (*book.Book, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, b := range r.store.books {
		if match(b) {
			found := cloneBook(b)
			return &found, nil
		}
	}
	return nil, book.ErrBookNotFound
}

// checkUnique 调用方持有写锁
func (r *BookRepository) checkUnique(b *book.Book) error {
	for id, existing := range r.store.books {
		if id == b.ID {
			continue
		}
		if existing.Title == b.Title {
			return book.ErrTitleDuplicate
		}
		if existing.ISBN == b.ISBN {
			return book.ErrISBNDuplicate
		}
	}
	return nil
}
