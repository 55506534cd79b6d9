package book

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/optional"
	"github.com/xiebiao/bookcatalog/pkg/validator"
)

// UserDirectory 查询用户是否存在（由user.Service实现）
type UserDirectory interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// CreateInput 创建图书参数
type CreateInput struct {
	Title       optional.Value[string]
	Excerpt     optional.Value[string]
	UserID      optional.Value[string]
	ISBN        optional.Value[string]
	Category    optional.Value[string]
	Subcategory optional.Value[string]
	ReleasedAt  optional.Value[string]
	IsDeleted   optional.Value[bool]
}

// IsEmpty 没有任何字段
func (in CreateInput) IsEmpty() bool {
	return !in.Title.Set && !in.Excerpt.Set && !in.UserID.Set && !in.ISBN.Set &&
		!in.Category.Set && !in.Subcategory.Set && !in.ReleasedAt.Set && !in.IsDeleted.Set
}

// Patch 部分更新，只处理出现的字段
type Patch struct {
	Title      optional.Value[string]
	Excerpt    optional.Value[string]
	ReleasedAt optional.Value[string]
	ISBN       optional.Value[string]
}

// IsEmpty 没有任何可更新字段
func (p Patch) IsEmpty() bool {
	return !p.Title.Set && !p.Excerpt.Set && !p.ReleasedAt.Set && !p.ISBN.Set
}

// Service 图书领域服务
type Service interface {
	Create(ctx context.Context, in CreateInput, callerID string) (*Book, error)
	List(ctx context.Context, filter Filter) ([]*Book, error)
	Get(ctx context.Context, id string) (*Book, error)
	Update(ctx context.Context, id, callerID string, patch Patch) (*Book, error)
	SoftDelete(ctx context.Context, id string) (*Book, error)

	// OwnerOf 返回发布者ID，已删除的图书同样返回（鉴权阶段不区分）
	OwnerOf(ctx context.Context, id string) (string, error)
}

type service struct {
	repo  Repository
	users UserDirectory
	now   func() time.Time
}

// NewService 创建图书服务
func NewService(repo Repository, users UserDirectory) Service {
	return &service{repo: repo, users: users, now: time.Now}
}

// Create 创建图书
// 校验顺序：title → excerpt → userId → ISBN → category → subcategory → releasedAt → isDeleted
func (s *service) Create(ctx context.Context, in CreateInput, callerID string) (*Book, error) {
	if in.IsEmpty() {
		return nil, ErrEmptyBody
	}

	title, err := requiredField(in.Title, "Please provide the title (required field)")
	if err != nil {
		return nil, err
	}
	if err := s.checkTitle(ctx, title, ""); err != nil {
		return nil, err
	}

	excerpt, err := requiredField(in.Excerpt, "Please provide the excerpt (required field)")
	if err != nil {
		return nil, err
	}

	userID, err := requiredField(in.UserID, "Please enter userId (required field)")
	if err != nil {
		return nil, err
	}
	if !validator.IsValidObjectID(userID) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidID, "userId is invalid!")
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	if userID != callerID {
		return nil, apperrors.Newf(apperrors.ErrCodeUnauthorized,
			"Authorisation Failed: You are logged in as %s not %s", callerID, userID)
	}

	isbn, err := requiredField(in.ISBN, "Please provide the ISBN (required field)")
	if err != nil {
		return nil, err
	}
	if !validator.IsValidISBN(isbn) {
		return nil, apperrors.Validation("ISBN is not valid.Please use 10 or 13 digits ISBN format")
	}
	if err := s.checkISBN(ctx, isbn, ""); err != nil {
		return nil, err
	}

	category, err := requiredField(in.Category, "Please provide the category (required field)")
	if err != nil {
		return nil, err
	}

	rawSub, err := requiredField(in.Subcategory, "Please provide the subcategory (required field)")
	if err != nil {
		return nil, err
	}
	subcategory := ParseSubcategory(rawSub)
	if len(subcategory) == 0 {
		return nil, apperrors.Validation("Please provide the subcategory (required field)")
	}

	releasedAt, err := requiredField(in.ReleasedAt, "Please provide the book release date (required field).")
	if err != nil {
		return nil, err
	}
	if !validator.IsValidRelAt(releasedAt) {
		return nil, apperrors.Validation("Please follow the format YYYY-MM-DD for book release date")
	}

	if in.IsDeleted.OrElse(false) {
		return nil, apperrors.Validation("isDeleted cannot be true during creation!")
	}

	book := NewBook(title, excerpt, userID, isbn, category, subcategory, releasedAt)
	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// List 列出未删除的图书，按书名排序（不区分大小写）
func (s *service) List(ctx context.Context, filter Filter) ([]*Book, error) {
	filter = Filter{
		UserID:      strings.TrimSpace(filter.UserID),
		Category:    strings.TrimSpace(filter.Category),
		Subcategory: strings.TrimSpace(filter.Subcategory),
	}

	if filter.UserID != "" {
		if !validator.IsValidObjectID(filter.UserID) {
			return nil, apperrors.New(apperrors.ErrCodeInvalidID, "userId is invalid!")
		}
		if err := s.ensureUser(ctx, filter.UserID); err != nil {
			return nil, err
		}
	}

	books, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		if filter.Applied() {
			return nil, ErrNoMatch
		}
		return nil, ErrNoBooks
	}

	// Collator不是并发安全的，每次调用单独创建
	c := collate.New(language.English, collate.IgnoreCase)
	slices.SortStableFunc(books, func(a, b *Book) int {
		return c.CompareString(a.Title, b.Title)
	})
	return books, nil
}

// Get 查询单本图书，已删除视为不存在
func (s *service) Get(ctx context.Context, id string) (*Book, error) {
	return s.visible(ctx, id)
}

// Update 部分更新
// 顺序：bookId → 存在且未删除 → 所有者 → 请求体 → title → excerpt → releasedAt → ISBN
func (s *service) Update(ctx context.Context, id, callerID string, patch Patch) (*Book, error) {
	book, err := s.visible(ctx, id)
	if err != nil {
		return nil, err
	}
	if !book.IsOwnedBy(callerID) {
		return nil, ErrNotOwner
	}
	if patch.IsEmpty() {
		return nil, ErrEmptyPatch
	}

	if patch.Title.Set {
		if !validator.IsValid(patch.Title.V) {
			return nil, apperrors.Validation("title is not valid!")
		}
		title := strings.TrimSpace(patch.Title.V)
		if err := s.checkTitle(ctx, title, book.ID); err != nil {
			return nil, err
		}
		book.Title = title
	}

	if patch.Excerpt.Set {
		if !validator.IsValid(patch.Excerpt.V) {
			return nil, apperrors.Validation("excerpt is not valid!")
		}
		book.Excerpt = strings.TrimSpace(patch.Excerpt.V)
	}

	if patch.ReleasedAt.Set {
		releasedAt := strings.TrimSpace(patch.ReleasedAt.V)
		if !validator.IsValidRelAt(releasedAt) {
			return nil, apperrors.Validation("releasedAt is not valid.Please use (YYYY-MM-DD) format")
		}
		book.ReleasedAt = releasedAt
	}

	if patch.ISBN.Set {
		isbn := strings.TrimSpace(patch.ISBN.V)
		if !validator.IsValidISBN(isbn) {
			return nil, apperrors.Validation("ISBN is not valid.Please use 10 or 13 digits ISBN format")
		}
		if err := s.checkISBN(ctx, isbn, book.ID); err != nil {
			return nil, err
		}
		book.ISBN = isbn
	}

	book.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// SoftDelete 软删除，重复删除返回ErrBookNotFound
func (s *service) SoftDelete(ctx context.Context, id string) (*Book, error) {
	book, err := s.visible(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := s.repo.SoftDelete(ctx, book.ID, now); err != nil {
		return nil, err
	}
	book.MarkDeleted(now)
	return book, nil
}

func (s *service) OwnerOf(ctx context.Context, id string) (string, error) {
	if !validator.IsValidObjectID(id) {
		return "", ErrInvalidBookID
	}
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	return book.UserID, nil
}

// visible 按ID查询未删除的图书
func (s *service) visible(ctx context.Context, id string) (*Book, error) {
	if !validator.IsValidObjectID(id) {
		return nil, ErrInvalidBookID
	}
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !book.Visible() {
		return nil, ErrBookNotFound
	}
	return book, nil
}

func (s *service) ensureUser(ctx context.Context, userID string) error {
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.New(apperrors.ErrCodeUserNotFound, "UserId does not exist")
	}
	return nil
}

// checkTitle 书名唯一（包括已删除的图书），selfID为更新时排除的自身
func (s *service) checkTitle(ctx context.Context, title, selfID string) error {
	existing, err := s.repo.FindByTitle(ctx, title)
	if errors.Is(err, ErrBookNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID == selfID {
		return nil
	}
	return ErrTitleDuplicate.WithMessage(fmt.Sprintf("%s is already exists.Please try a new title.", title))
}

func (s *service) checkISBN(ctx context.Context, isbn, selfID string) error {
	existing, err := s.repo.FindByISBN(ctx, isbn)
	if errors.Is(err, ErrBookNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID == selfID {
		return nil
	}
	return ErrISBNDuplicate.WithMessage(fmt.Sprintf("%s is already registered.", isbn))
}

// requiredField 字段必须出现且非空白
func requiredField(v optional.Value[string], message string) (string, error) {
	if !v.Present() || !validator.IsValid(v.V) {
		return "", apperrors.Validation(message)
	}
	return strings.TrimSpace(v.V), nil
}
