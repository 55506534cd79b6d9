package book_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/memory"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/optional"
)

const (
	ownerID   = "65a1f0c2e4b0a1b2c3d4e5f6"
	otherID   = "65a1f0c2e4b0a1b2c3d4e5f7"
	missingID = "65a1f0c2e4b0a1b2c3d4e5f8"
)

// fakeUsers 只认识ownerID与otherID
type fakeUsers struct{}

func (fakeUsers) Exists(_ context.Context, id string) (bool, error) {
	return id == ownerID || id == otherID, nil
}

func newService(t *testing.T) (book.Service, *memory.BookRepository) {
	t.Helper()
	repo := memory.NewBookRepository(memory.NewStore())
	return book.NewService(repo, fakeUsers{}), repo
}

func createInput(title, isbn string) book.CreateInput {
	return book.CreateInput{
		Title:       optional.Of(title),
		Excerpt:     optional.Of("E"),
		UserID:      optional.Of(ownerID),
		ISBN:        optional.Of(isbn),
		Category:    optional.Of("Fic"),
		Subcategory: optional.Of("Sub, Drama"),
		ReleasedAt:  optional.Of("2020-01-01"),
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("正常创建", func(t *testing.T) {
		svc, repo := newService(t)
		b, err := svc.Create(ctx, createInput("T1", "1234567890"), ownerID)
		require.NoError(t, err)
		assert.Len(t, b.ID, 24)
		assert.Equal(t, []string{"Sub", "Drama"}, b.Subcategory)
		assert.Zero(t, b.Reviews)
		assert.False(t, b.IsDeleted)
		assert.Nil(t, b.DeletedAt)

		stored, err := repo.FindByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, "T1", stored.Title)
	})

	t.Run("userId与调用者不符", func(t *testing.T) {
		svc, repo := newService(t)
		_, err := svc.Create(ctx, createInput("T1", "1234567890"), otherID)
		require.Error(t, err)
		assert.Equal(t, 401, apperrors.GetAppError(err).HTTPStatus())

		_, err = repo.FindByTitle(ctx, "T1")
		assert.ErrorIs(t, err, book.ErrBookNotFound, "不应持久化")
	})

	t.Run("书名与ISBN全局唯一", func(t *testing.T) {
		svc, _ := newService(t)
		_, err := svc.Create(ctx, createInput("T1", "1234567890"), ownerID)
		require.NoError(t, err)

		_, err = svc.Create(ctx, createInput("T1", "1234567891"), ownerID)
		assert.ErrorIs(t, err, book.ErrTitleDuplicate)

		_, err = svc.Create(ctx, createInput("T2", "1234567890"), ownerID)
		assert.ErrorIs(t, err, book.ErrISBNDuplicate)
	})

	t.Run("已删除图书的书名仍被占用", func(t *testing.T) {
		svc, _ := newService(t)
		b, err := svc.Create(ctx, createInput("T1", "1234567890"), ownerID)
		require.NoError(t, err)
		_, err = svc.SoftDelete(ctx, b.ID)
		require.NoError(t, err)

		_, err = svc.Create(ctx, createInput("T1", "9876543210"), ownerID)
		assert.ErrorIs(t, err, book.ErrTitleDuplicate)
	})
}

func TestCreate_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(in *book.CreateInput)
		code   int
	}{
		{"空请求体", func(in *book.CreateInput) { *in = book.CreateInput{} }, apperrors.ErrCodeEmptyBody},
		{"缺少title", func(in *book.CreateInput) { in.Title = optional.Value[string]{} }, apperrors.ErrCodeValidation},
		{"excerpt空白", func(in *book.CreateInput) { in.Excerpt = optional.Of("   ") }, apperrors.ErrCodeValidation},
		{"缺少userId", func(in *book.CreateInput) { in.UserID = optional.Value[string]{} }, apperrors.ErrCodeValidation},
		{"userId格式错误", func(in *book.CreateInput) { in.UserID = optional.Of("123") }, apperrors.ErrCodeInvalidID},
		{"userId不存在", func(in *book.CreateInput) { in.UserID = optional.Of(missingID) }, apperrors.ErrCodeUserNotFound},
		{"缺少ISBN", func(in *book.CreateInput) { in.ISBN = optional.Value[string]{} }, apperrors.ErrCodeValidation},
		{"ISBN格式错误", func(in *book.CreateInput) { in.ISBN = optional.Of("12345") }, apperrors.ErrCodeValidation},
		{"缺少category", func(in *book.CreateInput) { in.Category = optional.Value[string]{} }, apperrors.ErrCodeValidation},
		{"subcategory只有逗号", func(in *book.CreateInput) { in.Subcategory = optional.Of(" , ") }, apperrors.ErrCodeValidation},
		{"缺少releasedAt", func(in *book.CreateInput) { in.ReleasedAt = optional.Value[string]{} }, apperrors.ErrCodeValidation},
		{"releasedAt格式错误", func(in *book.CreateInput) { in.ReleasedAt = optional.Of("01-01-2020") }, apperrors.ErrCodeValidation},
		{"isDeleted为true", func(in *book.CreateInput) { in.IsDeleted = optional.Of(true) }, apperrors.ErrCodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(t)
			in := createInput("T1", "1234567890")
			tt.mutate(&in)

			_, err := svc.Create(ctx, in, ownerID)
			require.Error(t, err)
			assert.Equal(t, tt.code, apperrors.GetAppError(err).Code)

			books, err := repo.List(ctx, book.Filter{})
			require.NoError(t, err)
			assert.Empty(t, books)
		})
	}

	t.Run("isDeleted为false允许", func(t *testing.T) {
		svc, _ := newService(t)
		in := createInput("T1", "1234567890")
		in.IsDeleted = optional.Of(false)
		_, err := svc.Create(ctx, in, ownerID)
		assert.NoError(t, err)
	})
}

func TestList(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	_, err := svc.List(ctx, book.Filter{})
	assert.ErrorIs(t, err, book.ErrNoBooks)
	assert.NotErrorIs(t, err, book.ErrBookNotFound, "列表为空与图书不存在是不同的错误")

	for _, tc := range []struct{ title, isbn, category string }{
		{"banana", "1111111111", "Fic"},
		{"Apple", "2222222222", "Fic"},
		{"cherry", "3333333333", "Sci"},
	} {
		in := createInput(tc.title, tc.isbn)
		in.Category = optional.Of(tc.category)
		_, err := svc.Create(ctx, in, ownerID)
		require.NoError(t, err)
	}

	t.Run("按书名排序（不区分大小写）", func(t *testing.T) {
		books, err := svc.List(ctx, book.Filter{})
		require.NoError(t, err)
		require.Len(t, books, 3)
		assert.Equal(t, []string{"Apple", "banana", "cherry"}, titles(books))
	})

	t.Run("category过滤", func(t *testing.T) {
		books, err := svc.List(ctx, book.Filter{Category: " Fic "})
		require.NoError(t, err)
		assert.Equal(t, []string{"Apple", "banana"}, titles(books))
	})

	t.Run("subcategory匹配任一值", func(t *testing.T) {
		books, err := svc.List(ctx, book.Filter{Subcategory: "Drama"})
		require.NoError(t, err)
		assert.Len(t, books, 3)
	})

	t.Run("过滤后为空", func(t *testing.T) {
		_, err := svc.List(ctx, book.Filter{Category: "Poetry"})
		assert.ErrorIs(t, err, book.ErrNoMatch)
		assert.Equal(t, "No book satisfies the given filters!", apperrors.GetAppError(err).Message)
	})

	t.Run("userId格式错误与不存在", func(t *testing.T) {
		_, err := svc.List(ctx, book.Filter{UserID: "xyz"})
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidID))
		_, err = svc.List(ctx, book.Filter{UserID: missingID})
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeUserNotFound))
	})

	t.Run("已删除图书不出现在列表中", func(t *testing.T) {
		books, err := svc.List(ctx, book.Filter{Category: "Sci"})
		require.NoError(t, err)
		_, err = svc.SoftDelete(ctx, books[0].ID)
		require.NoError(t, err)

		_, err = svc.List(ctx, book.Filter{Category: "Sci"})
		assert.ErrorIs(t, err, book.ErrNoMatch)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	b, err := svc.Create(ctx, createInput("T1", "1234567890"), ownerID)
	require.NoError(t, err)
	other, err := svc.Create(ctx, createInput("T2", "1234567891"), ownerID)
	require.NoError(t, err)

	t.Run("部分更新只修改提供的字段", func(t *testing.T) {
		updated, err := svc.Update(ctx, b.ID, ownerID, book.Patch{Excerpt: optional.Of("New excerpt")})
		require.NoError(t, err)
		assert.Equal(t, "New excerpt", updated.Excerpt)
		assert.Equal(t, "T1", updated.Title)
		assert.Equal(t, "1234567890", updated.ISBN)
	})

	t.Run("保留自身书名不算重复", func(t *testing.T) {
		_, err := svc.Update(ctx, b.ID, ownerID, book.Patch{Title: optional.Of("T1")})
		assert.NoError(t, err)
	})

	t.Run("与其它图书重复", func(t *testing.T) {
		_, err := svc.Update(ctx, b.ID, ownerID, book.Patch{Title: optional.Of(other.Title)})
		assert.ErrorIs(t, err, book.ErrTitleDuplicate)
		_, err = svc.Update(ctx, b.ID, ownerID, book.Patch{ISBN: optional.Of(other.ISBN)})
		assert.ErrorIs(t, err, book.ErrISBNDuplicate)
	})

	t.Run("显式提供的空值也要校验", func(t *testing.T) {
		_, err := svc.Update(ctx, b.ID, ownerID, book.Patch{Title: optional.Of("")})
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeValidation))
		_, err = svc.Update(ctx, b.ID, ownerID, book.Patch{ReleasedAt: optional.Of("2020/01/01")})
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeValidation))
	})

	t.Run("空patch", func(t *testing.T) {
		_, err := svc.Update(ctx, b.ID, ownerID, book.Patch{})
		assert.ErrorIs(t, err, book.ErrEmptyPatch)
	})

	t.Run("非所有者", func(t *testing.T) {
		_, err := svc.Update(ctx, b.ID, otherID, book.Patch{Excerpt: optional.Of("x")})
		require.Error(t, err)
		assert.Equal(t, 403, apperrors.GetAppError(err).HTTPStatus())
	})

	t.Run("bookId格式错误", func(t *testing.T) {
		_, err := svc.Update(ctx, "nope", ownerID, book.Patch{Excerpt: optional.Of("x")})
		assert.ErrorIs(t, err, book.ErrInvalidBookID)
	})
}

func TestSoftDelete_HidesBook(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	b, err := svc.Create(ctx, createInput("T1", "1234567890"), ownerID)
	require.NoError(t, err)

	deleted, err := svc.SoftDelete(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, deleted.IsDeleted)
	require.NotNil(t, deleted.DeletedAt)

	_, err = svc.Get(ctx, b.ID)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
	_, err = svc.Update(ctx, b.ID, ownerID, book.Patch{Excerpt: optional.Of("x")})
	assert.ErrorIs(t, err, book.ErrBookNotFound)
	_, err = svc.SoftDelete(ctx, b.ID)
	assert.ErrorIs(t, err, book.ErrBookNotFound)

	owner, err := svc.OwnerOf(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, ownerID, owner, "鉴权阶段仍能找到已删除图书的所有者")
}

func TestOwnerOf(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	_, err := svc.OwnerOf(ctx, "bad")
	assert.ErrorIs(t, err, book.ErrInvalidBookID)
	_, err = svc.OwnerOf(ctx, missingID)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestNotFoundErrorsAreDistinct(t *testing.T) {
	sentinels := []error{book.ErrBookNotFound, book.ErrNoBooks, book.ErrNoMatch}
	for i, a := range sentinels {
		assert.Equal(t, 404, apperrors.GetAppError(a).HTTPStatus())
		for j, b := range sentinels {
			if i != j {
				assert.NotErrorIs(t, a, b)
			}
		}
	}
}

func titles(books []*book.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Title
	}
	return out
}
