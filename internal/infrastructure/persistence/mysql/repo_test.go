package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/review"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

const testBookID = "65a1f0c2e4b0a1b2c3d4e5f6"

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func duplicateErr(key string) error {
	return errors.New("Error 1062 (23000): Duplicate entry 'x' for key '" + key + "'")
}

func TestUserRepository_CreateDuplicate(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want error
	}{
		{"邮箱重复", "users.uk_users_email", user.ErrEmailDuplicate},
		{"手机号重复", "users.uk_users_phone", user.ErrPhoneDuplicate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewUserRepository(db)

			mock.ExpectExec("INSERT INTO `users`").WillReturnError(duplicateErr(tt.key))

			u := user.NewUser("Mr", "A", "9876543210", "a@b.com", "hash", user.Address{Pincode: "123456"})
			err := repo.Create(context.Background(), u)
			assert.ErrorIs(t, err, tt.want)
			assert.Len(t, u.ID, 24)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_FindByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	now := time.Now()

	t.Run("找到用户", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "title", "name", "phone", "email", "password", "street", "city", "pincode", "created_at", "updated_at"}).
			AddRow(testBookID, "Mr", "A", "9876543210", "a@b.com", "hash", "S", "C", "123456", now, now)
		mock.ExpectQuery("SELECT \\* FROM `users` WHERE email = \\?").
			WillReturnRows(rows)

		u, err := repo.FindByEmail(context.Background(), "a@b.com")
		require.NoError(t, err)
		assert.Equal(t, testBookID, u.ID)
		assert.Equal(t, user.Address{Street: "S", City: "C", Pincode: "123456"}, u.Address)
	})

	t.Run("不存在", func(t *testing.T) {
		mock.ExpectQuery("SELECT \\* FROM `users` WHERE email = \\?").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindByEmail(context.Background(), "nobody@b.com")
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})

	t.Run("数据库错误", func(t *testing.T) {
		mock.ExpectQuery("SELECT \\* FROM `users` WHERE phone = \\?").
			WillReturnError(errors.New("connection reset"))

		_, err := repo.FindByPhone(context.Background(), "9876543210")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeDatabaseError, apperrors.GetAppError(err).Code)
		assert.Equal(t, 500, apperrors.GetAppError(err).HTTPStatus())
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRepository_CreateDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookRepository(db)

	mock.ExpectExec("INSERT INTO `books`").WillReturnError(duplicateErr("books.uk_books_title"))
	mock.ExpectExec("INSERT INTO `books`").WillReturnError(duplicateErr("books.uk_books_isbn"))

	b := book.NewBook("T1", "E", testBookID, "1234567890", "Fic", []string{"Sub"}, "2020-01-01")
	assert.ErrorIs(t, repo.Create(context.Background(), b), book.ErrTitleDuplicate)
	b.ID = ""
	assert.ErrorIs(t, repo.Create(context.Background(), b), book.ErrISBNDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRepository_CreateDataTooLong(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookRepository(db)

	mock.ExpectExec("INSERT INTO `books`").
		WillReturnError(errors.New("Error 1406 (22001): Data too long for column 'title' at row 1"))

	b := book.NewBook("T1", "E", testBookID, "978 - 0 - 13 - 468599 - 1", "Fic", nil, "2020-01-01")
	err := repo.Create(context.Background(), b)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeValidation))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookModel_ISBNColumnFitsSeparatedISBN(t *testing.T) {
	db, _ := newMockDB(t)
	stmt := &gorm.Statement{DB: db}
	require.NoError(t, stmt.Parse(&BookModel{}))

	field := stmt.Schema.LookUpField("isbn")
	require.NotNil(t, field)
	assert.GreaterOrEqual(t, field.Size, len("978 - 0 - 13 - 468599 - 1"))
}

func TestBookRepository_ListWithFilters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookRepository(db)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "title", "excerpt", "user_id", "isbn", "category", "subcategory", "released_at", "reviews", "is_deleted", "deleted_at", "created_at", "updated_at"}).
		AddRow(testBookID, "T1", "E", testBookID, "1234567890", "Fic", "Sub,Drama", "2020-01-01", 2, false, nil, now, now)
	mock.ExpectQuery("SELECT \\* FROM `books` WHERE is_deleted = \\? AND user_id = \\? AND category = \\? AND FIND_IN_SET\\(\\?, subcategory\\) > 0 ORDER BY title ASC").
		WithArgs(false, testBookID, "Fic", "Drama").
		WillReturnRows(rows)

	books, err := repo.List(context.Background(), book.Filter{UserID: testBookID, Category: "Fic", Subcategory: "Drama"})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, []string{"Sub", "Drama"}, books[0].Subcategory)
	assert.Equal(t, 2, books[0].Reviews)
	assert.Nil(t, books[0].DeletedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRepository_ListWithoutFilters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `books` WHERE is_deleted = \\? ORDER BY title ASC").
		WithArgs(false).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	books, err := repo.List(context.Background(), book.Filter{})
	require.NoError(t, err)
	assert.Empty(t, books)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRepository_SoftDelete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookRepository(db)

	mock.ExpectExec("UPDATE `books` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `books` SET").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.SoftDelete(context.Background(), testBookID, time.Now()))
	assert.ErrorIs(t, repo.SoftDelete(context.Background(), testBookID, time.Now()), book.ErrBookNotFound,
		"已删除的图书不能再次删除")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_ReviewAndCounter(t *testing.T) {
	ctx := context.Background()

	t.Run("提交", func(t *testing.T) {
		db, mock := newMockDB(t)
		tx := NewTxManager(db)
		reviews := NewReviewRepository(db)
		books := NewBookRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `reviews`").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE `books` SET `reviews`=GREATEST\\(reviews \\+ \\?, 0\\)").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := tx.Transaction(ctx, func(ctx context.Context) error {
			r := review.NewReview(testBookID, "", 5, "", time.Now())
			if err := reviews.Create(ctx, r); err != nil {
				return err
			}
			return books.IncrReviews(ctx, testBookID, 1)
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("计数失败时回滚", func(t *testing.T) {
		db, mock := newMockDB(t)
		tx := NewTxManager(db)
		reviews := NewReviewRepository(db)
		books := NewBookRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `reviews`").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE `books` SET").WillReturnError(errors.New("lock wait timeout"))
		mock.ExpectRollback()

		err := tx.Transaction(ctx, func(ctx context.Context) error {
			r := review.NewReview(testBookID, "", 5, "", time.Now())
			if err := reviews.Create(ctx, r); err != nil {
				return err
			}
			return books.IncrReviews(ctx, testBookID, 1)
		})
		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestReviewRepository_SoftDeleteTwice(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReviewRepository(db)

	mock.ExpectExec("UPDATE `reviews` SET").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SoftDelete(context.Background(), testBookID)
	assert.ErrorIs(t, err, review.ErrReviewNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestViolates(t *testing.T) {
	assert.True(t, violates(duplicateErr("books.uk_books_isbn"), ukBooksISBN))
	assert.False(t, violates(duplicateErr("books.uk_books_isbn"), ukBooksTitle))
	assert.False(t, violates(errors.New("uk_books_isbn"), ukBooksISBN), "不是重复错误")
	assert.False(t, isDuplicateError(nil))
}
