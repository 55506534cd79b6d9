package book

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在或已删除（两者不做区分）
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "We are sorry; Given bookId does not exist")

	// ErrInvalidBookID bookId格式错误
	ErrInvalidBookID = apperrors.New(apperrors.ErrCodeInvalidID, "bookId is invalid!")

	// ErrTitleDuplicate 书名已存在
	ErrTitleDuplicate = apperrors.New(apperrors.ErrCodeTitleDuplicate, "Title is already used!")

	// ErrISBNDuplicate ISBN已存在
	ErrISBNDuplicate = apperrors.New(apperrors.ErrCodeISBNDuplicate, "ISBN is already used!")

	// ErrNotOwner 更新他人的图书
	ErrNotOwner = apperrors.ErrForbidden.WithMessage("Unauthorized access!")

	// ErrNoBooks 没有任何图书
	ErrNoBooks = apperrors.New(apperrors.ErrCodeNoBooks, "No book exists")

	// ErrNoMatch 没有满足过滤条件的图书
	ErrNoMatch = apperrors.New(apperrors.ErrCodeNoMatch, "No book satisfies the given filters!")

	// ErrEmptyBody 创建请求体为空
	ErrEmptyBody = apperrors.ErrEmptyBody.WithMessage("Please provide the book details")

	// ErrEmptyPatch 更新请求体为空
	ErrEmptyPatch = apperrors.ErrEmptyBody.WithMessage("Please provide book details to update!")
)
