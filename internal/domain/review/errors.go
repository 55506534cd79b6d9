package review

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

var (
	// ErrReviewNotFound 评论不存在或已删除
	ErrReviewNotFound = apperrors.New(apperrors.ErrCodeReviewNotFound, "review does not exist")

	// ErrMissingReviewID 路径参数未填写
	ErrMissingReviewID = apperrors.New(apperrors.ErrCodeMissingPathParam, "Please enter reviewId")

	// ErrInvalidReviewID reviewId格式错误
	ErrInvalidReviewID = apperrors.New(apperrors.ErrCodeInvalidID, "reviewId is invalid!")

	// ErrInvalidBookID bookId格式错误
	ErrInvalidBookID = apperrors.New(apperrors.ErrCodeInvalidID, "You are entering invalid bookId. It should be of 24 byte")

	// ErrRatingRequired 缺少评分
	ErrRatingRequired = apperrors.Validation("Please give rating")

	// ErrInvalidRating 评分超出范围
	ErrInvalidRating = apperrors.Validation("You have to give rating between 1 to 5 (1 or 5 is included)")
)
