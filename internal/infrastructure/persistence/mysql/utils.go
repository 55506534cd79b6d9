package mysql

import (
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

// isDuplicateError 判断是否为MySQL唯一索引冲突错误
// MySQL错误码1062: Duplicate entry 'xxx' for key 'yyy'
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "Duplicate entry")
}

// isDataTooLong 字段超出列宽（MySQL错误码1406）
func isDataTooLong(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Data too long")
}

// violates 冲突是否来自指定的唯一索引
// MySQL 8的错误信息形如 for key 'books.uk_books_title'
func violates(err error, index string) bool {
	return isDuplicateError(err) && strings.Contains(err.Error(), index)
}

// newID 生成24位十六进制ID
func newID() string {
	return primitive.NewObjectID().Hex()
}
