package user

import (
	"fmt"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/validator"
)

// 用户领域错误定义
var (
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = apperrors.New(apperrors.ErrCodeUserNotFound, "UserId does not exist")

	// ErrEmailDuplicate 邮箱已注册
	ErrEmailDuplicate = apperrors.New(apperrors.ErrCodeEmailDuplicate, "We are sorry; this email is already registered")

	// ErrPhoneDuplicate 手机号已被使用
	ErrPhoneDuplicate = apperrors.New(apperrors.ErrCodePhoneDuplicate, "Phone number is already used!")

	// ErrWeakPassword 密码长度不在窗口内
	ErrWeakPassword = apperrors.New(apperrors.ErrCodeWeakPassword,
		fmt.Sprintf("Password length should be between %d and %d characters", validator.PasswordMinLen, validator.PasswordMaxLen))

	// ErrEmptyBody 注册请求体为空
	ErrEmptyBody = apperrors.ErrEmptyBody.WithMessage("Please provide user details")
)
