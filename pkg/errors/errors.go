package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code是业务错误码，前三位即HTTP状态码（40002 → 400）
// 2. Message是返回给调用方的提示信息
// 3. Err是内部错误，仅记录到日志
type AppError struct {
	Code    int    `json:"code"`    // 业务错误码
	Message string `json:"message"` // 用户友好的错误提示
	Err     error  `json:"-"`       // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较，预定义错误被WithMessage改写后仍可用errors.Is识别
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// HTTPStatus 由错误码推导HTTP状态码
func (e *AppError) HTTPStatus() int {
	status := e.Code / 100
	if status < 400 || status > 599 {
		return http.StatusInternalServerError
	}
	return status
}

// WithMessage 复制错误并替换提示信息（错误码不变）
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{Code: e.Code, Message: message, Err: e.Err}
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Newf 格式化创建AppError
func Newf(code int, format string, args ...interface{}) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap 包装系统错误（如数据库错误、网络错误）
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// WrapCode 以指定错误码包装系统错误
func WrapCode(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：错误码 = HTTP状态码*100 + 序号
// - 400xx: 参数校验、重复数据、缺少凭证
// - 401xx: 凭证无效、身份不符
// - 403xx: 无权修改
// - 404xx: 资源不存在（包括已软删除）
// - 500xx: 服务端错误

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeRedisError    = 50002 // Redis错误

	// 参数与业务规则错误（40000-40099）
	ErrCodeValidation         = 40000 // 参数校验失败(通用)
	ErrCodeEmptyBody          = 40001 // 请求体为空
	ErrCodeTokenRequired      = 40002 // 缺少Token
	ErrCodeEmailDuplicate     = 40003 // 邮箱已存在
	ErrCodeISBNDuplicate      = 40004 // ISBN已存在
	ErrCodeWeakPassword       = 40005 // 密码长度不符
	ErrCodePhoneDuplicate     = 40006 // 手机号已存在
	ErrCodeTitleDuplicate     = 40007 // 书名已存在
	ErrCodeInvalidCredentials = 40008 // 邮箱或密码错误
	ErrCodeDuplicateEntry     = 40009 // 重复记录(通用)
	ErrCodeInvalidID          = 40010 // ID格式错误
	ErrCodeResourceNotFound   = 40011 // 鉴权阶段资源不存在
	ErrCodeBindError          = 40012 // 参数绑定失败
	ErrCodeMissingPathParam   = 40013 // 缺少路径参数

	// 认证错误（40100-40199）
	ErrCodeUnauthorized     = 40100 // 身份与请求数据不符
	ErrCodeInvalidToken     = 40101 // Token无效
	ErrCodeTokenExpired     = 40102 // Token过期
	ErrCodeTokenRevoked     = 40103 // Token已注销
	ErrCodeAuthorizationErr = 40104 // 非资源所有者

	// 权限错误（40300-40399）
	ErrCodeForbidden = 40300 // 无权修改

	// 资源错误（40400-40499）
	ErrCodeUserNotFound   = 40401 // 用户不存在
	ErrCodeBookNotFound   = 40402 // 图书不存在
	ErrCodeReviewNotFound = 40403 // 评论不存在
	ErrCodeRouteNotFound  = 40404 // 路由不存在
	ErrCodeNoBooks        = 40405 // 图书列表为空
	ErrCodeNoMatch        = 40406 // 没有满足过滤条件的图书
)

// =========================================
// 预定义错误（避免每次都New）
// =========================================

var (
	// 系统错误
	ErrInternal   = New(ErrCodeInternal, "Internal server error")
	ErrRedisError = New(ErrCodeRedisError, "Session store error")

	// 参数错误
	ErrEmptyBody          = New(ErrCodeEmptyBody, "Request body cannot be empty!")
	ErrBindError          = New(ErrCodeBindError, "Invalid request payload")
	ErrInvalidCredentials = New(ErrCodeInvalidCredentials, "email or password is incorrect")

	// 认证授权
	ErrTokenRequired = New(ErrCodeTokenRequired, "Token required! Please login to generate token")
	ErrInvalidToken  = New(ErrCodeInvalidToken, "Invalid token")
	ErrTokenExpired  = New(ErrCodeTokenExpired, "Token expired! Please login again")
	ErrTokenRevoked  = New(ErrCodeTokenRevoked, "Token has been revoked! Please login again")
	ErrAuthorization = New(ErrCodeAuthorizationErr, "Authorisation Failed!")
	ErrForbidden     = New(ErrCodeForbidden, "You are not allowed to modify this resource")

	// 资源不存在
	ErrRouteNotFound = New(ErrCodeRouteNotFound, "The api you requested is not available")
)

// =========================================
// 辅助函数
// =========================================

// Validation 创建参数校验错误
func Validation(message string) *AppError {
	return New(ErrCodeValidation, message)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, ErrInternal.Message)
}

// HasCode 判断错误链中是否包含指定错误码
func HasCode(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
