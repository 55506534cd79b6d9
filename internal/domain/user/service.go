package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/optional"
	"github.com/xiebiao/bookcatalog/pkg/validator"
)

// DefaultHashCost bcrypt默认cost
const DefaultHashCost = 12

// AddressInput 注册地址（字段可选，出现即校验）
type AddressInput struct {
	Street  optional.Value[string]
	City    optional.Value[string]
	Pincode optional.Value[string]
}

// RegisterInput 注册参数
// 每个字段记录"是否出现在请求中"，用于区分缺失与空白
type RegisterInput struct {
	Title    optional.Value[string]
	Name     optional.Value[string]
	Phone    optional.Value[string]
	Email    optional.Value[string]
	Password optional.Value[string]
	Address  optional.Value[AddressInput]
}

// IsEmpty 没有任何字段
func (in RegisterInput) IsEmpty() bool {
	return !in.Title.Set && !in.Name.Set && !in.Phone.Set && !in.Email.Set && !in.Password.Set && !in.Address.Set
}

// Service 用户领域服务
type Service interface {
	// Register 按固定顺序校验并创建用户，第一个失败即返回
	Register(ctx context.Context, in RegisterInput) (*User, error)

	// Login 校验邮箱密码，任何不匹配都返回ErrInvalidCredentials
	Login(ctx context.Context, email, password string) (*User, error)

	// Exists 用户是否存在
	Exists(ctx context.Context, id string) (bool, error)
}

type service struct {
	repo     Repository
	hashCost int
}

// NewService 创建用户服务
func NewService(repo Repository) Service {
	return NewServiceWithCost(repo, DefaultHashCost)
}

// NewServiceWithCost 指定bcrypt cost（测试使用bcrypt.MinCost加速）
func NewServiceWithCost(repo Repository, cost int) Service {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultHashCost
	}
	return &service{repo: repo, hashCost: cost}
}

// Register 用户注册
// 校验顺序：title → name → phone → email → password → address
func (s *service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	if in.IsEmpty() {
		return nil, ErrEmptyBody
	}

	title, err := required(in.Title, "title")
	if err != nil {
		return nil, err
	}
	if !validator.IsValidTitle(title) {
		return nil, apperrors.Validation("Please enter valid title (Mr, Mrs, Miss)")
	}

	name, err := required(in.Name, "name")
	if err != nil {
		return nil, err
	}
	if validator.IsNumeric(name) {
		return nil, apperrors.Validation("name cannot be a number")
	}

	phone, err := required(in.Phone, "phone")
	if err != nil {
		return nil, err
	}
	if !validator.IsValidPhone(phone) {
		return nil, apperrors.Validation(fmt.Sprintf("%s is not a valid phone number; Please provide a valid phone number", phone))
	}
	if used, err := taken(s.repo.FindByPhone(ctx, phone)); err != nil {
		return nil, err
	} else if used {
		return nil, ErrPhoneDuplicate
	}

	email, err := required(in.Email, "email")
	if err != nil {
		return nil, err
	}
	email = strings.ToLower(email)
	if !validator.IsValidEmail(email) {
		return nil, apperrors.Validation(fmt.Sprintf("%s is not a valid email", email))
	}
	if used, err := taken(s.repo.FindByEmail(ctx, email)); err != nil {
		return nil, err
	} else if used {
		return nil, ErrEmailDuplicate
	}

	if !in.Password.Present() || in.Password.V == "" {
		return nil, apperrors.Validation("Please enter password(required field)")
	}
	password := in.Password.V
	if strings.TrimSpace(password) != password {
		return nil, apperrors.Validation("Your password can't start or end with a blank space")
	}
	if !validator.IsValidPassword(password) {
		return nil, ErrWeakPassword
	}

	address, err := validateAddress(in.Address)
	if err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, apperrors.Wrap(err, "Password hashing failed")
	}

	user := NewUser(title, name, phone, email, string(hashed), address)
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err // Repository已转换为业务错误
	}
	return user, nil
}

// Login 用户登录
// 不区分"邮箱不存在"与"密码错误"
func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	if !validator.IsValid(email) || password == "" {
		return nil, apperrors.Validation("Please provide email and password")
	}

	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(err, "Password verification failed")
	}
	return user, nil
}

func (s *service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// taken 唯一性预检查，最终由唯一索引兜底
func taken(_ *User, err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrUserNotFound) {
		return false, nil
	}
	return false, err
}

// required 字段必须出现且非空白，返回去掉首尾空白后的值
func required(v optional.Value[string], field string) (string, error) {
	if !v.Present() {
		return "", apperrors.Validation(fmt.Sprintf("Please enter %s(required field)", field))
	}
	if !validator.IsValid(v.V) {
		return "", apperrors.Validation(fmt.Sprintf("%s cannot be empty", field))
	}
	return strings.TrimSpace(v.V), nil
}

func validateAddress(in optional.Value[AddressInput]) (Address, error) {
	addr, ok := in.Get()
	if !ok {
		return Address{}, apperrors.Validation("Please enter address(required field)")
	}
	if !validator.IsValid(addr.Street.V) {
		return Address{}, apperrors.Validation("street is invalid")
	}
	if !validator.IsValid(addr.City.V) {
		return Address{}, apperrors.Validation("city is invalid")
	}
	pincode := strings.TrimSpace(addr.Pincode.V)
	if !validator.IsValidPincode(pincode) {
		return Address{}, apperrors.Validation("Please enter valid PIN code")
	}
	return Address{
		Street:  strings.TrimSpace(addr.Street.V),
		City:    strings.TrimSpace(addr.City.V),
		Pincode: pincode,
	}, nil
}
