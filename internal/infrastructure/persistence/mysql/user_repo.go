package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// userRepository 用户仓储实现（MySQL）
// 负责领域实体与GORM模型之间的转换，并把唯一索引冲突转换为业务错误
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

// Create 邮箱、手机号唯一性由UNIQUE索引兜底
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	if u.ID == "" {
		u.ID = newID()
	}
	model := toUserModel(u)

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		switch {
		case violates(err, ukUsersEmail):
			return user.ErrEmailDuplicate
		case violates(err, ukUsersPhone):
			return user.ErrPhoneDuplicate
		case isDuplicateError(err):
			return apperrors.WrapCode(err, apperrors.ErrCodeDuplicateEntry, "User already exists")
		}
		return apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "Failed to create user")
	}

	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *userRepository) FindByPhone(ctx context.Context, phone string) (*user.User, error) {
	return r.first(ctx, "phone = ?", phone)
}

func (r *userRepository) first(ctx context.Context, query string, arg interface{}) (*user.User, error) {
	var model UserModel
	err := getDB(ctx, r.db).Where(query, arg).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "Failed to query user")
	}
	return toUserEntity(&model), nil
}

func toUserModel(u *user.User) *UserModel {
	return &UserModel{
		ID:        u.ID,
		Title:     u.Title,
		Name:      u.Name,
		Phone:     u.Phone,
		Email:     u.Email,
		Password:  u.Password,
		Street:    u.Address.Street,
		City:      u.Address.City,
		Pincode:   u.Address.Pincode,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserEntity(m *UserModel) *user.User {
	return &user.User{
		ID:       m.ID,
		Title:    m.Title,
		Name:     m.Name,
		Phone:    m.Phone,
		Email:    m.Email,
		Password: m.Password,
		Address: user.Address{
			Street:  m.Street,
			City:    m.City,
			Pincode: m.Pincode,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
