package user

import (
	"context"
)

// Repository 用户仓储接口
// 接口定义在domain层，实现在infrastructure/persistence（mysql、memory）
type Repository interface {
	// Create 创建用户，ID为空时生成新ID
	// 邮箱或手机号冲突时返回ErrEmailDuplicate/ErrPhoneDuplicate（由唯一索引保证）
	Create(ctx context.Context, user *User) error

	// FindByID 不存在时返回ErrUserNotFound
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail 不存在时返回ErrUserNotFound
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByPhone 不存在时返回ErrUserNotFound
	FindByPhone(ctx context.Context, phone string) (*User, error)
}
