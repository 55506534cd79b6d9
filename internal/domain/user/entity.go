package user

import (
	"time"
)

// Address 用户地址（值对象）
type Address struct {
	Street  string
	City    string
	Pincode string
}

// User 用户实体（聚合根）
// 领域实体不依赖GORM tag，映射由infrastructure层的Repository处理
// Password为bcrypt哈希值，不会出现在任何响应中
type User struct {
	ID        string // 24位十六进制ID，由Repository在插入时生成
	Title     string // Mr/Mrs/Miss
	Name      string
	Phone     string
	Email     string // 统一小写存储
	Password  string
	Address   Address
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建新用户（工厂方法）
// hashedPassword必须是bcrypt加密后的密码
func NewUser(title, name, phone, email, hashedPassword string, address Address) *User {
	now := time.Now()
	return &User{
		Title:     title,
		Name:      name,
		Phone:     phone,
		Email:     email,
		Password:  hashedPassword,
		Address:   address,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
