package user

import (
	"context"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/event"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// RegisterUseCase 用户注册用例
// 领域服务负责校验与持久化，用例负责DTO转换、指标与事件
type RegisterUseCase struct {
	userService user.Service
	publisher   event.Publisher
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service, publisher event.Publisher) *RegisterUseCase {
	return &RegisterUseCase{
		userService: userService,
		publisher:   publisher,
	}
}

// Execute 执行注册
func (uc *RegisterUseCase) Execute(ctx context.Context, req user.RegisterInput) (*UserResponse, error) {
	u, err := uc.userService.Register(ctx, req)
	if err != nil {
		return nil, err
	}

	metrics.IncCounter(metrics.UsersRegisteredTotal)
	uc.publisher.Publish(ctx, event.UserRegistered, u.ID, map[string]string{"email": u.Email})

	return NewUserResponse(u), nil
}

// AddressResponse 地址
type AddressResponse struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
}

// UserResponse 用户信息，不包含密码
type UserResponse struct {
	ID        string          `json:"_id"`
	Title     string          `json:"title"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone"`
	Email     string          `json:"email"`
	Address   AddressResponse `json:"address"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// NewUserResponse 领域实体 → DTO
func NewUserResponse(u *user.User) *UserResponse {
	return &UserResponse{
		ID:    u.ID,
		Title: u.Title,
		Name:  u.Name,
		Phone: u.Phone,
		Email: u.Email,
		Address: AddressResponse{
			Street:  u.Address.Street,
			City:    u.Address.City,
			Pincode: u.Address.Pincode,
		},
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
