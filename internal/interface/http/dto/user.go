package dto

import (
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/pkg/optional"
)

// AddressRequest 注册地址
type AddressRequest struct {
	Street  optional.Value[string] `json:"street" swaggertype:"string"`
	City    optional.Value[string] `json:"city" swaggertype:"string"`
	Pincode optional.Value[string] `json:"pincode" swaggertype:"string"`
}

// RegisterRequest HTTP层注册请求
// 字段用optional包装，区分"缺失"与"空白"，校验顺序由领域服务决定
type RegisterRequest struct {
	Title    optional.Value[string]         `json:"title" swaggertype:"string" example:"Mr"`
	Name     optional.Value[string]         `json:"name" swaggertype:"string"`
	Phone    optional.Value[string]         `json:"phone" swaggertype:"string" example:"9876543210"`
	Email    optional.Value[string]         `json:"email" swaggertype:"string"`
	Password optional.Value[string]         `json:"password" swaggertype:"string"`
	Address  optional.Value[AddressRequest] `json:"address"`
}

// ToInput 转换为领域输入
func (r RegisterRequest) ToInput() user.RegisterInput {
	in := user.RegisterInput{
		Title:    r.Title,
		Name:     r.Name,
		Phone:    r.Phone,
		Email:    r.Email,
		Password: r.Password,
	}
	if r.Address.Set {
		in.Address = optional.Value[user.AddressInput]{
			Set:  true,
			Null: r.Address.Null,
			V: user.AddressInput{
				Street:  r.Address.V.Street,
				City:    r.Address.V.City,
				Pincode: r.Address.V.Pincode,
			},
		}
	}
	return in
}

// LoginRequest 登录请求，缺失字段由领域服务统一报错
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
