package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// Manager JWT管理器
// 设计说明：
// 1. 单Token机制，Token通过x-api-key头传递
// 2. 密钥与有效期来自配置，构造时注入
type Manager struct {
	secret      string        // JWT签名密钥
	tokenExpire time.Duration // Token有效期
	issuer      string
	now         func() time.Time
}

// NewManager 创建JWT管理器
func NewManager(secret string, tokenExpire time.Duration) *Manager {
	return &Manager{
		secret:      secret,
		tokenExpire: tokenExpire,
		issuer:      "bookcatalog",
		now:         time.Now,
	}
}

// Claims 自定义JWT Claims
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Token 签发结果
type Token struct {
	Value     string
	ExpiresAt time.Time
	ExpiresIn int64 // 秒
}

// TTL 返回Token有效期
func (m *Manager) TTL() time.Duration {
	return m.tokenExpire
}

// GenerateToken 签发Token，载荷为{userId, email}
func (m *Manager) GenerateToken(userID, email string) (*Token, error) {
	now := m.now()
	expiresAt := now.Add(m.tokenExpire)

	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    m.issuer,
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.secret))
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to generate token")
	}

	return &Token{
		Value:     signed,
		ExpiresAt: expiresAt,
		ExpiresIn: int64(m.tokenExpire.Seconds()),
	}, nil
}

// ParseToken 解析并验证Token
// 1. 验证签名算法为HMAC
// 2. 验证过期时间（exp）与生效时间（nbf）
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("非法的签名算法: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	}, jwt.WithTimeFunc(m.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, apperrors.ErrInvalidToken
	}

	return claims, nil
}
