// Package session 登录会话与Token注销端口
package session

import (
	"context"
	"time"
)

// Store 会话存储
// redis实现用于生产，memory实现用于单进程部署和测试
type Store interface {
	// SaveSession 记录登录会话，ttl与Token有效期一致
	SaveSession(ctx context.Context, userID string, data map[string]interface{}, ttl time.Duration) error

	// GetSession 会话不存在时返回ErrSessionNotFound
	GetSession(ctx context.Context, userID string) (map[string]string, error)

	DeleteSession(ctx context.Context, userID string) error

	// AddToBlacklist 注销Token直到其自然过期
	AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error

	IsInBlacklist(ctx context.Context, token string) (bool, error)
}
