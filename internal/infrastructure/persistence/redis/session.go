package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookcatalog/internal/domain/session"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// SessionStore 会话存储（Redis）
// 数据结构：
//   - session:{userId}   Hash，登录信息，TTL与Token一致
//   - blacklist:{token}  String，已注销的Token，TTL为Token剩余有效期
type SessionStore struct {
	client redis.UniversalClient
}

// NewSessionStore 创建会话存储
func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return &SessionStore{client: client}
}

var _ session.Store = (*SessionStore)(nil)

func sessionKey(userID string) string {
	return fmt.Sprintf("session:%s", userID)
}

func blacklistKey(token string) string {
	return fmt.Sprintf("blacklist:%s", token)
}

// SaveSession HSET与EXPIRE在同一个pipeline中执行
func (s *SessionStore) SaveSession(ctx context.Context, userID string, data map[string]interface{}, ttl time.Duration) error {
	key := sessionKey(userID)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, data)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return apperrors.WrapCode(err, apperrors.ErrCodeRedisError, "Failed to save session")
	}
	return nil
}

func (s *SessionStore) GetSession(ctx context.Context, userID string) (map[string]string, error) {
	result, err := s.client.HGetAll(ctx, sessionKey(userID)).Result()
	if err != nil {
		return nil, apperrors.WrapCode(err, apperrors.ErrCodeRedisError, "Failed to load session")
	}
	if len(result) == 0 {
		return nil, session.ErrSessionNotFound
	}
	return result, nil
}

func (s *SessionStore) DeleteSession(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return apperrors.WrapCode(err, apperrors.ErrCodeRedisError, "Failed to delete session")
	}
	return nil
}

func (s *SessionStore) AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // 已过期的Token无需注销
	}
	if err := s.client.Set(ctx, blacklistKey(token), "revoked", ttl).Err(); err != nil {
		return apperrors.WrapCode(err, apperrors.ErrCodeRedisError, "Failed to revoke token")
	}
	return nil
}

func (s *SessionStore) IsInBlacklist(ctx context.Context, token string) (bool, error) {
	exists, err := s.client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, apperrors.WrapCode(err, apperrors.ErrCodeRedisError, "Failed to check token")
	}
	return exists > 0, nil
}
