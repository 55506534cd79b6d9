package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/session"
)

type sessionEntry struct {
	data      map[string]string
	expiresAt time.Time
}

// SessionStore 会话存储内存实现，redis未启用时使用
// 过期条目在读取时惰性清理
type SessionStore struct {
	mu        sync.Mutex
	sessions  map[string]sessionEntry
	blacklist map[string]time.Time
	now       func() time.Time
}

// NewSessionStore 创建会话存储
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions:  make(map[string]sessionEntry),
		blacklist: make(map[string]time.Time),
		now:       time.Now,
	}
}

func (s *SessionStore) SaveSession(ctx context.Context, userID string, data map[string]interface{}, ttl time.Duration) error {
	values := make(map[string]string, len(data))
	for k, v := range data {
		values[k] = fmt.Sprint(v)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = sessionEntry{data: values, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *SessionStore) GetSession(ctx context.Context, userID string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[userID]
	if !ok {
		return nil, session.ErrSessionNotFound
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.sessions, userID)
		return nil, session.ErrSessionNotFound
	}
	out := make(map[string]string, len(entry.data))
	for k, v := range entry.data {
		out[k] = v
	}
	return out, nil
}

func (s *SessionStore) DeleteSession(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}

func (s *SessionStore) AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blacklist[token] = s.now().Add(ttl)
	return nil
}

func (s *SessionStore) IsInBlacklist(ctx context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt, ok := s.blacklist[token]
	if !ok {
		return false, nil
	}
	if !s.now().Before(expiresAt) {
		delete(s.blacklist, token)
		return false, nil
	}
	return true, nil
}
