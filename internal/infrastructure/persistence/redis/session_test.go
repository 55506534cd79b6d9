package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/domain/session"
)

// 需要本地Redis：BOOKCATALOG_TEST_REDIS_ADDR=localhost:6379
func newTestStore(t *testing.T) *SessionStore {
	t.Helper()
	addr := os.Getenv("BOOKCATALOG_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("未设置BOOKCATALOG_TEST_REDIS_ADDR，跳过Redis测试")
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	require.NoError(t, client.Ping(context.Background()).Err())
	t.Cleanup(func() {
		_ = client.FlushDB(context.Background()).Err()
		_ = client.Close()
	})
	return NewSessionStore(client)
}

func TestSessionStore_Lifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	const userID = "65a1f0c2e4b0a1b2c3d4e5f6"

	require.NoError(t, store.SaveSession(ctx, userID, map[string]interface{}{"email": "a@b.com"}, time.Minute))

	data, err := store.GetSession(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", data["email"])

	require.NoError(t, store.DeleteSession(ctx, userID))
	_, err = store.GetSession(ctx, userID)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestSessionStore_Blacklist(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	revoked, err := store.IsInBlacklist(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.AddToBlacklist(ctx, "token-a", time.Minute))
	revoked, err = store.IsInBlacklist(ctx, "token-a")
	require.NoError(t, err)
	assert.True(t, revoked)

	require.NoError(t, store.AddToBlacklist(ctx, "token-b", 0), "已过期的Token直接忽略")
	revoked, err = store.IsInBlacklist(ctx, "token-b")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "session:abc", sessionKey("abc"))
	assert.Equal(t, "blacklist:t", blacklistKey("t"))
}
