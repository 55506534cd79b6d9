package memory

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
)

// UserRepository 用户仓储内存实现
type UserRepository struct {
	store *Store
}

// NewUserRepository 创建用户仓储
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

// Create 邮箱、手机号唯一
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.users {
		if existing.Email == u.Email {
			return user.ErrEmailDuplicate
		}
		if existing.Phone == u.Phone {
			return user.ErrPhoneDuplicate
		}
	}
	if u.ID == "" {
		u.ID = newID()
	}
	r.store.rememberUser(ctx, u.ID)
	r.store.users[u.ID] = *u
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findBy(func(u user.User) bool { return u.Email == email })
}

func (r *UserRepository) FindByPhone(ctx context.Context, phone string) (*user.User, error) {
	return r.findBy(func(u user.User) bool { return u.Phone == phone })
}

func (r *UserRepository) findBy(match func(user.User) bool) (*user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, user.ErrUserNotFound
}
