// Package memory 进程内存储
//
// 实现与mysql包相同的仓储接口，包括唯一性约束和软删除语义。
// 用于database.driver=memory的单进程部署，以及服务层、HTTP层测试。
package memory

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/review"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
)

// Store 三张"表"共享一把读写锁
type Store struct {
	mu      sync.RWMutex
	users   map[string]user.User
	books   map[string]book.Book
	reviews map[string]review.Review

	// 事务串行执行
	txMu sync.Mutex
}

// NewStore 创建空存储
func NewStore() *Store {
	return &Store{
		users:   make(map[string]user.User),
		books:   make(map[string]book.Book),
		reviews: make(map[string]review.Review),
	}
}

func newID() string {
	return primitive.NewObjectID().Hex()
}

// undoLog 事务内写操作的逆操作，回滚时在写锁内倒序执行
type undoLog struct {
	ops []func()
}

type undoKey struct{}

func undoFrom(ctx context.Context) *undoLog {
	log, _ := ctx.Value(undoKey{}).(*undoLog)
	return log
}

// rememberUser 记录事务写入前的用户，调用方持有写锁
func (s *Store) rememberUser(ctx context.Context, id string) {
	log := undoFrom(ctx)
	if log == nil {
		return
	}
	prev, ok := s.users[id]
	log.ops = append(log.ops, func() {
		if ok {
			s.users[id] = prev
		} else {
			delete(s.users, id)
		}
	})
}

// rememberBook 同rememberUser
func (s *Store) rememberBook(ctx context.Context, id string) {
	log := undoFrom(ctx)
	if log == nil {
		return
	}
	prev, ok := s.books[id]
	prev = cloneBook(prev)
	log.ops = append(log.ops, func() {
		if ok {
			s.books[id] = prev
		} else {
			delete(s.books, id)
		}
	})
}

// rememberReview 同rememberUser
func (s *Store) rememberReview(ctx context.Context, id string) {
	log := undoFrom(ctx)
	if log == nil {
		return
	}
	prev, ok := s.reviews[id]
	log.ops = append(log.ops, func() {
		if ok {
			s.reviews[id] = prev
		} else {
			delete(s.reviews, id)
		}
	})
}

func (s *Store) rollback(log *undoLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(log.ops) - 1; i >= 0; i-- {
		log.ops[i]()
	}
}

// TxManager 内存事务：fn失败时只撤销本事务写过的记录，
// 事务外的并发写入不受影响
type TxManager struct {
	store *Store
}

// NewTxManager 创建事务管理器
func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

// Transaction 实现transaction.Manager，嵌套调用加入外层事务
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if undoFrom(ctx) != nil {
		return fn(ctx)
	}

	m.store.txMu.Lock()
	defer m.store.txMu.Unlock()

	log := &undoLog{}
	if err := fn(context.WithValue(ctx, undoKey{}, log)); err != nil {
		m.store.rollback(log)
		return err
	}
	return nil
}

// cloneBook 复制切片与指针字段，避免调用方修改内部状态
func cloneBook(b book.Book) book.Book {
	if b.Subcategory != nil {
		b.Subcategory = append([]string(nil), b.Subcategory...)
	}
	if b.DeletedAt != nil {
		at := *b.DeletedAt
		b.DeletedAt = &at
	}
	return b
}
