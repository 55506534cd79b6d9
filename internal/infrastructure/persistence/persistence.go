// Package persistence 按配置选择存储实现
//
// database.driver=mysql 使用GORM + MySQL，memory 使用进程内存储（单进程部署与测试）；
// redis.enabled 决定会话与Token黑名单保存在Redis还是进程内。
package persistence

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/review"
	"github.com/xiebiao/bookcatalog/internal/domain/session"
	"github.com/xiebiao/bookcatalog/internal/domain/transaction"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/redis"
)

// Repositories 同一存储上的仓储与事务管理器
type Repositories struct {
	Users   user.Repository
	Books   book.Repository
	Reviews review.Repository
	Tx      transaction.Manager
}

// NewRepositories 创建仓储，返回的cleanup用于关闭连接
func NewRepositories(cfg *config.Config, log *zap.Logger) (*Repositories, func(), error) {
	switch cfg.Database.Driver {
	case config.DriverMemory:
		log.Warn("使用内存存储，进程退出后数据丢失")
		store := memory.NewStore()
		return &Repositories{
			Users:   memory.NewUserRepository(store),
			Books:   memory.NewBookRepository(store),
			Reviews: memory.NewReviewRepository(store),
			Tx:      memory.NewTxManager(store),
		}, func() {}, nil

	case config.DriverMySQL:
		db, err := mysql.NewDB(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("获取数据库连接池失败: %w", err)
		}
		cleanup := func() {
			if err := sqlDB.Close(); err != nil {
				log.Warn("关闭数据库连接失败", zap.Error(err))
			}
		}
		return &Repositories{
			Users:   mysql.NewUserRepository(db),
			Books:   mysql.NewBookRepository(db),
			Reviews: mysql.NewReviewRepository(db),
			Tx:      mysql.NewTxManager(db),
		}, cleanup, nil

	default:
		return nil, nil, fmt.Errorf("不支持的存储驱动: %s", cfg.Database.Driver)
	}
}

// NewSessionStore 创建会话存储
func NewSessionStore(cfg *config.Config, log *zap.Logger) (session.Store, func(), error) {
	if !cfg.Redis.Enabled {
		return memory.NewSessionStore(), func() {}, nil
	}
	client, err := redis.NewClient(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return redis.NewSessionStore(client), func() {
		if err := client.Close(); err != nil {
			log.Warn("关闭Redis连接失败", zap.Error(err))
		}
	}, nil
}
