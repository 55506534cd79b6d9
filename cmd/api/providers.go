package main

import (
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/review"
	"github.com/xiebiao/bookcatalog/internal/domain/transaction"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence"
	"github.com/xiebiao/bookcatalog/pkg/jwt"
)

// 以下Provider从配置或聚合结构中取出单个依赖，供Wire注入

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.TokenExpire)
}

func provideUserRepository(repos *persistence.Repositories) user.Repository {
	return repos.Users
}

func provideBookRepository(repos *persistence.Repositories) book.Repository {
	return repos.Books
}

func provideReviewRepository(repos *persistence.Repositories) review.Repository {
	return repos.Reviews
}

func provideTxManager(repos *persistence.Repositories) transaction.Manager {
	return repos.Tx
}

// provideUserDirectory 图书服务通过用户服务确认userId存在
func provideUserDirectory(users user.Service) book.UserDirectory {
	return users
}

// provideReviewBooks 评论服务直接使用图书仓储，使计数更新与评论写入处于同一事务
func provideReviewBooks(books book.Repository) review.BookStore {
	return books
}
