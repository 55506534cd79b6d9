//go:build wireinject
// +build wireinject

// Wire依赖注入配置，修改后运行 `wire gen ./cmd/api` 重新生成wire_gen.go

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"go.uber.org/zap"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	appreview "github.com/xiebiao/bookcatalog/internal/application/review"
	appuser "github.com/xiebiao/bookcatalog/internal/application/user"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/review"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/event"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/internal/interface/http/router"
)

// infrastructureSet 存储、会话、事件
var infrastructureSet = wire.NewSet(
	persistence.NewRepositories,
	persistence.NewSessionStore,
	event.NewPublisher,
	provideJWTManager,
)

// repositorySet 仓储层
var repositorySet = wire.NewSet(
	provideUserRepository,
	provideBookRepository,
	provideReviewRepository,
	provideTxManager,
	provideReviewBooks,
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	user.NewService,
	provideUserDirectory,
	book.NewService,
	review.NewService,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appbook.NewCreateBookUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	appreview.NewCreateReviewUseCase,
	appreview.NewDeleteReviewUseCase,
)

// interfaceSet 中间件、处理器、路由
var interfaceSet = wire.NewSet(
	middleware.NewAuthMiddleware,
	middleware.NewOwnershipMiddleware,
	handler.NewUserHandler,
	handler.NewBookHandler,
	handler.NewReviewHandler,
	router.New,
)

// InitializeApp 组装应用，返回的cleanup按创建的逆序释放资源
func InitializeApp(cfg *config.Config, log *zap.Logger) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		interfaceSet,
	)
	return nil, nil, nil
}
