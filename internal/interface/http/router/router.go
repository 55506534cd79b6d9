// Package router 组装Gin引擎：全局中间件、业务路由与运维端点
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/xiebiao/bookcatalog/docs" // Swagger文档
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/response"
	pkgvalidator "github.com/xiebiao/bookcatalog/pkg/validator"
)

// New 创建Gin引擎并注册全部路由
//
//	POST   /register                  公开
//	POST   /login                     公开
//	POST   /logout                    登录
//	POST   /books                     登录
//	GET    /books                     登录
//	GET    /books/:bookId             登录
//	PUT    /books/:bookId             登录 + 所有者
//	DELETE /books/:bookId             登录 + 所有者
//	POST   /books/:bookId/reviews     公开
//	DELETE /reviews/:reviewId         公开
func New(
	cfg *config.Config,
	log *zap.Logger,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	reviewHandler *handler.ReviewHandler,
	authMiddleware *middleware.AuthMiddleware,
	ownershipMiddleware *middleware.OwnershipMiddleware,
) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := pkgvalidator.Register(v); err != nil {
			log.Error("注册校验规则失败", zap.Error(err))
		}
	}

	r := gin.New()
	r.Use(middleware.Recovery(log), middleware.Logger(log))
	if cfg.Tracing.Enabled {
		r.Use(middleware.Tracing(cfg.Tracing.ServiceName))
	}
	if cfg.Metrics.Enabled {
		metrics.InitMetrics()
		r.Use(middleware.Metrics())
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}
	if cfg.Swagger.Enabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, "pong", gin.H{"status": "healthy"})
	})

	requireAuth := authMiddleware.RequireAuth()
	requireOwner := ownershipMiddleware.RequireBookOwner()

	r.POST("/register", userHandler.Register)
	r.POST("/login", userHandler.Login)
	r.POST("/logout", requireAuth, userHandler.Logout)

	books := r.Group("/books")
	{
		books.POST("", requireAuth, bookHandler.CreateBook)
		books.GET("", requireAuth, bookHandler.ListBooks)
		books.GET("/:bookId", requireAuth, bookHandler.GetBook)
		books.PUT("/:bookId", requireAuth, requireOwner, bookHandler.UpdateBook)
		books.DELETE("/:bookId", requireAuth, requireOwner, bookHandler.DeleteBook)
		books.POST("/:bookId/reviews", reviewHandler.CreateReview)
	}

	r.DELETE("/reviews/:reviewId", reviewHandler.DeleteReview)

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, apperrors.ErrRouteNotFound)
	})

	return r
}
