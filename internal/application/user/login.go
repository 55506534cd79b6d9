package user

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/session"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/pkg/jwt"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// LoginUseCase 用户登录用例
// 1. 校验邮箱密码
// 2. 签发Token（{userId, email}，默认24小时）
// 3. 记录会话
type LoginUseCase struct {
	userService  user.Service
	jwtManager   *jwt.Manager
	sessionStore session.Store
	log          *zap.Logger
	now          func() time.Time
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(
	userService user.Service,
	jwtManager *jwt.Manager,
	sessionStore session.Store,
	log *zap.Logger,
) *LoginUseCase {
	return &LoginUseCase{
		userService:  userService,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
		log:          log,
		now:          time.Now,
	}
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	u, err := uc.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		metrics.IncCounterVec(metrics.LoginAttemptsTotal, map[string]string{"result": "failure"})
		return nil, err
	}

	token, err := uc.jwtManager.GenerateToken(u.ID, u.Email)
	if err != nil {
		return nil, err
	}

	sessionData := map[string]interface{}{
		"user_id":  u.ID,
		"email":    u.Email,
		"login_at": uc.now().Unix(),
		"ip":       req.ClientIP,
	}
	// 会话只用于审计，写入失败不影响登录
	if err := uc.sessionStore.SaveSession(ctx, u.ID, sessionData, uc.jwtManager.TTL()); err != nil {
		uc.log.Warn("保存会话失败", zap.String("user_id", u.ID), zap.Error(err))
	}

	metrics.IncCounterVec(metrics.LoginAttemptsTotal, map[string]string{"result": "success"})

	return &LoginResponse{
		Token:     token.Value,
		UserID:    u.ID,
		ExpiresIn: token.ExpiresIn,
	}, nil
}

// LogoutUseCase 用户登出用例
type LogoutUseCase struct {
	sessionStore session.Store
	now          func() time.Time
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(sessionStore session.Store) *LogoutUseCase {
	return &LogoutUseCase{sessionStore: sessionStore, now: time.Now}
}

// Execute 删除会话，并将Token加入黑名单直到其自然过期
func (uc *LogoutUseCase) Execute(ctx context.Context, req LogoutRequest) error {
	if err := uc.sessionStore.DeleteSession(ctx, req.UserID); err != nil {
		return err
	}
	return uc.sessionStore.AddToBlacklist(ctx, req.Token, req.ExpiresAt.Sub(uc.now()))
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string
	Password string
	ClientIP string
}

// LoginResponse 登录响应，Token由handler写入x-api-key头
type LoginResponse struct {
	Token     string `json:"-"`
	UserID    string `json:"userId"`
	ExpiresIn int64  `json:"expiresIn"` // 秒
}

// LogoutRequest 登出请求，字段来自认证中间件
type LogoutRequest struct {
	UserID    string
	Token     string
	ExpiresAt time.Time
}
