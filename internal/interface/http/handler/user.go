package handler

import (
	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/bookcatalog/internal/application/user"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// UserHandler 用户HTTP处理器
// Handler只负责解析请求、调用应用层、返回响应
type UserHandler struct {
	registerUseCase *appuser.RegisterUseCase
	loginUseCase    *appuser.LoginUseCase
	logoutUseCase   *appuser.LogoutUseCase
}

// NewUserHandler 创建用户处理器
func NewUserHandler(
	registerUseCase *appuser.RegisterUseCase,
	loginUseCase *appuser.LoginUseCase,
	logoutUseCase *appuser.LogoutUseCase,
) *UserHandler {
	return &UserHandler{
		registerUseCase: registerUseCase,
		loginUseCase:    loginUseCase,
		logoutUseCase:   logoutUseCase,
	}
}

// Register 用户注册
// @Summary      用户注册
// @Description  按title、name、phone、email、password、address的顺序校验，返回第一个错误
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "注册信息"
// @Success      201 {object} response.Response{data=appuser.UserResponse} "注册成功"
// @Failure      400 {object} response.Response "参数错误或邮箱、手机号已存在"
// @Router       /register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.registerUseCase.Execute(c.Request.Context(), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "User created successfully", result)
}

// Login 用户登录
// @Summary      用户登录
// @Description  验证邮箱密码，Token通过x-api-key响应头返回
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "登录信息"
// @Success      200 {object} response.Response{data=appuser.LoginResponse} "登录成功"
// @Header       200 {string} x-api-key "JWT Token"
// @Failure      400 {object} response.Response "邮箱或密码错误"
// @Router       /login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), appuser.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
		ClientIP: c.ClientIP(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header(middleware.TokenHeader, result.Token)
	response.Success(c, "Login Successful! Token sent in header 'x-api-key'", result)
}

// Logout 用户登出
// @Summary      用户登出
// @Description  删除会话，当前Token在过期前不可再用
// @Tags         用户
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200 {object} response.Response
// @Failure      401 {object} response.Response "Token无效"
// @Router       /logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	err := h.logoutUseCase.Execute(c.Request.Context(), appuser.LogoutRequest{
		UserID:    middleware.MustGetUserID(c),
		Token:     middleware.GetToken(c),
		ExpiresAt: middleware.GetTokenExpiry(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "Logout Successful", nil)
}
