package controller

import (
	"errors"

	"odigyan_backend/internal/service"
	"odigyan_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// GoogleSignInRequest Google 登录请求
type GoogleSignInRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

// GoogleSignIn godoc
// @Summary Google 账号登录
// @Description 校验 Google ID Token，首次登录自动建档
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body GoogleSignInRequest true "Google ID Token"
// @Success 200 {object} util.Response{data=object} "登录成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "令牌无效"
// @Failure 403 {object} util.Response "账号被禁用或域名不允许"
// @Router /api/auth/google [post]
func (c *AuthController) GoogleSignIn(ctx *gin.Context) {
	var req GoogleSignInRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, user, err := c.AuthService.SignInWithGoogle(ctx.Request.Context(), req.IDToken)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidIDToken):
			util.Unauthorized(ctx)
		case errors.Is(err, util.ErrDomainNotAllowed), errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"token": token,
		"user": gin.H{
			"id":        user.ID,
			"name":      user.Name,
			"email":     user.Email,
			"photo_url": user.PhotoURL,
			"role":      user.Role,
		},
	})
}

// LoginRequest 管理员账号密码登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary 管理员登录
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "登录信息"
// @Success 200 {object} util.Response{data=object}
// @Failure 401 {object} util.Response "账号或密码错误"
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, err := c.AuthService.Login(req.Email, req.Password)
	if err != nil {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, gin.H{"token": token})
}

// Me godoc
// @Summary 当前登录用户
// @Tags 认证
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.User}
// @Failure 401 {object} util.Response
// @Router /api/auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, user)
}
