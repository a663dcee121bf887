package handler

import (
	"errors"
	"mime/multipart"

	"vtube-go/internal/api/dto"
	"vtube-go/internal/api/middleware"
	"vtube-go/internal/api/response"
	"vtube-go/internal/service"
	"vtube-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register 用户注册
// @Summary 用户注册
// @Description 注册新用户账号，头像必传，封面可选（multipart/form-data）
// @Tags 认证
// @Accept multipart/form-data
// @Produce json
// @Param username formData string true "用户名"
// @Param email formData string true "邮箱"
// @Param full_name formData string true "昵称"
// @Param password formData string true "密码"
// @Param avatar formData file true "头像"
// @Param cover_image formData file false "频道封面"
// @Success 201 {object} response.Response{data=dto.UserInfo} "注册成功"
// @Failure 400 {object} response.ErrorResponse "请求参数无效"
// @Failure 409 {object} response.ErrorResponse "用户名或邮箱已存在"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	avatarFile, err := c.FormFile("avatar")
	if err != nil {
		response.BadRequest(c, "请上传头像")
		return
	}

	avatar, closeAvatar, err := openUpload(avatarFile)
	if err != nil {
		response.InternalError(c, "打开上传文件失败")
		return
	}
	defer closeAvatar()

	var cover *service.FileUpload
	if coverFile, err := c.FormFile("cover_image"); err == nil {
		var closeCover func()
		cover, closeCover, err = openUpload(coverFile)
		if err != nil {
			response.InternalError(c, "打开上传文件失败")
			return
		}
		defer closeCover()
	}

	userInfo, err := h.authService.Register(&req, avatar, cover)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			response.Conflict(c, err.Error())
			return
		}
		logger.Error("Register failed", zap.Error(err))
		response.InternalError(c, "注册失败，请稍后重试")
		return
	}

	response.Created(c, "注册成功", userInfo)
}

// Login 用户登录
// @Summary 用户登录
// @Description 用户名或邮箱登录，返回用户信息和令牌对
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录信息"
// @Success 200 {object} response.Response{data=dto.LoginData} "登录成功"
// @Failure 401 {object} response.ErrorResponse "用户名或密码错误"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	data, err := h.authService.Login(&req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredential) {
			response.Unauthorized(c, err.Error())
			return
		}
		logger.Error("Login failed", zap.Error(err))
		response.InternalError(c, "登录失败，请稍后重试")
		return
	}

	response.OK(c, "登录成功", data)
}

// Logout 用户登出，清除刷新令牌
// @Summary 用户登出
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response "登出成功"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	currentUserID, _ := middleware.GetCurrentUserID(c)

	if err := h.authService.Logout(currentUserID); err != nil {
		logger.Error("Logout failed", zap.Int64("user_id", currentUserID), zap.Error(err))
		response.InternalError(c, "登出失败，请稍后重试")
		return
	}

	response.OK(c, "登出成功", nil)
}

// Refresh 刷新令牌轮换
// @Summary 刷新令牌
// @Description 用刷新令牌换取新令牌对，旧刷新令牌立即失效
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body dto.RefreshRequest true "刷新令牌"
// @Success 200 {object} response.Response{data=dto.TokenPair} "刷新成功"
// @Failure 401 {object} response.ErrorResponse "刷新令牌无效"
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	tokens, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			response.Unauthorized(c, err.Error())
			return
		}
		logger.Error("Refresh token failed", zap.Error(err))
		response.InternalError(c, "刷新令牌失败，请稍后重试")
		return
	}

	response.OK(c, "刷新成功", tokens)
}

// ChangePassword 修改密码
// @Summary 修改密码
// @Tags 认证
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "新旧密码"
// @Success 200 {object} response.Response "修改成功"
// @Failure 400 {object} response.ErrorResponse "原密码不正确"
// @Router /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	if err := h.authService.ChangePassword(currentUserID, &req); err != nil {
		if errors.Is(err, service.ErrWrongOldPassword) {
			response.BadRequest(c, err.Error())
			return
		}
		handleUserError(c, err)
		return
	}

	response.OK(c, "修改密码成功", nil)
}

// GetMe 获取当前登录用户信息
// @Summary 当前用户
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=dto.UserInfo} "获取成功"
// @Router /auth/me [get]
func (h *AuthHandler) GetMe(c *gin.Context) {
	currentUserID, _ := middleware.GetCurrentUserID(c)

	userInfo, err := h.authService.GetCurrentUser(currentUserID)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "获取成功", userInfo)
}

// openUpload 打开 multipart 文件并包装成 service.FileUpload
func openUpload(fh *multipart.FileHeader) (*service.FileUpload, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	upload := &service.FileUpload{
		Reader:      f,
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
		Filename:    fh.Filename,
	}
	return upload, func() { f.Close() }, nil
}
