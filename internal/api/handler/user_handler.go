package handler

import (
	"errors"
	"strconv"

	"vtube-go/internal/api/dto"
	"vtube-go/internal/api/middleware"
	"vtube-go/internal/api/response"
	"vtube-go/internal/service"
	"vtube-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateAccount PATCH /api/v1/users/me
func (h *UserHandler) UpdateAccount(c *gin.Context) {
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	userInfo, err := h.userService.UpdateAccount(currentUserID, &req)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			response.Conflict(c, err.Error())
			return
		}
		handleUserError(c, err)
		return
	}

	response.OK(c, "更新资料成功", userInfo)
}

// UpdateAvatar PATCH /api/v1/users/me/avatar
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	h.updateImage(c, "avatar", h.userService.UpdateAvatar)
}

// UpdateCoverImage PATCH /api/v1/users/me/cover-image
func (h *UserHandler) UpdateCoverImage(c *gin.Context) {
	h.updateImage(c, "cover_image", h.userService.UpdateCoverImage)
}

func (h *UserHandler) updateImage(c *gin.Context, field string, update func(int64, *service.FileUpload) (*dto.UserInfo, error)) {
	fh, err := c.FormFile(field)
	if err != nil {
		response.BadRequest(c, "请上传图片文件")
		return
	}

	file, closeFile, err := openUpload(fh)
	if err != nil {
		response.InternalError(c, "打开上传文件失败")
		return
	}
	defer closeFile()

	currentUserID, _ := middleware.GetCurrentUserID(c)

	userInfo, err := update(currentUserID, file)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "更新成功", userInfo)
}

// GetChannelProfile GET /api/v1/channels/:username（公开，登录时附带订阅状态）
// @Summary 频道主页
// @Description 按用户名获取频道信息，含订阅数和当前用户的订阅状态
// @Tags 用户
// @Produce json
// @Param username path string true "频道用户名"
// @Success 200 {object} response.Response{data=dto.ChannelProfile} "获取成功"
// @Failure 404 {object} response.ErrorResponse "用户不存在"
// @Router /channels/{username} [get]
func (h *UserHandler) GetChannelProfile(c *gin.Context) {
	username := c.Param("username")
	if username == "" {
		response.BadRequest(c, "无效的用户名")
		return
	}

	viewerID, _ := middleware.GetCurrentUserID(c)

	profile, err := h.userService.GetChannelProfile(username, viewerID)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "获取频道信息成功", profile)
}

// GetWatchHistory GET /api/v1/users/me/watch-history
func (h *UserHandler) GetWatchHistory(c *gin.Context) {
	currentUserID, _ := middleware.GetCurrentUserID(c)

	data, err := h.userService.GetWatchHistory(currentUserID)
	if err != nil {
		logger.Error("Get watch history failed", zap.Int64("user_id", currentUserID), zap.Error(err))
		response.InternalError(c, "获取观看历史失败")
		return
	}

	response.OK(c, "获取观看历史成功", data)
}

// parseIDParam 从 URL 路径参数中解析 int64 ID
func parseIDParam(c *gin.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

// parsePagination 解析分页参数，page 默认 1，limit 默认 10、上限 50
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	return page, limit
}

func handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrNoFieldsToUpdate):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("User operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
