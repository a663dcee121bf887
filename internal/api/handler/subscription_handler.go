package handler

import (
	"errors"

	"vtube-go/internal/api/middleware"
	"vtube-go/internal/api/response"
	"vtube-go/internal/service"
	"vtube-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SubscriptionHandler struct {
	subService *service.SubscriptionService
}

func NewSubscriptionHandler(subService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subService: subService}
}

// Toggle POST /api/v1/subscriptions/toggle/:channelId
// @Summary 切换订阅状态
// @Description 未订阅则订阅，已订阅则取消，返回最新状态和订阅数
// @Tags 订阅
// @Produce json
// @Security BearerAuth
// @Param channelId path int true "频道（用户）ID"
// @Success 200 {object} response.Response{data=dto.ToggleResult} "切换成功"
// @Failure 400 {object} response.ErrorResponse "不能订阅自己"
// @Failure 404 {object} response.ErrorResponse "频道不存在"
// @Router /subscriptions/toggle/{channelId} [post]
func (h *SubscriptionHandler) Toggle(c *gin.Context) {
	channelID, err := parseIDParam(c, "channelId")
	if err != nil {
		response.BadRequest(c, "无效的频道ID")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	result, err := h.subService.Toggle(channelID, currentUserID)
	if err != nil {
		handleSubscriptionError(c, err)
		return
	}

	response.OK(c, "切换订阅状态成功", result)
}

// GetChannelSubscribers GET /api/v1/channels/:username/subscribers（公开）
// @Summary 获取频道订阅者列表
// @Description 按订阅顺序返回频道的全部订阅者，无订阅者返回空列表
// @Tags 订阅
// @Produce json
// @Param username path string true "频道用户名"
// @Success 200 {object} response.Response{data=dto.SubscriberListData} "获取成功"
// @Failure 404 {object} response.ErrorResponse "频道不存在"
// @Router /channels/{username}/subscribers [get]
func (h *SubscriptionHandler) GetChannelSubscribers(c *gin.Context) {
	username := c.Param("username")

	data, err := h.subService.GetChannelSubscribers(username)
	if err != nil {
		handleSubscriptionError(c, err)
		return
	}

	response.OK(c, "获取订阅者列表成功", data)
}

// GetSubscribedChannels GET /api/v1/users/:id/subscriptions（公开）
func (h *SubscriptionHandler) GetSubscribedChannels(c *gin.Context) {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	data, err := h.subService.GetSubscribedChannels(userID)
	if err != nil {
		handleSubscriptionError(c, err)
		return
	}

	response.OK(c, "获取订阅频道列表成功", data)
}

func handleSubscriptionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrCannotSubscribeSelf):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("Subscription operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
