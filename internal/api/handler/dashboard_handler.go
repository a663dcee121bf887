package handler

import (
	"vtube-go/internal/api/middleware"
	"vtube-go/internal/api/response"
	"vtube-go/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats GET /api/v1/dashboard/stats
// @Summary 频道统计
// @Description 当前用户频道的播放量、视频数、订阅数和获赞总数，新频道全为 0
// @Tags 频道后台
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=dto.ChannelStats} "获取成功"
// @Router /dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *gin.Context) {
	currentUserID, _ := middleware.GetCurrentUserID(c)

	stats, err := h.dashboardService.GetChannelStats(currentUserID)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "获取频道统计成功", stats)
}

// GetVideos GET /api/v1/dashboard/videos
func (h *DashboardHandler) GetVideos(c *gin.Context) {
	currentUserID, _ := middleware.GetCurrentUserID(c)

	videos, err := h.dashboardService.GetChannelVideos(currentUserID)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "获取频道视频成功", videos)
}
