package handler

import (
	"errors"

	"vtube-go/internal/api/dto"
	"vtube-go/internal/api/middleware"
	"vtube-go/internal/api/response"
	"vtube-go/internal/service"
	"vtube-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LikeHandler struct {
	likeService *service.LikeService
}

func NewLikeHandler(likeService *service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// ToggleVideo POST /api/v1/likes/toggle/video/:id
// @Summary 切换视频点赞
// @Description 未点赞则点赞，已点赞则取消，返回最新状态和总数
// @Tags 点赞
// @Produce json
// @Security BearerAuth
// @Param id path int true "视频ID"
// @Success 200 {object} response.Response{data=dto.ToggleResult} "切换成功"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /likes/toggle/video/{id} [post]
func (h *LikeHandler) ToggleVideo(c *gin.Context) {
	h.toggle(c, "视频", h.likeService.ToggleVideoLike)
}

// ToggleComment POST /api/v1/likes/toggle/comment/:id
func (h *LikeHandler) ToggleComment(c *gin.Context) {
	h.toggle(c, "评论", h.likeService.ToggleCommentLike)
}

// ToggleTweet POST /api/v1/likes/toggle/tweet/:id
func (h *LikeHandler) ToggleTweet(c *gin.Context) {
	h.toggle(c, "动态", h.likeService.ToggleTweetLike)
}

func (h *LikeHandler) toggle(c *gin.Context, label string, fn func(int64, int64) (*dto.ToggleResult, error)) {
	targetID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的"+label+"ID")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	result, err := fn(targetID, currentUserID)
	if err != nil {
		handleLikeError(c, err)
		return
	}

	response.OK(c, "切换点赞状态成功", result)
}

// GetLikedVideos GET /api/v1/likes/videos
func (h *LikeHandler) GetLikedVideos(c *gin.Context) {
	currentUserID, _ := middleware.GetCurrentUserID(c)

	data, err := h.likeService.GetLikedVideos(currentUserID)
	if err != nil {
		logger.Error("Get liked videos failed", zap.Int64("user_id", currentUserID), zap.Error(err))
		response.InternalError(c, "获取点赞视频列表失败")
		return
	}

	response.OK(c, "获取点赞视频列表成功", data)
}

func handleLikeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVideoNotFound),
		errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrTweetNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("Like operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
