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

type TweetHandler struct {
	tweetService *service.TweetService
}

func NewTweetHandler(tweetService *service.TweetService) *TweetHandler {
	return &TweetHandler{tweetService: tweetService}
}

// Create POST /api/v1/tweets
func (h *TweetHandler) Create(c *gin.Context) {
	var req dto.TweetCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.tweetService.Create(currentUserID, &req)
	if err != nil {
		handleTweetError(c, err)
		return
	}

	response.Created(c, "发布动态成功", info)
}

// Update PATCH /api/v1/tweets/:id
func (h *TweetHandler) Update(c *gin.Context) {
	tweetID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的动态ID")
		return
	}

	var req dto.TweetUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.tweetService.Update(tweetID, currentUserID, &req)
	if err != nil {
		handleTweetError(c, err)
		return
	}

	response.OK(c, "更新动态成功", info)
}

// Delete DELETE /api/v1/tweets/:id
func (h *TweetHandler) Delete(c *gin.Context) {
	tweetID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的动态ID")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	if err := h.tweetService.Delete(tweetID, currentUserID); err != nil {
		handleTweetError(c, err)
		return
	}

	response.OK(c, "删除动态成功", nil)
}

// ListByUser GET /api/v1/users/:id/tweets（公开）
func (h *TweetHandler) ListByUser(c *gin.Context) {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	tweets, err := h.tweetService.ListByOwner(userID)
	if err != nil {
		handleTweetError(c, err)
		return
	}

	response.OK(c, "获取动态列表成功", tweets)
}

func handleTweetError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTweetNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrTweetNoPermission):
		response.Forbidden(c, err.Error())
	default:
		logger.Error("Tweet operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
