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

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Create POST /api/v1/videos/:id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	videoID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	var req dto.CommentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.commentService.Create(videoID, currentUserID, &req)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	response.Created(c, "发表评论成功", info)
}

// Update PATCH /api/v1/comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	commentID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的评论ID")
		return
	}

	var req dto.CommentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.commentService.Update(commentID, currentUserID, &req)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	response.OK(c, "更新评论成功", info)
}

// Delete DELETE /api/v1/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的评论ID")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	if err := h.commentService.Delete(commentID, currentUserID); err != nil {
		handleCommentError(c, err)
		return
	}

	response.OK(c, "删除评论成功", nil)
}

// ListByVideo GET /api/v1/videos/:id/comments（公开）
// @Summary 视频评论列表
// @Description 按发表顺序分页获取视频评论
// @Tags 评论
// @Produce json
// @Param id path int true "视频ID"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} response.Response{data=dto.CommentListData} "获取成功"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /videos/{id}/comments [get]
func (h *CommentHandler) ListByVideo(c *gin.Context) {
	videoID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	page, limit := parsePagination(c)

	data, err := h.commentService.ListByVideo(videoID, page, limit)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	response.OK(c, "获取评论列表成功", data)
}

func handleCommentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCommentNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrVideoNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrCommentNoPermission):
		response.Forbidden(c, err.Error())
	default:
		logger.Error("Comment operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
