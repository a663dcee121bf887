package handler

import (
	"errors"
	"path"
	"strconv"
	"strings"

	"vtube-go/internal/api/dto"
	"vtube-go/internal/api/middleware"
	"vtube-go/internal/api/response"
	"vtube-go/internal/service"
	"vtube-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 上传限制
const (
	maxVideoSize     = int64(500 * 1024 * 1024) // 500MB
	maxThumbnailSize = int64(10 * 1024 * 1024)  // 10MB
)

var allowedVideoExts = map[string]bool{
	".mp4": true, ".mov": true, ".mkv": true, ".webm": true,
}

type VideoHandler struct {
	videoService *service.VideoService
}

func NewVideoHandler(videoService *service.VideoService) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

// Publish POST /api/v1/videos
// @Summary 发布视频
// @Description 上传视频文件和缩略图并发布（multipart/form-data）
// @Tags 视频
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "标题"
// @Param description formData string false "描述"
// @Param video_file formData file true "视频文件"
// @Param thumbnail formData file true "缩略图"
// @Success 201 {object} response.Response{data=dto.VideoInfo} "发布成功"
// @Failure 400 {object} response.ErrorResponse "请求参数无效"
// @Router /videos [post]
func (h *VideoHandler) Publish(c *gin.Context) {
	var req dto.VideoPublishRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	videoFH, err := c.FormFile("video_file")
	if err != nil {
		response.BadRequest(c, "请上传视频文件")
		return
	}
	if !allowedVideoExts[strings.ToLower(path.Ext(videoFH.Filename))] {
		response.BadRequest(c, "不支持的视频格式，支持: mp4, mov, mkv, webm")
		return
	}
	if videoFH.Size == 0 || videoFH.Size > maxVideoSize {
		response.BadRequest(c, "视频文件大小无效（不能为空，最大 500MB）")
		return
	}

	thumbFH, err := c.FormFile("thumbnail")
	if err != nil {
		response.BadRequest(c, "请上传缩略图")
		return
	}
	if thumbFH.Size == 0 || thumbFH.Size > maxThumbnailSize {
		response.BadRequest(c, "缩略图大小无效（不能为空，最大 10MB）")
		return
	}

	videoFile, closeVideo, err := openUpload(videoFH)
	if err != nil {
		response.InternalError(c, "打开上传文件失败")
		return
	}
	defer closeVideo()

	thumbnail, closeThumb, err := openUpload(thumbFH)
	if err != nil {
		response.InternalError(c, "打开上传文件失败")
		return
	}
	defer closeThumb()

	duration, _ := strconv.ParseFloat(c.PostForm("duration"), 64)

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.videoService.Publish(currentUserID, &req, videoFile, thumbnail, duration)
	if err != nil {
		logger.Error("Publish video failed", zap.Error(err))
		response.InternalError(c, "发布视频失败: "+err.Error())
		return
	}

	response.Created(c, "发布视频成功", info)
}

// Get GET /api/v1/videos/:id（公开，登录时记观看历史）
func (h *VideoHandler) Get(c *gin.Context) {
	videoID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	viewerID, _ := middleware.GetCurrentUserID(c)

	info, err := h.videoService.GetByID(videoID, viewerID)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "获取视频详情成功", info)
}

// List GET /api/v1/videos（公开）
// @Summary 视频列表
// @Description 分页查询视频，支持关键字、排序、作者筛选
// @Tags 视频
// @Produce json
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Param query query string false "标题/描述关键字"
// @Param sort_by query string false "排序字段 created_at/views/duration/title"
// @Param sort_order query string false "排序方向 asc/desc"
// @Param owner_id query int false "作者ID"
// @Success 200 {object} response.Response{data=dto.VideoListData} "获取成功"
// @Router /videos [get]
func (h *VideoHandler) List(c *gin.Context) {
	var req dto.VideoListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	data, err := h.videoService.List(&req, currentUserID)
	if err != nil {
		logger.Error("List videos failed", zap.Error(err))
		response.InternalError(c, "获取视频列表失败")
		return
	}

	response.OK(c, "获取视频列表成功", data)
}

// Update PATCH /api/v1/videos/:id
func (h *VideoHandler) Update(c *gin.Context) {
	videoID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	var req dto.VideoUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	var thumbnail *service.FileUpload
	if thumbFH, err := c.FormFile("thumbnail"); err == nil {
		if thumbFH.Size == 0 || thumbFH.Size > maxThumbnailSize {
			response.BadRequest(c, "缩略图大小无效（不能为空，最大 10MB）")
			return
		}
		var closeThumb func()
		thumbnail, closeThumb, err = openUpload(thumbFH)
		if err != nil {
			response.InternalError(c, "打开上传文件失败")
			return
		}
		defer closeThumb()
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.videoService.Update(videoID, currentUserID, &req, thumbnail)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "更新视频成功", info)
}

// Delete DELETE /api/v1/videos/:id
func (h *VideoHandler) Delete(c *gin.Context) {
	videoID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	if err := h.videoService.Delete(videoID, currentUserID); err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "删除视频成功", nil)
}

// TogglePublish PATCH /api/v1/videos/:id/toggle-publish
func (h *VideoHandler) TogglePublish(c *gin.Context) {
	videoID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.videoService.TogglePublish(videoID, currentUserID)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "切换发布状态成功", info)
}

func handleVideoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVideoNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrVideoNoPermission):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrNoFieldsToUpdate):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("Video operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
