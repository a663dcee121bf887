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

type PlaylistHandler struct {
	playlistService *service.PlaylistService
}

func NewPlaylistHandler(playlistService *service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlistService: playlistService}
}

// Create POST /api/v1/playlists
func (h *PlaylistHandler) Create(c *gin.Context) {
	var req dto.PlaylistCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.playlistService.Create(currentUserID, &req)
	if err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.Created(c, "创建播放列表成功", info)
}

// Get GET /api/v1/playlists/:id（公开）
func (h *PlaylistHandler) Get(c *gin.Context) {
	playlistID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的播放列表ID")
		return
	}

	detail, err := h.playlistService.GetByID(playlistID)
	if err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.OK(c, "获取播放列表成功", detail)
}

// ListByUser GET /api/v1/users/:id/playlists（公开）
func (h *PlaylistHandler) ListByUser(c *gin.Context) {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	playlists, err := h.playlistService.ListByOwner(userID)
	if err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.OK(c, "获取播放列表成功", playlists)
}

// Update PATCH /api/v1/playlists/:id
func (h *PlaylistHandler) Update(c *gin.Context) {
	playlistID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的播放列表ID")
		return
	}

	var req dto.PlaylistUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.playlistService.Update(playlistID, currentUserID, &req)
	if err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.OK(c, "更新播放列表成功", info)
}

// Delete DELETE /api/v1/playlists/:id
func (h *PlaylistHandler) Delete(c *gin.Context) {
	playlistID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的播放列表ID")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	if err := h.playlistService.Delete(playlistID, currentUserID); err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.OK(c, "删除播放列表成功", nil)
}

// AddVideo POST /api/v1/playlists/:id/videos/:videoId
// @Summary 向播放列表添加视频
// @Tags 播放列表
// @Produce json
// @Security BearerAuth
// @Param id path int true "播放列表ID"
// @Param videoId path int true "视频ID"
// @Success 200 {object} response.Response "添加成功"
// @Failure 409 {object} response.ErrorResponse "视频已在播放列表中"
// @Router /playlists/{id}/videos/{videoId} [post]
func (h *PlaylistHandler) AddVideo(c *gin.Context) {
	playlistID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的播放列表ID")
		return
	}
	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	if err := h.playlistService.AddVideo(playlistID, videoID, currentUserID); err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.OK(c, "添加视频成功", nil)
}

// RemoveVideo DELETE /api/v1/playlists/:id/videos/:videoId
func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	playlistID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的播放列表ID")
		return
	}
	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	if err := h.playlistService.RemoveVideo(playlistID, videoID, currentUserID); err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.OK(c, "移除视频成功", nil)
}

func handlePlaylistError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlaylistNotFound),
		errors.Is(err, service.ErrVideoNotFound),
		errors.Is(err, service.ErrVideoNotInPlaylist),
		errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrPlaylistNoPermission):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrVideoAlreadyInPlaylist):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrNoFieldsToUpdate):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("Playlist operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
