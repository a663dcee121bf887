package handler

import (
	"vtube-go/internal/api/dto"
	"vtube-go/internal/api/response"
	"vtube-go/internal/service"
	"vtube-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SearchHandler struct {
	searchService *service.SearchService
}

func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search GET /api/v1/search/videos（公开）
// @Summary 搜索视频
// @Description 关键字搜索已发布视频，ES 优先，降级到数据库
// @Tags 搜索
// @Produce json
// @Param keyword query string true "关键字"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} response.Response{data=dto.SearchVideoData} "搜索成功"
// @Router /search/videos [get]
func (h *SearchHandler) Search(c *gin.Context) {
	var req dto.SearchVideoRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	data, err := h.searchService.SearchVideos(&req)
	if err != nil {
		logger.Error("Search videos failed", zap.String("keyword", req.Keyword), zap.Error(err))
		response.InternalError(c, "搜索失败，请稍后重试")
		return
	}

	response.OK(c, "搜索成功", data)
}
