package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"vtube-go/internal/api/dto"
	infraES "vtube-go/internal/infra/elasticsearch"
	infraKafka "vtube-go/internal/infra/kafka"
	"vtube-go/internal/model"
	"vtube-go/internal/repository"
	"vtube-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SearchService struct {
	videoRepo *repository.VideoRepository
}

func NewSearchService(videoRepo *repository.VideoRepository) *SearchService {
	return &SearchService{videoRepo: videoRepo}
}

// SearchVideos 关键字搜索视频（ES 优先，不可用或失败时降级到 DB）
func (s *SearchService) SearchVideos(req *dto.SearchVideoRequest) (*dto.SearchVideoData, error) {
	page, limit := normalizePage(req.Page, req.Limit)
	keyword := strings.TrimSpace(req.Keyword)

	if infraES.Available() {
		data, err := s.searchFromES(keyword, page, limit)
		if err == nil {
			return data, nil
		}
		logger.Warn("ES search failed, fallback to DB",
			zap.String("keyword", keyword), zap.Error(err))
	}

	return s.searchFromDB(keyword, page, limit)
}

func (s *SearchService) searchFromES(keyword string, page, limit int) (*dto.SearchVideoData, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []interface{}{
					map[string]interface{}{
						"multi_match": map[string]interface{}{
							"query":  keyword,
							"fields": []string{"title^3", "description"},
						},
					},
				},
				"filter": []interface{}{
					map[string]interface{}{"term": map[string]interface{}{"is_published": true}},
				},
			},
		},
		"_source": []string{"id"},
		"from":    (page - 1) * limit,
		"size":    limit,
	}

	queryJSON, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, err := infraES.Search(ctx, infraES.VideosIndex(), bytes.NewReader(queryJSON))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, fmt.Errorf("ES search error: %s", resp.String())
	}

	var esResp struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source struct {
					ID int64 `json:"id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&esResp); err != nil {
		return nil, err
	}

	videoIDs := make([]int64, 0, len(esResp.Hits.Hits))
	for _, h := range esResp.Hits.Hits {
		videoIDs = append(videoIDs, h.Source.ID)
	}

	videos, err := buildVideosInOrder(s.videoRepo, videoIDs)
	if err != nil {
		return nil, err
	}

	return &dto.SearchVideoData{
		Videos:  videos,
		Total:   esResp.Hits.Total.Value,
		Keyword: keyword,
		Source:  "elasticsearch",
	}, nil
}

func (s *SearchService) searchFromDB(keyword string, page, limit int) (*dto.SearchVideoData, error) {
	skip := (page - 1) * limit

	videos, total, err := s.videoRepo.List(skip, limit, nil, keyword, "", "", true)
	if err != nil {
		return nil, err
	}

	items := make([]dto.VideoInfo, 0, len(videos))
	for i := range videos {
		items = append(items, *toVideoInfo(&videos[i]))
	}

	return &dto.SearchVideoData{
		Videos:  items,
		Total:   total,
		Keyword: keyword,
		Source:  "database",
	}, nil
}

// videoDocument ES 中的视频文档结构，与索引 mapping 对应
type videoDocument struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsPublished bool      `json:"is_published"`
	Views       int64     `json:"views"`
	CreatedAt   time.Time `json:"created_at"`
}

// SyncVideoToES 将视频写入搜索索引
func (s *SearchService) SyncVideoToES(video *model.Video) error {
	doc := videoDocument{
		ID:          video.ID,
		OwnerID:     video.OwnerID,
		Title:       video.Title,
		Description: video.Description,
		IsPublished: video.IsPublished,
		Views:       video.Views,
		CreatedAt:   video.CreatedAt,
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := infraES.Index(ctx, infraES.VideosIndex(), strconv.FormatInt(video.ID, 10), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("ES index error: %s", resp.String())
	}
	return nil
}

// RemoveVideoFromES 从搜索索引中移除视频（文档不存在不算错误）
func (s *SearchService) RemoveVideoFromES(videoID int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := infraES.Delete(ctx, infraES.VideosIndex(), strconv.FormatInt(videoID, 10))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() && resp.StatusCode != 404 {
		return fmt.Errorf("ES delete error: %s", resp.String())
	}
	return nil
}

// HandleVideoEvent 处理 Kafka 视频事件，保持搜索索引与数据库一致
func (s *SearchService) HandleVideoEvent(event *infraKafka.VideoEvent) error {
	if !infraES.Available() {
		return nil
	}

	switch event.Action {
	case "removed":
		return s.RemoveVideoFromES(event.VideoID)
	case "indexed":
		video, err := s.videoRepo.GetByID(event.VideoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// 事件到达前视频已删除，按移除处理
				return s.RemoveVideoFromES(event.VideoID)
			}
			return err
		}
		return s.SyncVideoToES(video)
	default:
		logger.Warn("Unknown video event action", zap.String("action", event.Action))
		return nil
	}
}
