package elasticsearch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vtube-go/internal/config"
	"vtube-go/pkg/logger"

	"go.uber.org/zap"
)

// videosMapping 视频索引结构
const videosMapping = `{
  "settings": {
    "number_of_shards": 1,
    "number_of_replicas": 0
  },
  "mappings": {
    "properties": {
      "id":           {"type": "long"},
      "owner_id":     {"type": "long"},
      "title":        {"type": "text"},
      "description":  {"type": "text"},
      "is_published": {"type": "boolean"},
      "views":        {"type": "long"},
      "created_at":   {"type": "date"}
    }
  }
}`

// VideosIndex 返回配置的视频索引名
func VideosIndex() string {
	name := config.GetElasticsearch().Index["videos"]
	if name == "" {
		name = "videos"
	}
	return name
}

// InitIndexes 确保所需索引存在
func InitIndexes() error {
	if client == nil {
		return fmt.Errorf("elasticsearch client not initialized")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	index := VideosIndex()

	resp, err := client.Indices.Exists([]string{index}, client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index %s: %w", index, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == 200 {
		return nil
	}

	createResp, err := client.Indices.Create(
		index,
		client.Indices.Create.WithContext(ctx),
		client.Indices.Create.WithBody(strings.NewReader(videosMapping)),
	)
	if err != nil {
		return fmt.Errorf("create index %s: %w", index, err)
	}
	defer createResp.Body.Close()

	if createResp.IsError() {
		return fmt.Errorf("create index %s failed: %s", index, createResp.String())
	}

	logger.Info("Elasticsearch index created", zap.String("index", index))
	return nil
}
