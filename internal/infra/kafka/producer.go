package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vtube-go/internal/config"
	"vtube-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var producer *kafka.Writer

// CleanupTask 媒体清理任务。视频删除先打墓碑，
// worker 消费该任务后删除媒体文件并移除记录。
type CleanupTask struct {
	VideoID      int64  `json:"video_id"`
	VideoURL     string `json:"video_url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// VideoEvent 视频状态变更事件（用于搜索索引同步）
type VideoEvent struct {
	VideoID int64  `json:"video_id"`
	Action  string `json:"action"` // indexed / removed
}

// InitProducer 初始化 Kafka 生产者
func InitProducer(cfg *config.KafkaConfig) error {
	producer = &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	logger.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
	)

	return nil
}

// SendCleanupTask 发送媒体清理任务
func SendCleanupTask(ctx context.Context, topic string, task *CleanupTask) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal cleanup task: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(fmt.Sprintf("video-%d", task.VideoID)),
		Value: payload,
	}

	if err := producer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send cleanup task: %w", err)
	}

	logger.Info("Cleanup task sent",
		zap.Int64("video_id", task.VideoID),
		zap.String("topic", topic),
	)

	return nil
}

// SendVideoEvent 发送视频状态变更事件
func SendVideoEvent(ctx context.Context, topic string, event *VideoEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal video event: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(fmt.Sprintf("video-%d", event.VideoID)),
		Value: payload,
	}

	if err := producer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send video event: %w", err)
	}
	return nil
}

// CloseProducer 关闭生产者
func CloseProducer() error {
	if producer == nil {
		return nil
	}
	logger.Info("Kafka producer closed")
	return producer.Close()
}
