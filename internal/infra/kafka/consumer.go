package kafka

import (
	"context"
	"encoding/json"
	"time"

	"vtube-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// CleanupHandler 处理媒体清理任务的回调函数
type CleanupHandler func(task *CleanupTask) error

// VideoEventHandler 处理视频状态变更事件的回调函数
type VideoEventHandler func(event *VideoEvent) error

// StartCleanupConsumer 启动媒体清理消费者（阻塞，需在 goroutine 中运行）。
// ctx 取消后自动停止。
func StartCleanupConsumer(ctx context.Context, brokers []string, topic, groupID string, handler CleanupHandler) {
	reader := newReader(brokers, topic, groupID)

	defer func() {
		if err := reader.Close(); err != nil {
			logger.Error("Failed to close kafka consumer", zap.Error(err))
		}
		logger.Info("Kafka cleanup consumer stopped")
	}()

	logger.Info("Kafka cleanup consumer started",
		zap.String("topic", topic),
		zap.String("group", groupID),
	)

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("Failed to read kafka message", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		var task CleanupTask
		if err := json.Unmarshal(msg.Value, &task); err != nil {
			logger.Error("Failed to unmarshal cleanup task",
				zap.Error(err),
				zap.ByteString("value", msg.Value),
			)
			continue
		}

		if err := handler(&task); err != nil {
			logger.Error("Failed to handle cleanup task",
				zap.Int64("video_id", task.VideoID),
				zap.Error(err),
			)
		}
	}
}

// StartVideoEventConsumer 启动视频事件消费者（阻塞，需在 goroutine 中运行）
func StartVideoEventConsumer(ctx context.Context, brokers []string, topic, groupID string, handler VideoEventHandler) {
	reader := newReader(brokers, topic, groupID)

	defer func() {
		if err := reader.Close(); err != nil {
			logger.Error("Failed to close kafka consumer", zap.Error(err))
		}
		logger.Info("Kafka video event consumer stopped")
	}()

	logger.Info("Kafka video event consumer started",
		zap.String("topic", topic),
		zap.String("group", groupID),
	)

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("Failed to read kafka message", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		var event VideoEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logger.Error("Failed to unmarshal video event",
				zap.Error(err),
				zap.ByteString("value", msg.Value),
			)
			continue
		}

		if err := handler(&event); err != nil {
			logger.Error("Failed to handle video event",
				zap.Int64("video_id", event.VideoID),
				zap.Error(err),
			)
		}
	}
}

func newReader(brokers []string, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		StartOffset:    kafka.LastOffset,
	})
}
