package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vtube-go/internal/config"
	"vtube-go/internal/infra/database"
	infraKafka "vtube-go/internal/infra/kafka"
	infraMinio "vtube-go/internal/infra/minio"
	"vtube-go/internal/repository"
	"vtube-go/pkg/logger"

	"go.uber.org/zap"
)

// 媒体清理 worker：消费视频删除任务，删除 MinIO 中的媒体文件后
// 物理删除数据库记录。媒体删除先于记录删除，保证失败可重放。
func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.FilePath); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	if err := infraMinio.Init(&cfg.MinIO); err != nil {
		logger.Fatal("Failed to init minio", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 监听系统信号，优雅退出
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	videoRepo := repository.NewVideoRepository(database.Get())

	cleanupTopic := cfg.Kafka.Topics["video_cleanup"]
	groupID := "vtube-go-cleanup-worker"

	logger.Info("Cleanup worker started",
		zap.String("topic", cleanupTopic),
		zap.String("group", groupID),
		zap.Strings("brokers", cfg.Kafka.Brokers),
	)

	infraKafka.StartCleanupConsumer(ctx, cfg.Kafka.Brokers, cleanupTopic, groupID, func(task *infraKafka.CleanupTask) error {
		return handleCleanup(videoRepo, task)
	})
}

func handleCleanup(videoRepo *repository.VideoRepository, task *infraKafka.CleanupTask) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	logger.Info("Processing cleanup task", zap.Int64("video_id", task.VideoID))

	for _, url := range []string{task.VideoURL, task.ThumbnailURL} {
		if url == "" {
			continue
		}
		if err := infraMinio.DeleteByURL(ctx, url); err != nil {
			return fmt.Errorf("delete media %s: %w", url, err)
		}
	}

	if err := videoRepo.HardDelete(task.VideoID); err != nil {
		return fmt.Errorf("hard delete video %d: %w", task.VideoID, err)
	}

	logger.Info("Cleanup task completed", zap.Int64("video_id", task.VideoID))
	return nil
}
