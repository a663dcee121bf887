package redis

import (
	"context"
	"fmt"
	"time"

	"vtube-go/internal/config"
	"vtube-go/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var Client *redis.Client

// Init 初始化Redis客户端
func Init(cfg *config.RedisConfig) error {
	Client = redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Info("Redis connected",
		zap.String("addr", cfg.Addr()),
		zap.Int("db", cfg.DB),
		zap.Int("pool_size", cfg.PoolSize),
	)

	return nil
}

// MarkViewed 观看去重：窗口期内同一用户对同一视频只记一次播放。
// 返回 true 表示本次应计入播放量。
func MarkViewed(ctx context.Context, userID, videoID int64, ttl time.Duration) (bool, error) {
	if Client == nil {
		// Redis 不可用时不做去重，直接计数
		return true, nil
	}
	key := fmt.Sprintf("view:%d:%d", videoID, userID)
	return Client.SetNX(ctx, key, 1, ttl).Result()
}

// Close 关闭Redis连接
func Close() error {
	if Client == nil {
		return nil
	}
	logger.Info("Redis connection closed")
	return Client.Close()
}

// Get 获取Redis客户端实例
func Get() *redis.Client {
	return Client
}
