package minio

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"vtube-go/internal/config"
	"vtube-go/pkg/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// 媒体存储使用的 Bucket
const (
	BucketAvatars    = "avatars"
	BucketCovers     = "covers"
	BucketVideos     = "videos"
	BucketThumbnails = "thumbnails"
)

var client *minio.Client

// Init 初始化 MinIO 客户端并确保所有 Bucket 存在
func Init(cfg *config.MinIOConfig) error {
	var err error
	client, err = minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buckets := bootstrapBuckets(cfg.Buckets)
	for _, bucket := range buckets {
		exists, err := client.BucketExists(ctx, bucket)
		if err != nil {
			return fmt.Errorf("failed to check bucket %s: %w", bucket, err)
		}
		if !exists {
			if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
			logger.Info("MinIO bucket created", zap.String("bucket", bucket))
		}

		// 所有媒体 Bucket 公开读，前端直接通过 URL 访问
		policy := fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, bucket)
		if err := client.SetBucketPolicy(ctx, bucket, policy); err != nil {
			return fmt.Errorf("failed to set public policy for %s: %w", bucket, err)
		}
	}

	logger.Info("MinIO connected",
		zap.String("endpoint", cfg.Endpoint),
		zap.Int("buckets", len(buckets)),
	)

	return nil
}

// bootstrapBuckets 上传代码固定写入这四个 Bucket，
// 配置缺项时一并补齐，额外配置的 Bucket 照常创建
func bootstrapBuckets(extra []string) []string {
	buckets := []string{BucketAvatars, BucketCovers, BucketVideos, BucketThumbnails}
	seen := make(map[string]struct{}, len(buckets))
	for _, b := range buckets {
		seen[b] = struct{}{}
	}
	for _, b := range extra {
		if _, ok := seen[b]; !ok {
			seen[b] = struct{}{}
			buckets = append(buckets, b)
		}
	}
	return buckets
}

// Get 获取 MinIO 客户端实例
func Get() *minio.Client {
	return client
}

// UploadFile 上传文件并返回公开访问 URL
func UploadFile(ctx context.Context, bucket, objectName string, reader io.Reader, fileSize int64, contentType string) (string, error) {
	_, err := client.PutObject(ctx, bucket, objectName, reader, fileSize, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to minio: %w", err)
	}

	cfg := config.GetMinIO()
	return PublicURL(cfg.Endpoint, cfg.UseSSL, bucket, objectName), nil
}

// DeleteByURL 根据公开 URL 删除对象
func DeleteByURL(ctx context.Context, rawURL string) error {
	bucket, objectName, err := ParseObjectURL(rawURL)
	if err != nil {
		return err
	}
	if err := client.RemoveObject(ctx, bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object %s/%s: %w", bucket, objectName, err)
	}
	return nil
}

// PublicURL 生成公开访问 URL（Bucket 已设置为 public-read）
func PublicURL(endpoint string, useSSL bool, bucket, objectName string) string {
	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, endpoint, bucket, objectName)
}

// ParseObjectURL 从公开 URL 中解析出 bucket 和对象名
func ParseObjectURL(rawURL string) (bucket, objectName string, err error) {
	parts := strings.SplitN(rawURL, "://", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid object url: %s", rawURL)
	}
	// host/bucket/objectName，对象名本身可以包含斜杠
	segs := strings.SplitN(parts[1], "/", 3)
	if len(segs) != 3 || segs[1] == "" || segs[2] == "" {
		return "", "", fmt.Errorf("invalid object url: %s", rawURL)
	}
	return segs[1], segs[2], nil
}
