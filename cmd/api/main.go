package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"vtube-go/internal/api/handler"
	"vtube-go/internal/api/middleware"
	"vtube-go/internal/api/router"
	"vtube-go/internal/config"
	"vtube-go/internal/infra/database"
	infraES "vtube-go/internal/infra/elasticsearch"
	infraKafka "vtube-go/internal/infra/kafka"
	infraMinio "vtube-go/internal/infra/minio"
	infraRedis "vtube-go/internal/infra/redis"
	"vtube-go/internal/model"
	"vtube-go/internal/repository"
	"vtube-go/internal/service"
	"vtube-go/pkg/logger"

	_ "vtube-go/api/openapi"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title VTube-Go API
// @version 1.0
// @description 视频分享平台 API 服务

// @contact.name API Support
// @contact.email support@vtube.dev

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host 127.0.0.1:8000
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 输入格式: Bearer {token}

func main() {
	// 加载配置文件
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 初始化日志系统
	if err := logger.Init(
		cfg.Log.Level,
		cfg.Log.Format,
		cfg.Log.Output,
		cfg.Log.FilePath,
	); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	// 初始化数据库
	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	// 自动迁移数据库表
	if err := database.AutoMigrate(
		&model.User{},
		&model.WatchEntry{},
		&model.Video{},
		&model.Comment{},
		&model.Like{},
		&model.Tweet{},
		&model.Playlist{},
		&model.PlaylistVideo{},
		&model.Subscription{},
	); err != nil {
		logger.Fatal("Failed to auto migrate", zap.Error(err))
	}

	// 初始化Redis
	if err := infraRedis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to init redis", zap.Error(err))
	}
	defer infraRedis.Close()

	// 初始化MinIO
	if err := infraMinio.Init(&cfg.MinIO); err != nil {
		logger.Fatal("Failed to init minio", zap.Error(err))
	}

	// 初始化Kafka生产者
	if err := infraKafka.InitProducer(&cfg.Kafka); err != nil {
		logger.Fatal("Failed to init kafka producer", zap.Error(err))
	}
	defer infraKafka.CloseProducer()

	// 初始化 Elasticsearch（可选，失败则搜索降级到 DB）
	if err := infraES.Init(&cfg.Elasticsearch); err != nil {
		logger.Warn("Elasticsearch init failed, search will fallback to DB", zap.Error(err))
	} else {
		defer infraES.Close()
		if err := infraES.InitIndexes(); err != nil {
			logger.Warn("Elasticsearch index init failed", zap.Error(err))
		}
	}

	// 设置Gin模式
	gin.SetMode(cfg.App.Mode)

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())

	// 初始化依赖（Repository -> Service -> Handler）
	db := database.Get()
	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)

	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo, videoRepo, subRepo)
	videoService := service.NewVideoService(videoRepo, userRepo)
	commentService := service.NewCommentService(commentRepo, videoRepo, userRepo)
	likeService := service.NewLikeService(likeRepo, videoRepo, commentRepo, tweetRepo)
	tweetService := service.NewTweetService(tweetRepo, userRepo)
	playlistService := service.NewPlaylistService(playlistRepo, videoRepo, userRepo)
	subService := service.NewSubscriptionService(subRepo, userRepo)
	dashboardService := service.NewDashboardService(videoRepo, subRepo, likeRepo, userRepo)
	searchService := service.NewSearchService(videoRepo)

	// 启动视频事件消费者，保持搜索索引与数据库一致（后台 goroutine）
	consumerCtx, consumerCancel := context.WithCancel(context.Background())
	defer consumerCancel()

	if topic, ok := cfg.Kafka.Topics["video_events"]; ok {
		go infraKafka.StartVideoEventConsumer(
			consumerCtx,
			cfg.Kafka.Brokers,
			topic,
			"vtube-go-video-events",
			searchService.HandleVideoEvent,
		)
	}

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	videoHandler := handler.NewVideoHandler(videoService)
	commentHandler := handler.NewCommentHandler(commentService)
	likeHandler := handler.NewLikeHandler(likeService)
	tweetHandler := handler.NewTweetHandler(tweetService)
	playlistHandler := handler.NewPlaylistHandler(playlistService)
	subscriptionHandler := handler.NewSubscriptionHandler(subService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	searchHandler := handler.NewSearchHandler(searchService)

	// 注册基础路由
	r.GET("/healthz", healthCheckHandler)
	r.GET("/api/v1/healthcheck", healthCheckHandler)

	// Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册业务路由
	router.Setup(r,
		authHandler, userHandler, videoHandler, commentHandler, likeHandler,
		tweetHandler, playlistHandler, subscriptionHandler, dashboardHandler, searchHandler,
	)

	// 启动HTTP服务器
	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("Starting application",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("mode", cfg.App.Mode),
		zap.String("addr", addr),
	)

	if err := r.Run(addr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

// healthCheckHandler 健康检查接口
func healthCheckHandler(c *gin.Context) {
	cfg := config.Get()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "OK",
		"data": gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   cfg.App.Name,
			"version":   cfg.App.Version,
		},
	})
}
