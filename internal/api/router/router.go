package router

import (
	"vtube-go/internal/api/handler"
	"vtube-go/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// Setup 注册所有业务路由
func Setup(
	r *gin.Engine,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	videoHandler *handler.VideoHandler,
	commentHandler *handler.CommentHandler,
	likeHandler *handler.LikeHandler,
	tweetHandler *handler.TweetHandler,
	playlistHandler *handler.PlaylistHandler,
	subscriptionHandler *handler.SubscriptionHandler,
	dashboardHandler *handler.DashboardHandler,
	searchHandler *handler.SearchHandler,
) {
	v1 := r.Group("/api/v1")

	// --- 认证模块 ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)

		authRequired := auth.Group("", middleware.AuthRequired())
		{
			authRequired.POST("/logout", authHandler.Logout)
			authRequired.POST("/change-password", authHandler.ChangePassword)
			authRequired.GET("/me", authHandler.GetMe)
		}
	}

	// --- 用户模块 ---
	users := v1.Group("/users")
	{
		// 公开接口
		users.GET("/:id/tweets", tweetHandler.ListByUser)
		users.GET("/:id/playlists", playlistHandler.ListByUser)
		users.GET("/:id/subscriptions", subscriptionHandler.GetSubscribedChannels)

		me := users.Group("/me", middleware.AuthRequired())
		{
			me.PATCH("", userHandler.UpdateAccount)
			me.PATCH("/avatar", userHandler.UpdateAvatar)
			me.PATCH("/cover-image", userHandler.UpdateCoverImage)
			me.GET("/watch-history", userHandler.GetWatchHistory)
		}
	}

	// --- 频道模块 ---
	channels := v1.Group("/channels")
	{
		channels.GET("/:username", middleware.AuthOptional(), userHandler.GetChannelProfile)
		channels.GET("/:username/subscribers", subscriptionHandler.GetChannelSubscribers)
	}

	// --- 视频模块 ---
	videos := v1.Group("/videos")
	{
		// 公开接口，登录时附带观看历史和未发布视频可见性
		videos.GET("", middleware.AuthOptional(), videoHandler.List)
		videos.GET("/:id", middleware.AuthOptional(), videoHandler.Get)
		videos.GET("/:id/comments", commentHandler.ListByVideo)

		videosAuth := videos.Group("", middleware.AuthRequired())
		{
			videosAuth.POST("", videoHandler.Publish)
			videosAuth.PATCH("/:id", videoHandler.Update)
			videosAuth.DELETE("/:id", videoHandler.Delete)
			videosAuth.PATCH("/:id/toggle-publish", videoHandler.TogglePublish)
			videosAuth.POST("/:id/comments", commentHandler.Create)
		}
	}

	// --- 评论模块 ---
	comments := v1.Group("/comments", middleware.AuthRequired())
	{
		comments.PATCH("/:id", commentHandler.Update)
		comments.DELETE("/:id", commentHandler.Delete)
	}

	// --- 点赞模块 ---
	likes := v1.Group("/likes", middleware.AuthRequired())
	{
		likes.POST("/toggle/video/:id", likeHandler.ToggleVideo)
		likes.POST("/toggle/comment/:id", likeHandler.ToggleComment)
		likes.POST("/toggle/tweet/:id", likeHandler.ToggleTweet)
		likes.GET("/videos", likeHandler.GetLikedVideos)
	}

	// --- 动态模块 ---
	tweets := v1.Group("/tweets", middleware.AuthRequired())
	{
		tweets.POST("", tweetHandler.Create)
		tweets.PATCH("/:id", tweetHandler.Update)
		tweets.DELETE("/:id", tweetHandler.Delete)
	}

	// --- 播放列表模块 ---
	playlists := v1.Group("/playlists")
	{
		playlists.GET("/:id", playlistHandler.Get)

		playlistsAuth := playlists.Group("", middleware.AuthRequired())
		{
			playlistsAuth.POST("", playlistHandler.Create)
			playlistsAuth.PATCH("/:id", playlistHandler.Update)
			playlistsAuth.DELETE("/:id", playlistHandler.Delete)
			playlistsAuth.POST("/:id/videos/:videoId", playlistHandler.AddVideo)
			playlistsAuth.DELETE("/:id/videos/:videoId", playlistHandler.RemoveVideo)
		}
	}

	// --- 订阅模块 ---
	subscriptions := v1.Group("/subscriptions", middleware.AuthRequired())
	{
		subscriptions.POST("/toggle/:channelId", subscriptionHandler.Toggle)
	}

	// --- 频道后台模块 ---
	dashboard := v1.Group("/dashboard", middleware.AuthRequired())
	{
		dashboard.GET("/stats", dashboardHandler.GetStats)
		dashboard.GET("/videos", dashboardHandler.GetVideos)
	}

	// --- 搜索模块 ---
	search := v1.Group("/search")
	{
		search.GET("/videos", searchHandler.Search)
	}
}
