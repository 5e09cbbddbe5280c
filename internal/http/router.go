// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, compression, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/streamhub/go-video-backend/internal/auth"
	"github.com/streamhub/go-video-backend/internal/config"
	"github.com/streamhub/go-video-backend/internal/domain"
	"github.com/streamhub/go-video-backend/internal/http/handlers"
	"github.com/streamhub/go-video-backend/internal/http/middleware"
	"github.com/streamhub/go-video-backend/internal/media"
	"github.com/streamhub/go-video-backend/internal/repo"
	"github.com/streamhub/go-video-backend/internal/services"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"
)

// The shims below adapt the repository free functions to the per-service
// repo interfaces. This keeps services decoupled from the concrete repo
// package while reusing existing functions.

type authRepoShim struct{}

func (authRepoShim) CreateUser(ctx context.Context, db *gorm.DB, u *domain.User) (*domain.User, error) {
	return repo.CreateUser(ctx, db, u)
}

func (authRepoShim) GetUserByID(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	return repo.GetUserByID(ctx, db, id)
}

func (authRepoShim) GetUserByLogin(ctx context.Context, db *gorm.DB, key string) (*domain.User, error) {
	return repo.GetUserByLogin(ctx, db, key)
}

func (authRepoShim) UserExists(ctx context.Context, db *gorm.DB, username, email string) (bool, error) {
	return repo.UserExists(ctx, db, username, email)
}

func (authRepoShim) SetRefreshToken(ctx context.Context, db *gorm.DB, userID, token string) error {
	return repo.SetRefreshToken(ctx, db, userID, token)
}

func (authRepoShim) UpdatePasswordHash(ctx context.Context, db *gorm.DB, userID, hash string) error {
	return repo.UpdatePasswordHash(ctx, db, userID, hash)
}

type userRepoShim struct{}

func (userRepoShim) GetUserByID(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	return repo.GetUserByID(ctx, db, id)
}

func (userRepoShim) UserExists(ctx context.Context, db *gorm.DB, username, email string) (bool, error) {
	return repo.UserExists(ctx, db, username, email)
}

func (userRepoShim) UpdateAccountDetails(ctx context.Context, db *gorm.DB, userID, fullName, email string) error {
	return repo.UpdateAccountDetails(ctx, db, userID, fullName, email)
}

func (userRepoShim) UpdateAvatar(ctx context.Context, db *gorm.DB, userID string, img domain.Image) error {
	return repo.UpdateAvatar(ctx, db, userID, img)
}

func (userRepoShim) UpdateCoverImage(ctx context.Context, db *gorm.DB, userID string, img domain.Image) error {
	return repo.UpdateCoverImage(ctx, db, userID, img)
}

func (userRepoShim) GetChannelProfile(ctx context.Context, db *gorm.DB, viewerID, username string) (*repo.ChannelProfileView, error) {
	return repo.GetChannelProfile(ctx, db, viewerID, username)
}

func (userRepoShim) CountWatchHistory(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	return repo.CountWatchHistory(ctx, db, userID)
}

func (userRepoShim) ListWatchHistoryPage(ctx context.Context, db *gorm.DB, userID string, offset, limit int) ([]repo.WatchHistoryItem, error) {
	return repo.ListWatchHistoryPage(ctx, db, userID, offset, limit)
}

type videoRepoShim struct{}

func (videoRepoShim) CreateVideo(ctx context.Context, db *gorm.DB, v *domain.Video) (*domain.Video, error) {
	return repo.CreateVideo(ctx, db, v)
}

func (videoRepoShim) GetVideo(ctx context.Context, db *gorm.DB, id string) (*domain.Video, error) {
	return repo.GetVideo(ctx, db, id)
}

func (videoRepoShim) CountVideos(ctx context.Context, db *gorm.DB, f repo.VideoFilter) (int64, error) {
	return repo.CountVideos(ctx, db, f)
}

func (videoRepoShim) ListVideosPage(ctx context.Context, db *gorm.DB, f repo.VideoFilter, offset, limit int) ([]repo.VideoListItem, error) {
	return repo.ListVideosPage(ctx, db, f, offset, limit)
}

func (videoRepoShim) GetVideoView(ctx context.Context, db *gorm.DB, viewerID, videoID string) (*repo.VideoView, error) {
	return repo.GetVideoView(ctx, db, viewerID, videoID)
}

func (videoRepoShim) IncrementViews(ctx context.Context, db *gorm.DB, videoID string) error {
	return repo.IncrementViews(ctx, db, videoID)
}

func (videoRepoShim) UpsertWatchHistory(ctx context.Context, db *gorm.DB, userID, videoID string) error {
	return repo.UpsertWatchHistory(ctx, db, userID, videoID)
}

func (videoRepoShim) UpdateVideoDetails(ctx context.Context, db *gorm.DB, videoID, title, description string, thumb domain.Image) error {
	return repo.UpdateVideoDetails(ctx, db, videoID, title, description, thumb)
}

func (videoRepoShim) SetPublished(ctx context.Context, db *gorm.DB, videoID string, published bool) error {
	return repo.SetPublished(ctx, db, videoID, published)
}

func (videoRepoShim) DeleteVideo(ctx context.Context, db *gorm.DB, videoID string) error {
	return repo.DeleteVideo(ctx, db, videoID)
}

func (videoRepoShim) DeleteCommentLikesByVideo(ctx context.Context, db *gorm.DB, videoID string) error {
	return repo.DeleteCommentLikesByVideo(ctx, db, videoID)
}

func (videoRepoShim) DeleteCommentsByVideo(ctx context.Context, db *gorm.DB, videoID string) error {
	return repo.DeleteCommentsByVideo(ctx, db, videoID)
}

func (videoRepoShim) DeleteLikesFor(ctx context.Context, db *gorm.DB, target repo.LikeTarget, targetID string) error {
	return repo.DeleteLikesFor(ctx, db, target, targetID)
}

func (videoRepoShim) RemoveVideoFromAllPlaylists(ctx context.Context, db *gorm.DB, videoID string) error {
	return repo.RemoveVideoFromAllPlaylists(ctx, db, videoID)
}

func (videoRepoShim) DeleteWatchHistoryByVideo(ctx context.Context, db *gorm.DB, videoID string) error {
	return repo.DeleteWatchHistoryByVideo(ctx, db, videoID)
}

type commentRepoShim struct{}

func (commentRepoShim) GetVideo(ctx context.Context, db *gorm.DB, id string) (*domain.Video, error) {
	return repo.GetVideo(ctx, db, id)
}

func (commentRepoShim) CreateComment(ctx context.Context, db *gorm.DB, videoID, ownerID, content string) (*domain.Comment, error) {
	return repo.CreateComment(ctx, db, videoID, ownerID, content)
}

func (commentRepoShim) GetComment(ctx context.Context, db *gorm.DB, id string) (*domain.Comment, error) {
	return repo.GetComment(ctx, db, id)
}

func (commentRepoShim) CountVideoComments(ctx context.Context, db *gorm.DB, videoID string) (int64, error) {
	return repo.CountVideoComments(ctx, db, videoID)
}

func (commentRepoShim) ListVideoCommentsPage(ctx context.Context, db *gorm.DB, viewerID, videoID string, offset, limit int) ([]repo.CommentView, error) {
	return repo.ListVideoCommentsPage(ctx, db, viewerID, videoID, offset, limit)
}

func (commentRepoShim) UpdateCommentContent(ctx context.Context, db *gorm.DB, id, content string) error {
	return repo.UpdateCommentContent(ctx, db, id, content)
}

func (commentRepoShim) DeleteComment(ctx context.Context, db *gorm.DB, id string) error {
	return repo.DeleteComment(ctx, db, id)
}

func (commentRepoShim) DeleteLikesFor(ctx context.Context, db *gorm.DB, target repo.LikeTarget, targetID string) error {
	return repo.DeleteLikesFor(ctx, db, target, targetID)
}

type likeRepoShim struct{}

func (likeRepoShim) FindLike(ctx context.Context, db *gorm.DB, actorID string, target repo.LikeTarget, targetID string) (*domain.Like, error) {
	return repo.FindLike(ctx, db, actorID, target, targetID)
}

func (likeRepoShim) CreateLike(ctx context.Context, db *gorm.DB, actorID string, target repo.LikeTarget, targetID string) error {
	return repo.CreateLike(ctx, db, actorID, target, targetID)
}

func (likeRepoShim) DeleteLike(ctx context.Context, db *gorm.DB, id string) error {
	return repo.DeleteLike(ctx, db, id)
}

func (likeRepoShim) ListLikedVideos(ctx context.Context, db *gorm.DB, userID string) ([]repo.LikedVideoView, error) {
	return repo.ListLikedVideos(ctx, db, userID)
}

func (likeRepoShim) GetVideo(ctx context.Context, db *gorm.DB, id string) (*domain.Video, error) {
	return repo.GetVideo(ctx, db, id)
}

func (likeRepoShim) GetComment(ctx context.Context, db *gorm.DB, id string) (*domain.Comment, error) {
	return repo.GetComment(ctx, db, id)
}

func (likeRepoShim) GetTweet(ctx context.Context, db *gorm.DB, id string) (*domain.Tweet, error) {
	return repo.GetTweet(ctx, db, id)
}

type subscriptionRepoShim struct{}

func (subscriptionRepoShim) GetUserByID(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	return repo.GetUserByID(ctx, db, id)
}

func (subscriptionRepoShim) FindSubscription(ctx context.Context, db *gorm.DB, subscriberID, channelID string) (*domain.Subscription, error) {
	return repo.FindSubscription(ctx, db, subscriberID, channelID)
}

func (subscriptionRepoShim) CreateSubscription(ctx context.Context, db *gorm.DB, subscriberID, channelID string) error {
	return repo.CreateSubscription(ctx, db, subscriberID, channelID)
}

func (subscriptionRepoShim) DeleteSubscription(ctx context.Context, db *gorm.DB, id string) error {
	return repo.DeleteSubscription(ctx, db, id)
}

func (subscriptionRepoShim) ListChannelSubscribers(ctx context.Context, db *gorm.DB, channelID string) ([]repo.SubscriberView, error) {
	return repo.ListChannelSubscribers(ctx, db, channelID)
}

func (subscriptionRepoShim) ListSubscribedChannels(ctx context.Context, db *gorm.DB, subscriberID string) ([]repo.SubscribedChannelView, error) {
	return repo.ListSubscribedChannels(ctx, db, subscriberID)
}

type tweetRepoShim struct{}

func (tweetRepoShim) CreateTweet(ctx context.Context, db *gorm.DB, ownerID, content string) (*domain.Tweet, error) {
	return repo.CreateTweet(ctx, db, ownerID, content)
}

func (tweetRepoShim) GetTweet(ctx context.Context, db *gorm.DB, id string) (*domain.Tweet, error) {
	return repo.GetTweet(ctx, db, id)
}

func (tweetRepoShim) ListUserTweets(ctx context.Context, db *gorm.DB, viewerID, userID string) ([]repo.TweetView, error) {
	return repo.ListUserTweets(ctx, db, viewerID, userID)
}

func (tweetRepoShim) UpdateTweetContent(ctx context.Context, db *gorm.DB, id, content string) error {
	return repo.UpdateTweetContent(ctx, db, id, content)
}

func (tweetRepoShim) DeleteTweet(ctx context.Context, db *gorm.DB, id string) error {
	return repo.DeleteTweet(ctx, db, id)
}

func (tweetRepoShim) DeleteLikesFor(ctx context.Context, db *gorm.DB, target repo.LikeTarget, targetID string) error {
	return repo.DeleteLikesFor(ctx, db, target, targetID)
}

type playlistRepoShim struct{}

func (playlistRepoShim) CreatePlaylist(ctx context.Context, db *gorm.DB, ownerID, name, description string) (*domain.Playlist, error) {
	return repo.CreatePlaylist(ctx, db, ownerID, name, description)
}

func (playlistRepoShim) GetPlaylist(ctx context.Context, db *gorm.DB, id string) (*domain.Playlist, error) {
	return repo.GetPlaylist(ctx, db, id)
}

func (playlistRepoShim) ListUserPlaylists(ctx context.Context, db *gorm.DB, userID string) ([]domain.Playlist, error) {
	return repo.ListUserPlaylists(ctx, db, userID)
}

func (playlistRepoShim) ListPlaylistVideos(ctx context.Context, db *gorm.DB, playlistID string) ([]repo.PlaylistVideoItem, error) {
	return repo.ListPlaylistVideos(ctx, db, playlistID)
}

func (playlistRepoShim) UpdatePlaylistDetails(ctx context.Context, db *gorm.DB, id, name, description string) error {
	return repo.UpdatePlaylistDetails(ctx, db, id, name, description)
}

func (playlistRepoShim) DeletePlaylist(ctx context.Context, db *gorm.DB, id string) error {
	return repo.DeletePlaylist(ctx, db, id)
}

func (playlistRepoShim) HasPlaylistVideo(ctx context.Context, db *gorm.DB, playlistID, videoID string) (bool, error) {
	return repo.HasPlaylistVideo(ctx, db, playlistID, videoID)
}

func (playlistRepoShim) AddPlaylistVideo(ctx context.Context, db *gorm.DB, playlistID, videoID string) error {
	return repo.AddPlaylistVideo(ctx, db, playlistID, videoID)
}

func (playlistRepoShim) RemovePlaylistVideo(ctx context.Context, db *gorm.DB, playlistID, videoID string) error {
	return repo.RemovePlaylistVideo(ctx, db, playlistID, videoID)
}

func (playlistRepoShim) GetVideo(ctx context.Context, db *gorm.DB, id string) (*domain.Video, error) {
	return repo.GetVideo(ctx, db, id)
}

type dashboardRepoShim struct{}

func (dashboardRepoShim) GetChannelStats(ctx context.Context, db *gorm.DB, channelID string) (*repo.ChannelStatsView, error) {
	return repo.GetChannelStats(ctx, db, channelID)
}

func (dashboardRepoShim) CountChannelVideos(ctx context.Context, db *gorm.DB, channelID string) (int64, error) {
	return repo.CountChannelVideos(ctx, db, channelID)
}

func (dashboardRepoShim) ListChannelVideosPage(ctx context.Context, db *gorm.DB, channelID string, offset, limit int) ([]repo.DashboardVideoItem, error) {
	return repo.ListChannelVideosPage(ctx, db, channelID, offset, limit)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), rate limiting,
// CORS and security headers, compression, health and metrics endpoints, and
// then mounts the versioned public API under /api/v*.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter (uploads are multipart, so the cap is the upload cap)
//  6. Metrics
//  7. Gzip compression for JSON listings
//  8. Rate limiter (per user/IP)
//  9. CORS and Security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, host media.Host, tm *auth.TokenManager, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{
			"X-API-Key", // project-specific sensitive header example
		},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit; video uploads are the largest legal bodies
	r.Use(limitBody(cfg.MaxUploadBytes))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Compress JSON responses (listings and channel profiles benefit most)
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 8) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: cfg.CORS.AllowCredentials, // session cookies need credentialed CORS
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, "method not allowed")
	})

	// Swagger UI (off by default; enable for local development). Serves the
	// UI shell only unless a swag-generated docs package is imported — see
	// the SwaggerEnabled note in internal/config.
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db/media/tokens
	authSvc := services.NewAuthService(db, authRepoShim{}, tm, host)
	userSvc := services.NewUserService(db, userRepoShim{}, host)
	videoSvc := services.NewVideoService(db, videoRepoShim{}, host)
	commentSvc := services.NewCommentService(db, commentRepoShim{})
	likeSvc := services.NewLikeService(db, likeRepoShim{})
	subSvc := services.NewSubscriptionService(db, subscriptionRepoShim{})
	tweetSvc := services.NewTweetService(db, tweetRepoShim{})
	playlistSvc := services.NewPlaylistService(db, playlistRepoShim{})
	dashSvc := services.NewDashboardService(db, dashboardRepoShim{})

	cookies := handlers.CookieOptions{
		Secure:        cfg.Security.SecureCookies,
		AccessMaxAge:  int(cfg.Tokens.AccessExpiry.Seconds()),
		RefreshMaxAge: int(cfg.Tokens.RefreshExpiry.Seconds()),
	}

	userH := handlers.NewUserHandlers(authSvc, userSvc, cfg.Media.TempDir, cookies)
	videoH := handlers.NewVideoHandlers(videoSvc, cfg.Media.TempDir)
	commentH := handlers.NewCommentHandlers(commentSvc)
	likeH := handlers.NewLikeHandlers(likeSvc)
	subH := handlers.NewSubscriptionHandlers(subSvc)
	tweetH := handlers.NewTweetHandlers(tweetSvc)
	playlistH := handlers.NewPlaylistHandlers(playlistSvc)
	dashH := handlers.NewDashboardHandlers(dashSvc)
	healthH := handlers.NewHealthHandlers(db)

	authed := middleware.RequireAuth(tm, func(ctx context.Context, id string) (*domain.User, error) {
		return repo.GetUserByID(ctx, db, id)
	})

	// Public API
	apiBase := cfg.APIBasePath // e.g. "/api/v1"
	api := groupWithPrefix(r, apiBase)

	api.GET("/healthcheck", healthH.Healthcheck)

	// Accounts and sessions
	users := api.Group("/users")
	{
		users.POST("/register", userH.Register)
		users.POST("/login", userH.Login)
		users.POST("/refresh-token", userH.RefreshToken)

		users.POST("/logout", authed, userH.Logout)
		users.POST("/change-password", authed, userH.ChangePassword)
		users.GET("/current-user", authed, userH.CurrentUser)
		users.PATCH("/update-account", authed, userH.UpdateAccount)
		users.PATCH("/avatar", authed, userH.UpdateAvatar)
		users.PATCH("/cover-image", authed, userH.UpdateCoverImage)
		users.GET("/c/:username", authed, userH.ChannelProfile)
		users.GET("/history", authed, userH.WatchHistory)
	}

	// Videos
	videos := api.Group("/video", authed)
	{
		videos.GET("", videoH.List)
		videos.POST("", videoH.Publish)
		videos.GET("/:videoId", videoH.Get)
		videos.PATCH("/:videoId", videoH.Update)
		videos.DELETE("/:videoId", videoH.Delete)
		videos.PATCH("/toggle/publish/:videoId", videoH.TogglePublish)
	}

	// Comments
	comments := api.Group("/comment", authed)
	{
		comments.GET("/:videoId", commentH.List)
		comments.POST("/:videoId", commentH.Add)
		comments.PATCH("/c/:commentId", commentH.Update)
		comments.DELETE("/c/:commentId", commentH.Delete)
	}

	// Likes
	likes := api.Group("/likes", authed)
	{
		likes.POST("/toggle/v/:videoId", likeH.ToggleVideo)
		likes.POST("/toggle/c/:commentId", likeH.ToggleComment)
		likes.POST("/toggle/t/:tweetId", likeH.ToggleTweet)
		likes.GET("/videos", likeH.LikedVideos)
	}

	// Tweets
	tweets := api.Group("/tweet", authed)
	{
		tweets.POST("", tweetH.Create)
		tweets.GET("/user/:userId", tweetH.ListUser)
		tweets.PATCH("/:tweetId", tweetH.Update)
		tweets.DELETE("/:tweetId", tweetH.Delete)
	}

	// Subscriptions
	subs := api.Group("/subscriptions", authed)
	{
		subs.POST("/c/:channelId", subH.Toggle)
		subs.GET("/c/:channelId", subH.Subscribers)
		subs.GET("/u/:subscriberId", subH.SubscribedChannels)
	}

	// Playlists
	playlists := api.Group("/playlist", authed)
	{
		playlists.POST("", playlistH.Create)
		playlists.GET("/:playlistId", playlistH.Get)
		playlists.PATCH("/:playlistId", playlistH.Update)
		playlists.DELETE("/:playlistId", playlistH.Delete)
		playlists.GET("/user/:userId", playlistH.ListUser)
		playlists.PATCH("/add/:videoId/:playlistId", playlistH.AddVideo)
		playlists.PATCH("/remove/:videoId/:playlistId", playlistH.RemoveVideo)
	}

	// Dashboard
	dash := api.Group("/dashboard", authed)
	{
		dash.GET("/stats", dashH.Stats)
		dash.GET("/videos", dashH.Videos)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
