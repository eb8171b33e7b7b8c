package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"comment-service/internal/client"
	"comment-service/internal/event"
	"comment-service/internal/handler"
	"comment-service/internal/metrics"
	"comment-service/internal/middleware"
	"comment-service/internal/repository"
	"comment-service/internal/service"
)

const readyTimeout = 2 * time.Second

// Config holds everything the HTTP layer depends on
type Config struct {
	Store     repository.Store
	Logger    *zap.Logger
	JWTSecret string
	// AuthValidator validates tokens remotely. When nil, JWTs are checked locally with JWTSecret.
	AuthValidator  middleware.TokenValidator
	Publisher      event.Publisher
	Notifier       client.NotificationClient
	BasePath       string
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	AllowedOrigins []string
}

// Setup builds the gin engine with all routes
func Setup(cfg Config) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewWithRegistry(prometheus.NewRegistry(), cfg.Logger)
	}
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}

	r := gin.New()
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.Metrics(cfg.Metrics))

	commentService := service.NewCommentService(cfg.Store, cfg.Publisher, cfg.Notifier, cfg.Metrics, cfg.Logger)
	postService := service.NewPostService(cfg.Store, cfg.Logger)
	commentHandler := handler.NewCommentHandler(commentService, cfg.Logger)
	postHandler := handler.NewPostHandler(postService, cfg.Logger)

	metricsHandler := gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))

	// operational endpoints answer at the root and under the base path
	ops := []*gin.RouterGroup{&r.RouterGroup}
	if cfg.BasePath != "" {
		ops = append(ops, r.Group(cfg.BasePath))
	}
	for _, g := range ops {
		g.GET("/health", healthHandler)
		g.GET("/ready", readyHandler(cfg.Store, cfg.Logger))
		g.GET("/metrics", metricsHandler)
	}

	api := r.Group(cfg.BasePath)
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	var auth gin.HandlerFunc
	if cfg.AuthValidator != nil {
		auth = middleware.AuthWithValidator(cfg.AuthValidator)
	} else {
		auth = middleware.Auth(cfg.JWTSecret)
	}

	comments := api.Group("/comments", auth)
	{
		comments.GET("", commentHandler.GetComments)
		comments.GET("/:id", commentHandler.GetComment)
		comments.POST("", commentHandler.CreateComment)
	}

	posts := api.Group("/posts", auth)
	{
		posts.GET("/:id", postHandler.GetPost)
	}

	return r
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(store repository.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "storage": "not connected"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			logger.Warn("Readiness check failed", zap.String("backend", store.Backend()), zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "storage": store.Backend()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "storage": store.Backend()})
	}
}
