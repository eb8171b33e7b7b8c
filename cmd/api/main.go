// @title           Comment Service API
// @version         1.0
// @description     Comments on posts

// @host      localhost:8000
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	_ "comment-service/docs" // Swagger docs import

	"comment-service/internal/client"
	"comment-service/internal/config"
	"comment-service/internal/database"
	"comment-service/internal/event"
	"comment-service/internal/job"
	"comment-service/internal/metrics"
	"comment-service/internal/middleware"
	"comment-service/internal/repository"
	"comment-service/internal/router"
)

const (
	connectAttempts = 10
	connectInterval = 5 * time.Second
)

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logger.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting Comment Service",
		zap.String("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("base_path", cfg.Server.BasePath),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("auth_api_url", cfg.AuthAPI.BaseURL),
	)

	m := metrics.NewWithLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, m, logger)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer closeStore()
	logger.Info("Storage ready", zap.String("backend", store.Backend()), zap.Bool("atomic", store.Atomic()))

	publisher := openPublisher(ctx, cfg, m, logger)

	var notifier client.NotificationClient
	if cfg.NotificationAPI.BaseURL != "" {
		notifier = client.NewNotificationClient(cfg.NotificationAPI.BaseURL, cfg.NotificationAPI.APIKey, cfg.NotificationAPI.Timeout, logger, m)
	} else {
		logger.Info("Notification service not configured, author notifications disabled")
		notifier = client.NewNoOpNotificationClient()
	}

	var validator middleware.TokenValidator
	if cfg.AuthAPI.BaseURL != "" {
		validator = client.NewAuthClient(cfg.AuthAPI.BaseURL, cfg.AuthAPI.Timeout, logger, m)
		logger.Info("Tokens validated by auth service", zap.String("auth_api_url", cfg.AuthAPI.BaseURL))
	} else {
		logger.Warn("Auth service not configured, validating JWTs locally")
	}

	collector := metrics.NewBusinessMetricsCollector(store.Comments().Count, store.Posts().Count, m, logger).
		WithInterval(cfg.Jobs.MetricsCollectorEvery)
	collector.Start()
	defer collector.Stop()

	scheduler := job.NewScheduler(logger)
	if err := scheduler.Add("relink", cfg.Jobs.RelinkSchedule, job.NewRelinkJob(store, m, logger)); err != nil {
		logger.Fatal("Invalid relink schedule", zap.String("schedule", cfg.Jobs.RelinkSchedule), zap.Error(err))
	}
	scheduler.Start()

	r := router.Setup(router.Config{
		Store:          store,
		Logger:         logger,
		JWTSecret:      cfg.JWT.Secret,
		AuthValidator:  validator,
		Publisher:      publisher,
		Notifier:       notifier,
		BasePath:       cfg.Server.BasePath,
		Metrics:        m,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("Comment Service started successfully",
			zap.String("address", srv.Addr),
			zap.String("swagger", fmt.Sprintf("http://localhost:%s%s/swagger/index.html", cfg.Server.Port, cfg.Server.BasePath)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	scheduler.Stop(shutdownCtx)

	logger.Info("Server exited gracefully")
}

// openStore connects the configured backend and returns it with its close function
func openStore(ctx context.Context, cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) (repository.Store, func(), error) {
	switch cfg.Database.Driver {
	case config.DriverMongo:
		mongoCfg := database.MongoConfig{
			URI:            cfg.Mongo.URI,
			Database:       cfg.Mongo.Database,
			ConnectTimeout: cfg.Mongo.ConnectTimeout,
		}
		mc, err := database.ConnectWithRetry(ctx, func() (*mongo.Client, error) {
			return database.NewMongo(ctx, mongoCfg, m)
		}, connectAttempts, connectInterval, logger)
		if err != nil {
			return nil, nil, err
		}
		db := mc.Database(cfg.Mongo.Database)
		if err := database.EnsureMongoIndexes(ctx, db); err != nil {
			logger.Warn("Failed to ensure mongo indexes", zap.Error(err))
		}
		closeFn := func() {
			if err := mc.Disconnect(context.Background()); err != nil {
				logger.Error("Failed to disconnect mongo", zap.Error(err))
			}
		}
		return repository.NewMongoStore(mc, db), closeFn, nil

	default:
		dbConfig := database.Config{
			DSN:             cfg.Database.GetDSN(),
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		}
		db, err := database.ConnectWithRetry(ctx, func() (*gorm.DB, error) {
			return database.New(dbConfig)
		}, connectAttempts, connectInterval, logger)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Database.AutoMigrate {
			if err := database.AutoMigrate(db, logger); err != nil {
				logger.Warn("Failed to run database migrations", zap.Error(err))
			}
		}
		if err := database.RegisterMetricsCallbacks(db, m); err != nil {
			logger.Warn("Failed to register query metrics", zap.Error(err))
		}
		statsDone := database.StartDBStatsCollector(db, m, 15*time.Second)
		closeFn := func() {
			close(statsDone)
			if err := database.Close(db); err != nil {
				logger.Error("Failed to close database", zap.Error(err))
			}
		}
		return repository.NewGormStore(db), closeFn, nil
	}
}

// openPublisher returns a redis publisher, or a no-op one when redis is unreachable
func openPublisher(ctx context.Context, cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) event.Publisher {
	rdb, err := database.NewRedis(ctx, database.RedisConfig{
		URL:      cfg.Redis.URL,
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Warn("Redis unavailable, comment events disabled", zap.Error(err))
		return event.NoOpPublisher{}
	}
	logger.Info("Redis connection established", zap.String("channel", event.ChannelCommentCreated))
	return event.NewRedisPublisher(rdb, m, logger)
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
