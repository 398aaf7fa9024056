package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mentor-server/internal/ai"
	"mentor-server/internal/authutils"
	"mentor-server/internal/config"
	"mentor-server/internal/handler"
	appMiddleware "mentor-server/internal/middleware"
	"mentor-server/internal/ratelimit"
	"mentor-server/internal/repository"
	"mentor-server/internal/service"
	"mentor-server/migrations"
	"mentor-server/pkg/logger"
	"mentor-server/pkg/migration"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; container deployments pass real env vars.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	appLogger, err := logger.New(logger.Config{
		Level:    cfg.LogLevel,
		Encoding: cfg.LogEncoding,
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Sync()
	zap.ReplaceGlobals(appLogger)
	zap.L().Info("Logger initialized", zap.String("logLevel", cfg.LogLevel))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pgPool, err := setupPostgres(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer pgPool.Close()
	zap.L().Info("Connected to PostgreSQL")

	if cfg.DBMigrate {
		migrator := migration.NewMigrator(migration.Config{
			MigrationsFS:   migrations.FS,
			MigrationsPath: ".",
		}, pgPool)
		if err := migrator.Up(ctx); err != nil {
			zap.L().Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	// Redis is optional: without it token revocation is not checked and
	// verification relies on the signature alone.
	var tokenRepo repository.TokenRepository
	if cfg.RedisAddr != "" {
		redisClient, err := setupRedis(ctx, cfg)
		if err != nil {
			zap.L().Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		zap.L().Info("Connected to Redis")
		tokenRepo = repository.NewRedisTokenRepository(redisClient, appLogger)
	} else {
		zap.L().Warn("REDIS_ADDR not set, token revocation checks disabled")
	}

	// --- Dependency injection ---
	menteeRepo := repository.NewPgMenteeRepository(pgPool)
	profileRepo := repository.NewPgProfileRepository(pgPool)
	sessionRepo := repository.NewPgSessionRepository(pgPool)
	deliverableRepo := repository.NewPgDeliverableRepository(pgPool)
	noteRepo := repository.NewPgNoteRepository(pgPool)
	chatRepo := repository.NewPgChatRepository(pgPool)
	insightRepo := repository.NewPgInsightRepository(pgPool)
	promptRepo := repository.NewPgPromptRepository(pgPool)

	chatClient, err := ai.NewChatClient(ai.ChatConfig{
		APIKey:    cfg.ChatAPIKey,
		BaseURL:   cfg.ChatBaseURL,
		ModelName: cfg.ChatModel,
		Timeout:   cfg.ChatTimeout,
	})
	if err != nil {
		zap.L().Fatal("Failed to create chat provider client", zap.Error(err))
	}

	messageClient, err := ai.NewMessageClient(ai.MessageConfig{
		APIKey:    cfg.MessageAPIKey,
		BaseURL:   cfg.MessageBaseURL,
		ModelName: cfg.MessageModel,
		Timeout:   cfg.MessageTimeout,
	})
	if err != nil {
		zap.L().Fatal("Failed to create message provider client", zap.Error(err))
	}

	builder := service.NewContextBuilder(
		menteeRepo, profileRepo, sessionRepo, deliverableRepo,
		noteRepo, chatRepo, promptRepo, appLogger,
	)
	aiSvc := service.NewAIService(builder, chatClient, messageClient, chatRepo, insightRepo, appLogger)

	verifier, err := authutils.NewJWTVerifier(cfg.JWTSecret, appLogger)
	if err != nil {
		zap.L().Fatal("Failed to create JWT verifier", zap.Error(err))
	}

	limiter := ratelimit.NewLimiter()
	aiHandler := handler.NewAIHandler(aiSvc, limiter, cfg, appLogger)
	authMiddleware := handler.AuthMiddleware(verifier, tokenRepo, appLogger)

	// --- HTTP server (gin) ---
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(appMiddleware.ZapLoggingMiddleware(appLogger))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.GET("/health", aiHandler.Health)
	router.HEAD("/health", aiHandler.Health)

	aiHandler.RegisterRoutes(router, authMiddleware)

	p := ginprometheus.NewPrometheus("gin")
	p.Use(router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zap.L().Info("Starting HTTP server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("HTTP server listen error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("HTTP server forced to shutdown", zap.Error(err))
	}

	zap.L().Info("Server exiting")
}

// setupPostgres initializes the PostgreSQL connection pool with retry logic.
func setupPostgres(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("unable to parse postgres config: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.DBMaxConns)
	poolConfig.MaxConnIdleTime = cfg.DBIdleTimeout

	var lastErr error
	maxRetries := 10
	retryDelay := 3 * time.Second

	for i := 0; i < maxRetries; i++ {
		attempt := i + 1
		connectCtx, connectCancel := context.WithTimeout(ctx, 5*time.Second)
		pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
		connectCancel()
		if err != nil {
			lastErr = err
			zap.L().Warn("Postgres connection pool creation failed, retrying...",
				zap.Int("attempt", attempt), zap.Error(err))
			time.Sleep(retryDelay)
			continue
		}

		pingCtx, pingCancel := context.WithTimeout(ctx, 2*time.Second)
		err = pool.Ping(pingCtx)
		pingCancel()
		if err == nil {
			return pool, nil
		}

		pool.Close()
		lastErr = err
		zap.L().Warn("Postgres ping failed, retrying...", zap.Int("attempt", attempt), zap.Error(err))
		time.Sleep(retryDelay)
	}

	return nil, fmt.Errorf("failed to connect to postgres after %d attempts: %w", maxRetries, lastErr)
}

// setupRedis initializes the Redis client.
func setupRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}
