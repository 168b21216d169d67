package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chat-app/session-service/internal/config"
	"chat-app/session-service/internal/handlers"
	"chat-app/session-service/internal/logging"
	"chat-app/session-service/internal/repository"
	userRepository "chat-app/session-service/internal/repository/user"
	"chat-app/session-service/internal/service"
	"chat-app/session-service/internal/token"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func Run() error {
	cfg := config.LoadConfig()
	log := logging.New(os.Stdout, cfg.IsProduction())
	ctx := context.Background()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		for _, warning := range cfg.Checklist() {
			log.Warn(ctx, "insecure production setting", "warning", warning)
		}
	}

	userRepo, closeUsers, err := OpenUserRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeUsers.Close()

	registry, closeRegistry, err := OpenRegistry(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRegistry.Close()

	signer := token.NewSigner(cfg.AccessSecret, cfg.RefreshSecret)
	testIDs := services.NewTestIdentities(cfg.TestUserPrefix, cfg.IsProduction())
	if testIDs.Enabled() {
		log.Warn(ctx, "synthetic test identities enabled", "prefix", cfg.TestUserPrefix)
	}

	router := handlers.NewRouter(handlers.Services{
		Auth:           services.NewAuthService(registry, signer, log),
		Users:          services.NewUserService(userRepo),
		TestIdentities: testIDs,
	}, log)

	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info(ctx, "shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error(ctx, "server shutdown", "err", err)
		}
	}()

	log.Info(ctx, "starting server", "addr", cfg.Port, "env", cfg.Environment,
		"db", cfg.DBType, "registry", cfg.RegistryType)
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	log.Info(ctx, "server gracefully stopped")
	return nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenUserRepository builds the user store selected by DB_TYPE.
func OpenUserRepository(ctx context.Context, cfg *config.Config) (userRepository.UserRepository, io.Closer, error) {
	switch cfg.DBType {
	case config.DBTypeMemory:
		return userRepository.NewInMemoryUserRepository(), nopCloser{}, nil
	case config.DBTypeSQLite:
		repo, err := userRepository.NewSQLiteUserRepository(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("user repository: %w", err)
		}
		return repo, repo, nil
	case config.DBTypePostgres:
		if cfg.PostgresDSN == "" {
			return nil, nil, errors.New("DATABASE_URL is required for DB_TYPE=postgres")
		}
		repo, err := userRepository.NewPostgresUserRepository(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("user repository: %w", err)
		}
		return repo, repo, nil
	default:
		return nil, nil, fmt.Errorf("unknown DB_TYPE %q", cfg.DBType)
	}
}

// OpenRegistry builds the refresh token registry selected by REGISTRY_TYPE.
func OpenRegistry(ctx context.Context, cfg *config.Config) (repository.RefreshTokenRegistry, io.Closer, error) {
	switch cfg.RegistryType {
	case config.RegistryMemory:
		return repository.NewMemoryRegistry(), nopCloser{}, nil
	case config.RegistryRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		registry := repository.NewRedisRegistry(client, cfg.RedisKeyPrefix)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := registry.Ping(pingCtx); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis registry: %w", err)
		}
		return registry, client, nil
	case config.RegistryMongo:
		if cfg.MongoDBURI == "" {
			return nil, nil, errors.New("MONGODB_URI is required for REGISTRY_TYPE=mongo")
		}
		connectCtx, cancel := context.WithTimeout(ctx, config.GetDuration("MONGODB_CONNECT_TIMEOUT", 10*time.Second))
		defer cancel()
		registry, err := repository.NewMongoDBRegistry(connectCtx, cfg.MongoDBURI, cfg.MongoDBName)
		if err != nil {
			return nil, nil, fmt.Errorf("mongo registry: %w", err)
		}
		return registry, registry, nil
	default:
		return nil, nil, fmt.Errorf("unknown REGISTRY_TYPE %q", cfg.RegistryType)
	}
}
