package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinilab/auth-service/internal/api"
	"github.com/clinilab/auth-service/internal/core/domain"
	"github.com/clinilab/auth-service/internal/core/ports"
	"github.com/clinilab/auth-service/internal/core/service"
	"github.com/clinilab/auth-service/internal/infrastructure/config"
	mongodb "github.com/clinilab/auth-service/internal/infrastructure/db/mongo"
	redisdb "github.com/clinilab/auth-service/internal/infrastructure/db/redis"
	"github.com/clinilab/auth-service/pkg/logger"
	"github.com/clinilab/auth-service/pkg/password"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger is not up yet; fall back to stderr.
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer rdb.Close()

	accountRepo := mongodb.NewAccountRepository(db)
	if err := accountRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	hasher := password.NewHasher()
	tokenService := service.NewTokenService(service.TokenConfig{
		Secret:     cfg.JWT.Secret,
		AccessTTL:  cfg.JWT.AccessTTL,
		RefreshTTL: cfg.JWT.RefreshTTL,
	})
	authService := service.NewAuthService(accountRepo, tokenService, hasher, log)

	if err := seedAdmin(ctx, accountRepo, hasher, cfg.Bootstrap, log); err != nil {
		log.Fatal().Err(err).Msg("failed to seed bootstrap admin")
	}

	limiter := redisdb.NewLoginLimiter(rdb, cfg.RateLimit.LoginAttempts, cfg.RateLimit.Window)

	e := api.NewRouter(api.Dependencies{
		AuthService: authService,
		Tokens:      tokenService,
		Accounts:    accountRepo,
		Limiter:     limiter,
		Mongo:       db,
		Redis:       rdb,
		Logger:      log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting auth service")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("auth service stopped")
}

// seedAdmin creates the bootstrap admin account when the store is empty and
// credentials are configured. A populated store is never touched.
func seedAdmin(ctx context.Context, repo ports.AccountRepository, hasher *password.Hasher, cfg config.BootstrapConfig, log zerolog.Logger) error {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return nil
	}

	existing, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	hash, err := hasher.Hash(cfg.AdminPassword)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = repo.Create(ctx, &domain.Account{
		Username:     strings.ToLower(strings.TrimSpace(cfg.AdminUsername)),
		GivenName:    "System",
		FamilyName:   "Administrator",
		Role:         domain.RoleAdmin,
		Active:       true,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return err
	}

	log.Info().Str("username", cfg.AdminUsername).Msg("bootstrap admin created")
	return nil
}
