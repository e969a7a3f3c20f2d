package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-account-go/internal/account"
	"github.com/ovaphlow/pitchfork/service-account-go/internal/account/cache"
	"github.com/ovaphlow/pitchfork/service-account-go/internal/account/repo"
	"github.com/ovaphlow/pitchfork/service-account-go/internal/account/token"
	"github.com/ovaphlow/pitchfork/service-account-go/internal/config"
	"github.com/ovaphlow/pitchfork/service-account-go/internal/router"
	"github.com/ovaphlow/pitchfork/service-account-go/pkg/database"
	"github.com/ovaphlow/pitchfork/service-account-go/pkg/utilities"
)

func main() {
	// best-effort: a missing .env just means the real environment is used
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	lg, err := utilities.Init(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	sugar := lg.Sugar()
	sugar.Infow("starting service-account-go", "store", cfg.StoreBackend, "cache", cfg.CacheBackend, "hasher", cfg.PasswordHasher)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, sugar)
	if err != nil {
		sugar.Fatalw("store init failed", "err", err)
	}
	defer closeStore()

	c, closeCache, err := openCache(ctx, cfg)
	if err != nil {
		sugar.Fatalw("cache init failed", "err", err)
	}
	defer closeCache()
	if c != nil {
		store = cache.NewCachedStore(store, c, cfg.CacheTTL, sugar)
	}

	hasher, err := account.NewHasher(cfg.PasswordHasher, cfg.BcryptCost)
	if err != nil {
		sugar.Fatalw("password hasher", "err", err)
	}
	if _, plain := hasher.(account.PlaintextHasher); plain {
		sugar.Warn("passwords are stored in plaintext; set PASSWORD_HASHER=bcrypt for new deployments")
	}

	issuer, err := token.NewIssuer(cfg.Token)
	if err != nil {
		sugar.Fatalw("token issuer", "err", err)
	}

	svc := account.NewService(store, issuer, hasher, sugar)
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router.RegisterRoutes(sugar, account.NewHandler(svc, sugar), issuer),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("http server failed", "err", err)
		}
	}()
	sugar.Infow("listening", "addr", cfg.HTTPAddr)

	<-ctx.Done()
	sugar.Info("shutting down")

	doneCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(doneCtx); err != nil {
		sugar.Warnw("http server shutdown failed", "err", err)
	}
	sugar.Info("goodbye")
}

func openStore(ctx context.Context, cfg config.Config, logger *zap.SugaredLogger) (repo.Store, func(), error) {
	if cfg.StoreBackend == config.StoreMemory {
		logger.Warn("using in-memory store; accounts are lost on restart")
		return repo.NewMemoryStore(), func() {}, nil
	}

	sqlDB, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	db := sqlx.NewDb(sqlDB, "postgres")
	users := repo.NewUserRepo(db)
	if err := users.EnsureTable(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ensure table: %w", err)
	}
	return users, func() { db.Close() }, nil
}

// openCache returns a nil cache for CACHE_BACKEND=none.
func openCache(ctx context.Context, cfg config.Config) (cache.Cache, func(), error) {
	switch cfg.CacheBackend {
	case config.CacheNone:
		return nil, func() {}, nil
	case config.CacheRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		return cache.NewRedisCache(client), func() { client.Close() }, nil
	}
	return cache.NewMemoryCache(), func() {}, nil
}
