package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"authgw/internal/modules/auth"
	authhttp "authgw/internal/modules/auth/http"
	"authgw/internal/modules/auth/infra/pg"
	"authgw/internal/modules/auth/store"
	usershttp "authgw/internal/modules/users/http"
	"authgw/internal/platform/config"
	phttp "authgw/internal/platform/http"
	"authgw/internal/platform/logger"
	"authgw/internal/platform/session"
	"authgw/internal/platform/supabase"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.Debug)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zl.Sync()
	sugar := zl.Sugar()

	provider := supabase.New(cfg.SupabaseURL, cfg.SupabaseServiceKey, sugar.Named("supabase"))

	var (
		tracker store.OTCTracker
		resets  store.ResetTokenCache
	)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		tracker = store.NewRedisTracker(rdb, cfg.OTPExpiry)
		resets = store.NewRedisResetCache(rdb)
		sugar.Infow("using redis verification stores", "addr", cfg.RedisAddr)
	} else {
		tracker = store.NewMemoryTracker()
		resets = store.NewMemoryResetCache()
	}

	var profiles auth.ProfileDirectory
	if cfg.PGDSN != "" {
		pool, err := pg.Open(context.Background(), cfg.PGDSN)
		if err != nil {
			sugar.Fatalw("profile database unreachable", "error", err)
		}
		defer pool.Close()
		profiles = pg.NewProfileRepo(pool)
		sugar.Infow("profile directory enabled")
	}

	svc := auth.NewService(provider, tracker, resets, profiles, cfg.OTPExpiry, sugar.Named("auth"))
	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionMaxAge)

	app := phttp.NewServer(
		phttp.Options{AppName: "authgw", AllowedOrigins: cfg.AllowedOrigins},
		authhttp.NewModule(svc, sessions),
		usershttp.NewModule(svc, sessions),
	)

	sugar.Infow("listening", "addr", cfg.HTTPAddr)
	if err := app.Listen(cfg.HTTPAddr); err != nil {
		sugar.Fatalw("server exited", "error", err)
	}
}
