package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"

	"github.com/ecell-iiitr/gatepass/internal/api"
	"github.com/ecell-iiitr/gatepass/internal/core/ports"
	"github.com/ecell-iiitr/gatepass/internal/core/service"
	"github.com/ecell-iiitr/gatepass/internal/infrastructure/config"
	"github.com/ecell-iiitr/gatepass/internal/infrastructure/lock"
	"github.com/ecell-iiitr/gatepass/internal/infrastructure/redis"
	mongostore "github.com/ecell-iiitr/gatepass/internal/infrastructure/store/mongo"
	"github.com/ecell-iiitr/gatepass/internal/infrastructure/store/sheets"
	"github.com/ecell-iiitr/gatepass/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		fallback := logger.Init(logger.Options{})
		fallback.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Row store ---
	var store ports.RowStore
	var pinger ports.Pinger
	switch cfg.StoreBackend {
	case "sheets":
		s, err := sheets.New(ctx, sheets.Config{
			SpreadsheetID:   cfg.Sheets.SpreadsheetID,
			CredentialsFile: cfg.Sheets.CredentialsFile,
			SheetName:       cfg.Sheets.SheetName,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("sheets store init failed")
		}
		store, pinger = s, s
	case "mongo":
		_, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connect failed")
		}
		s := mongostore.NewParticipantStore(db)
		if err := s.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("mongo index setup failed")
		}
		store, pinger = s, s
	default:
		log.Fatal().Str("backend", cfg.StoreBackend).Msg("unknown STORE_BACKEND")
	}

	// --- Check-in lock: Redis lease across replicas, keyed mutex otherwise ---
	var locker ports.CheckinLocker = lock.NewKeyedMutex()
	var rdb *goredis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connect failed")
		}
		locker = lock.NewRedisLock(rdb)
	}

	// --- Services & router ---
	authService := service.NewAuthService(cfg.Users, cfg.JWTSecret, cfg.TokenTTL)
	participantService := service.NewParticipantService(store, locker, log)

	e := api.NewRouter(api.Dependencies{
		AuthService:        authService,
		ParticipantService: participantService,
		Store:              pinger,
		Redis:              rdb,
		JWTSecret:          cfg.JWTSecret,
		Logger:             log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreBackend).Msg("gatepass api listening")
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("server stopped")
		}
	}()

	// signal.Notify requires the channel to be buffered
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
