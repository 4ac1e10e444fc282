package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashdoctor/telehealth-api/internal/api"
	"github.com/hashdoctor/telehealth-api/internal/core/service"
	"github.com/hashdoctor/telehealth-api/internal/infrastructure/ai"
	"github.com/hashdoctor/telehealth-api/internal/infrastructure/config"
	mongodb "github.com/hashdoctor/telehealth-api/internal/infrastructure/db/mongo"
	redisdb "github.com/hashdoctor/telehealth-api/internal/infrastructure/db/redis"
	"github.com/hashdoctor/telehealth-api/internal/infrastructure/queue"
	"github.com/hashdoctor/telehealth-api/pkg/logger"
)

//go:generate swag init -g cmd/api/main.go -o docs

// @title        HashDoctor Telehealth API
// @version      1.13a
// @description  Wallet payments, chat triage, call signaling and roster administration for the HashDoctor telehealth platform.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Repositories and stores ---
	userRepo := mongodb.NewUserRepository(db)
	chatRepo := mongodb.NewChatRepository(db)
	sessionStore := redisdb.NewSessionStore(rdb)
	presenceStore := redisdb.NewPresenceStore(rdb)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	// --- External AI collaborator ---
	triageClient := ai.New(cfg.OpenAI.APIKey, cfg.OpenAI.Model)

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, 24*time.Hour)
	directoryService := service.NewDirectoryService(userRepo, presenceStore, log)
	walletService := service.NewWalletService(userRepo, sessionStore, log)
	chatService := service.NewChatService(chatRepo, userRepo, triageClient, log)
	callService := service.NewCallService(log)
	insightService := service.NewInsightService(userRepo, triageClient, log)
	snapshotService := service.NewSnapshotService(userRepo, chatRepo, log)

	// Triage replies are generated off the request path, sharded per
	// conversation so turns within one thread stay ordered.
	dispatcher := queue.NewDispatcher(0, chatService, log)
	chatService.SetDispatcher(dispatcher)
	dispatcher.Start(ctx)

	if err := directoryService.Seed(ctx); err != nil {
		log.Fatal().Err(err).Msg("roster seeding failed")
	}

	e := api.NewRouter(api.Deps{
		DB:        db,
		Redis:     rdb,
		JWTSecret: cfg.JWTSecret,
		Logger:    log,

		Auth:      authService,
		Directory: directoryService,
		Wallet:    walletService,
		Chat:      chatService,
		Calls:     callService,
		Insights:  insightService,
		Snapshots: snapshotService,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("api listening")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
