package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/inboxlane/inboxlane/internal/config"
	"github.com/inboxlane/inboxlane/internal/gateway"
	"github.com/inboxlane/inboxlane/internal/handler"
	"github.com/inboxlane/inboxlane/internal/repository"
	"github.com/inboxlane/inboxlane/internal/router"
	"github.com/inboxlane/inboxlane/internal/service"
	"github.com/inboxlane/inboxlane/pkg/constant"
	"github.com/inboxlane/inboxlane/pkg/jwt"
	"github.com/mbeoliero/kit/log"
)

func main() {
	ctx := context.TODO()

	// Load configuration
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		log.CtxError(ctx, "failed to load config: %v", err)
		panic(err)
	}

	log.CtxInfo(ctx, "config loaded: mode=%s", cfg.Server.Mode)

	// Initialize Redis key prefix
	constant.InitRedisKeyPrefix(cfg.Redis.KeyPrefix)
	log.CtxInfo(ctx, "redis key prefix: %s", constant.GetRedisKeyPrefix())

	// Initialize repositories
	repos, err := repository.NewRepositories(cfg)
	if err != nil {
		log.CtxError(ctx, "failed to initialize repositories: %v", err)
		panic(err)
	}
	defer repos.Close()

	// Check database connection
	if err := repos.CheckConnection(ctx); err != nil {
		log.CtxError(ctx, "database connection check failed: %v", err)
		panic(err)
	}
	log.CtxInfo(ctx, "database connection established")

	// Run schema migrations
	migrateResult, err := repos.Migrate()
	if err != nil {
		log.CtxError(ctx, "migration failed: %v", err)
		panic(err)
	}
	log.CtxInfo(ctx, "schema at version %d (changed=%v)", migrateResult.Version, migrateResult.Changed)

	// Initialize services
	tokenStore := jwt.NewTokenStore(repos.Redis, cfg.Auth.ExpireHours)
	authService := service.NewAuthService(repos.Account, tokenStore, &cfg.Auth)
	syncService := service.NewSyncService(repos.Conversation, repos.Message, repos.Tag, repos.Reminder)
	realtimeService := service.NewRealtimeService(repos.Buffer, &cfg.Buffer)
	convService := service.NewConversationService(repos.Conversation)
	tagService := service.NewTagService(repos.Tag, convService)
	reminderService := service.NewReminderService(repos.Reminder, repos.Conversation, convService)

	// Initialize WebSocket gateway and wire it as the realtime pusher
	wsServer := gateway.NewWsServer(cfg, tokenStore)
	realtimeService.SetPusher(wsServer)
	wsServer.Run(ctx)

	// Initialize handlers
	handlers := &router.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Sync:         handler.NewSyncHandler(syncService),
		Realtime:     handler.NewRealtimeHandler(realtimeService),
		Conversation: handler.NewConversationHandler(convService),
		Tag:          handler.NewTagHandler(tagService),
		Reminder:     handler.NewReminderHandler(reminderService),
	}

	// Create Hertz server
	h := server.Default(
		server.WithHostPorts(fmt.Sprintf(":%d", cfg.Server.HTTPPort)),
	)

	// Setup routes
	router.SetupRouter(h, handlers, wsServer)

	log.CtxInfo(ctx, "server starting on port %d", cfg.Server.HTTPPort)

	// Start server in goroutine
	go func() {
		h.Spin()
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.CtxInfo(ctx, "shutting down server...")

	// Graceful shutdown
	if err := h.Shutdown(ctx); err != nil {
		log.CtxError(ctx, "server shutdown error: %v", err)
	}

	log.CtxInfo(ctx, "server stopped")
}
