package router

import (
	"context"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/websocket"
	"github.com/inboxlane/inboxlane/internal/config"
	"github.com/inboxlane/inboxlane/internal/gateway"
	"github.com/inboxlane/inboxlane/internal/handler"
	"github.com/inboxlane/inboxlane/internal/middleware"
)

// Handlers holds all HTTP handlers
type Handlers struct {
	Auth         *handler.AuthHandler
	Sync         *handler.SyncHandler
	Realtime     *handler.RealtimeHandler
	Conversation *handler.ConversationHandler
	Tag          *handler.TagHandler
	Reminder     *handler.ReminderHandler
}

// SetupRouter sets up all routes
func SetupRouter(h *server.Hertz, handlers *Handlers, wsServer *gateway.WsServer) {
	cfg := config.GlobalConfig

	h.Use(middleware.CORS())

	// Health check
	h.GET("/health", func(ctx context.Context, c *app.RequestContext) {
		c.JSON(consts.StatusOK, map[string]string{"status": "ok"})
	})

	// Auth routes (no auth required)
	authGroup := h.Group("/auth")
	{
		authGroup.POST("/register", handlers.Auth.Register)
		authGroup.POST("/login", handlers.Auth.Login)
	}

	// Sync routes: the extension pushes, the dashboard reads and patches
	syncGroup := h.Group("/sync", middleware.Auth())
	{
		syncGroup.POST("", handlers.Sync.Ingest)
		syncGroup.GET("", handlers.Sync.Snapshot)
		syncGroup.PATCH("", handlers.Sync.Patch)
	}

	// Realtime relay routes
	realtimeGroup := h.Group("/realtime", middleware.Auth())
	{
		realtimeGroup.POST("", handlers.Realtime.Push)
		realtimeGroup.GET("", handlers.Realtime.Read)
	}

	// Tag routes
	tagGroup := h.Group("/tags", middleware.Auth())
	{
		tagGroup.POST("", handlers.Tag.Create)
		tagGroup.GET("", handlers.Tag.List)
		tagGroup.DELETE("/:tag_id", handlers.Tag.Delete)
	}

	// Per-conversation CRM routes
	convGroup := h.Group("/conversations", middleware.Auth())
	{
		convGroup.POST("/:thread_id/tags", handlers.Tag.Assign)
		convGroup.DELETE("/:thread_id/tags/:tag_id", handlers.Tag.Unassign)
		convGroup.PUT("/:thread_id/note", handlers.Conversation.SetNote)
		convGroup.POST("/:thread_id/star", handlers.Conversation.SetStarred)
		convGroup.POST("/:thread_id/read", handlers.Conversation.MarkRead)
		convGroup.POST("/:thread_id/reminder", handlers.Reminder.Set)
	}

	// Reminder routes
	reminderGroup := h.Group("/reminders", middleware.Auth())
	{
		reminderGroup.GET("", handlers.Reminder.List)
		reminderGroup.POST("/:reminder_id/handled", handlers.Reminder.MarkHandled)
		reminderGroup.DELETE("/:reminder_id", handlers.Reminder.Delete)
	}

	// WebSocket push channel with origin validation
	allowedOrigins := cfg.Server.AllowedOrigins
	upgrader := &websocket.HertzUpgrader{
		CheckOrigin: func(ctx *app.RequestContext) bool {
			return checkOrigin(ctx, allowedOrigins)
		},
	}

	h.GET("/ws", func(ctx context.Context, c *app.RequestContext) {
		wsServer.HandleConnection(ctx, c, upgrader)
	})
}

// checkOrigin validates the Origin header against allowed origins
func checkOrigin(ctx *app.RequestContext, allowedOrigins []string) bool {
	origin := string(ctx.Request.Header.Peek("Origin"))

	// No origin header: same-origin request or non-browser client
	if origin == "" {
		return true
	}

	if len(allowedOrigins) == 0 {
		return false
	}

	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			return true
		}
		if strings.EqualFold(origin, allowed) {
			return true
		}
	}

	return false
}
