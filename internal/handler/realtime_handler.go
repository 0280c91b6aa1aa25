package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/inboxlane/inboxlane/internal/entity"
	"github.com/inboxlane/inboxlane/internal/middleware"
	"github.com/inboxlane/inboxlane/internal/service"
	"github.com/inboxlane/inboxlane/pkg/errcode"
	"github.com/inboxlane/inboxlane/pkg/response"
)

// EventNewMessages is the only realtime event type accepted on push
const EventNewMessages = "new_messages"

// RealtimeHandler handles the realtime relay endpoints
type RealtimeHandler struct {
	realtimeService *service.RealtimeService
}

// NewRealtimeHandler creates a new RealtimeHandler
func NewRealtimeHandler(realtimeService *service.RealtimeService) *RealtimeHandler {
	return &RealtimeHandler{realtimeService: realtimeService}
}

type pushRequest struct {
	Type     string                      `json:"type"`
	Messages []*service.RealtimeIncoming `json:"messages"`
}

type pushResponse struct {
	Ok    bool `json:"ok"`
	Added int  `json:"added"`
	Total int  `json:"total"`
}

// Push handles POST /realtime, a batch of just-observed messages
func (h *RealtimeHandler) Push(ctx context.Context, c *app.RequestContext) {
	var req pushRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}
	if req.Type != EventNewMessages {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	accountId := middleware.GetAccountId(c)
	added, total, err := h.realtimeService.Append(ctx, accountId, req.Messages)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, &pushResponse{Ok: true, Added: added, Total: total})
}

type readResponse struct {
	Ok         bool                    `json:"ok"`
	Messages   []*entity.RealtimeEntry `json:"messages"`
	Count      int                     `json:"count"`
	LastUpdate int64                   `json:"lastUpdate"`
}

// Read handles GET /realtime?since=&limit=&clear=
func (h *RealtimeHandler) Read(ctx context.Context, c *app.RequestContext) {
	since := parseSince(string(c.Query("since")))
	limit, _ := strconv.Atoi(string(c.Query("limit")))
	clear := string(c.Query("clear")) == "true" || string(c.Query("clear")) == "1"

	accountId := middleware.GetAccountId(c)
	entries, lastUpdate, err := h.realtimeService.Read(ctx, accountId, since, limit, clear)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, &readResponse{
		Ok:         true,
		Messages:   entries,
		Count:      len(entries),
		LastUpdate: lastUpdate,
	})
}

// parseSince accepts unix milliseconds or RFC3339; anything unparseable
// means "from the beginning"
func parseSince(raw string) int64 {
	if raw == "" {
		return 0
	}
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return ms
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UnixMilli()
	}
	return 0
}
