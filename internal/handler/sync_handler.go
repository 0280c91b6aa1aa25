package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/inboxlane/inboxlane/internal/service"
	"github.com/inboxlane/inboxlane/pkg/errcode"
	"github.com/inboxlane/inboxlane/pkg/response"
)

// Patch types accepted by PatchSync
const (
	PatchAddMessage = "add_message"
	PatchMarkRead   = "mark_read"
)

// SyncHandler handles snapshot pushes and reads
type SyncHandler struct {
	syncService *service.SyncService
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(syncService *service.SyncService) *SyncHandler {
	return &SyncHandler{syncService: syncService}
}

type ingestResponse struct {
	Ok            bool               `json:"ok"`
	Conversations service.SyncCounts `json:"conversations"`
	Messages      service.SyncCounts `json:"messages"`
}

// Ingest handles POST /sync, a full snapshot push from the extension
func (h *SyncHandler) Ingest(ctx context.Context, c *app.RequestContext) {
	var req service.SnapshotRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	result, err := h.syncService.IngestSnapshot(ctx, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, &ingestResponse{
		Ok:            true,
		Conversations: result.Conversations,
		Messages:      result.Messages,
	})
}

type snapshotResponse struct {
	Ok bool `json:"ok"`
	// Data is null until the first snapshot lands, so the dashboard can tell
	// "no data yet" from "empty inbox".
	Data *service.SnapshotData `json:"data"`
}

// Snapshot handles GET /sync, the dashboard's full dataset read
func (h *SyncHandler) Snapshot(ctx context.Context, c *app.RequestContext) {
	data, err := h.syncService.Snapshot(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, &snapshotResponse{Ok: true, Data: data})
}

type patchRequest struct {
	Type     string               `json:"type"`
	Message  *service.SyncMessage `json:"message"`
	ThreadId string               `json:"threadId"`
}

// Patch handles PATCH /sync, a tagged-union incremental update. The type is
// dispatched once here; services never see the union.
func (h *SyncHandler) Patch(ctx context.Context, c *app.RequestContext) {
	var req patchRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	switch req.Type {
	case PatchAddMessage:
		if req.Message == nil {
			response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
			return
		}
		result, err := h.syncService.AddMessage(ctx, req.Message)
		if err != nil {
			response.Error(ctx, c, err)
			return
		}
		response.Success(ctx, c, map[string]interface{}{
			"ok":      true,
			"exists":  result.Exists,
			"skipped": result.Skipped,
		})

	case PatchMarkRead:
		if err := h.syncService.MarkReadByThread(ctx, req.ThreadId); err != nil {
			response.Error(ctx, c, err)
			return
		}
		response.Success(ctx, c, map[string]interface{}{"ok": true})

	default:
		response.ErrorWithCode(ctx, c, errcode.ErrUnknownPatch)
	}
}
