package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/inboxlane/inboxlane/internal/service"
	"github.com/inboxlane/inboxlane/pkg/errcode"
	"github.com/inboxlane/inboxlane/pkg/response"
)

// ConversationHandler handles CRM operations on conversations
type ConversationHandler struct {
	convService *service.ConversationService
}

// NewConversationHandler creates a new ConversationHandler
func NewConversationHandler(convService *service.ConversationService) *ConversationHandler {
	return &ConversationHandler{convService: convService}
}

type noteRequest struct {
	Note string `json:"note"`
}

// SetNote handles PUT /conversations/:thread_id/note. An empty note clears it.
func (h *ConversationHandler) SetNote(ctx context.Context, c *app.RequestContext) {
	threadId := c.Param("thread_id")

	var req noteRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	if err := h.convService.SetNote(ctx, threadId, req.Note); err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, map[string]interface{}{"ok": true})
}

type starRequest struct {
	Starred bool `json:"starred"`
}

// SetStarred handles POST /conversations/:thread_id/star
func (h *ConversationHandler) SetStarred(ctx context.Context, c *app.RequestContext) {
	threadId := c.Param("thread_id")

	var req starRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	if err := h.convService.SetStarred(ctx, threadId, req.Starred); err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, map[string]interface{}{"ok": true})
}

// MarkRead handles POST /conversations/:thread_id/read
func (h *ConversationHandler) MarkRead(ctx context.Context, c *app.RequestContext) {
	threadId := c.Param("thread_id")

	if err := h.convService.MarkRead(ctx, threadId); err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, map[string]interface{}{"ok": true})
}
