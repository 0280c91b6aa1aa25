package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/inboxlane/inboxlane/internal/service"
	"github.com/inboxlane/inboxlane/pkg/errcode"
	"github.com/inboxlane/inboxlane/pkg/response"
)

// ReminderHandler handles reminder requests
type ReminderHandler struct {
	reminderService *service.ReminderService
}

// NewReminderHandler creates a new ReminderHandler
func NewReminderHandler(reminderService *service.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminderService: reminderService}
}

type setReminderRequest struct {
	RemindAt int64  `json:"remindAt"`
	Note     string `json:"note"`
}

// Set handles POST /conversations/:thread_id/reminder
func (h *ReminderHandler) Set(ctx context.Context, c *app.RequestContext) {
	threadId := c.Param("thread_id")

	var req setReminderRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	rem, err := h.reminderService.Set(ctx, threadId, req.RemindAt, req.Note)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, rem)
}

// List handles GET /reminders
func (h *ReminderHandler) List(ctx context.Context, c *app.RequestContext) {
	rems, err := h.reminderService.List(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, rems)
}

// MarkHandled handles POST /reminders/:reminder_id/handled
func (h *ReminderHandler) MarkHandled(ctx context.Context, c *app.RequestContext) {
	reminderId := c.Param("reminder_id")
	if reminderId == "" {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	if err := h.reminderService.MarkHandled(ctx, reminderId); err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, map[string]interface{}{"ok": true})
}

// Delete handles DELETE /reminders/:reminder_id
func (h *ReminderHandler) Delete(ctx context.Context, c *app.RequestContext) {
	reminderId := c.Param("reminder_id")
	if reminderId == "" {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	if err := h.reminderService.Delete(ctx, reminderId); err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, map[string]interface{}{"ok": true})
}
