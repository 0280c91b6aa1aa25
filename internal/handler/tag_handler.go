package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/inboxlane/inboxlane/internal/service"
	"github.com/inboxlane/inboxlane/pkg/errcode"
	"github.com/inboxlane/inboxlane/pkg/response"
)

// TagHandler handles tag requests
type TagHandler struct {
	tagService *service.TagService
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(tagService *service.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

type createTagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Create handles POST /tags
func (h *TagHandler) Create(ctx context.Context, c *app.RequestContext) {
	var req createTagRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	tag, err := h.tagService.Create(ctx, req.Name, req.Color)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, tag)
}

// List handles GET /tags
func (h *TagHandler) List(ctx context.Context, c *app.RequestContext) {
	tags, err := h.tagService.List(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, tags)
}

// Delete handles DELETE /tags/:tag_id
func (h *TagHandler) Delete(ctx context.Context, c *app.RequestContext) {
	tagId := c.Param("tag_id")
	if tagId == "" {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	if err := h.tagService.Delete(ctx, tagId); err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, map[string]interface{}{"ok": true})
}

type assignTagRequest struct {
	TagId string `json:"tagId"`
}

// Assign handles POST /conversations/:thread_id/tags
func (h *TagHandler) Assign(ctx context.Context, c *app.RequestContext) {
	threadId := c.Param("thread_id")

	var req assignTagRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	if err := h.tagService.Assign(ctx, threadId, req.TagId); err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, map[string]interface{}{"ok": true})
}

// Unassign handles DELETE /conversations/:thread_id/tags/:tag_id
func (h *TagHandler) Unassign(ctx context.Context, c *app.RequestContext) {
	threadId := c.Param("thread_id")
	tagId := c.Param("tag_id")

	if err := h.tagService.Unassign(ctx, threadId, tagId); err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, map[string]interface{}{"ok": true})
}
