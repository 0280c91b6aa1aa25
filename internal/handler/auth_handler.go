package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/inboxlane/inboxlane/internal/service"
	"github.com/inboxlane/inboxlane/pkg/errcode"
	"github.com/inboxlane/inboxlane/pkg/response"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(ctx context.Context, c *app.RequestContext) {
	var req registerRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	account, err := h.authService.Register(ctx, req.Nickname, req.Password)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, account)
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(ctx context.Context, c *app.RequestContext) {
	var req loginRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	result, err := h.authService.Login(ctx, req.Password)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, result)
}
