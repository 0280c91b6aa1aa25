package middleware

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/inboxlane/inboxlane/common"
	"github.com/inboxlane/inboxlane/internal/config"
	"github.com/inboxlane/inboxlane/pkg/constant"
	"github.com/inboxlane/inboxlane/pkg/errcode"
	"github.com/inboxlane/inboxlane/pkg/jwt"
	"github.com/inboxlane/inboxlane/pkg/response"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer token
	BearerPrefix = "Bearer "
	// AccountIdKey is the context key for account Id
	AccountIdKey = "account_id"
	// ClientKey is the context key for the client kind
	ClientKey = "client"
)

// Auth authenticates either a dashboard JWT or the extension's derived
// static key, both carried as a bearer token
func Auth() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		authHeader := string(c.GetHeader(AuthorizationHeader))
		if authHeader == "" {
			response.ErrorWithCode(ctx, c, errcode.ErrTokenMissing)
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			response.ErrorWithCode(ctx, c, errcode.ErrTokenInvalid)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := ParseTokenWithFallback(tokenString, config.GlobalConfig)
		if err != nil {
			response.ErrorWithCode(ctx, c, errcode.ErrTokenInvalid)
			c.Abort()
			return
		}

		c.Set(AccountIdKey, claims.AccountId)
		c.Set(ClientKey, claims.Client)

		c.Next(ctx)
	}
}

// ParseTokenWithFallback tries a dashboard JWT first, then the extension's
// derived key. The extension has no login flow, its key is static.
func ParseTokenWithFallback(tokenString string, cfg *config.Config) (*jwt.Claims, error) {
	claims, err := jwt.ParseToken(tokenString, cfg.Auth.Secret)
	if err == nil {
		return claims, nil
	}

	extKey := common.DeriveExtensionKey(constant.DefaultAccountId, cfg.Auth.Secret, cfg.Auth.ExtensionKeyBytes)
	if subtle.ConstantTimeCompare([]byte(tokenString), []byte(extKey)) == 1 {
		return &jwt.Claims{
			AccountId: constant.DefaultAccountId,
			Client:    constant.ClientExtension,
		}, nil
	}

	return nil, err
}

// GetAccountId gets the account Id from context
func GetAccountId(c *app.RequestContext) string {
	if v, ok := c.Get(AccountIdKey); ok {
		return v.(string)
	}
	return ""
}

// GetClient gets the client kind from context
func GetClient(c *app.RequestContext) string {
	if v, ok := c.Get(ClientKey); ok {
		return v.(string)
	}
	return ""
}
