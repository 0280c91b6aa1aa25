package service

import (
	"context"

	"github.com/inboxlane/inboxlane/common"
	"github.com/inboxlane/inboxlane/internal/config"
	"github.com/inboxlane/inboxlane/internal/entity"
	"github.com/inboxlane/inboxlane/internal/repository"
	"github.com/inboxlane/inboxlane/pkg/constant"
	"github.com/inboxlane/inboxlane/pkg/errcode"
	"github.com/inboxlane/inboxlane/pkg/jwt"
	"github.com/mbeoliero/kit/log"
	"golang.org/x/crypto/bcrypt"
)

// LoginResult carries the issued token plus the account it belongs to
type LoginResult struct {
	Token   string              `json:"token"`
	Account *entity.AccountInfo `json:"account"`
	// ExtensionKey is the static key the browser extension authenticates
	// with; surfaced at login so the dashboard can show it during setup.
	ExtensionKey string `json:"extensionKey"`
}

// AuthService handles the single local account and its tokens
type AuthService struct {
	accountRepo *repository.AccountRepo
	tokenStore  *jwt.TokenStore
	cfg         *config.AuthConfig
}

// NewAuthService creates a new AuthService
func NewAuthService(accountRepo *repository.AccountRepo, tokenStore *jwt.TokenStore, cfg *config.AuthConfig) *AuthService {
	return &AuthService{accountRepo: accountRepo, tokenStore: tokenStore, cfg: cfg}
}

// Register creates the local account. The deployment is single-user, so a
// second registration is rejected.
func (s *AuthService) Register(ctx context.Context, nickname, password string) (*entity.AccountInfo, error) {
	if nickname == "" || len(password) < 6 {
		return nil, errcode.ErrInvalidParam
	}

	exists, err := s.accountRepo.Exists(ctx, constant.DefaultAccountId)
	if err != nil {
		return nil, errcode.ErrInternalServer.Wrap(err)
	}
	if exists {
		return nil, errcode.ErrAccountExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errcode.ErrInternalServer.Wrap(err)
	}

	acc := &entity.Account{
		Id:       constant.DefaultAccountId,
		Nickname: nickname,
		Password: string(hash),
	}
	if err := s.accountRepo.Create(ctx, acc); err != nil {
		return nil, errcode.ErrInternalServer.Wrap(err)
	}

	log.CtxInfo(ctx, "account %s registered", acc.Id)
	return acc.ToAccountInfo(), nil
}

// Login verifies the password and issues a fresh dashboard token, revoking
// earlier ones
func (s *AuthService) Login(ctx context.Context, password string) (*LoginResult, error) {
	acc, err := s.accountRepo.GetById(ctx, constant.DefaultAccountId)
	if err != nil {
		return nil, errcode.ErrInternalServer.Wrap(err)
	}
	if acc == nil {
		return nil, errcode.ErrAccountMissing
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.Password), []byte(password)); err != nil {
		return nil, errcode.ErrPasswordWrong
	}

	token, err := jwt.GenerateToken(acc.Id, constant.ClientDashboard, s.cfg.Secret, s.cfg.ExpireHours)
	if err != nil {
		return nil, errcode.ErrInternalServer.Wrap(err)
	}

	if err := s.tokenStore.RevokeTokens(ctx, acc.Id, constant.ClientDashboard); err != nil {
		log.CtxError(ctx, "revoke old tokens failed: %v", err)
	}
	if err := s.tokenStore.StoreToken(ctx, acc.Id, constant.ClientDashboard, token); err != nil {
		return nil, errcode.ErrInternalServer.Wrap(err)
	}

	return &LoginResult{
		Token:        token,
		Account:      acc.ToAccountInfo(),
		ExtensionKey: s.ExtensionKey(acc.Id),
	}, nil
}

// ExtensionKey derives the static key the extension authenticates with
func (s *AuthService) ExtensionKey(accountId string) string {
	return common.DeriveExtensionKey(accountId, s.cfg.Secret, s.cfg.ExtensionKeyBytes)
}
