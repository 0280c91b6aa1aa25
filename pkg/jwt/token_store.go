package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/inboxlane/inboxlane/pkg/constant"
	"github.com/redis/go-redis/v9"
)

// Token status constants
const (
	TokenStatusNormal  = 1 // Token is valid
	TokenStatusRevoked = 2 // Token was revoked by a new login
	TokenStatusLogout  = 3 // Token was logged out
)

// TokenStore manages token storage in Redis
type TokenStore struct {
	rdb          *redis.Client
	accessExpire time.Duration
}

// NewTokenStore creates a new TokenStore
func NewTokenStore(rdb *redis.Client, expireHours int) *TokenStore {
	return &TokenStore{
		rdb:          rdb,
		accessExpire: time.Duration(expireHours) * time.Hour,
	}
}

// tokenKey generates the Redis key for an account's tokens per client kind
func (s *TokenStore) tokenKey(accountId, client string) string {
	return fmt.Sprintf(constant.RedisKeyToken(), accountId, client)
}

// StoreToken stores a token in Redis with status
func (s *TokenStore) StoreToken(ctx context.Context, accountId, client, token string) error {
	key := s.tokenKey(accountId, client)

	// Hash keeps multiple live tokens per account/client (e.g. two browser tabs)
	if err := s.rdb.HSet(ctx, key, token, TokenStatusNormal).Err(); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	if err := s.rdb.Expire(ctx, key, s.accessExpire).Err(); err != nil {
		return fmt.Errorf("failed to set token expiration: %w", err)
	}

	return nil
}

// ValidateTokenStatus checks if a token exists and is valid in Redis
func (s *TokenStore) ValidateTokenStatus(ctx context.Context, accountId, client, token string) (bool, error) {
	key := s.tokenKey(accountId, client)

	status, err := s.rdb.HGet(ctx, key, token).Int()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get token status: %w", err)
	}

	return status == TokenStatusNormal, nil
}

// RevokeTokens marks all tokens for an account/client as revoked
func (s *TokenStore) RevokeTokens(ctx context.Context, accountId, client string) error {
	key := s.tokenKey(accountId, client)

	tokens, err := s.rdb.HKeys(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to list tokens: %w", err)
	}

	for _, token := range tokens {
		if err := s.rdb.HSet(ctx, key, token, TokenStatusRevoked).Err(); err != nil {
			return fmt.Errorf("failed to revoke token: %w", err)
		}
	}

	return nil
}
