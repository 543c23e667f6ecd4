package token

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"go.uber.org/zap"

	"github.com/findahub/accounts/cmd/config"
	"github.com/findahub/accounts/constant"
	redisrepo "github.com/findahub/accounts/repository/redis"
	tokenrepo "github.com/findahub/accounts/repository/token"
	"github.com/findahub/accounts/utils/errors"
	"github.com/findahub/accounts/utils/logger"
)

// TokenApp exchanges user ids for opaque bearer tokens and resolves them
// back. Tokens do not expire; they are revoked on logout and on password
// change, at which point a fresh one is minted.
type TokenApp interface {
	// GetOrCreate is idempotent: repeated calls for the same user without a
	// revocation in between return the same key.
	GetOrCreate(ctx context.Context, userID uint64) (string, error)
	// Resolve maps a presented key back to a user id.
	Resolve(ctx context.Context, key string) (uint64, error)
	// Revoke deletes the user's token and its cached resolution.
	Revoke(ctx context.Context, userID uint64) error
}

type tokenAppImpl struct {
	config    *config.Config
	tokenRepo tokenrepo.TokenRepository
	redisRepo redisrepo.Repository
}

func NewTokenApp(config *config.Config, tokenRepo tokenrepo.TokenRepository, redisRepo redisrepo.Repository) TokenApp {
	return &tokenAppImpl{
		config:    config,
		tokenRepo: tokenRepo,
		redisRepo: redisRepo,
	}
}

func (s *tokenAppImpl) GetOrCreate(ctx context.Context, userID uint64) (string, error) {
	key, err := generateKey()
	if err != nil {
		logger.Error("[GetOrCreate] err generateKey", zap.String("error", err.Error()))
		return "", errors.SetCustomError(constant.ErrInternal)
	}

	// The repository inserts the candidate key only when the user has no
	// token yet; concurrent logins all observe the winning row.
	entity, err := s.tokenRepo.GetOrCreate(ctx, userID, key)
	if err != nil {
		logger.Error("[GetOrCreate] err tokenRepo.GetOrCreate", zap.String("error", err.Error()))
		return "", errors.SetCustomError(constant.ErrInternal)
	}

	return entity.Key, nil
}

func (s *tokenAppImpl) Resolve(ctx context.Context, key string) (uint64, error) {
	if len(key) != constant.TokenKeyLen {
		return 0, errors.SetCustomError(constant.ErrUnauthorize)
	}

	// Cache hit avoids a store round trip on every authenticated request.
	if userID, err := s.redisRepo.GetTokenUser(ctx, key); err == nil && userID != 0 {
		return userID, nil
	}

	entity, err := s.tokenRepo.GetByKey(ctx, key)
	if err != nil {
		logger.Error("[Resolve] err tokenRepo.GetByKey", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}
	if entity == nil {
		return 0, errors.SetCustomError(constant.ErrUnauthorize)
	}

	if err := s.redisRepo.SetTokenUser(ctx, key, entity.UserID, s.config.Auth.TokenCacheTTL); err != nil {
		logger.Warn("[Resolve] err redisRepo.SetTokenUser", zap.String("error", err.Error()))
	}

	return entity.UserID, nil
}

func (s *tokenAppImpl) Revoke(ctx context.Context, userID uint64) error {
	entity, err := s.tokenRepo.GetByUser(ctx, userID)
	if err != nil {
		logger.Error("[Revoke] err tokenRepo.GetByUser", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if entity == nil {
		return nil
	}

	if err := s.tokenRepo.DeleteByUser(ctx, userID); err != nil {
		logger.Error("[Revoke] err tokenRepo.DeleteByUser", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	// Drop the cached resolution so revocation takes effect immediately.
	if err := s.redisRepo.DeleteTokenUser(ctx, entity.Key); err != nil {
		logger.Warn("[Revoke] err redisRepo.DeleteTokenUser", zap.String("error", err.Error()))
	}

	return nil
}

// generateKey produces a 40-hex-char opaque token key.
func generateKey() (string, error) {
	raw := make([]byte, constant.TokenKeyLen/2)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}
