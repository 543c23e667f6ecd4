package auth

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/findahub/accounts/constant"
	"github.com/findahub/accounts/model"
	userrepo "github.com/findahub/accounts/repository/user"
	"github.com/findahub/accounts/utils/errors"
	"github.com/findahub/accounts/utils/logger"
)

// Backend resolves credential pairs and ids to user records.
type Backend interface {
	// Authenticate returns the matching user, or (nil, nil) when the
	// identifier or password does not match. Callers never learn which
	// factor failed.
	Authenticate(ctx context.Context, identifier, password string) (*model.UserEntity, error)
	// GetByID returns the user with the given id, or (nil, nil) on a miss.
	GetByID(ctx context.Context, id uint64) (*model.UserEntity, error)
}

type backendImpl struct {
	userRepo userrepo.UserRepository
}

func NewBackend(userRepo userrepo.UserRepository) Backend {
	return &backendImpl{userRepo: userRepo}
}

func (b *backendImpl) Authenticate(ctx context.Context, identifier, password string) (*model.UserEntity, error) {
	// An empty identifier behaves like any other failed lookup.
	if identifier == "" {
		return nil, nil
	}

	// Email-shaped identifiers are looked up by email, everything else by
	// phone. Exactly one lookup: a miss never falls back to the other field.
	filter := &model.UserFilter{}
	if strings.ContainsRune(identifier, '@') {
		filter.Email = identifier
	} else {
		filter.Phone = identifier
	}

	user, err := b.userRepo.Get(ctx, filter)
	if err != nil {
		logger.Error("[Authenticate] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil
	}

	return user, nil
}

func (b *backendImpl) GetByID(ctx context.Context, id uint64) (*model.UserEntity, error) {
	user, err := b.userRepo.Get(ctx, &model.UserFilter{ID: id})
	if err != nil {
		logger.Error("[GetByID] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return user, nil
}
