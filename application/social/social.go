package social

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	tokenapp "github.com/findahub/accounts/application/token"
	"github.com/findahub/accounts/constant"
	"github.com/findahub/accounts/model"
	socialrepo "github.com/findahub/accounts/repository/social"
	txrepo "github.com/findahub/accounts/repository/tx"
	userrepo "github.com/findahub/accounts/repository/user"
	"github.com/findahub/accounts/utils/errors"
	"github.com/findahub/accounts/utils/logger"
)

// SocialApp reconciles third-party identity assertions with the local user
// population. PreSocialLogin always runs before the signup path; PopulateUser
// only runs when no existing account matched.
type SocialApp interface {
	// PopulateUser builds a not-yet-persisted candidate from provider data.
	PopulateUser(login *model.SocialLogin) *model.UserEntity
	// PreSocialLogin connects the social identity to an existing local user
	// matched by email. It returns (nil, nil) when it takes no action: the
	// session is already authenticated, the provider supplied no email, or
	// no local user matched.
	PreSocialLogin(ctx context.Context, sessionUserID uint64, login *model.SocialLogin) (*model.UserEntity, error)
	// Login runs the full flow and exchanges the resolved user for a token.
	Login(ctx context.Context, sessionUserID uint64, login *model.SocialLogin) (*model.SocialLoginResponse, error)
}

type socialAppImpl struct {
	userRepo   userrepo.UserRepository
	socialRepo socialrepo.SocialRepository
	txRepo     txrepo.TxRepository
	tokenApp   tokenapp.TokenApp
}

func NewSocialApp(userRepo userrepo.UserRepository, socialRepo socialrepo.SocialRepository, txRepo txrepo.TxRepository, tokenApp tokenapp.TokenApp) SocialApp {
	return &socialAppImpl{
		userRepo:   userRepo,
		socialRepo: socialRepo,
		txRepo:     txRepo,
		tokenApp:   tokenApp,
	}
}

func (s *socialAppImpl) PopulateUser(login *model.SocialLogin) *model.UserEntity {
	user := &model.UserEntity{
		Email:     login.Email(),
		FirstName: login.ExtraData["first_name"],
		LastName:  login.ExtraData["last_name"],
		UserType:  constant.UserTypeCustomer,
		// Social accounts have no local password; the marker hash can never
		// verify, so password login stays closed until a reset.
		PasswordHash: unusablePassword(),
	}

	if user.Phone == nil {
		phone := placeholderPhone()
		user.Phone = &phone
	}

	return user
}

func (s *socialAppImpl) PreSocialLogin(ctx context.Context, sessionUserID uint64, login *model.SocialLogin) (*model.UserEntity, error) {
	// An authenticated session is never rebound by a social event.
	if sessionUserID != 0 {
		return nil, nil
	}

	email := login.Email()
	if email == "" {
		// Defer to the signup flow.
		return nil, nil
	}

	user, err := s.userRepo.Get(ctx, &model.UserFilter{Email: email})
	if err != nil {
		logger.Error("[PreSocialLogin] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, nil
	}

	// Connect the social identity to the existing account. Email
	// verification is treated as optional here: login proceeds regardless
	// of the stored verification state.
	if err := s.socialRepo.Link(ctx, login.Provider, login.ProviderUID, user.ID); err != nil {
		logger.Error("[PreSocialLogin] err socialRepo.Link", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return user, nil
}

func (s *socialAppImpl) Login(ctx context.Context, sessionUserID uint64, login *model.SocialLogin) (*model.SocialLoginResponse, error) {
	// A known (provider, uid) pair authenticates its linked user directly.
	account, err := s.socialRepo.GetByProviderUID(ctx, login.Provider, login.ProviderUID)
	if err != nil {
		logger.Error("[SocialLogin] err socialRepo.GetByProviderUID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if account != nil {
		user, err := s.userRepo.Get(ctx, &model.UserFilter{ID: account.UserID})
		if err != nil {
			logger.Error("[SocialLogin] err userRepo.Get linked user", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		if user == nil {
			return nil, errors.SetCustomError(constant.ErrNotFound)
		}
		return s.respond(ctx, user, false)
	}

	// Pre-login hook: connect by email when possible.
	user, err := s.PreSocialLogin(ctx, sessionUserID, login)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return s.respond(ctx, user, false)
	}

	// The hook declined because the session is already authenticated: keep
	// the current identity untouched instead of linking or signing up.
	if sessionUserID != 0 {
		current, err := s.userRepo.Get(ctx, &model.UserFilter{ID: sessionUserID})
		if err != nil {
			logger.Error("[SocialLogin] err userRepo.Get session user", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		if current == nil {
			return nil, errors.SetCustomError(constant.ErrUnauthorize)
		}
		return s.respond(ctx, current, false)
	}

	// Signup path: candidate from provider data, persisted atomically with
	// its social link.
	candidate := s.PopulateUser(login)
	if candidate.Email == "" {
		return nil, errors.MissingRequiredField("email")
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[SocialLogin] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	candidate, err = s.userRepo.CreateTx(ctx, tx, candidate)
	if err != nil {
		if _, ok := err.(errors.FieldError); ok {
			return nil, err
		}
		logger.Error("[SocialLogin] err userRepo.CreateTx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.socialRepo.LinkTx(ctx, tx, login.Provider, login.ProviderUID, candidate.ID); err != nil {
		logger.Error("[SocialLogin] err socialRepo.LinkTx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[SocialLogin] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	return s.respond(ctx, candidate, true)
}

func (s *socialAppImpl) respond(ctx context.Context, user *model.UserEntity, created bool) (*model.SocialLoginResponse, error) {
	tokenKey, err := s.tokenApp.GetOrCreate(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &model.SocialLoginResponse{
		Token:   tokenKey,
		User:    model.NewUserResponse(user),
		Created: created,
	}, nil
}

// placeholderPhone returns a synthetic 15-char phone value: the fixed prefix
// plus 13 hex chars of a fresh random UUID. It satisfies phone uniqueness
// without colliding with real numbers.
func placeholderPhone() string {
	u := uuid.New()
	return constant.PlaceholderPhonePrefix + fmt.Sprintf("%x", u[:])[:13]
}

// unusablePassword returns a marker that bcrypt verification always rejects.
func unusablePassword() string {
	return "!" + uuid.NewString()
}
