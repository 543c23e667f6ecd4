package user

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	authbackend "github.com/findahub/accounts/application/auth"
	tokenapp "github.com/findahub/accounts/application/token"
	"github.com/findahub/accounts/cmd/config"
	"github.com/findahub/accounts/constant"
	"github.com/findahub/accounts/model"
	userrepo "github.com/findahub/accounts/repository/user"
	"github.com/findahub/accounts/upload"
	"github.com/findahub/accounts/utils/errors"
	"github.com/findahub/accounts/utils/logger"
	validatorx "github.com/findahub/accounts/utils/validator"
)

type UserApp interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)
	ObtainToken(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error)
	GetProfile(ctx context.Context, userID uint64) (*model.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uint64, req *model.UpdateProfileRequest) (*model.UserResponse, error)
	ChangePassword(ctx context.Context, userID uint64, req *model.ChangePasswordRequest) (*model.TokenResponse, error)
	RequestPasswordReset(ctx context.Context, req *model.PasswordResetRequest) error
	ConfirmPasswordReset(ctx context.Context, req *model.PasswordResetConfirmRequest) error
	Logout(ctx context.Context, userID uint64) error
}

// Notifier publishes user lifecycle events toward the notification pipeline.
type Notifier interface {
	PublishUserRegistered(userID uint64, email, firstName string) error
	PublishPasswordReset(userID uint64, email, resetToken string) error
}

type UserAppImpl struct {
	config   *config.Config
	userRepo userrepo.UserRepository
	backend  authbackend.Backend
	tokenApp tokenapp.TokenApp
	uploader upload.Uploader
	notifier Notifier
}

func NewUserApp(config *config.Config, userRepo userrepo.UserRepository, backend authbackend.Backend, tokenApp tokenapp.TokenApp, uploader upload.Uploader, notifier Notifier) UserApp {
	return &UserAppImpl{
		config:   config,
		userRepo: userRepo,
		backend:  backend,
		tokenApp: tokenApp,
		uploader: uploader,
		notifier: notifier,
	}
}

func (s *UserAppImpl) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	if req.Password != req.Password2 {
		return nil, errors.FieldMismatch("password")
	}

	if err := validatorx.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	userType := constant.UserTypeCustomer
	if req.UserType != "" {
		userType = constant.UserType(req.UserType)
	}
	if userType == constant.UserTypeVendor && req.BusinessName == "" {
		return nil, errors.MissingRequiredField("business_name")
	}

	// Existence pre-checks give a friendly field error; the store's unique
	// indexes remain the authoritative guard under concurrency.
	existingUser, err := s.userRepo.Get(ctx, &model.UserFilter{Email: req.Email})
	if err != nil {
		logger.Error("[Register] err userRepo.Get email", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if existingUser != nil {
		return nil, errors.DuplicateValue("email")
	}

	if req.Phone != "" {
		existingUser, err = s.userRepo.Get(ctx, &model.UserFilter{Phone: req.Phone})
		if err != nil {
			logger.Error("[Register] err userRepo.Get phone", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		if existingUser != nil {
			return nil, errors.DuplicateValue("phone")
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("[Register] err bcrypt.GenerateFromPassword", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	userEntity := &model.UserEntity{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hashedPassword),
		UserType:     userType,
	}
	if req.Phone != "" {
		phone := req.Phone
		userEntity.Phone = &phone
	}
	if userType == constant.UserTypeVendor {
		userEntity.BusinessName = &req.BusinessName
		if req.BusinessDescription != "" {
			userEntity.BusinessDescription = &req.BusinessDescription
		}
	}

	if req.Profile != nil {
		ref, err := s.saveUpload(ctx, "profile", upload.CategoryProfile, req.Profile)
		if err != nil {
			return nil, err
		}
		userEntity.Profile = &ref
	}
	if userType == constant.UserTypeVendor && req.BusinessImage != nil {
		ref, err := s.saveUpload(ctx, "business_image", upload.CategoryBusiness, req.BusinessImage)
		if err != nil {
			return nil, err
		}
		userEntity.BusinessImage = &ref
	}

	userEntity, err = s.userRepo.Create(ctx, userEntity)
	if err != nil {
		// A concurrent registration racing past the pre-check lands here as
		// a field-scoped duplicate error from the repository.
		if _, ok := err.(errors.FieldError); ok {
			return nil, err
		}
		logger.Error("[Register] err userRepo.Create", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	tokenKey, err := s.tokenApp.GetOrCreate(ctx, userEntity.ID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.PublishUserRegistered(userEntity.ID, userEntity.Email, userEntity.FirstName); err != nil {
			logger.Error("[Register] err publish user registered", zap.String("error", err.Error()))
		}
	}

	return &model.AuthResponse{
		Token: tokenKey,
		User:  model.NewUserResponse(userEntity),
	}, nil
}

func (s *UserAppImpl) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	user, err := s.backend.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.SetCustomError(constant.ErrInvalidCredentials)
	}

	tokenKey, err := s.tokenApp.GetOrCreate(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &model.AuthResponse{
		Token: tokenKey,
		User:  model.NewUserResponse(user),
	}, nil
}

// ObtainToken is the bare credential-to-token exchange behind /token-auth.
func (s *UserAppImpl) ObtainToken(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	res, err := s.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	return &model.TokenResponse{Token: res.Token}, nil
}

func (s *UserAppImpl) GetProfile(ctx context.Context, userID uint64) (*model.UserResponse, error) {
	user, err := s.backend.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	return model.NewUserResponse(user), nil
}

func (s *UserAppImpl) UpdateProfile(ctx context.Context, userID uint64, req *model.UpdateProfileRequest) (*model.UserResponse, error) {
	user, err := s.backend.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	// Email, user_type and date_joined are not reachable from the request
	// type; attempts to set them were already dropped on decode.
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Phone != nil {
		if *req.Phone == "" {
			user.Phone = nil
		} else {
			user.Phone = req.Phone
		}
	}

	// Vendor-only fields are ignored for customers.
	if user.IsVendor() {
		if req.BusinessName != nil {
			user.BusinessName = req.BusinessName
		}
		if req.BusinessDescription != nil {
			user.BusinessDescription = req.BusinessDescription
		}
		if req.BusinessImage != nil {
			ref, err := s.saveUpload(ctx, "business_image", upload.CategoryBusiness, req.BusinessImage)
			if err != nil {
				return nil, err
			}
			user.BusinessImage = &ref
		}
	}

	if req.Profile != nil {
		ref, err := s.saveUpload(ctx, "profile", upload.CategoryProfile, req.Profile)
		if err != nil {
			return nil, err
		}
		user.Profile = &ref
	}

	user, err = s.userRepo.Update(ctx, user)
	if err != nil {
		if _, ok := err.(errors.FieldError); ok {
			return nil, err
		}
		logger.Error("[UpdateProfile] err userRepo.Update", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return model.NewUserResponse(user), nil
}

func (s *UserAppImpl) ChangePassword(ctx context.Context, userID uint64, req *model.ChangePasswordRequest) (*model.TokenResponse, error) {
	user, err := s.backend.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return nil, errors.SetFieldError(constant.ErrInvalidCredentials, "old_password")
	}

	if req.NewPassword != req.NewPassword2 {
		return nil, errors.FieldMismatch("new_password")
	}

	if err := validatorx.ValidatePassword(req.NewPassword); err != nil {
		return nil, err
	}

	if err := s.setPassword(ctx, user.ID, req.NewPassword); err != nil {
		return nil, err
	}

	// Old token is dead; hand the caller a fresh one.
	tokenKey, err := s.tokenApp.GetOrCreate(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &model.TokenResponse{Token: tokenKey}, nil
}

func (s *UserAppImpl) RequestPasswordReset(ctx context.Context, req *model.PasswordResetRequest) error {
	user, err := s.userRepo.Get(ctx, &model.UserFilter{Email: req.Email})
	if err != nil {
		logger.Error("[RequestPasswordReset] err userRepo.Get", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		// Succeed outwardly; never confirm whether an account exists.
		return nil
	}

	resetToken, err := s.generateResetToken(user.ID)
	if err != nil {
		logger.Error("[RequestPasswordReset] err generateResetToken", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if s.notifier != nil {
		if err := s.notifier.PublishPasswordReset(user.ID, user.Email, resetToken); err != nil {
			logger.Error("[RequestPasswordReset] err publish password reset", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}
	}

	return nil
}

func (s *UserAppImpl) ConfirmPasswordReset(ctx context.Context, req *model.PasswordResetConfirmRequest) error {
	userID, err := s.parseResetToken(req.Token)
	if err != nil {
		return errors.SetCustomError(constant.ErrInvalidResetToken)
	}

	if req.Password != req.Password2 {
		return errors.FieldMismatch("password")
	}

	if err := validatorx.ValidatePassword(req.Password); err != nil {
		return err
	}

	user, err := s.backend.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.SetCustomError(constant.ErrInvalidResetToken)
	}

	return s.setPassword(ctx, user.ID, req.Password)
}

func (s *UserAppImpl) Logout(ctx context.Context, userID uint64) error {
	return s.tokenApp.Revoke(ctx, userID)
}

// setPassword rehashes and stores the password, then revokes any issued
// bearer token so the credential change takes effect everywhere.
func (s *UserAppImpl) setPassword(ctx context.Context, userID uint64, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("[setPassword] err bcrypt.GenerateFromPassword", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, string(hashed)); err != nil {
		logger.Error("[setPassword] err userRepo.UpdatePassword", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	return s.tokenApp.Revoke(ctx, userID)
}

// saveUpload stores an image payload and maps typed upload failures to
// field-scoped errors the caller can render precisely.
func (s *UserAppImpl) saveUpload(ctx context.Context, field string, category upload.Category, file *model.Upload) (string, error) {
	ref, err := s.uploader.Save(ctx, category, file.Filename, file.Content)
	if err == nil {
		return ref, nil
	}

	if uploadErr, ok := err.(*upload.Error); ok {
		switch uploadErr.Kind {
		case upload.KindSizeExceeded:
			return "", errors.SetFieldError(constant.ErrUploadTooLarge, field)
		default:
			return "", errors.SetFieldError(constant.ErrUploadRejected, field)
		}
	}

	logger.Error("[saveUpload] err uploader.Save", zap.String("field", field), zap.String("error", err.Error()))
	return "", errors.SetCustomError(constant.ErrInternal)
}

// generateResetToken signs a short-lived token bound to the user id.
func (s *UserAppImpl) generateResetToken(userID uint64) (string, error) {
	newUUID, _ := uuid.NewRandom()
	claims := jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", userID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.config.Auth.ResetTokenExpiration)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ID:        newUUID.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Auth.ResetTokenSecret))
}

func (s *UserAppImpl) parseResetToken(tokenString string) (uint64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.Auth.ResetTokenSecret), nil
	})
	if err != nil {
		return 0, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return 0, fmt.Errorf("invalid claims")
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user id in token")
	}

	return userID, nil
}
