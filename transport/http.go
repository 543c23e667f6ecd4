package transport

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"

	socialapp "github.com/findahub/accounts/application/social"
	userapp "github.com/findahub/accounts/application/user"
	"github.com/findahub/accounts/constant"
	"github.com/findahub/accounts/model"
	utilsContext "github.com/findahub/accounts/utils/context"
	"github.com/findahub/accounts/utils/errors"
	validatorx "github.com/findahub/accounts/utils/validator"
)

const maxMultipartMemory = 32 << 20

type RestHandler struct {
	UserApp   userapp.UserApp
	SocialApp socialapp.SocialApp
}

// Deps bundles what the router needs beyond the application layers.
type Deps struct {
	TokenResolver  TokenResolver
	InternalAPIKey string
	ReadyChecks    []ReadyCheck
}

func NewTransport(userApp userapp.UserApp, socialApp socialapp.SocialApp, deps Deps) http.Handler {
	router := mux.NewRouter()

	rh := &RestHandler{
		UserApp:   userApp,
		SocialApp: socialApp,
	}

	// Swagger UI
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Readiness: explicit signal built from injected checks
	router.HandleFunc("/healthz", HealthHandler(deps.ReadyChecks)).Methods(http.MethodGet)

	// Public routes
	router.HandleFunc("/register", rh.Register).Methods(http.MethodPost)
	router.HandleFunc("/login", rh.Login).Methods(http.MethodPost)
	router.HandleFunc("/token-auth", rh.TokenAuth).Methods(http.MethodPost)
	router.HandleFunc("/password-reset", rh.PasswordReset).Methods(http.MethodPost)
	router.HandleFunc("/password-reset-confirm", rh.PasswordResetConfirm).Methods(http.MethodPost)

	// Protected routes
	router.HandleFunc("/me", rh.Me).Methods(http.MethodGet)
	router.HandleFunc("/me", rh.UpdateMe).Methods(http.MethodPut)
	router.HandleFunc("/logout", rh.Logout).Methods(http.MethodPost)
	router.HandleFunc("/change-password", rh.ChangePassword).Methods(http.MethodPost)

	// Internal routes: trusted OAuth edge posts verified assertions here
	internal := router.PathPrefix("/internal").Subrouter()
	internal.Use(InternalMiddleware(deps.InternalAPIKey))
	internal.HandleFunc("/social/login", rh.SocialLogin).Methods(http.MethodPost)

	// middleware
	router.Use(LoggingMiddleware())
	router.Use(AuthMiddleware(deps.TokenResolver))

	return router
}

// Register handler
// @Summary Register user
// @Description Register a new customer or vendor account
// @Tags Auth
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param request body model.RegisterRequest true "Register Request"
// @Success 201 {object} model.AuthResponse
// @Failure 400 {object} Response
// @Router /register [post]
func (s *RestHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.RegisterRequest
	if isMultipart(r) {
		if err := decodeRegisterMultipart(r, &req); err != nil {
			writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
			return
		}
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeValidationError(w, err)
		return
	}

	res, err := s.UserApp.Register(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeCreated(w, res)
}

// Login handler
// @Summary Login user
// @Description Login with email or phone and receive a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Login Request"
// @Success 200 {object} model.AuthResponse
// @Failure 400 {object} Response
// @Router /login [post]
func (s *RestHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeValidationError(w, err)
		return
	}

	res, err := s.UserApp.Login(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// TokenAuth handler
// @Summary Exchange credentials for a token
// @Description Generic credential-to-token exchange
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Credentials"
// @Success 200 {object} model.TokenResponse
// @Failure 400 {object} Response
// @Router /token-auth [post]
func (s *RestHandler) TokenAuth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeValidationError(w, err)
		return
	}

	res, err := s.UserApp.ObtainToken(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Me handler
// @Summary Get own profile
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.UserResponse
// @Router /me [get]
func (s *RestHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	res, err := s.UserApp.GetProfile(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// UpdateMe handler
// @Summary Update own profile
// @Description Apply partial profile mutations; email, user_type and date_joined are immutable
// @Tags Profile
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param request body model.UpdateProfileRequest true "Profile updates"
// @Success 200 {object} model.UserResponse
// @Failure 400 {object} Response
// @Router /me [put]
func (s *RestHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.UpdateProfileRequest
	if isMultipart(r) {
		if err := decodeUpdateMultipart(r, &req); err != nil {
			writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
			return
		}
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeValidationError(w, err)
		return
	}

	res, err := s.UserApp.UpdateProfile(ctx, userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Logout handler
// @Summary Logout
// @Description Revoke the bearer token
// @Tags Auth
// @Security BearerAuth
// @Success 200 {object} Response
// @Router /logout [post]
func (s *RestHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	if err := s.UserApp.Logout(ctx, userID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// ChangePassword handler
// @Summary Change password
// @Description Change the password; revokes the old token and returns a new one
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.ChangePasswordRequest true "Change Password Request"
// @Success 200 {object} model.TokenResponse
// @Failure 400 {object} Response
// @Router /change-password [post]
func (s *RestHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeValidationError(w, err)
		return
	}

	res, err := s.UserApp.ChangePassword(ctx, userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// PasswordReset handler
// @Summary Request password reset
// @Description Always succeeds; never confirms whether the account exists
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.PasswordResetRequest true "Password Reset Request"
// @Success 200 {object} Response
// @Router /password-reset [post]
func (s *RestHandler) PasswordReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.PasswordResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeValidationError(w, err)
		return
	}

	if err := s.UserApp.RequestPasswordReset(ctx, &req); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// PasswordResetConfirm handler
// @Summary Confirm password reset
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.PasswordResetConfirmRequest true "Password Reset Confirm Request"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Router /password-reset-confirm [post]
func (s *RestHandler) PasswordResetConfirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.PasswordResetConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeValidationError(w, err)
		return
	}

	if err := s.UserApp.ConfirmPasswordReset(ctx, &req); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// SocialLogin handler
// @Summary Social login (internal)
// @Description Accepts a verified provider assertion from the OAuth edge
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.SocialLoginRequest true "Social Login Event"
// @Success 200 {object} model.SocialLoginResponse
// @Failure 400 {object} Response
// @Router /internal/social/login [post]
func (s *RestHandler) SocialLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.SocialLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeValidationError(w, err)
		return
	}

	res, err := s.SocialApp.Login(ctx, req.SessionUserID, &req.SocialLogin)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func isMultipart(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return len(ct) >= 19 && ct[:19] == "multipart/form-data"
}

func decodeRegisterMultipart(r *http.Request, req *model.RegisterRequest) error {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return err
	}

	req.Email = r.FormValue("email")
	req.FirstName = r.FormValue("first_name")
	req.LastName = r.FormValue("last_name")
	req.Phone = r.FormValue("phone")
	req.Password = r.FormValue("password")
	req.Password2 = r.FormValue("password2")
	req.UserType = r.FormValue("user_type")
	req.BusinessName = r.FormValue("business_name")
	req.BusinessDescription = r.FormValue("business_description")

	var err error
	if req.Profile, err = formUpload(r, "profile"); err != nil {
		return err
	}
	if req.BusinessImage, err = formUpload(r, "business_image"); err != nil {
		return err
	}
	return nil
}

func decodeUpdateMultipart(r *http.Request, req *model.UpdateProfileRequest) error {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return err
	}

	req.FirstName = formValuePtr(r, "first_name")
	req.LastName = formValuePtr(r, "last_name")
	req.Phone = formValuePtr(r, "phone")
	req.BusinessName = formValuePtr(r, "business_name")
	req.BusinessDescription = formValuePtr(r, "business_description")

	var err error
	if req.Profile, err = formUpload(r, "profile"); err != nil {
		return err
	}
	if req.BusinessImage, err = formUpload(r, "business_image"); err != nil {
		return err
	}
	return nil
}

// formValuePtr distinguishes "absent" from "set to empty".
func formValuePtr(r *http.Request, key string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

func formUpload(r *http.Request, key string) (*model.Upload, error) {
	file, header, err := r.FormFile(key)
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &model.Upload{Filename: header.Filename, Content: content}, nil
}
