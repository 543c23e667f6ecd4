package user_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	appuser "github.com/findahub/accounts/application/user"
	"github.com/findahub/accounts/cmd/config"
	"github.com/findahub/accounts/constant"
	backendmocks "github.com/findahub/accounts/mocks/application/auth"
	tokenmocks "github.com/findahub/accounts/mocks/application/token"
	notifiermocks "github.com/findahub/accounts/mocks/application/user"
	usermocks "github.com/findahub/accounts/mocks/repository/user"
	uploadmocks "github.com/findahub/accounts/mocks/upload"
	"github.com/findahub/accounts/model"
	"github.com/findahub/accounts/upload"
	cerr "github.com/findahub/accounts/utils/errors"
)

const tokenKey = "9944b09199c62bcf9418ad846dd0e4bbdfc6ee4b"

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			ResetTokenSecret:     "test-secret",
			ResetTokenExpiration: time.Hour,
		},
	}
}

type testMocks struct {
	userRepo *usermocks.UserRepository
	backend  *backendmocks.Backend
	tokenApp *tokenmocks.TokenApp
	uploader *uploadmocks.Uploader
	notifier *notifiermocks.Notifier
}

func newTestMocks(t *testing.T) testMocks {
	return testMocks{
		userRepo: usermocks.NewUserRepository(t),
		backend:  backendmocks.NewBackend(t),
		tokenApp: tokenmocks.NewTokenApp(t),
		uploader: uploadmocks.NewUploader(t),
		notifier: notifiermocks.NewNotifier(t),
	}
}

func newApp(m testMocks) appuser.UserApp {
	return appuser.NewUserApp(testConfig(), m.userRepo, m.backend, m.tokenApp, m.uploader, m.notifier)
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(hashed)
}

func assertErrCode(t *testing.T, err error, code constant.ErrorType) {
	t.Helper()
	var ce cerr.CustomError
	if !errors.As(err, &ce) {
		t.Fatalf("error type = %T (%v), want CustomError", err, err)
	}
	if ce.ErrorCode() != constant.ErrorTypeCode[code] {
		t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[code])
	}
}

func assertFieldErr(t *testing.T, err error, code constant.ErrorType, field string) {
	t.Helper()
	var fe cerr.FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("error type = %T (%v), want FieldError", err, err)
	}
	if fe.ErrorCode() != constant.ErrorTypeCode[code] {
		t.Fatalf("error code = %s, want %s", fe.ErrorCode(), constant.ErrorTypeCode[code])
	}
	if fe.Field() != field {
		t.Fatalf("error field = %s, want %s", fe.Field(), field)
	}
}

func TestUserApp_Register(t *testing.T) {
	customerReq := func() *model.RegisterRequest {
		return &model.RegisterRequest{
			Email:     "new@example.com",
			FirstName: "New",
			LastName:  "User",
			Phone:     "5551234",
			Password:  "strongpass1",
			Password2: "strongpass1",
		}
	}

	tests := []struct {
		name      string
		req       *model.RegisterRequest
		mockCall  func(t *testing.T, m testMocks)
		wantErr   bool
		errCode   constant.ErrorType
		errField  string
		wantToken string
	}{
		{
			name: "success: customer with phone, token issued, event published",
			req:  customerReq(),
			mockCall: func(t *testing.T, m testMocks) {
				m.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "new@example.com"}).
					Return(nil, nil).Once()
				m.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Phone: "5551234"}).
					Return(nil, nil).Once()
				m.userRepo.
					On("Create", mock.Anything, mock.MatchedBy(func(u *model.UserEntity) bool {
						// The stored hash must verify against the raw password;
						// the raw password itself is never persisted.
						if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("strongpass1")) != nil {
							return false
						}
						return u.Email == "new@example.com" &&
							u.UserType == constant.UserTypeCustomer &&
							u.Phone != nil && *u.Phone == "5551234" &&
							u.BusinessName == nil
					})).
					Return(func(_ context.Context, u *model.UserEntity) *model.UserEntity {
						created := *u
						created.ID = 10
						return &created
					}, nil).Once()
				m.tokenApp.
					On("GetOrCreate", mock.Anything, uint64(10)).
					Return(tokenKey, nil).Once()
				m.notifier.
					On("PublishUserRegistered", uint64(10), "new@example.com", "New").
					Return(nil).Once()
			},
			wantToken: tokenKey,
		},
		{
			name: "error: password confirmation mismatch",
			req: &model.RegisterRequest{
				Email:     "new@example.com",
				FirstName: "New",
				LastName:  "User",
				Password:  "strongpass1",
				Password2: "different1",
			},
			wantErr:  true,
			errCode:  constant.ErrPasswordMismatch,
			errField: "password",
		},
		{
			name: "error: entirely numeric password is weak",
			req: &model.RegisterRequest{
				Email:     "new@example.com",
				FirstName: "New",
				LastName:  "User",
				Password:  "12345678",
				Password2: "12345678",
			},
			wantErr:  true,
			errCode:  constant.ErrWeakPassword,
			errField: "password",
		},
		{
			name: "error: vendor without business name",
			req: &model.RegisterRequest{
				Email:     "shop@example.com",
				FirstName: "Shop",
				LastName:  "Owner",
				Password:  "strongpass1",
				Password2: "strongpass1",
				UserType:  "vendor",
			},
			wantErr:  true,
			errCode:  constant.ErrMissingField,
			errField: "business_name",
		},
		{
			name: "success: customer without business name is fine",
			req: &model.RegisterRequest{
				Email:     "plain@example.com",
				FirstName: "Plain",
				LastName:  "Customer",
				Password:  "strongpass1",
				Password2: "strongpass1",
				UserType:  "customer",
			},
			mockCall: func(t *testing.T, m testMocks) {
				m.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "plain@example.com"}).
					Return(nil, nil).Once()
				m.userRepo.
					On("Create", mock.Anything, mock.AnythingOfType("*model.UserEntity")).
					Return(func(_ context.Context, u *model.UserEntity) *model.UserEntity {
						created := *u
						created.ID = 11
						return &created
					}, nil).Once()
				m.tokenApp.
					On("GetOrCreate", mock.Anything, uint64(11)).
					Return(tokenKey, nil).Once()
				m.notifier.
					On("PublishUserRegistered", uint64(11), "plain@example.com", "Plain").
					Return(nil).Once()
			},
			wantToken: tokenKey,
		},
		{
			name: "error: email already taken",
			req:  customerReq(),
			mockCall: func(t *testing.T, m testMocks) {
				m.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "new@example.com"}).
					Return(&model.UserEntity{ID: 1, Email: "new@example.com"}, nil).Once()
			},
			wantErr:  true,
			errCode:  constant.ErrDuplicateValue,
			errField: "email",
		},
		{
			name: "error: phone already taken",
			req:  customerReq(),
			mockCall: func(t *testing.T, m testMocks) {
				m.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "new@example.com"}).
					Return(nil, nil).Once()
				phone := "5551234"
				m.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Phone: "5551234"}).
					Return(&model.UserEntity{ID: 2, Phone: &phone}, nil).Once()
			},
			wantErr:  true,
			errCode:  constant.ErrDuplicateValue,
			errField: "phone",
		},
		{
			name: "error: concurrent registration loses the race at insert time",
			req:  customerReq(),
			mockCall: func(t *testing.T, m testMocks) {
				m.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "new@example.com"}).
					Return(nil, nil).Once()
				m.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Phone: "5551234"}).
					Return(nil, nil).Once()
				m.userRepo.
					On("Create", mock.Anything, mock.AnythingOfType("*model.UserEntity")).
					Return(nil, cerr.DuplicateValue("email")).Once()
			},
			wantErr:  true,
			errCode:  constant.ErrDuplicateValue,
			errField: "email",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMocks(t)
			if tt.mockCall != nil {
				tt.mockCall(t, m)
			}
			app := newApp(m)

			got, err := app.Register(context.Background(), tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Register() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if tt.errField != "" {
					assertFieldErr(t, err, tt.errCode, tt.errField)
				} else {
					assertErrCode(t, err, tt.errCode)
				}
				return
			}
			if got.Token != tt.wantToken {
				t.Fatalf("Register() token = %s, want %s", got.Token, tt.wantToken)
			}
			if got.User == nil || got.User.Email != tt.req.Email {
				t.Fatalf("Register() user = %+v", got.User)
			}
		})
	}
}

func TestUserApp_Login(t *testing.T) {
	t.Run("success: same token on repeated logins", func(t *testing.T) {
		m := newTestMocks(t)
		user := &model.UserEntity{ID: 5, Email: "a@b.com"}
		m.backend.
			On("Authenticate", mock.Anything, "a@b.com", "strongpass1").
			Return(user, nil).Twice()
		m.tokenApp.
			On("GetOrCreate", mock.Anything, uint64(5)).
			Return(tokenKey, nil).Twice()
		app := newApp(m)

		first, err := app.Login(context.Background(), &model.LoginRequest{Username: "a@b.com", Password: "strongpass1"})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		second, err := app.Login(context.Background(), &model.LoginRequest{Username: "a@b.com", Password: "strongpass1"})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if first.Token != second.Token {
			t.Fatalf("tokens differ across logins: %s vs %s", first.Token, second.Token)
		}
		if !reflect.DeepEqual(first.User, model.NewUserResponse(user)) {
			t.Fatalf("Login() user = %+v", first.User)
		}
	})

	t.Run("error: unmatched credentials map to one generic failure", func(t *testing.T) {
		m := newTestMocks(t)
		m.backend.
			On("Authenticate", mock.Anything, "a@b.com", "wrong").
			Return(nil, nil).Once()
		app := newApp(m)

		_, err := app.Login(context.Background(), &model.LoginRequest{Username: "a@b.com", Password: "wrong"})
		if err == nil {
			t.Fatal("Login() expected error")
		}
		assertErrCode(t, err, constant.ErrInvalidCredentials)
	})
}

func TestUserApp_ObtainToken(t *testing.T) {
	m := newTestMocks(t)
	m.backend.
		On("Authenticate", mock.Anything, "a@b.com", "strongpass1").
		Return(&model.UserEntity{ID: 5, Email: "a@b.com"}, nil).Once()
	m.tokenApp.
		On("GetOrCreate", mock.Anything, uint64(5)).
		Return(tokenKey, nil).Once()
	app := newApp(m)

	got, err := app.ObtainToken(context.Background(), &model.LoginRequest{Username: "a@b.com", Password: "strongpass1"})
	if err != nil {
		t.Fatalf("ObtainToken() error = %v", err)
	}
	if !reflect.DeepEqual(got, &model.TokenResponse{Token: tokenKey}) {
		t.Fatalf("ObtainToken() = %+v", got)
	}
}

func TestUserApp_UpdateProfile(t *testing.T) {
	strptr := func(s string) *string { return &s }

	t.Run("success: partial update, email and join date untouched", func(t *testing.T) {
		m := newTestMocks(t)
		joined := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		phone := "5551234"
		m.backend.
			On("GetByID", mock.Anything, uint64(5)).
			Return(&model.UserEntity{
				ID:        5,
				Email:     "a@b.com",
				FirstName: "Old",
				LastName:  "Name",
				Phone:     &phone,
				UserType:  constant.UserTypeCustomer,
				CreatedAt: joined,
			}, nil).Once()
		m.userRepo.
			On("Update", mock.Anything, mock.MatchedBy(func(u *model.UserEntity) bool {
				return u.ID == 5 &&
					u.Email == "a@b.com" &&
					u.FirstName == "Fresh" &&
					u.LastName == "Name" &&
					u.Phone == nil &&
					u.CreatedAt.Equal(joined)
			})).
			Return(func(_ context.Context, u *model.UserEntity) *model.UserEntity { return u }, nil).Once()
		app := newApp(m)

		got, err := app.UpdateProfile(context.Background(), 5, &model.UpdateProfileRequest{
			FirstName: strptr("Fresh"),
			Phone:     strptr(""), // clears the stored phone
		})
		if err != nil {
			t.Fatalf("UpdateProfile() error = %v", err)
		}
		if got.FirstName != "Fresh" || got.Phone != nil || got.Email != "a@b.com" {
			t.Fatalf("UpdateProfile() = %+v", got)
		}
	})

	t.Run("success: vendor fields ignored for customers", func(t *testing.T) {
		m := newTestMocks(t)
		m.backend.
			On("GetByID", mock.Anything, uint64(5)).
			Return(&model.UserEntity{ID: 5, Email: "a@b.com", UserType: constant.UserTypeCustomer}, nil).Once()
		m.userRepo.
			On("Update", mock.Anything, mock.MatchedBy(func(u *model.UserEntity) bool {
				return u.BusinessName == nil && u.BusinessDescription == nil
			})).
			Return(func(_ context.Context, u *model.UserEntity) *model.UserEntity { return u }, nil).Once()
		app := newApp(m)

		got, err := app.UpdateProfile(context.Background(), 5, &model.UpdateProfileRequest{
			BusinessName:        strptr("Sneaky Shop"),
			BusinessDescription: strptr("should not stick"),
		})
		if err != nil {
			t.Fatalf("UpdateProfile() error = %v", err)
		}
		if got.BusinessName != nil {
			t.Fatalf("business name leaked onto customer: %+v", got)
		}
	})

	t.Run("error: oversized profile image maps to a field error", func(t *testing.T) {
		m := newTestMocks(t)
		m.backend.
			On("GetByID", mock.Anything, uint64(5)).
			Return(&model.UserEntity{ID: 5, Email: "a@b.com", UserType: constant.UserTypeCustomer}, nil).Once()
		m.uploader.
			On("Save", mock.Anything, upload.CategoryProfile, "huge.jpg", mock.Anything).
			Return("", &upload.Error{Kind: upload.KindSizeExceeded}).Once()
		app := newApp(m)

		_, err := app.UpdateProfile(context.Background(), 5, &model.UpdateProfileRequest{
			Profile: &model.Upload{Filename: "huge.jpg", Content: []byte("...")},
		})
		if err == nil {
			t.Fatal("UpdateProfile() expected error")
		}
		assertFieldErr(t, err, constant.ErrUploadTooLarge, "profile")
	})

	t.Run("error: undecodable image maps to a rejection field error", func(t *testing.T) {
		m := newTestMocks(t)
		m.backend.
			On("GetByID", mock.Anything, uint64(5)).
			Return(&model.UserEntity{ID: 5, Email: "a@b.com", UserType: constant.UserTypeCustomer}, nil).Once()
		m.uploader.
			On("Save", mock.Anything, upload.CategoryProfile, "notes.txt", mock.Anything).
			Return("", &upload.Error{Kind: upload.KindRejected, Reason: "unsupported image format"}).Once()
		app := newApp(m)

		_, err := app.UpdateProfile(context.Background(), 5, &model.UpdateProfileRequest{
			Profile: &model.Upload{Filename: "notes.txt", Content: []byte("plain text")},
		})
		if err == nil {
			t.Fatal("UpdateProfile() expected error")
		}
		assertFieldErr(t, err, constant.ErrUploadRejected, "profile")
	})

	t.Run("error: unknown user", func(t *testing.T) {
		m := newTestMocks(t)
		m.backend.
			On("GetByID", mock.Anything, uint64(99)).
			Return(nil, nil).Once()
		app := newApp(m)

		_, err := app.UpdateProfile(context.Background(), 99, &model.UpdateProfileRequest{})
		if err == nil {
			t.Fatal("UpdateProfile() expected error")
		}
		assertErrCode(t, err, constant.ErrNotFound)
	})
}

func TestUserApp_ChangePassword(t *testing.T) {
	t.Run("success: rehash, revoke, reissue", func(t *testing.T) {
		m := newTestMocks(t)
		m.backend.
			On("GetByID", mock.Anything, uint64(5)).
			Return(&model.UserEntity{ID: 5, Email: "a@b.com", PasswordHash: hashOf(t, "oldpass123")}, nil).Once()
		m.userRepo.
			On("UpdatePassword", mock.Anything, uint64(5), mock.MatchedBy(func(hash string) bool {
				return bcrypt.CompareHashAndPassword([]byte(hash), []byte("newpass123")) == nil
			})).
			Return(nil).Once()
		m.tokenApp.
			On("Revoke", mock.Anything, uint64(5)).
			Return(nil).Once()
		m.tokenApp.
			On("GetOrCreate", mock.Anything, uint64(5)).
			Return(tokenKey, nil).Once()
		app := newApp(m)

		got, err := app.ChangePassword(context.Background(), 5, &model.ChangePasswordRequest{
			OldPassword:  "oldpass123",
			NewPassword:  "newpass123",
			NewPassword2: "newpass123",
		})
		if err != nil {
			t.Fatalf("ChangePassword() error = %v", err)
		}
		if got.Token != tokenKey {
			t.Fatalf("ChangePassword() token = %s", got.Token)
		}
	})

	t.Run("error: wrong current password", func(t *testing.T) {
		m := newTestMocks(t)
		m.backend.
			On("GetByID", mock.Anything, uint64(5)).
			Return(&model.UserEntity{ID: 5, PasswordHash: hashOf(t, "oldpass123")}, nil).Once()
		app := newApp(m)

		_, err := app.ChangePassword(context.Background(), 5, &model.ChangePasswordRequest{
			OldPassword:  "not-the-password",
			NewPassword:  "newpass123",
			NewPassword2: "newpass123",
		})
		if err == nil {
			t.Fatal("ChangePassword() expected error")
		}
		assertFieldErr(t, err, constant.ErrInvalidCredentials, "old_password")
	})

	t.Run("error: confirmation mismatch", func(t *testing.T) {
		m := newTestMocks(t)
		m.backend.
			On("GetByID", mock.Anything, uint64(5)).
			Return(&model.UserEntity{ID: 5, PasswordHash: hashOf(t, "oldpass123")}, nil).Once()
		app := newApp(m)

		_, err := app.ChangePassword(context.Background(), 5, &model.ChangePasswordRequest{
			OldPassword:  "oldpass123",
			NewPassword:  "newpass123",
			NewPassword2: "other12345",
		})
		if err == nil {
			t.Fatal("ChangePassword() expected error")
		}
		assertFieldErr(t, err, constant.ErrPasswordMismatch, "new_password")
	})
}

func TestUserApp_PasswordReset(t *testing.T) {
	t.Run("request: unknown email succeeds without publishing", func(t *testing.T) {
		m := newTestMocks(t)
		m.userRepo.
			On("Get", mock.Anything, &model.UserFilter{Email: "nobody@example.com"}).
			Return(nil, nil).Once()
		app := newApp(m)

		if err := app.RequestPasswordReset(context.Background(), &model.PasswordResetRequest{Email: "nobody@example.com"}); err != nil {
			t.Fatalf("RequestPasswordReset() error = %v", err)
		}
	})

	t.Run("request: known email publishes a signed token", func(t *testing.T) {
		m := newTestMocks(t)
		m.userRepo.
			On("Get", mock.Anything, &model.UserFilter{Email: "a@b.com"}).
			Return(&model.UserEntity{ID: 5, Email: "a@b.com"}, nil).Once()
		m.notifier.
			On("PublishPasswordReset", uint64(5), "a@b.com", mock.AnythingOfType("string")).
			Return(nil).Once()
		app := newApp(m)

		if err := app.RequestPasswordReset(context.Background(), &model.PasswordResetRequest{Email: "a@b.com"}); err != nil {
			t.Fatalf("RequestPasswordReset() error = %v", err)
		}
	})

	t.Run("confirm: valid token sets the password and revokes the session", func(t *testing.T) {
		m := newTestMocks(t)
		m.backend.
			On("GetByID", mock.Anything, uint64(5)).
			Return(&model.UserEntity{ID: 5, Email: "a@b.com"}, nil).Once()
		m.userRepo.
			On("UpdatePassword", mock.Anything, uint64(5), mock.MatchedBy(func(hash string) bool {
				return bcrypt.CompareHashAndPassword([]byte(hash), []byte("resetpass1")) == nil
			})).
			Return(nil).Once()
		m.tokenApp.
			On("Revoke", mock.Anything, uint64(5)).
			Return(nil).Once()
		app := newApp(m)

		claims := jwt.RegisteredClaims{
			Subject:   "5",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		if err != nil {
			t.Fatalf("sign token: %v", err)
		}

		err = app.ConfirmPasswordReset(context.Background(), &model.PasswordResetConfirmRequest{
			Token:     signed,
			Password:  "resetpass1",
			Password2: "resetpass1",
		})
		if err != nil {
			t.Fatalf("ConfirmPasswordReset() error = %v", err)
		}
	})

	t.Run("confirm: garbage token is rejected", func(t *testing.T) {
		m := newTestMocks(t)
		app := newApp(m)

		err := app.ConfirmPasswordReset(context.Background(), &model.PasswordResetConfirmRequest{
			Token:     "not-a-token",
			Password:  "resetpass1",
			Password2: "resetpass1",
		})
		if err == nil {
			t.Fatal("ConfirmPasswordReset() expected error")
		}
		assertErrCode(t, err, constant.ErrInvalidResetToken)
	})

	t.Run("confirm: expired token is rejected", func(t *testing.T) {
		m := newTestMocks(t)
		app := newApp(m)

		claims := jwt.RegisteredClaims{
			Subject:   "5",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		if err != nil {
			t.Fatalf("sign token: %v", err)
		}

		err = app.ConfirmPasswordReset(context.Background(), &model.PasswordResetConfirmRequest{
			Token:     signed,
			Password:  "resetpass1",
			Password2: "resetpass1",
		})
		if err == nil {
			t.Fatal("ConfirmPasswordReset() expected error")
		}
		assertErrCode(t, err, constant.ErrInvalidResetToken)
	})
}

func TestUserApp_Logout(t *testing.T) {
	m := newTestMocks(t)
	m.tokenApp.
		On("Revoke", mock.Anything, uint64(5)).
		Return(nil).Once()
	app := newApp(m)

	if err := app.Logout(context.Background(), 5); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
}
