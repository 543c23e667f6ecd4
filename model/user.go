package model

import (
	"time"

	"github.com/findahub/accounts/constant"
)

// UserEntity represents the user table entity. Phone is nullable: the unique
// index on it only applies to non-NULL values.
type UserEntity struct {
	ID                  uint64            `db:"id" json:"id"`
	Email               string            `db:"email" json:"email"`
	FirstName           string            `db:"first_name" json:"first_name"`
	LastName            string            `db:"last_name" json:"last_name"`
	Phone               *string           `db:"phone" json:"phone,omitempty"`
	PasswordHash        string            `db:"password_hash" json:"-"`
	UserType            constant.UserType `db:"user_type" json:"user_type"`
	Profile             *string           `db:"profile" json:"profile,omitempty"`
	BusinessName        *string           `db:"business_name" json:"business_name,omitempty"`
	BusinessDescription *string           `db:"business_description" json:"business_description,omitempty"`
	BusinessImage       *string           `db:"business_image" json:"business_image,omitempty"`
	CreatedAt           time.Time         `db:"created_at" json:"date_joined"`
	UpdatedAt           *time.Time        `db:"updated_at" json:"-"`
}

// IsVendor reports whether vendor-only fields apply to this user.
func (u *UserEntity) IsVendor() bool {
	return u.UserType == constant.UserTypeVendor
}

// UserFilter for querying users
type UserFilter struct {
	ID    uint64
	Email string
	Phone string
}

// RegisterRequest for user registration
type RegisterRequest struct {
	Email               string `json:"email" validate:"required,email"`
	FirstName           string `json:"first_name" validate:"required,max=30"`
	LastName            string `json:"last_name" validate:"required,max=30"`
	Phone               string `json:"phone" validate:"omitempty,max=35"`
	Password            string `json:"password" validate:"required"`
	Password2           string `json:"password2" validate:"required"`
	UserType            string `json:"user_type" validate:"omitempty,oneof=customer vendor"`
	BusinessName        string `json:"business_name"`
	BusinessDescription string `json:"business_description"`

	// Optional image payloads, present only on multipart submissions.
	Profile       *Upload `json:"-"`
	BusinessImage *Upload `json:"-"`
}

// Upload carries a raw file payload toward the upload subsystem.
type Upload struct {
	Filename string
	Content  []byte
}

// LoginRequest for user login (accepts email or phone as username)
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest applies partial mutations to the acting user.
// Email, user_type and date_joined are deliberately absent: they are
// immutable through this path and unknown JSON keys are dropped on decode.
type UpdateProfileRequest struct {
	FirstName           *string `json:"first_name" validate:"omitempty,max=30"`
	LastName            *string `json:"last_name" validate:"omitempty,max=30"`
	Phone               *string `json:"phone" validate:"omitempty,max=35"`
	BusinessName        *string `json:"business_name"`
	BusinessDescription *string `json:"business_description"`

	Profile       *Upload `json:"-"`
	BusinessImage *Upload `json:"-"`
}

// ChangePasswordRequest for authenticated password change
type ChangePasswordRequest struct {
	OldPassword  string `json:"old_password" validate:"required"`
	NewPassword  string `json:"new_password" validate:"required"`
	NewPassword2 string `json:"new_password2" validate:"required"`
}

// PasswordResetRequest starts the reset flow
type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// PasswordResetConfirmRequest completes the reset flow
type PasswordResetConfirmRequest struct {
	Token     string `json:"token" validate:"required"`
	Password  string `json:"password" validate:"required"`
	Password2 string `json:"password2" validate:"required"`
}

// UserResponse is the public profile representation.
type UserResponse struct {
	ID                  uint64    `json:"id"`
	Email               string    `json:"email"`
	FirstName           string    `json:"first_name"`
	LastName            string    `json:"last_name"`
	Phone               *string   `json:"phone"`
	Profile             *string   `json:"profile"`
	DateJoined          time.Time `json:"date_joined"`
	UserType            string    `json:"user_type"`
	BusinessName        *string   `json:"business_name,omitempty"`
	BusinessDescription *string   `json:"business_description,omitempty"`
	BusinessImage       *string   `json:"business_image,omitempty"`
}

// NewUserResponse builds the public representation from an entity.
func NewUserResponse(u *UserEntity) *UserResponse {
	return &UserResponse{
		ID:                  u.ID,
		Email:               u.Email,
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		Phone:               u.Phone,
		Profile:             u.Profile,
		DateJoined:          u.CreatedAt,
		UserType:            string(u.UserType),
		BusinessName:        u.BusinessName,
		BusinessDescription: u.BusinessDescription,
		BusinessImage:       u.BusinessImage,
	}
}

// AuthResponse pairs a bearer token with the user's public profile.
type AuthResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// TokenResponse is the bare credential-to-token exchange payload.
type TokenResponse struct {
	Token string `json:"token"`
}
