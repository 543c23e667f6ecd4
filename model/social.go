package model

import "time"

// SocialAccountEntity links a third-party identity to a local user.
// (provider, provider_uid) is unique.
type SocialAccountEntity struct {
	ID          uint64    `db:"id" json:"id"`
	Provider    string    `db:"provider" json:"provider"`
	ProviderUID string    `db:"provider_uid" json:"provider_uid"`
	UserID      uint64    `db:"user_id" json:"user_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// SocialLogin is an ephemeral identity assertion from a provider. ExtraData
// carries whatever profile attributes the provider exposed (email, names).
type SocialLogin struct {
	Provider    string            `json:"provider" validate:"required"`
	ProviderUID string            `json:"provider_uid" validate:"required"`
	ExtraData   map[string]string `json:"extra_data"`
}

// Email returns the provider-asserted email, empty when absent.
func (s *SocialLogin) Email() string {
	return s.ExtraData["email"]
}

// SocialLoginRequest is posted by the trusted OAuth edge once it has
// verified the provider assertion. SessionUserID is zero for anonymous
// sessions.
type SocialLoginRequest struct {
	SessionUserID uint64 `json:"session_user_id"`
	SocialLogin
}

// SocialLoginResponse reports the outcome of a social login.
type SocialLoginResponse struct {
	Token   string        `json:"token"`
	User    *UserResponse `json:"user"`
	Created bool          `json:"created"`
}
