package model

import "time"

// TokenEntity represents the auth_token table entity. user_id carries a
// unique index so each user holds at most one active token.
type TokenEntity struct {
	ID        uint64    `db:"id" json:"-"`
	UserID    uint64    `db:"user_id" json:"user_id"`
	Key       string    `db:"token_key" json:"key"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
