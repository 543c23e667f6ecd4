package token

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/findahub/accounts/model"
)

type SQL struct {
	conn *sqlx.DB
}

type TokenRepository interface {
	GetOrCreate(ctx context.Context, userID uint64, key string) (*model.TokenEntity, error)
	GetByKey(ctx context.Context, key string) (*model.TokenEntity, error)
	GetByUser(ctx context.Context, userID uint64) (*model.TokenEntity, error)
	DeleteByUser(ctx context.Context, userID uint64) error
}

func NewTokenRepository(conn *sqlx.DB) TokenRepository {
	return &SQL{conn: conn}
}

const (
	// user_id carries a unique index: INSERT IGNORE makes get-or-create
	// atomic under concurrent logins, and the SELECT observes whichever
	// insert won.
	insertTokenQuery    = `INSERT IGNORE INTO auth_token (user_id, token_key, created_at) VALUES (?, ?, NOW())`
	getTokenByUserQuery = `SELECT id, user_id, token_key, created_at FROM auth_token WHERE user_id = ?`
	getTokenByKeyQuery  = `SELECT id, user_id, token_key, created_at FROM auth_token WHERE token_key = ?`
	deleteTokenQuery    = `DELETE FROM auth_token WHERE user_id = ?`
)

func (s *SQL) GetOrCreate(ctx context.Context, userID uint64, key string) (*model.TokenEntity, error) {
	if _, err := s.conn.ExecContext(ctx, insertTokenQuery, userID, key); err != nil {
		return nil, err
	}

	var entity model.TokenEntity
	if err := s.conn.QueryRowxContext(ctx, getTokenByUserQuery, userID).StructScan(&entity); err != nil {
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) GetByKey(ctx context.Context, key string) (*model.TokenEntity, error) {
	var entity model.TokenEntity
	if err := s.conn.QueryRowxContext(ctx, getTokenByKeyQuery, key).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) GetByUser(ctx context.Context, userID uint64) (*model.TokenEntity, error) {
	var entity model.TokenEntity
	if err := s.conn.QueryRowxContext(ctx, getTokenByUserQuery, userID).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) DeleteByUser(ctx context.Context, userID uint64) error {
	_, err := s.conn.ExecContext(ctx, deleteTokenQuery, userID)
	return err
}
