package social

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/findahub/accounts/model"
)

type SQL struct {
	conn *sqlx.DB
}

type SocialRepository interface {
	GetByProviderUID(ctx context.Context, provider, providerUID string) (*model.SocialAccountEntity, error)
	Link(ctx context.Context, provider, providerUID string, userID uint64) error
	LinkTx(ctx context.Context, tx *sqlx.Tx, provider, providerUID string, userID uint64) error
}

func NewSocialRepository(conn *sqlx.DB) SocialRepository {
	return &SQL{conn: conn}
}

const (
	getSocialQuery = `SELECT id, provider, provider_uid, user_id, created_at
		FROM social_account WHERE provider = ? AND provider_uid = ?`
	insertSocialQuery = `INSERT INTO social_account (provider, provider_uid, user_id, created_at)
		VALUES (?, ?, ?, NOW())`
)

func (s *SQL) GetByProviderUID(ctx context.Context, provider, providerUID string) (*model.SocialAccountEntity, error) {
	var entity model.SocialAccountEntity
	if err := s.conn.QueryRowxContext(ctx, getSocialQuery, provider, providerUID).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) Link(ctx context.Context, provider, providerUID string, userID uint64) error {
	_, err := s.conn.ExecContext(ctx, insertSocialQuery, provider, providerUID, userID)
	return err
}

// LinkTx attaches a social identity within a caller-owned transaction, used
// on the signup path so user and link land atomically.
func (s *SQL) LinkTx(ctx context.Context, tx *sqlx.Tx, provider, providerUID string, userID uint64) error {
	_, err := tx.ExecContext(ctx, insertSocialQuery, provider, providerUID, userID)
	return err
}
