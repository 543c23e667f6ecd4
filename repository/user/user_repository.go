package user

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/findahub/accounts/constant"
	"github.com/findahub/accounts/model"
	cerr "github.com/findahub/accounts/utils/errors"
)

type SQL struct {
	conn *sqlx.DB
}

type UserRepository interface {
	Create(ctx context.Context, req *model.UserEntity) (*model.UserEntity, error)
	CreateTx(ctx context.Context, tx *sqlx.Tx, req *model.UserEntity) (*model.UserEntity, error)
	Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error)
	Update(ctx context.Context, data *model.UserEntity) (*model.UserEntity, error)
	UpdatePassword(ctx context.Context, userID uint64, passwordHash string) error
}

func NewUserRepository(conn *sqlx.DB) UserRepository {
	return &SQL{conn: conn}
}

const (
	insertUserQuery = `INSERT INTO user
		(email, first_name, last_name, phone, password_hash, user_type, profile, business_name, business_description, business_image, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())`
	getUserBase = `SELECT id, email, first_name, last_name, phone, password_hash, user_type, profile, business_name, business_description, business_image, created_at, updated_at
		FROM user WHERE true`
	updateUserQuery = `UPDATE user
		SET first_name = ?, last_name = ?, phone = ?, profile = ?, business_name = ?, business_description = ?, business_image = ?, updated_at = NOW()
		WHERE id = ?`
	updatePasswordQuery = `UPDATE user SET password_hash = ?, updated_at = NOW() WHERE id = ?`
)

func (s *SQL) Create(ctx context.Context, data *model.UserEntity) (*model.UserEntity, error) {
	result, err := s.conn.ExecContext(ctx, insertUserQuery, insertArgs(data)...)
	if err != nil {
		return nil, mapDuplicateErr(err)
	}
	return withInsertID(data, result)
}

// CreateTx inserts within a caller-owned transaction so registration can be
// committed atomically with related rows (social links).
func (s *SQL) CreateTx(ctx context.Context, tx *sqlx.Tx, data *model.UserEntity) (*model.UserEntity, error) {
	result, err := tx.ExecContext(ctx, insertUserQuery, insertArgs(data)...)
	if err != nil {
		return nil, mapDuplicateErr(err)
	}
	return withInsertID(data, result)
}

func (s *SQL) Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error) {
	query := getUserBase
	args := make([]any, 0, 3)

	if filter.ID != 0 {
		query += " AND id = ?"
		args = append(args, filter.ID)
	}
	if filter.Email != "" {
		query += " AND email = ?"
		args = append(args, filter.Email)
	}
	if filter.Phone != "" {
		query += " AND phone = ?"
		args = append(args, filter.Phone)
	}

	var entity model.UserEntity
	if err := s.conn.QueryRowxContext(ctx, query, args...).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) Update(ctx context.Context, data *model.UserEntity) (*model.UserEntity, error) {
	_, err := s.conn.ExecContext(ctx, updateUserQuery,
		data.FirstName, data.LastName, data.Phone, data.Profile,
		data.BusinessName, data.BusinessDescription, data.BusinessImage, data.ID)
	if err != nil {
		return nil, mapDuplicateErr(err)
	}
	return data, nil
}

func (s *SQL) UpdatePassword(ctx context.Context, userID uint64, passwordHash string) error {
	_, err := s.conn.ExecContext(ctx, updatePasswordQuery, passwordHash, userID)
	return err
}

func insertArgs(data *model.UserEntity) []any {
	return []any{
		data.Email, data.FirstName, data.LastName, data.Phone, data.PasswordHash,
		data.UserType, data.Profile, data.BusinessName, data.BusinessDescription, data.BusinessImage,
	}
}

func withInsertID(data *model.UserEntity, result sql.Result) (*model.UserEntity, error) {
	lastID, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	data.ID = uint64(lastID)
	return data, nil
}

// mapDuplicateErr converts a MySQL duplicate-key rejection into a
// field-scoped duplicate error. The unique index is the authoritative
// uniqueness guard; application-level existence checks only pre-empt it for
// friendlier ordering.
func mapDuplicateErr(err error) error {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) || mysqlErr.Number != 1062 {
		return err
	}
	switch {
	case strings.Contains(mysqlErr.Message, "email"):
		return cerr.DuplicateValue("email")
	case strings.Contains(mysqlErr.Message, "phone"):
		return cerr.DuplicateValue("phone")
	default:
		return cerr.SetCustomError(constant.ErrDuplicateValue)
	}
}
