package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ustwan/tzr-host-api-sub001/internal/register/models"
	"github.com/ustwan/tzr-host-api-sub001/internal/sentinel"
)

// PostgresStore persists accounts in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed account store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) CountByTelegramID(ctx context.Context, telegramID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM users WHERE telegram_id = $1`
	if err := s.db.QueryRowContext(ctx, query, telegramID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count accounts by telegram id: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) IsLoginTaken(ctx context.Context, login string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE login = $1)`
	if err := s.db.QueryRowContext(ctx, query, login).Scan(&exists); err != nil {
		return false, fmt.Errorf("check login: %w", err)
	}
	return exists, nil
}

// Insert commits the account row. A single INSERT is transactional on its
// own; the unique index on login arbitrates races with concurrent writers.
func (s *PostgresStore) Insert(ctx context.Context, rec *models.UserRecord) error {
	if rec == nil {
		return fmt.Errorf("user record is required")
	}
	query := `
		INSERT INTO users (login, telegram_id, username, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4)
	`
	_, err := s.db.ExecContext(ctx, query,
		rec.Login,
		rec.TelegramID,
		rec.Username,
		rec.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("login must be unique: %w", sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
