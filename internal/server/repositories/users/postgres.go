// Package users persists bank customers. Every query binds its parameters;
// no SQL is ever assembled from input.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hardbank/hardbank/internal/common"
	"github.com/hardbank/hardbank/internal/dbx"
	"github.com/hardbank/hardbank/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (username, password_hash, salt)
         VALUES ($1, $2, $3)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.PasswordHash, user.Salt).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query :=
		`SELECT id, username, password_hash, salt, failed_attempts, locked_until, created_at FROM users
		 WHERE username = $1
		 `

	user := &models.User{}
	var lockedUntil sql.NullTime
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.Salt,
		&user.FailedAttempts, &lockedUntil, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if lockedUntil.Valid {
		user.LockedUntil = &lockedUntil.Time
	}

	return user, nil
}

func (r *PostgresRepository) RecordFailure(ctx context.Context, userID string) (int, error) {
	query :=
		`UPDATE users SET failed_attempts = failed_attempts + 1
		 WHERE id = $1
		 RETURNING failed_attempts
		 `

	var count int
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&count)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}

	return count, nil
}

func (r *PostgresRepository) SetLock(ctx context.Context, userID string, until time.Time) error {
	query :=
		`UPDATE users SET locked_until = $2
		 WHERE id = $1
		 `

	if _, err := r.db.ExecContext(ctx, query, userID, until); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ResetFailures(ctx context.Context, userID string) error {
	query :=
		`UPDATE users SET failed_attempts = 0, locked_until = NULL
		 WHERE id = $1
		 `

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
