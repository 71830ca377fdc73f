// Package accounts persists balances. All parameters are bound; balances
// are only mutated under row locks inside a transaction.
package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {

	query :=
		`INSERT INTO accounts (owner_user_id, balance)
         VALUES ($1, $2)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		account.OwnerUserID, account.Balance).Scan(&account.ID, &account.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query :=
		`SELECT id, owner_user_id, balance, created_at FROM accounts
		 WHERE id = $1
		 `

	account := &models.Account{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&account.ID, &account.OwnerUserID, &account.Balance, &account.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

// GetPairForUpdate locks both rows with FOR UPDATE. ORDER BY id makes every
// transaction acquire the locks in the same order regardless of transfer
// direction, which rules out deadlock between opposing transfers.
func (r *PostgresRepository) GetPairForUpdate(ctx context.Context, idA, idB string) (map[string]*models.Account, error) {
	query :=
		`SELECT id, owner_user_id, balance, created_at FROM accounts
		 WHERE id = $1 OR id = $2
		 ORDER BY id
		 FOR UPDATE
		 `

	rows, err := r.db.QueryContext(ctx, query, idA, idB)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make(map[string]*models.Account, 2)
	for rows.Next() {
		account := &models.Account{}
		if err := rows.Scan(&account.ID, &account.OwnerUserID, &account.Balance, &account.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out[account.ID] = account
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return out, nil
}

func (r *PostgresRepository) SetBalance(ctx context.Context, id string, balance int64) error {
	query :=
		`UPDATE accounts SET balance = $2
		 WHERE id = $1
		 `

	if _, err := r.db.ExecContext(ctx, query, id, balance); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
