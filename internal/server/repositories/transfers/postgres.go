// Package transfers persists the append-only transfer log.
package transfers

import (
	"context"
	"fmt"

	"github.com/hardbank/hardbank/internal/dbx"
	"github.com/hardbank/hardbank/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, rec *models.TransferRecord) (*models.TransferRecord, error) {

	query :=
		`INSERT INTO transfers (source_account_id, destination_account_id, amount, source_balance, destination_balance)
         VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		rec.SourceAccountID, rec.DestinationAccountID, rec.Amount,
		rec.SourceBalance, rec.DestinationBalance).Scan(&rec.ID, &rec.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return rec, nil
}

func (r *PostgresRepository) ListByAccount(ctx context.Context, accountID string) ([]models.TransferRecord, error) {
	query :=
		`SELECT id, source_account_id, destination_account_id, amount, source_balance, destination_balance, created_at
		 FROM transfers
		 WHERE source_account_id = $1 OR destination_account_id = $1
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.TransferRecord
	for rows.Next() {
		var rec models.TransferRecord
		if err := rows.Scan(&rec.ID, &rec.SourceAccountID, &rec.DestinationAccountID,
			&rec.Amount, &rec.SourceBalance, &rec.DestinationBalance, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return out, nil
}
