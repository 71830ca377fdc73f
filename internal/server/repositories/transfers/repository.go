package transfers

import (
	"context"

	"github.com/hardbank/hardbank/internal/server/models"
)

type Repository interface {
	// Create appends a committed transfer. Called inside the same
	// transaction that mutates the balances.
	Create(ctx context.Context, rec *models.TransferRecord) (*models.TransferRecord, error)
	// ListByAccount returns records where the account is either side,
	// newest first.
	ListByAccount(ctx context.Context, accountID string) ([]models.TransferRecord, error)
}
