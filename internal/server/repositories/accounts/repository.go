package accounts

import (
	"context"

	"github.com/hardbank/hardbank/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	// GetPairForUpdate loads two accounts under row locks taken in
	// canonical id order, so concurrent transfers over a shared account
	// serialize without a global lock and without lock-order deadlocks.
	// Only meaningful on a transactional handle.
	GetPairForUpdate(ctx context.Context, idA, idB string) (map[string]*models.Account, error)
	SetBalance(ctx context.Context, id string, balance int64) error
}
