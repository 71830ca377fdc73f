package sessions

import (
	"context"

	"github.com/hardbank/hardbank/internal/server/models"
)

// Store persists sessions keyed by token hash. Implementations must return
// common.ErrorNotFound for an absent key and treat deleting an absent key
// as success.
type Store interface {
	Save(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, tokenHash string) (*models.Session, error)
	Delete(ctx context.Context, tokenHash string) error
}
