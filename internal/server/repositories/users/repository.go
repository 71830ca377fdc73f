package users

import (
	"context"
	"time"

	"github.com/hardbank/hardbank/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// RecordFailure increments the failed-attempt counter and returns the
	// new count.
	RecordFailure(ctx context.Context, userID string) (int, error)
	// SetLock sets locked_until on the user.
	SetLock(ctx context.Context, userID string, until time.Time) error
	// ResetFailures clears the counter and any lock after a successful
	// login.
	ResetFailures(ctx context.Context, userID string) error
}
