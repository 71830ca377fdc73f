package users

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hardbank/hardbank/internal/common"
	"github.com/hardbank/hardbank/internal/server/models"
)

// MemoryRepository keeps users in a mutex-guarded map. Used by tests and the
// redis-free development mode; same observable contract as postgres.
type MemoryRepository struct {
	mu    sync.RWMutex
	byID  map[string]*models.User
	byLog map[string]string // username -> id
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:  make(map[string]*models.User),
		byLog: make(map[string]string),
	}
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(user.Username)
	if _, ok := r.byLog[key]; ok {
		return nil, common.ErrorAlreadyExists
	}

	cp := *user
	cp.ID = uuid.NewString()
	cp.Username = key
	cp.CreatedAt = time.Now()

	r.byID[cp.ID] = &cp
	r.byLog[key] = cp.ID

	out := cp
	return &out, nil
}

func (r *MemoryRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byLog[strings.ToLower(username)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *r.byID[id]
	return &cp, nil
}

func (r *MemoryRepository) RecordFailure(ctx context.Context, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return 0, common.ErrorNotFound
	}
	u.FailedAttempts++
	return u.FailedAttempts, nil
}

func (r *MemoryRepository) SetLock(ctx context.Context, userID string, until time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return common.ErrorNotFound
	}
	t := until
	u.LockedUntil = &t
	return nil
}

func (r *MemoryRepository) ResetFailures(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return common.ErrorNotFound
	}
	u.FailedAttempts = 0
	u.LockedUntil = nil
	return nil
}
