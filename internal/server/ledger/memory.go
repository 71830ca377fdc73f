package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hardbank/hardbank/internal/common"
	"github.com/hardbank/hardbank/internal/server/models"
)

// Memory is the in-process ledger used by tests and the database-free
// development mode. One mutex guards the account map; every transfer runs
// its check-and-mutate inside the critical section, so the observable
// contract matches the SQL ledger.
type Memory struct {
	mu      sync.Mutex
	limit   int64
	accts   map[string]*models.Account
	records []models.TransferRecord
}

func NewMemory(limit int64) *Memory {
	return &Memory{
		limit: limit,
		accts: make(map[string]*models.Account),
	}
}

// CreateAccount provisions an account with a starting balance.
func (m *Memory) CreateAccount(ownerUserID string, balance int64) (*models.Account, error) {
	if balance < 0 {
		return nil, common.ErrorInvalidAmount
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	a := &models.Account{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Balance:     balance,
		CreatedAt:   time.Now(),
	}
	m.accts[a.ID] = a

	cp := *a
	return &cp, nil
}

func (m *Memory) Transfer(ctx context.Context, req models.TransferRequest) (*models.TransferRecord, error) {
	if err := checkStatic(req, m.limit); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	source, okSrc := m.accts[req.SourceAccountID]
	destination, okDst := m.accts[req.DestinationAccountID]
	if !okSrc || !okDst {
		return nil, common.ErrorAccountNotFound
	}
	if source.Balance < req.Amount {
		return nil, common.ErrorInsufficientFunds
	}

	source.Balance -= req.Amount
	destination.Balance += req.Amount

	rec := models.TransferRecord{
		ID:                   uuid.NewString(),
		SourceAccountID:      source.ID,
		DestinationAccountID: destination.ID,
		Amount:               req.Amount,
		SourceBalance:        source.Balance,
		DestinationBalance:   destination.Balance,
		CreatedAt:            time.Now(),
	}
	m.records = append(m.records, rec)

	out := rec
	return &out, nil
}

func (m *Memory) Get(ctx context.Context, accountID string) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.accts[accountID]
	if !ok {
		return nil, common.ErrorAccountNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *Memory) ListTransfers(ctx context.Context, accountID string) ([]models.TransferRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.TransferRecord
	for i := len(m.records) - 1; i >= 0; i-- {
		rec := m.records[i]
		if rec.SourceAccountID == accountID || rec.DestinationAccountID == accountID {
			out = append(out, rec)
		}
	}
	return out, nil
}
