package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/hardbank/hardbank/internal/common"
	"github.com/hardbank/hardbank/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryPair(t *testing.T, srcBalance, dstBalance int64) (*Memory, *models.Account, *models.Account) {
	t.Helper()
	m := NewMemory(0)
	src, err := m.CreateAccount("alice", srcBalance)
	require.NoError(t, err)
	dst, err := m.CreateAccount("bob", dstBalance)
	require.NoError(t, err)
	return m, src, dst
}

func TestMemory_Transfer_RoundTrip(t *testing.T) {
	m, src, dst := newMemoryPair(t, 1000, 200)
	ctx := context.Background()

	rec, err := m.Transfer(ctx, models.TransferRequest{
		SourceAccountID:      src.ID,
		DestinationAccountID: dst.ID,
		Amount:               300,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(300), rec.Amount)
	assert.Equal(t, int64(700), rec.SourceBalance)
	assert.Equal(t, int64(500), rec.DestinationBalance)

	gotSrc, err := m.Get(ctx, src.ID)
	require.NoError(t, err)
	gotDst, err := m.Get(ctx, dst.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(700), gotSrc.Balance)
	assert.Equal(t, int64(500), gotDst.Balance)

	recs, err := m.ListTransfers(ctx, src.ID)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, rec.ID, recs[0].ID)
}

func TestMemory_Transfer_Preconditions(t *testing.T) {
	m, src, dst := newMemoryPair(t, 100, 0)
	ctx := context.Background()

	tests := []struct {
		name string
		req  models.TransferRequest
		want error
	}{
		{"zero amount", models.TransferRequest{SourceAccountID: src.ID, DestinationAccountID: dst.ID, Amount: 0}, common.ErrorInvalidAmount},
		{"negative amount", models.TransferRequest{SourceAccountID: src.ID, DestinationAccountID: dst.ID, Amount: -5}, common.ErrorInvalidAmount},
		{"same account", models.TransferRequest{SourceAccountID: src.ID, DestinationAccountID: src.ID, Amount: 10}, common.ErrorSameAccount},
		{"unknown source", models.TransferRequest{SourceAccountID: "ghost", DestinationAccountID: dst.ID, Amount: 10}, common.ErrorAccountNotFound},
		{"unknown destination", models.TransferRequest{SourceAccountID: src.ID, DestinationAccountID: "ghost", Amount: 10}, common.ErrorAccountNotFound},
		{"insufficient funds", models.TransferRequest{SourceAccountID: src.ID, DestinationAccountID: dst.ID, Amount: 101}, common.ErrorInsufficientFunds},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := m.Transfer(ctx, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	// nothing moved
	got, err := m.Get(ctx, src.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), got.Balance)
}

func TestMemory_Transfer_Limit(t *testing.T) {
	m := NewMemory(1000)
	src, err := m.CreateAccount("alice", 5000)
	require.NoError(t, err)
	dst, err := m.CreateAccount("bob", 0)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = m.Transfer(ctx, models.TransferRequest{SourceAccountID: src.ID, DestinationAccountID: dst.ID, Amount: 1001})
	assert.ErrorIs(t, err, common.ErrorLimitExceeded)

	// boundary value passes
	_, err = m.Transfer(ctx, models.TransferRequest{SourceAccountID: src.ID, DestinationAccountID: dst.ID, Amount: 1000})
	assert.NoError(t, err)
}

func TestMemory_ConcurrentTransfers_NeverOverdraw(t *testing.T) {
	const (
		start   = int64(1000)
		workers = 50
		amount  = int64(100) // 50 * 100 = 5000 requested, only 10 can commit
	)

	m, src, dst := newMemoryPair(t, start, 0)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	var committed, rejected int

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Transfer(ctx, models.TransferRequest{
				SourceAccountID:      src.ID,
				DestinationAccountID: dst.ID,
				Amount:               amount,
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				committed++
			case errors.Is(err, common.ErrorInsufficientFunds):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, committed)
	assert.Equal(t, workers-10, rejected)

	gotSrc, err := m.Get(ctx, src.ID)
	require.NoError(t, err)
	gotDst, err := m.Get(ctx, dst.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(0), gotSrc.Balance, "source must end exactly drained, never negative")
	assert.Equal(t, start, gotDst.Balance)
}
