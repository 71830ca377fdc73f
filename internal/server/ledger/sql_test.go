package ledger

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/hardbank/hardbank/internal/common"
	"github.com/hardbank/hardbank/internal/logging"
	"github.com/hardbank/hardbank/internal/server/models"
	"github.com/hardbank/hardbank/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLLedger(t *testing.T, limit int64) (*SQL, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewSQL(db, repomanager.NewPostgresRepositoryManager(), limit, logger), mock, db
}

func pairRows(srcID string, srcOwner string, srcBal int64, dstID string, dstOwner string, dstBal int64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "owner_user_id", "balance", "created_at"}).
		AddRow(srcID, srcOwner, srcBal, now).
		AddRow(dstID, dstOwner, dstBal, now)
}

func TestSQL_Transfer_CommitsAllOrNothing(t *testing.T) {
	l, mock, db := newSQLLedger(t, 0)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR\s+UPDATE`).
		WithArgs("a-1", "a-2").
		WillReturnRows(pairRows("a-1", "u-1", 1000, "a-2", "u-2", 200))
	mock.ExpectExec(`UPDATE\s+accounts\s+SET\s+balance`).
		WithArgs("a-1", int64(700)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE\s+accounts\s+SET\s+balance`).
		WithArgs("a-2", int64(500)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT\s+INTO\s+transfers`).
		WithArgs("a-1", "a-2", int64(300), int64(700), int64(500)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("t-1", time.Now()))
	mock.ExpectCommit()

	rec, err := l.Transfer(context.Background(), models.TransferRequest{
		SourceAccountID:      "a-1",
		DestinationAccountID: "a-2",
		Amount:               300,
	})
	require.NoError(t, err)
	assert.Equal(t, "t-1", rec.ID)
	assert.Equal(t, int64(700), rec.SourceBalance)
	assert.Equal(t, int64(500), rec.DestinationBalance)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQL_Transfer_InsufficientFundsRollsBack(t *testing.T) {
	l, mock, db := newSQLLedger(t, 0)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR\s+UPDATE`).
		WithArgs("a-1", "a-2").
		WillReturnRows(pairRows("a-1", "u-1", 100, "a-2", "u-2", 200))
	mock.ExpectRollback()

	_, err := l.Transfer(context.Background(), models.TransferRequest{
		SourceAccountID:      "a-1",
		DestinationAccountID: "a-2",
		Amount:               300,
	})
	assert.ErrorIs(t, err, common.ErrorInsufficientFunds)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQL_Transfer_MissingAccountRollsBack(t *testing.T) {
	l, mock, db := newSQLLedger(t, 0)
	defer db.Close()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`FOR\s+UPDATE`).
		WithArgs("a-1", "ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_user_id", "balance", "created_at"}).
			AddRow("a-1", "u-1", int64(1000), now))
	mock.ExpectRollback()

	_, err := l.Transfer(context.Background(), models.TransferRequest{
		SourceAccountID:      "a-1",
		DestinationAccountID: "ghost",
		Amount:               300,
	})
	assert.ErrorIs(t, err, common.ErrorAccountNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQL_Transfer_StaticChecksSkipTheDatabase(t *testing.T) {
	l, mock, db := newSQLLedger(t, 1000)
	defer db.Close()

	tests := []struct {
		name string
		req  models.TransferRequest
		want error
	}{
		{"non-positive amount", models.TransferRequest{SourceAccountID: "a", DestinationAccountID: "b", Amount: 0}, common.ErrorInvalidAmount},
		{"same account", models.TransferRequest{SourceAccountID: "a", DestinationAccountID: "a", Amount: 10}, common.ErrorSameAccount},
		{"over the cap", models.TransferRequest{SourceAccountID: "a", DestinationAccountID: "b", Amount: 1001}, common.ErrorLimitExceeded},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := l.Transfer(context.Background(), tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	// no transaction was ever opened
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQL_Get_MapsNotFound(t *testing.T) {
	l, mock, db := newSQLLedger(t, 0)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,\s*owner_user_id`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := l.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrorAccountNotFound)
}
