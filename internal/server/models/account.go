package models

import "time"

// Account belongs to exactly one user. Balance is in integer minor-currency
// units and never goes negative; the ledger enforces that transactionally.
type Account struct {
	ID          string
	OwnerUserID string
	Balance     int64
	CreatedAt   time.Time
}
