package models

import "time"

// TransferRequest is the typed form of an inbound transfer. Built at the
// HTTP boundary before any component runs; never persisted.
type TransferRequest struct {
	SourceAccountID      string
	DestinationAccountID string
	Amount               int64
}

// TransferRecord is one committed transfer. Append-only: written in the same
// atomic unit as the balance mutation and never changed afterwards. The
// resulting balances are captured so the record alone reconstructs history.
type TransferRecord struct {
	ID                   string
	SourceAccountID      string
	DestinationAccountID string
	Amount               int64
	SourceBalance        int64
	DestinationBalance   int64
	CreatedAt            time.Time
}
