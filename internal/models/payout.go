package models

import "time"

// Payout represents one executed payout row.
type Payout struct {
	PayoutID      string    `db:"payout_id"`
	LocationID    string    `db:"location_id"`
	EmployeeID    string    `db:"employee_id"`
	AmountCents   int64     `db:"amount_cents"`
	Method        string    `db:"method"`
	BatchID       *string   `db:"batch_id"` // Nullable; set for payroll runs
	LedgerEntryID string    `db:"ledger_entry_id"`
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
}
