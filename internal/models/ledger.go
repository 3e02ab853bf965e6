package models

import "time"

// EntryType mirrors the domain ledger entry direction.
type EntryType string

const (
	Credit EntryType = "CREDIT"
	Debit  EntryType = "DEBIT"
)

// Ledger represents a per-employee tip account row with its cached balance.
type Ledger struct {
	LedgerID            string `db:"ledger_id"`
	EmployeeID          string `db:"employee_id"`
	LocationID          string `db:"location_id"`
	CurrentBalanceCents int64  `db:"current_balance_cents"`
	AuditFields
}

// LedgerEntry represents one immutable signed posting against a ledger.
type LedgerEntry struct {
	EntryID        string    `db:"entry_id"`
	LedgerID       string    `db:"ledger_id"`
	EmployeeID     string    `db:"employee_id"`
	EntryType      EntryType `db:"entry_type"`
	AmountCents    int64     `db:"amount_cents"`
	SourceType     string    `db:"source_type"`
	SourceID       string    `db:"source_id"`
	IdempotencyKey *string   `db:"idempotency_key"` // Nullable
	CreatedAt      time.Time `db:"created_at"`
	CreatedBy      string    `db:"created_by"`
}
