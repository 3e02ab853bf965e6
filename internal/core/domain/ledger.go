package domain

import "time"

// EntryType indicates whether a ledger entry adds to or removes from a balance.
type EntryType string

const (
	Credit EntryType = "CREDIT"
	Debit  EntryType = "DEBIT"
)

// EntrySourceType identifies the business event that produced a ledger entry.
type EntrySourceType string

const (
	SourceDirectTip      EntrySourceType = "DIRECT_TIP"
	SourceTipGroup       EntrySourceType = "TIP_GROUP"
	SourceRoleTipout     EntrySourceType = "ROLE_TIPOUT"
	SourceManualTransfer EntrySourceType = "MANUAL_TRANSFER"
	SourcePayoutCash     EntrySourceType = "PAYOUT_CASH"
	SourcePayoutPayroll  EntrySourceType = "PAYOUT_PAYROLL"
	SourceChargeback     EntrySourceType = "CHARGEBACK"
	SourceAdjustment     EntrySourceType = "ADJUSTMENT"
)

// Ledger is the per-employee tip account. The balance is a cached sum of all
// entries, co-updated transactionally with every posting.
type Ledger struct {
	LedgerID            string `json:"ledgerID"` // Primary Key (UUID)
	EmployeeID          string `json:"employeeID"`
	LocationID          string `json:"locationID"`
	CurrentBalanceCents int64  `json:"currentBalanceCents"`
	AuditFields
}

// LedgerEntry is a single immutable credit or debit against a ledger.
// AmountCents is signed: positive for credits, negative for debits.
type LedgerEntry struct {
	EntryID        string          `json:"entryID"` // Primary Key (UUID)
	LedgerID       string          `json:"ledgerID"`
	EmployeeID     string          `json:"employeeID"`
	EntryType      EntryType       `json:"entryType"`
	AmountCents    int64           `json:"amountCents"`
	SourceType     EntrySourceType `json:"sourceType"`
	SourceID       string          `json:"sourceID"` // triggering transaction / payout ID
	IdempotencyKey *string         `json:"idempotencyKey,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
}

// RecalculateResult reports the outcome of a ledger integrity check.
type RecalculateResult struct {
	EmployeeID      string `json:"employeeID"`
	CachedCents     int64  `json:"cachedCents"`
	CalculatedCents int64  `json:"calculatedCents"`
	Repaired        bool   `json:"repaired"`
}
