package domain

import "time"

// PayoutMethod is how a payout reaches the employee.
type PayoutMethod string

const (
	PayoutCash    PayoutMethod = "CASH"
	PayoutPayroll PayoutMethod = "PAYROLL"
)

// Payout records one executed payout, backed by a ledger debit.
type Payout struct {
	PayoutID      string       `json:"payoutID"` // Primary Key (UUID)
	LocationID    string       `json:"locationID"`
	EmployeeID    string       `json:"employeeID"`
	AmountCents   int64        `json:"amountCents"`
	Method        PayoutMethod `json:"method"`
	BatchID       *string      `json:"batchID,omitempty"` // set for payroll runs
	LedgerEntryID string       `json:"ledgerEntryID"`
	CreatedAt     time.Time    `json:"createdAt"`
	CreatedBy     string       `json:"createdBy"`
}

// EmployeeBalance is a read-side row for payable-balance listings.
type EmployeeBalance struct {
	EmployeeID   string `json:"employeeID"`
	EmployeeName string `json:"employeeName"`
	BalanceCents int64  `json:"balanceCents"`
}
