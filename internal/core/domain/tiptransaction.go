package domain

import (
	"fmt"
	"time"
)

// TipSourceType is the tender that carried the gratuity.
type TipSourceType string

const (
	TipSourceCard TipSourceType = "CARD"
	TipSourceCash TipSourceType = "CASH"
)

// TipKind distinguishes voluntary tips from service charges.
type TipKind string

const (
	KindTip           TipKind = "tip"
	KindServiceCharge TipKind = "service_charge"
	KindAutoGratuity  TipKind = "auto_gratuity"
)

// TipTransaction is the immutable record of one captured gratuity event.
// One transaction fans out into zero or more ledger entries, one per recipient.
type TipTransaction struct {
	TransactionID     string        `json:"transactionID"` // Primary Key (UUID)
	LocationID        string        `json:"locationID"`
	OrderID           string        `json:"orderID"`
	PaymentID         string        `json:"paymentID"`
	AmountCents       int64         `json:"amountCents"`
	CCFeeAmountCents  int64         `json:"ccFeeAmountCents"`
	SourceType        TipSourceType `json:"sourceType"`
	Kind              TipKind       `json:"kind"`
	CollectedAt       time.Time     `json:"collectedAt"`
	PrimaryEmployeeID string        `json:"primaryEmployeeID"`
	TipGroupID        *string       `json:"tipGroupID,omitempty"`
	SegmentID         *string       `json:"segmentID,omitempty"`
	IdempotencyKey    string        `json:"idempotencyKey"`
	CreatedAt         time.Time     `json:"createdAt"`
}

// TipTransactionKey builds the deterministic idempotency key that guarantees
// a captured payment's tip is allocated at most once.
func TipTransactionKey(orderID, paymentID string) string {
	return fmt.Sprintf("tip-txn:%s:%s", orderID, paymentID)
}

// Allocation is one posted slice of a tip transaction.
type Allocation struct {
	EmployeeID    string          `json:"employeeID"`
	AmountCents   int64           `json:"amountCents"`
	SourceType    EntrySourceType `json:"sourceType"`
	LedgerEntryID string          `json:"ledgerEntryID"`
}
