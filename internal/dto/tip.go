package dto

import (
	"time"

	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/domain"
)

// CaptureTipRequest is supplied by the payment-capture collaborator for each
// gratuity taken at checkout. Amounts are integer minor currency units.
type CaptureTipRequest struct {
	LocationID        string    `json:"locationID" binding:"required"`
	OrderID           string    `json:"orderID" binding:"required"`
	PaymentID         string    `json:"paymentID" binding:"required"`
	AmountCents       int64     `json:"amountCents" binding:"min=0"`
	CCFeeAmountCents  int64     `json:"ccFeeAmountCents" binding:"min=0"`
	SourceType        string    `json:"sourceType" binding:"required,oneof=CARD CASH"`
	Kind              string    `json:"kind" binding:"required,oneof=tip service_charge auto_gratuity"`
	CollectedAt       time.Time `json:"collectedAt" binding:"required"`
	PrimaryEmployeeID string    `json:"primaryEmployeeID" binding:"required"`
}

// AllocationSlice is one posted share of a captured tip.
type AllocationSlice struct {
	EmployeeID    string `json:"employeeID"`
	AmountCents   int64  `json:"amountCents"`
	SourceType    string `json:"sourceType"`
	LedgerEntryID string `json:"ledgerEntryID"`
}

// AllocateTipResponse returns the committed transaction and its fan-out.
type AllocateTipResponse struct {
	TransactionID string            `json:"transactionID"`
	GrossCents    int64             `json:"grossCents"`
	FeeCents      int64             `json:"feeCents"`
	NetCents      int64             `json:"netCents"`
	Replayed      bool              `json:"replayed"`
	Allocations   []AllocationSlice `json:"allocations"`
}

// ToAllocationSlices converts domain allocations to response slices.
func ToAllocationSlices(allocations []domain.Allocation) []AllocationSlice {
	out := make([]AllocationSlice, len(allocations))
	for i, a := range allocations {
		out[i] = AllocationSlice{
			EmployeeID:    a.EmployeeID,
			AmountCents:   a.AmountCents,
			SourceType:    string(a.SourceType),
			LedgerEntryID: a.LedgerEntryID,
		}
	}
	return out
}
