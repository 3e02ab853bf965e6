package dto

import (
	"time"

	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/domain"
)

// BalanceResponse is a fast cached balance read.
type BalanceResponse struct {
	EmployeeID   string `json:"employeeID"`
	BalanceCents int64  `json:"balanceCents"`
}

// LedgerEntryResponse is one immutable ledger line.
type LedgerEntryResponse struct {
	EntryID     string    `json:"entryID"`
	EmployeeID  string    `json:"employeeID"`
	EntryType   string    `json:"entryType"`
	AmountCents int64     `json:"amountCents"`
	SourceType  string    `json:"sourceType"`
	SourceID    string    `json:"sourceID"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ListEntriesParams filters and pages an employee's entry history.
type ListEntriesParams struct {
	SourceTypes []string   `form:"sourceTypes"`
	From        *time.Time `form:"from"`
	To          *time.Time `form:"to"`
	Limit       int        `form:"limit"`
	NextToken   *string    `form:"nextToken"`
}

// ListEntriesResponse is a page of ledger entries.
type ListEntriesResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// TransferRequest moves tip balance between two employees as a paired
// debit/credit posting.
type TransferRequest struct {
	LocationID     string `json:"locationID" binding:"required"`
	FromEmployeeID string `json:"fromEmployeeID" binding:"required"`
	ToEmployeeID   string `json:"toEmployeeID" binding:"required"`
	AmountCents    int64  `json:"amountCents" binding:"required,gt=0"`
	Reason         string `json:"reason"`
}

// RecalculateResponse reports a ledger integrity check.
type RecalculateResponse struct {
	EmployeeID      string `json:"employeeID"`
	CachedCents     int64  `json:"cachedCents"`
	CalculatedCents int64  `json:"calculatedCents"`
	Repaired        bool   `json:"repaired"`
}

// ToLedgerEntryResponses converts domain entries.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	out := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = LedgerEntryResponse{
			EntryID:     e.EntryID,
			EmployeeID:  e.EmployeeID,
			EntryType:   string(e.EntryType),
			AmountCents: e.AmountCents,
			SourceType:  string(e.SourceType),
			SourceID:    e.SourceID,
			CreatedAt:   e.CreatedAt,
		}
	}
	return out
}
