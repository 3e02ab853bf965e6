package dto

import (
	"time"

	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/domain"
)

// CashOutRequest pays an employee's tips out in cash. AmountCents defaults to
// the full current balance when omitted.
type CashOutRequest struct {
	LocationID  string `json:"locationID" binding:"required"`
	EmployeeID  string `json:"employeeID" binding:"required"`
	AmountCents *int64 `json:"amountCents,omitempty"`
}

// BatchPayrollRequest runs a payroll payout for every positive-balance
// employee of the location, optionally restricted to the given IDs.
type BatchPayrollRequest struct {
	LocationID  string   `json:"locationID" binding:"required"`
	EmployeeIDs []string `json:"employeeIDs,omitempty"`
}

// PayoutResponse is one payout row.
type PayoutResponse struct {
	PayoutID      string    `json:"payoutID"`
	EmployeeID    string    `json:"employeeID"`
	AmountCents   int64     `json:"amountCents"`
	Method        string    `json:"method"`
	BatchID       *string   `json:"batchID,omitempty"`
	LedgerEntryID string    `json:"ledgerEntryID"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CashOutResponse is the soft-failure result of a cash-out attempt.
type CashOutResponse struct {
	Success         bool            `json:"success"`
	Reason          string          `json:"reason,omitempty"`
	Payout          *PayoutResponse `json:"payout,omitempty"`
	NewBalanceCents int64           `json:"newBalanceCents"`
}

// PayrollSummaryResponse reports one payroll batch run.
type PayrollSummaryResponse struct {
	BatchID          string           `json:"batchID"`
	Payouts          []PayoutResponse `json:"payouts"`
	TotalCents       int64            `json:"totalCents"`
	EmployeesPaid    int              `json:"employeesPaid"`
	SkippedEmployees []string         `json:"skippedEmployees,omitempty"`
}

// ListPayoutsParams filters and pages payout history.
type ListPayoutsParams struct {
	EmployeeID *string    `form:"employeeID"`
	Method     *string    `form:"method"`
	From       *time.Time `form:"from"`
	To         *time.Time `form:"to"`
	Limit      int        `form:"limit"`
	NextToken  *string    `form:"nextToken"`
}

// ListPayoutsResponse is a page of payout history.
type ListPayoutsResponse struct {
	Payouts   []PayoutResponse `json:"payouts"`
	NextToken *string          `json:"nextToken,omitempty"`
}

// ToPayoutResponse converts a domain payout.
func ToPayoutResponse(p *domain.Payout) PayoutResponse {
	return PayoutResponse{
		PayoutID:      p.PayoutID,
		EmployeeID:    p.EmployeeID,
		AmountCents:   p.AmountCents,
		Method:        string(p.Method),
		BatchID:       p.BatchID,
		LedgerEntryID: p.LedgerEntryID,
		CreatedAt:     p.CreatedAt,
	}
}

// ToPayoutResponses converts domain payouts.
func ToPayoutResponses(payouts []domain.Payout) []PayoutResponse {
	out := make([]PayoutResponse, len(payouts))
	for i := range payouts {
		out[i] = ToPayoutResponse(&payouts[i])
	}
	return out
}
