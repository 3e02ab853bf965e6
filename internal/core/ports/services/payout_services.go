package services

import (
	"context"

	"github.com/GetwithitMan/gwi-pos-sub009/internal/dto"
)

// PayoutSvcFacade executes cash and payroll payouts against ledger balances.
type PayoutSvcFacade interface {
	// CashOut pays out in cash, defaulting to the full balance. Non-positive
	// or over-balance amounts return success=false without posting.
	CashOut(ctx context.Context, locationID string, req dto.CashOutRequest, actorID string) (*dto.CashOutResponse, error)

	// BatchPayrollPayout pays every positive ledger balance of the location
	// (optionally filtered) to payroll, one debit per employee.
	BatchPayrollPayout(ctx context.Context, req dto.BatchPayrollRequest, actorID string) (*dto.PayrollSummaryResponse, error)

	// PayoutHistory lists executed payouts for a location.
	PayoutHistory(ctx context.Context, locationID string, params dto.ListPayoutsParams) (*dto.ListPayoutsResponse, error)
}
