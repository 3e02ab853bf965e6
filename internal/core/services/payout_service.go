package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/GetwithitMan/gwi-pos-sub009/internal/apperrors"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/domain"
	portsrepo "github.com/GetwithitMan/gwi-pos-sub009/internal/core/ports/repositories"
	portssvc "github.com/GetwithitMan/gwi-pos-sub009/internal/core/ports/services"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/dto"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/middleware"
)

const (
	reasonNonPositiveAmount   = "payout amount must be positive"
	reasonInsufficientBalance = "insufficient balance"
)

// payoutService moves earned tips out of ledgers, in cash at the drawer or in
// bulk through payroll. Insufficient balance is a business outcome here, not
// an error, so cash-outs soft-fail.
type payoutService struct {
	payoutRepo    portsrepo.PayoutRepositoryFacade
	reportingRepo portsrepo.ReportingReader
	ledgerSvc     portssvc.LedgerSvcFacade
}

// NewPayoutService creates a new PayoutService.
func NewPayoutService(payoutRepo portsrepo.PayoutRepositoryFacade, reportingRepo portsrepo.ReportingReader, ledgerSvc portssvc.LedgerSvcFacade) portssvc.PayoutSvcFacade {
	return &payoutService{
		payoutRepo:    payoutRepo,
		reportingRepo: reportingRepo,
		ledgerSvc:     ledgerSvc,
	}
}

var _ portssvc.PayoutSvcFacade = (*payoutService)(nil)

// CashOut pays an employee in cash. The amount defaults to the full balance.
func (s *payoutService) CashOut(ctx context.Context, locationID string, req dto.CashOutRequest, actorID string) (*dto.CashOutResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	balance, err := s.ledgerSvc.Balance(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	amount := balance
	if req.AmountCents != nil {
		amount = *req.AmountCents
	}

	if amount <= 0 {
		return &dto.CashOutResponse{Success: false, Reason: reasonNonPositiveAmount, NewBalanceCents: balance}, nil
	}
	if amount > balance {
		return &dto.CashOutResponse{Success: false, Reason: reasonInsufficientBalance, NewBalanceCents: balance}, nil
	}

	payout, newBalance, err := s.executePayout(ctx, locationID, req.EmployeeID, amount, domain.PayoutCash, nil, actorID)
	if err != nil {
		// The repo re-checks the balance under a row lock; losing that race
		// is the same business outcome as the pre-check failing.
		if errors.Is(err, apperrors.ErrConflict) {
			current, berr := s.ledgerSvc.Balance(ctx, req.EmployeeID)
			if berr != nil {
				return nil, berr
			}
			return &dto.CashOutResponse{Success: false, Reason: reasonInsufficientBalance, NewBalanceCents: current}, nil
		}
		return nil, err
	}

	logger.Info("Cash payout executed",
		slog.String("payout_id", payout.PayoutID),
		slog.String("employee_id", req.EmployeeID),
		slog.Int64("amount_cents", amount),
		slog.Int64("new_balance_cents", newBalance),
	)

	resp := dto.ToPayoutResponse(payout)
	return &dto.CashOutResponse{Success: true, Payout: &resp, NewBalanceCents: newBalance}, nil
}

// BatchPayrollPayout drains every positive balance of the location to payroll
// under one batch ID. Individual failures skip the employee rather than
// aborting the run.
func (s *payoutService) BatchPayrollPayout(ctx context.Context, req dto.BatchPayrollRequest, actorID string) (*dto.PayrollSummaryResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	balances, err := s.reportingRepo.PayableBalances(ctx, req.LocationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payable balances: %w", err)
	}

	var include map[string]bool
	if len(req.EmployeeIDs) > 0 {
		include = make(map[string]bool, len(req.EmployeeIDs))
		for _, id := range req.EmployeeIDs {
			include[id] = true
		}
	}

	batchID := uuid.NewString()
	summary := &dto.PayrollSummaryResponse{BatchID: batchID}
	for _, b := range balances {
		if include != nil && !include[b.EmployeeID] {
			continue
		}
		payout, _, err := s.executePayout(ctx, req.LocationID, b.EmployeeID, b.BalanceCents, domain.PayoutPayroll, &batchID, actorID)
		if err != nil {
			logger.Warn("Skipping employee in payroll batch",
				slog.String("batch_id", batchID),
				slog.String("employee_id", b.EmployeeID),
				slog.String("error", err.Error()),
			)
			summary.SkippedEmployees = append(summary.SkippedEmployees, b.EmployeeID)
			continue
		}
		summary.Payouts = append(summary.Payouts, dto.ToPayoutResponse(payout))
		summary.TotalCents += payout.AmountCents
		summary.EmployeesPaid++
	}

	logger.Info("Payroll batch completed",
		slog.String("batch_id", batchID),
		slog.String("location_id", req.LocationID),
		slog.Int("employees_paid", summary.EmployeesPaid),
		slog.Int64("total_cents", summary.TotalCents),
		slog.Int("skipped", len(summary.SkippedEmployees)),
	)
	return summary, nil
}

// PayoutHistory lists executed payouts for a location, newest first.
func (s *payoutService) PayoutHistory(ctx context.Context, locationID string, params dto.ListPayoutsParams) (*dto.ListPayoutsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	filter := portsrepo.PayoutFilter{
		EmployeeID: params.EmployeeID,
		From:       params.From,
		To:         params.To,
	}
	if params.Method != nil {
		method := domain.PayoutMethod(*params.Method)
		filter.Method = &method
	}

	payouts, nextToken, err := s.payoutRepo.ListPayouts(ctx, locationID, filter, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list payouts: %w", err)
	}
	return &dto.ListPayoutsResponse{Payouts: dto.ToPayoutResponses(payouts), NextToken: nextToken}, nil
}

// executePayout builds the payout record and its backing ledger debit and
// persists both atomically.
func (s *payoutService) executePayout(ctx context.Context, locationID, employeeID string, amountCents int64, method domain.PayoutMethod, batchID *string, actorID string) (*domain.Payout, int64, error) {
	now := time.Now().UTC()
	payout := domain.Payout{
		PayoutID:    uuid.NewString(),
		LocationID:  locationID,
		EmployeeID:  employeeID,
		AmountCents: amountCents,
		Method:      method,
		BatchID:     batchID,
		CreatedAt:   now,
		CreatedBy:   actorID,
	}

	sourceType := domain.SourcePayoutCash
	if method == domain.PayoutPayroll {
		sourceType = domain.SourcePayoutPayroll
	}
	entry := domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		EmployeeID:  employeeID,
		EntryType:   domain.Debit,
		AmountCents: -amountCents,
		SourceType:  sourceType,
		SourceID:    payout.PayoutID,
		CreatedAt:   now,
		CreatedBy:   actorID,
	}
	payout.LedgerEntryID = entry.EntryID

	newBalance, err := s.payoutRepo.SavePayout(ctx, payout, entry)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to save payout for employee %s: %w", employeeID, err)
	}
	return &payout, newBalance, nil
}
