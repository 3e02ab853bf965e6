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

var (
	ErrAmountSignMismatch  = errors.New("entry amount sign does not match entry type")
	ErrZeroAmountEntry     = errors.New("entry amount must be non-zero")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrSelfTransfer        = errors.New("cannot transfer to the same employee")
)

// ledgerService provides the append-only tip account operations every other
// service posts through.
type ledgerService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{ledgerRepo: ledgerRepo}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// GetOrCreate lazily creates a zero-balance ledger for the employee.
func (s *ledgerService) GetOrCreate(ctx context.Context, employeeID, locationID, actorID string) (*domain.Ledger, error) {
	ledger, err := s.ledgerRepo.GetOrCreateLedger(ctx, employeeID, locationID, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create ledger for employee %s: %w", employeeID, err)
	}
	return ledger, nil
}

// Post atomically inserts one signed entry and adjusts the cached balance.
// A reused idempotency key returns the originally posted entry unchanged.
func (s *ledgerService) Post(ctx context.Context, locationID, employeeID string, amountCents int64, entryType domain.EntryType, sourceType domain.EntrySourceType, sourceID string, idempotencyKey *string, actorID string) (*domain.LedgerEntry, int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if amountCents == 0 {
		return nil, 0, ErrZeroAmountEntry
	}
	if (entryType == domain.Credit && amountCents < 0) || (entryType == domain.Debit && amountCents > 0) {
		return nil, 0, fmt.Errorf("%w: %s of %d cents", ErrAmountSignMismatch, entryType, amountCents)
	}

	if idempotencyKey != nil {
		if existing, err := s.ledgerRepo.FindEntryByIdempotencyKey(ctx, *idempotencyKey); err == nil {
			logger.Info("Idempotent replay of ledger posting", slog.String("idempotency_key", *idempotencyKey), slog.String("entry_id", existing.EntryID))
			balance, berr := s.Balance(ctx, existing.EmployeeID)
			if berr != nil {
				return nil, 0, berr
			}
			return existing, balance, nil
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, 0, fmt.Errorf("failed to check idempotency key: %w", err)
		}
	}

	entry := domain.LedgerEntry{
		EntryID:        uuid.NewString(),
		EmployeeID:     employeeID,
		EntryType:      entryType,
		AmountCents:    amountCents,
		SourceType:     sourceType,
		SourceID:       sourceID,
		IdempotencyKey: idempotencyKey,
		CreatedAt:      time.Now().UTC(),
		CreatedBy:      actorID,
	}

	balances, err := s.ledgerRepo.PostEntries(ctx, locationID, []domain.LedgerEntry{entry})
	if err != nil {
		// A concurrent caller with the same key won the race; return its entry.
		if errors.Is(err, apperrors.ErrDuplicate) && idempotencyKey != nil {
			existing, ferr := s.ledgerRepo.FindEntryByIdempotencyKey(ctx, *idempotencyKey)
			if ferr != nil {
				return nil, 0, fmt.Errorf("failed to load entry after duplicate key: %w", ferr)
			}
			balance, berr := s.Balance(ctx, existing.EmployeeID)
			if berr != nil {
				return nil, 0, berr
			}
			return existing, balance, nil
		}
		logger.Error("Failed to post ledger entry", slog.String("employee_id", employeeID), slog.String("error", err.Error()))
		return nil, 0, fmt.Errorf("failed to post ledger entry: %w", err)
	}

	return &entry, balances[employeeID], nil
}

// Balance is a fast cached read; employees with no ledger yet have zero.
func (s *ledgerService) Balance(ctx context.Context, employeeID string) (int64, error) {
	ledger, err := s.ledgerRepo.FindLedgerByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read ledger for employee %s: %w", employeeID, err)
	}
	return ledger.CurrentBalanceCents, nil
}

// Entries lists an employee's entry history with filters and pagination.
func (s *ledgerService) Entries(ctx context.Context, employeeID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	filter := portsrepo.EntryFilter{From: params.From, To: params.To}
	for _, st := range params.SourceTypes {
		filter.SourceTypes = append(filter.SourceTypes, domain.EntrySourceType(st))
	}

	entries, nextToken, err := s.ledgerRepo.ListEntries(ctx, employeeID, filter, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	return &dto.ListEntriesResponse{
		Entries:   dto.ToLedgerEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// Recalculate re-sums all entries and repairs the cached balance if drifted.
func (s *ledgerService) Recalculate(ctx context.Context, employeeID, actorID string) (*domain.RecalculateResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	result, err := s.ledgerRepo.RecalculateBalance(ctx, employeeID, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to recalculate ledger for employee %s: %w", employeeID, err)
	}
	if result.Repaired {
		logger.Warn("Ledger balance drift repaired",
			slog.String("employee_id", employeeID),
			slog.Int64("cached_cents", result.CachedCents),
			slog.Int64("calculated_cents", result.CalculatedCents),
		)
	}
	return result, nil
}

// Transfer posts a paired MANUAL_TRANSFER debit/credit in one atomic unit.
func (s *ledgerService) Transfer(ctx context.Context, locationID string, req dto.TransferRequest, actorID string) ([]domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.FromEmployeeID == req.ToEmployeeID {
		return nil, ErrSelfTransfer
	}
	if req.AmountCents <= 0 {
		return nil, fmt.Errorf("%w: transfer amount must be positive", apperrors.ErrValidation)
	}

	fromBalance, err := s.Balance(ctx, req.FromEmployeeID)
	if err != nil {
		return nil, err
	}
	if fromBalance < req.AmountCents {
		return nil, fmt.Errorf("%w: balance %d, requested %d", ErrInsufficientBalance, fromBalance, req.AmountCents)
	}

	now := time.Now().UTC()
	transferID := uuid.NewString()
	entries := []domain.LedgerEntry{
		{
			EntryID:     uuid.NewString(),
			EmployeeID:  req.FromEmployeeID,
			EntryType:   domain.Debit,
			AmountCents: -req.AmountCents,
			SourceType:  domain.SourceManualTransfer,
			SourceID:    transferID,
			CreatedAt:   now,
			CreatedBy:   actorID,
		},
		{
			EntryID:     uuid.NewString(),
			EmployeeID:  req.ToEmployeeID,
			EntryType:   domain.Credit,
			AmountCents: req.AmountCents,
			SourceType:  domain.SourceManualTransfer,
			SourceID:    transferID,
			CreatedAt:   now,
			CreatedBy:   actorID,
		},
	}

	if _, err := s.ledgerRepo.PostEntries(ctx, locationID, entries); err != nil {
		logger.Error("Failed to post transfer", slog.String("transfer_id", transferID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to post transfer: %w", err)
	}

	logger.Info("Manual transfer posted",
		slog.String("transfer_id", transferID),
		slog.String("from", req.FromEmployeeID),
		slog.String("to", req.ToEmployeeID),
		slog.Int64("amount_cents", req.AmountCents),
	)
	return entries, nil
}
