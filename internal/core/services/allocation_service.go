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
	"github.com/GetwithitMan/gwi-pos-sub009/internal/utils/tipmath"
)

var (
	ErrNegativeTipAmount = errors.New("tip amount must not be negative")
	ErrFeeExceedsAmount  = errors.New("card fee must not exceed the tip amount")
)

// allocationService slices every captured gratuity first by table ownership,
// then per owner slice by tip group segment, and posts the whole fan-out
// atomically with the transaction record.
type allocationService struct {
	tipTxnRepo   portsrepo.TipTransactionRepositoryFacade
	ownershipSvc portssvc.OwnershipSvcFacade
	tipGroupSvc  portssvc.TipGroupSvcFacade
}

// NewAllocationService creates a new AllocationService.
func NewAllocationService(tipTxnRepo portsrepo.TipTransactionRepositoryFacade, ownershipSvc portssvc.OwnershipSvcFacade, tipGroupSvc portssvc.TipGroupSvcFacade) portssvc.AllocationSvcFacade {
	return &allocationService{
		tipTxnRepo:   tipTxnRepo,
		ownershipSvc: ownershipSvc,
		tipGroupSvc:  tipGroupSvc,
	}
}

var _ portssvc.AllocationSvcFacade = (*allocationService)(nil)

// Allocate implements the capture boundary called for each gratuity.
// Replaying the same (orderID, paymentID) returns the committed result.
func (s *allocationService) Allocate(ctx context.Context, req dto.CaptureTipRequest) (*dto.AllocateTipResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.AmountCents < 0 {
		return nil, ErrNegativeTipAmount
	}
	if req.CCFeeAmountCents < 0 || req.CCFeeAmountCents > req.AmountCents {
		return nil, fmt.Errorf("%w: fee %d, amount %d", ErrFeeExceedsAmount, req.CCFeeAmountCents, req.AmountCents)
	}

	key := domain.TipTransactionKey(req.OrderID, req.PaymentID)

	// Replay safety: a previously committed capture wins unconditionally.
	if existing, err := s.tipTxnRepo.FindByIdempotencyKey(ctx, key); err == nil {
		return s.replayResponse(ctx, existing, logger)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check tip transaction idempotency: %w", err)
	}

	netCents := req.AmountCents - req.CCFeeAmountCents
	now := time.Now().UTC()
	txn := domain.TipTransaction{
		TransactionID:     uuid.NewString(),
		LocationID:        req.LocationID,
		OrderID:           req.OrderID,
		PaymentID:         req.PaymentID,
		AmountCents:       req.AmountCents,
		CCFeeAmountCents:  req.CCFeeAmountCents,
		SourceType:        domain.TipSourceType(req.SourceType),
		Kind:              domain.TipKind(req.Kind),
		CollectedAt:       req.CollectedAt,
		PrimaryEmployeeID: req.PrimaryEmployeeID,
		IdempotencyKey:    key,
		CreatedAt:         now,
	}

	entries, err := s.buildEntries(ctx, &txn, netCents, logger)
	if err != nil {
		return nil, err
	}

	if err := s.tipTxnRepo.SaveTipTransaction(ctx, txn, entries); err != nil {
		// A concurrent capture of the same payment won the race inside the
		// store; observe its committed result instead of erroring.
		if errors.Is(err, apperrors.ErrDuplicate) {
			winner, ferr := s.tipTxnRepo.FindByIdempotencyKey(ctx, key)
			if ferr != nil {
				return nil, fmt.Errorf("failed to load winning tip transaction: %w", ferr)
			}
			return s.replayResponse(ctx, winner, logger)
		}
		logger.Error("Failed to save tip transaction", slog.String("order_id", req.OrderID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save tip transaction: %w", err)
	}

	logger.Info("Tip allocated",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("order_id", req.OrderID),
		slog.Int64("gross_cents", req.AmountCents),
		slog.Int64("net_cents", netCents),
		slog.Int("recipients", len(entries)),
	)

	return &dto.AllocateTipResponse{
		TransactionID: txn.TransactionID,
		GrossCents:    req.AmountCents,
		FeeCents:      req.CCFeeAmountCents,
		NetCents:      netCents,
		Replayed:      false,
		Allocations:   dto.ToAllocationSlices(entriesToAllocations(entries)),
	}, nil
}

// buildEntries produces the full ledger fan-out for a net tip amount: an
// explicit two-level decomposition, owners first, then each owner's group
// segment. Zero-amount tips produce no entries, only the audit transaction.
func (s *allocationService) buildEntries(ctx context.Context, txn *domain.TipTransaction, netCents int64, logger *slog.Logger) ([]domain.LedgerEntry, error) {
	if netCents == 0 {
		return nil, nil
	}

	ownerSlices, err := s.ownerSlices(ctx, txn, netCents)
	if err != nil {
		return nil, err
	}

	var entries []domain.LedgerEntry
	for _, slice := range ownerSlices {
		if slice.AmountCents == 0 {
			continue
		}

		membership, err := s.tipGroupSvc.ActiveMembership(ctx, slice.EmployeeID)
		if err != nil {
			return nil, fmt.Errorf("failed to check group membership for %s: %w", slice.EmployeeID, err)
		}
		if membership == nil {
			entries = append(entries, s.creditEntry(txn, slice.EmployeeID, slice.AmountCents, domain.SourceDirectTip))
			continue
		}

		segment, err := s.tipGroupSvc.FindSegmentForTimestamp(ctx, membership.GroupID, txn.CollectedAt)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to find segment for group %s: %w", membership.GroupID, err)
		}
		if segment == nil || len(segment.Split) == 0 {
			// Never drop money: fall back to crediting the slice's employee.
			logger.Warn("No usable segment for group tip, falling back to direct credit",
				slog.String("group_id", membership.GroupID),
				slog.String("employee_id", slice.EmployeeID),
				slog.Time("collected_at", txn.CollectedAt),
			)
			entries = append(entries, s.creditEntry(txn, slice.EmployeeID, slice.AmountCents, domain.SourceDirectTip))
			continue
		}

		if slice.EmployeeID == txn.PrimaryEmployeeID {
			txn.TipGroupID = &membership.GroupID
			txn.SegmentID = &segment.SegmentID
		}

		for _, share := range tipmath.AllocateByFractions(slice.AmountCents, segment.Split) {
			if share.AmountCents == 0 {
				continue
			}
			entries = append(entries, s.creditEntry(txn, share.EmployeeID, share.AmountCents, domain.SourceTipGroup))
		}
	}
	return entries, nil
}

// ownerSlices splits the net amount across the order's co-owners, or returns
// a single slice for the primary employee when the order is single-owner.
func (s *allocationService) ownerSlices(ctx context.Context, txn *domain.TipTransaction, netCents int64) ([]tipmath.Share, error) {
	ownership, err := s.ownershipSvc.GetOwnership(ctx, txn.OrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ownership for order %s: %w", txn.OrderID, err)
	}
	if ownership == nil || len(ownership.Entries) < 2 {
		return []tipmath.Share{{EmployeeID: txn.PrimaryEmployeeID, AmountCents: netCents}}, nil
	}
	return tipmath.AdjustAllocationsByOwnership(netCents, *ownership), nil
}

func (s *allocationService) creditEntry(txn *domain.TipTransaction, employeeID string, amountCents int64, sourceType domain.EntrySourceType) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		EmployeeID:  employeeID,
		EntryType:   domain.Credit,
		AmountCents: amountCents,
		SourceType:  sourceType,
		SourceID:    txn.TransactionID,
		CreatedAt:   txn.CreatedAt,
		CreatedBy:   txn.PrimaryEmployeeID,
	}
}

// replayResponse reconstructs the response of an already-committed capture.
func (s *allocationService) replayResponse(ctx context.Context, txn *domain.TipTransaction, logger *slog.Logger) (*dto.AllocateTipResponse, error) {
	allocations, err := s.tipTxnRepo.FindAllocations(ctx, txn.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load allocations for replay: %w", err)
	}
	logger.Info("Tip allocation replayed", slog.String("transaction_id", txn.TransactionID), slog.String("order_id", txn.OrderID))
	return &dto.AllocateTipResponse{
		TransactionID: txn.TransactionID,
		GrossCents:    txn.AmountCents,
		FeeCents:      txn.CCFeeAmountCents,
		NetCents:      txn.AmountCents - txn.CCFeeAmountCents,
		Replayed:      true,
		Allocations:   dto.ToAllocationSlices(allocations),
	}, nil
}

func entriesToAllocations(entries []domain.LedgerEntry) []domain.Allocation {
	out := make([]domain.Allocation, len(entries))
	for i, e := range entries {
		out[i] = domain.Allocation{
			EmployeeID:    e.EmployeeID,
			AmountCents:   e.AmountCents,
			SourceType:    e.SourceType,
			LedgerEntryID: e.EntryID,
		}
	}
	return out
}
