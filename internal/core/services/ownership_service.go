package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/GetwithitMan/gwi-pos-sub009/internal/apperrors"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/domain"
	portsrepo "github.com/GetwithitMan/gwi-pos-sub009/internal/core/ports/repositories"
	portssvc "github.com/GetwithitMan/gwi-pos-sub009/internal/core/ports/services"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/dto"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/middleware"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/utils/tipmath"
)

var (
	ErrAlreadyOwner         = errors.New("employee is already an owner of this order")
	ErrOwnerNotFound        = errors.New("employee is not an owner of this order")
	ErrInvalidSplitTotal    = errors.New("owner split percentages must sum to 100")
	ErrNewOwnerNotActive    = errors.New("new owner is not an active employee")
	ErrCurrentOwnerRequired = errors.New("current owner must be provided to convert a single-owner order")
	ErrInvalidSharePercent  = errors.New("share percent must be between 0 and 100 exclusive")
)

const sharePlaces = 2

var hundred = decimal.NewFromInt(100)

// ownershipService manages joint table ownership of orders.
type ownershipService struct {
	ownershipRepo portsrepo.OwnershipRepositoryFacade
	employeeSvc   portssvc.EmployeeSvcFacade
}

// NewOwnershipService creates a new OwnershipService.
func NewOwnershipService(ownershipRepo portsrepo.OwnershipRepositoryFacade, employeeSvc portssvc.EmployeeSvcFacade) portssvc.OwnershipSvcFacade {
	return &ownershipService{ownershipRepo: ownershipRepo, employeeSvc: employeeSvc}
}

var _ portssvc.OwnershipSvcFacade = (*ownershipService)(nil)

// requireActiveEmployee checks the prospective owner exists and is active.
func (s *ownershipService) requireActiveEmployee(ctx context.Context, employeeID string) error {
	emp, err := s.employeeSvc.Get(ctx, employeeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrNewOwnerNotActive, employeeID)
		}
		return err
	}
	if !emp.IsActive {
		return fmt.Errorf("%w: %s", ErrNewOwnerNotActive, employeeID)
	}
	return nil
}

// scaleTo proportionally rescales entries so their shares sum to exactly
// target. The last entry by employee ID absorbs rounding.
func scaleTo(entries []domain.OrderOwnershipEntry, target decimal.Decimal) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].EmployeeID < entries[j].EmployeeID })

	current := decimal.Zero
	for _, e := range entries {
		current = current.Add(e.SharePercent)
	}
	if current.IsZero() {
		return
	}

	assigned := decimal.Zero
	for i := range entries[:len(entries)-1] {
		scaled := entries[i].SharePercent.Mul(target).DivRound(current, sharePlaces+2).RoundFloor(sharePlaces)
		entries[i].SharePercent = scaled
		assigned = assigned.Add(scaled)
	}
	entries[len(entries)-1].SharePercent = target.Sub(assigned)
}

// evenShares assigns an even percentage to n owners, last absorbs rounding.
func evenShares(entries []domain.OrderOwnershipEntry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].EmployeeID < entries[j].EmployeeID })

	n := decimal.NewFromInt(int64(len(entries)))
	base := hundred.DivRound(n, sharePlaces+2).RoundFloor(sharePlaces)
	assigned := decimal.Zero
	for i := range entries[:len(entries)-1] {
		entries[i].SharePercent = base
		assigned = assigned.Add(base)
	}
	entries[len(entries)-1].SharePercent = hundred.Sub(assigned)
}

// requirePositiveShares rejects share sets where rescaling floored an owner
// to zero. The schema refuses such rows too, so this surfaces as a business
// error instead of a database one.
func requirePositiveShares(entries []domain.OrderOwnershipEntry) error {
	for _, e := range entries {
		if !e.SharePercent.IsPositive() {
			return fmt.Errorf("%w: %s would hold %s%%", ErrInvalidSharePercent, e.EmployeeID, e.SharePercent)
		}
	}
	return nil
}

// AddOwner adds a co-owner to an order. The first add converts the order from
// single-owner to multi-owner and needs the current owner's ID.
func (s *ownershipService) AddOwner(ctx context.Context, locationID, orderID string, req dto.AddOwnerRequest, actorID string) (*dto.OwnershipResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.requireActiveEmployee(ctx, req.EmployeeID); err != nil {
		return nil, err
	}
	if req.SharePercent != nil && (!req.SharePercent.IsPositive() || !req.SharePercent.LessThan(hundred)) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSharePercent, req.SharePercent)
	}

	tx, err := s.ownershipRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.ownershipRepo.Rollback(ctx, tx)

	now := time.Now().UTC()
	ownership, err := s.ownershipRepo.FindActiveByOrderIDForUpdate(ctx, tx, orderID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	if ownership == nil {
		// First co-owner: build a fresh two-owner record.
		if req.CurrentOwnerID == "" {
			return nil, ErrCurrentOwnerRequired
		}
		if req.CurrentOwnerID == req.EmployeeID {
			return nil, ErrAlreadyOwner
		}
		ownership = &domain.OrderOwnership{
			OwnershipID: uuid.NewString(),
			OrderID:     orderID,
			LocationID:  locationID,
			IsActive:    true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
			Entries: []domain.OrderOwnershipEntry{
				{EntryID: uuid.NewString(), EmployeeID: req.CurrentOwnerID},
				{EntryID: uuid.NewString(), EmployeeID: req.EmployeeID},
			},
		}
		s.assignShares(ownership.Entries, req)
		if err := requirePositiveShares(ownership.Entries); err != nil {
			return nil, err
		}
		if err := tipmath.ValidateShareTotal(ownership.Entries); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSplitTotal, err)
		}
		if err := s.ownershipRepo.InsertOwnershipInTx(ctx, tx, *ownership); err != nil {
			return nil, fmt.Errorf("failed to insert ownership: %w", err)
		}
	} else {
		for _, e := range ownership.Entries {
			if e.EmployeeID == req.EmployeeID {
				return nil, ErrAlreadyOwner
			}
		}
		ownership.Entries = append(ownership.Entries, domain.OrderOwnershipEntry{
			EntryID:     uuid.NewString(),
			OwnershipID: ownership.OwnershipID,
			EmployeeID:  req.EmployeeID,
		})
		s.assignShares(ownership.Entries, req)
		if err := requirePositiveShares(ownership.Entries); err != nil {
			return nil, err
		}
		if err := tipmath.ValidateShareTotal(ownership.Entries); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSplitTotal, err)
		}
		if err := s.ownershipRepo.ReplaceEntriesInTx(ctx, tx, ownership.OwnershipID, ownership.Entries, actorID, now); err != nil {
			return nil, fmt.Errorf("failed to replace ownership entries: %w", err)
		}
	}

	if err := s.ownershipRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Owner added to order",
		slog.String("order_id", orderID),
		slog.String("employee_id", req.EmployeeID),
		slog.Int("owner_count", len(ownership.Entries)),
	)
	resp := dto.ToOwnershipResponse(ownership)
	return &resp, nil
}

// assignShares distributes shares after an owner is added: even by default,
// or the explicit percent for the new owner with existing owners scaled
// proportionally into the rest.
func (s *ownershipService) assignShares(entries []domain.OrderOwnershipEntry, req dto.AddOwnerRequest) {
	if req.SharePercent == nil {
		evenShares(entries)
		return
	}

	newShare := req.SharePercent.Round(sharePlaces)
	existing := make([]domain.OrderOwnershipEntry, 0, len(entries)-1)
	var newIdx int
	for i, e := range entries {
		if e.EmployeeID == req.EmployeeID {
			newIdx = i
			continue
		}
		existing = append(existing, e)
	}

	// Existing owners keep their relative proportions inside the remainder.
	hasShares := false
	for _, e := range existing {
		if e.SharePercent.IsPositive() {
			hasShares = true
			break
		}
	}
	if !hasShares {
		for i := range existing {
			existing[i].SharePercent = decimal.NewFromInt(1)
		}
	}
	scaleTo(existing, hundred.Sub(newShare))

	byID := make(map[string]decimal.Decimal, len(existing))
	for _, e := range existing {
		byID[e.EmployeeID] = e.SharePercent
	}
	for i := range entries {
		if i == newIdx {
			entries[i].SharePercent = newShare
			continue
		}
		entries[i].SharePercent = byID[entries[i].EmployeeID]
	}
}

// RemoveOwner removes a co-owner. One remaining owner collapses to 100%;
// zero remaining deactivates the ownership record.
func (s *ownershipService) RemoveOwner(ctx context.Context, orderID, employeeID, actorID string) (*dto.OwnershipResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.ownershipRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.ownershipRepo.Rollback(ctx, tx)

	ownership, err := s.ownershipRepo.FindActiveByOrderIDForUpdate(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}

	remaining := make([]domain.OrderOwnershipEntry, 0, len(ownership.Entries))
	found := false
	for _, e := range ownership.Entries {
		if e.EmployeeID == employeeID {
			found = true
			continue
		}
		remaining = append(remaining, e)
	}
	if !found {
		return nil, ErrOwnerNotFound
	}

	now := time.Now().UTC()
	if len(remaining) == 0 {
		ownership.IsActive = false
		ownership.Entries = nil
		if err := s.ownershipRepo.DeactivateInTx(ctx, tx, ownership.OwnershipID, actorID, now); err != nil {
			return nil, fmt.Errorf("failed to deactivate ownership: %w", err)
		}
	} else {
		scaleTo(remaining, hundred)
		ownership.Entries = remaining
		if err := s.ownershipRepo.ReplaceEntriesInTx(ctx, tx, ownership.OwnershipID, remaining, actorID, now); err != nil {
			return nil, fmt.Errorf("failed to replace ownership entries: %w", err)
		}
	}

	if err := s.ownershipRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Owner removed from order",
		slog.String("order_id", orderID),
		slog.String("employee_id", employeeID),
		slog.Int("remaining_owners", len(remaining)),
	)
	resp := dto.ToOwnershipResponse(ownership)
	return &resp, nil
}

// SetSplits replaces all owner percentages. The provided set must match the
// current owner set and sum to 100 within a 0.01 tolerance.
func (s *ownershipService) SetSplits(ctx context.Context, orderID string, req dto.SetSplitsRequest, actorID string) (*dto.OwnershipResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.ownershipRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.ownershipRepo.Rollback(ctx, tx)

	ownership, err := s.ownershipRepo.FindActiveByOrderIDForUpdate(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}

	requested := make(map[string]decimal.Decimal, len(req.Splits))
	sum := decimal.Zero
	for _, split := range req.Splits {
		if !split.SharePercent.IsPositive() {
			return nil, fmt.Errorf("%w: %s for %s", ErrInvalidSharePercent, split.SharePercent, split.EmployeeID)
		}
		requested[split.EmployeeID] = split.SharePercent
		sum = sum.Add(split.SharePercent)
	}
	if sum.Sub(hundred).Abs().GreaterThan(decimal.New(1, -2)) {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidSplitTotal, sum)
	}
	if len(requested) != len(ownership.Entries) {
		return nil, fmt.Errorf("%w: splits must cover all %d owners", ErrOwnerNotFound, len(ownership.Entries))
	}

	for i := range ownership.Entries {
		share, ok := requested[ownership.Entries[i].EmployeeID]
		if !ok {
			return nil, fmt.Errorf("%w: %s missing from splits", ErrOwnerNotFound, ownership.Entries[i].EmployeeID)
		}
		ownership.Entries[i].SharePercent = share
	}

	now := time.Now().UTC()
	if err := s.ownershipRepo.ReplaceEntriesInTx(ctx, tx, ownership.OwnershipID, ownership.Entries, actorID, now); err != nil {
		return nil, fmt.Errorf("failed to replace ownership entries: %w", err)
	}
	if err := s.ownershipRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Ownership splits updated", slog.String("order_id", orderID), slog.Int("owners", len(ownership.Entries)))
	resp := dto.ToOwnershipResponse(ownership)
	return &resp, nil
}

// GetOwnership returns the order's active ownership, or nil for single-owner
// orders.
func (s *ownershipService) GetOwnership(ctx context.Context, orderID string) (*domain.OrderOwnership, error) {
	ownership, err := s.ownershipRepo.FindActiveByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return ownership, nil
}
