package services

import (
	"context"

	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/domain"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/dto"
)

// LedgerPoster defines the posting surface other services build on.
type LedgerPoster interface {
	// Post atomically inserts one entry and adjusts the cached balance,
	// returning the posted entry and the new balance. Posting with a
	// previously used idempotency key is a no-op returning the original entry.
	Post(ctx context.Context, locationID, employeeID string, amountCents int64, entryType domain.EntryType, sourceType domain.EntrySourceType, sourceID string, idempotencyKey *string, actorID string) (*domain.LedgerEntry, int64, error)
}

// LedgerReaderSvc defines read operations over ledgers.
type LedgerReaderSvc interface {
	// Balance returns the cached balance, zero for employees with no ledger.
	Balance(ctx context.Context, employeeID string) (int64, error)

	// Entries lists an employee's entry history.
	Entries(ctx context.Context, employeeID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// LedgerAdminSvc defines maintenance operations.
type LedgerAdminSvc interface {
	// GetOrCreate lazily creates a zero-balance ledger.
	GetOrCreate(ctx context.Context, employeeID, locationID, actorID string) (*domain.Ledger, error)

	// Recalculate re-sums entries and repairs cached-balance drift.
	Recalculate(ctx context.Context, employeeID, actorID string) (*domain.RecalculateResult, error)

	// Transfer moves balance between two employees as a paired debit/credit.
	Transfer(ctx context.Context, locationID string, req dto.TransferRequest, actorID string) ([]domain.LedgerEntry, error)
}

// LedgerSvcFacade combines all ledger service interfaces.
type LedgerSvcFacade interface {
	LedgerPoster
	LedgerReaderSvc
	LedgerAdminSvc
}
