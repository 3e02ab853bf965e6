package repositories

import (
	"context"
	"time"

	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/domain"
)

// EntryFilter narrows ledger entry listings.
type EntryFilter struct {
	SourceTypes []domain.EntrySourceType
	From        *time.Time
	To          *time.Time
}

// LedgerReader defines read operations for ledger data.
type LedgerReader interface {
	// FindLedgerByEmployeeID retrieves an employee's ledger, or ErrNotFound if
	// no tip event has ever created one.
	FindLedgerByEmployeeID(ctx context.Context, employeeID string) (*domain.Ledger, error)

	// FindEntryByIdempotencyKey returns the entry previously posted with the
	// given key, or ErrNotFound.
	FindEntryByIdempotencyKey(ctx context.Context, key string) (*domain.LedgerEntry, error)

	// ListEntries retrieves a paginated, filtered list of an employee's entries
	// using token-based pagination (newest first).
	ListEntries(ctx context.Context, employeeID string, filter EntryFilter, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)
}

// LedgerWriter defines write operations for ledger data.
type LedgerWriter interface {
	// GetOrCreateLedger lazily creates a zero-balance ledger for the employee.
	GetOrCreateLedger(ctx context.Context, employeeID, locationID, actorID string) (*domain.Ledger, error)

	// PostEntries atomically inserts the given entries and adjusts each
	// affected ledger's cached balance by the entries' signed amounts. Missing
	// ledgers are created lazily inside the same transaction. Returns the new
	// balance per employee. A reused idempotency key surfaces as ErrDuplicate.
	PostEntries(ctx context.Context, locationID string, entries []domain.LedgerEntry) (map[string]int64, error)

	// RecalculateBalance re-sums all entries for the employee's ledger and
	// repairs the cached balance if it drifted.
	RecalculateBalance(ctx context.Context, employeeID, actorID string) (*domain.RecalculateResult, error)
}

// LedgerRepositoryFacade combines all ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
