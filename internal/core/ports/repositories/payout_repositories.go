package repositories

import (
	"context"
	"time"

	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/domain"
)

// PayoutFilter narrows payout history listings.
type PayoutFilter struct {
	EmployeeID *string
	Method     *domain.PayoutMethod
	From       *time.Time
	To         *time.Time
}

// PayoutReader defines read operations for payout data.
type PayoutReader interface {
	// ListPayouts retrieves a paginated payout history for a location,
	// newest first.
	ListPayouts(ctx context.Context, locationID string, filter PayoutFilter, limit int, nextToken *string) ([]domain.Payout, *string, error)
}

// PayoutWriter defines write operations for payout data.
type PayoutWriter interface {
	// SavePayout persists the payout and its ledger debit, adjusting the
	// cached balance, in one database transaction. The ledger row is locked
	// and the balance re-checked inside the transaction; an over-balance
	// attempt surfaces as ErrConflict. Returns the new balance.
	SavePayout(ctx context.Context, payout domain.Payout, entry domain.LedgerEntry) (int64, error)
}

// PayoutRepositoryFacade combines payout repository interfaces.
type PayoutRepositoryFacade interface {
	PayoutReader
	PayoutWriter
}
