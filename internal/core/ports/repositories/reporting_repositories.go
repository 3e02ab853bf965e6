package repositories

import (
	"context"
	"time"

	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/domain"
)

// CheckoutRow is one (segment, source type) aggregate of an employee's
// credited tips inside a shift window. SegmentID and GroupID are nil for
// solo (direct) tips.
type CheckoutRow struct {
	SegmentID  *string
	GroupID    *string
	SourceType domain.EntrySourceType
	TotalCents int64
	EntryCount int
}

// ReportingReader defines the read-side queries consumed by downstream
// collaborators. These are pure queries over committed ledger data.
type ReportingReader interface {
	// PayableBalances returns employees of the location with a positive
	// ledger balance, sorted descending by balance.
	PayableBalances(ctx context.Context, locationID string) ([]domain.EmployeeBalance, error)

	// CheckoutRows aggregates an employee's credited tips within a shift
	// window, grouped by the tip group segment that produced them.
	CheckoutRows(ctx context.Context, employeeID string, from, to time.Time) ([]CheckoutRow, error)
}
