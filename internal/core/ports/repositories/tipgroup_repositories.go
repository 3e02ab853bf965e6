package repositories

import (
	"context"
	"time"

	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// TipGroupReader defines read operations for tip group data.
type TipGroupReader interface {
	// FindGroupByID retrieves a group by its ID.
	FindGroupByID(ctx context.Context, groupID string) (*domain.TipGroup, error)

	// ListGroupsByLocation retrieves groups for a location, optionally only
	// active ones.
	ListGroupsByLocation(ctx context.Context, locationID string, activeOnly bool) ([]domain.TipGroup, error)

	// FindActiveMembershipByEmployee returns the employee's single active
	// membership across all groups, or ErrNotFound.
	FindActiveMembershipByEmployee(ctx context.Context, employeeID string) (*domain.TipGroupMembership, error)

	// FindSegmentForTimestamp returns the segment of the group covering t:
	// startedAt <= t and (endedAt is null or endedAt > t).
	FindSegmentForTimestamp(ctx context.Context, groupID string, t time.Time) (*domain.TipGroupSegment, error)

	// ListSegments returns the group's segments ordered by start time,
	// optionally bounded to a time window.
	ListSegments(ctx context.Context, groupID string, from, to *time.Time) ([]domain.TipGroupSegment, error)
}

// TipGroupTxReader defines reads that participate in a caller-managed
// transaction, used to serialize membership changes per group.
type TipGroupTxReader interface {
	// FindGroupByIDForUpdate locks the group row for the duration of tx.
	FindGroupByIDForUpdate(ctx context.Context, tx pgx.Tx, groupID string) (*domain.TipGroup, error)

	// FindMembershipsInTx returns all memberships of the group within tx.
	FindMembershipsInTx(ctx context.Context, tx pgx.Tx, groupID string) ([]domain.TipGroupMembership, error)

	// FindOpenSegmentInTx returns the group's open segment within tx, or
	// ErrNotFound.
	FindOpenSegmentInTx(ctx context.Context, tx pgx.Tx, groupID string) (*domain.TipGroupSegment, error)
}

// TipGroupWriter defines write operations for tip group data. All mutations
// run inside the caller's transaction so a membership change, the segment
// close, and the segment open commit as one unit.
type TipGroupWriter interface {
	// InsertGroupInTx inserts a new group row.
	InsertGroupInTx(ctx context.Context, tx pgx.Tx, group domain.TipGroup) error

	// UpdateGroupStatusInTx transitions the group's status.
	UpdateGroupStatusInTx(ctx context.Context, tx pgx.Tx, groupID string, status domain.GroupStatus, closedAt *time.Time, actorID string, now time.Time) error

	// InsertMembershipInTx inserts a membership row.
	InsertMembershipInTx(ctx context.Context, tx pgx.Tx, membership domain.TipGroupMembership) error

	// UpdateMembershipInTx updates a membership's status / leftAt / approvedBy.
	UpdateMembershipInTx(ctx context.Context, tx pgx.Tx, membership domain.TipGroupMembership) error

	// CloseSegmentInTx sets endedAt on the group's open segment.
	CloseSegmentInTx(ctx context.Context, tx pgx.Tx, segmentID string, endedAt time.Time) error

	// InsertSegmentInTx inserts a new open segment.
	InsertSegmentInTx(ctx context.Context, tx pgx.Tx, segment domain.TipGroupSegment) error
}

// TipGroupRepositoryFacade combines all tip group repository interfaces.
type TipGroupRepositoryFacade interface {
	TipGroupReader
	TipGroupTxReader
	TipGroupWriter
	TransactionManager
}
