package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GetwithitMan/gwi-pos-sub009/internal/apperrors"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/domain"
	portsrepo "github.com/GetwithitMan/gwi-pos-sub009/internal/core/ports/repositories"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/models"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/utils/mapping"
)

type PgxTipGroupRepository struct {
	BaseRepository
}

// newPgxTipGroupRepository creates a new repository for tip group, membership
// and segment data.
func newPgxTipGroupRepository(pool *pgxpool.Pool) portsrepo.TipGroupRepositoryFacade {
	return &PgxTipGroupRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TipGroupRepositoryFacade = (*PgxTipGroupRepository)(nil)

const groupColumns = `group_id, location_id, owner_id, status, split_mode,
	created_at, created_by, last_updated_at, last_updated_by, closed_at`

func scanGroupRow(row pgx.Row) (models.TipGroup, error) {
	var m models.TipGroup
	err := row.Scan(
		&m.GroupID,
		&m.LocationID,
		&m.OwnerID,
		&m.Status,
		&m.SplitMode,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.ClosedAt,
	)
	return m, err
}

// FindGroupByID retrieves a group by its ID.
func (r *PgxTipGroupRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.TipGroup, error) {
	query := `SELECT ` + groupColumns + ` FROM tip_groups WHERE group_id = $1;`
	m, err := scanGroupRow(r.Pool.QueryRow(ctx, query, groupID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find tip group "+groupID, err)
	}
	group := mapping.ToDomainTipGroup(m)
	return &group, nil
}

// ListGroupsByLocation retrieves groups for a location, newest first.
func (r *PgxTipGroupRepository) ListGroupsByLocation(ctx context.Context, locationID string, activeOnly bool) ([]domain.TipGroup, error) {
	query := `SELECT ` + groupColumns + ` FROM tip_groups WHERE location_id = $1`
	if activeOnly {
		query += ` AND status = 'active'`
	}
	query += ` ORDER BY created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, locationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tip groups for location "+locationID, err)
	}
	defer rows.Close()

	groups := []domain.TipGroup{}
	for rows.Next() {
		m, scanErr := scanGroupRow(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan tip group row", scanErr)
		}
		groups = append(groups, mapping.ToDomainTipGroup(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating tip group rows", err)
	}
	return groups, nil
}

// FindActiveMembershipByEmployee returns the employee's single active
// membership across all groups.
func (r *PgxTipGroupRepository) FindActiveMembershipByEmployee(ctx context.Context, employeeID string) (*domain.TipGroupMembership, error) {
	query := `
		SELECT membership_id, group_id, employee_id, status, joined_at, left_at, approved_by
		FROM tip_group_memberships
		WHERE employee_id = $1 AND status = 'active';
	`
	m, err := scanMembershipRow(r.Pool.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find active membership for employee "+employeeID, err)
	}
	membership := mapping.ToDomainMembership(m)
	return &membership, nil
}

const segmentColumns = `segment_id, group_id, started_at, ended_at, member_count, split`

func scanSegmentRow(row pgx.Row) (models.TipGroupSegment, error) {
	var m models.TipGroupSegment
	err := row.Scan(
		&m.SegmentID,
		&m.GroupID,
		&m.StartedAt,
		&m.EndedAt,
		&m.MemberCount,
		&m.SplitJSON,
	)
	return m, err
}

// FindSegmentForTimestamp returns the segment of the group covering t.
func (r *PgxTipGroupRepository) FindSegmentForTimestamp(ctx context.Context, groupID string, t time.Time) (*domain.TipGroupSegment, error) {
	query := `
		SELECT ` + segmentColumns + `
		FROM tip_group_segments
		WHERE group_id = $1 AND started_at <= $2 AND (ended_at IS NULL OR ended_at > $2)
		ORDER BY started_at DESC
		LIMIT 1;
	`
	m, err := scanSegmentRow(r.Pool.QueryRow(ctx, query, groupID, t))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find segment for group "+groupID, err)
	}
	segment, err := mapping.ToDomainSegment(m)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to decode segment split for group "+groupID, err)
	}
	return &segment, nil
}

// ListSegments returns the group's segments ordered by start time.
func (r *PgxTipGroupRepository) ListSegments(ctx context.Context, groupID string, from, to *time.Time) ([]domain.TipGroupSegment, error) {
	query := `SELECT ` + segmentColumns + ` FROM tip_group_segments WHERE group_id = $1`
	args := []interface{}{groupID}
	if from != nil {
		args = append(args, *from)
		query += ` AND (ended_at IS NULL OR ended_at > $2)`
	}
	if to != nil {
		args = append(args, *to)
		if from != nil {
			query += ` AND started_at < $3`
		} else {
			query += ` AND started_at < $2`
		}
	}
	query += ` ORDER BY started_at;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query segments for group "+groupID, err)
	}
	defer rows.Close()

	segments := []domain.TipGroupSegment{}
	for rows.Next() {
		m, scanErr := scanSegmentRow(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan segment row", scanErr)
		}
		segment, convErr := mapping.ToDomainSegment(m)
		if convErr != nil {
			return nil, apperrors.NewAppError(500, "failed to decode segment split for group "+groupID, convErr)
		}
		segments = append(segments, segment)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating segment rows", err)
	}
	return segments, nil
}

// FindGroupByIDForUpdate locks the group row for the duration of tx.
func (r *PgxTipGroupRepository) FindGroupByIDForUpdate(ctx context.Context, tx pgx.Tx, groupID string) (*domain.TipGroup, error) {
	query := `SELECT ` + groupColumns + ` FROM tip_groups WHERE group_id = $1 FOR UPDATE;`
	m, err := scanGroupRow(tx.QueryRow(ctx, query, groupID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock tip group "+groupID, err)
	}
	group := mapping.ToDomainTipGroup(m)
	return &group, nil
}

// FindMembershipsInTx returns all memberships of the group within tx.
func (r *PgxTipGroupRepository) FindMembershipsInTx(ctx context.Context, tx pgx.Tx, groupID string) ([]domain.TipGroupMembership, error) {
	query := `
		SELECT membership_id, group_id, employee_id, status, joined_at, left_at, approved_by
		FROM tip_group_memberships
		WHERE group_id = $1
		ORDER BY joined_at;
	`
	rows, err := tx.Query(ctx, query, groupID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query memberships for group "+groupID, err)
	}
	defer rows.Close()

	memberships := []domain.TipGroupMembership{}
	for rows.Next() {
		m, scanErr := scanMembershipRow(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan membership row", scanErr)
		}
		memberships = append(memberships, mapping.ToDomainMembership(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating membership rows", err)
	}
	return memberships, nil
}

// FindOpenSegmentInTx returns the group's open segment within tx.
func (r *PgxTipGroupRepository) FindOpenSegmentInTx(ctx context.Context, tx pgx.Tx, groupID string) (*domain.TipGroupSegment, error) {
	query := `SELECT ` + segmentColumns + ` FROM tip_group_segments WHERE group_id = $1 AND ended_at IS NULL;`
	m, err := scanSegmentRow(tx.QueryRow(ctx, query, groupID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find open segment for group "+groupID, err)
	}
	segment, err := mapping.ToDomainSegment(m)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to decode segment split for group "+groupID, err)
	}
	return &segment, nil
}

// InsertGroupInTx inserts a new group row.
func (r *PgxTipGroupRepository) InsertGroupInTx(ctx context.Context, tx pgx.Tx, group domain.TipGroup) error {
	m := mapping.ToModelTipGroup(group)
	query := `
		INSERT INTO tip_groups (group_id, location_id, owner_id, status, split_mode,
		                        created_at, created_by, last_updated_at, last_updated_by, closed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, query,
		m.GroupID, m.LocationID, m.OwnerID, m.Status, m.SplitMode,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy, m.ClosedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert tip group "+m.GroupID, err)
	}
	return nil
}

// UpdateGroupStatusInTx transitions the group's status.
func (r *PgxTipGroupRepository) UpdateGroupStatusInTx(ctx context.Context, tx pgx.Tx, groupID string, status domain.GroupStatus, closedAt *time.Time, actorID string, now time.Time) error {
	query := `
		UPDATE tip_groups
		SET status = $2, closed_at = $3, last_updated_at = $4, last_updated_by = $5
		WHERE group_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, groupID, string(status), closedAt, now, actorID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for tip group "+groupID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// InsertMembershipInTx inserts a membership row.
func (r *PgxTipGroupRepository) InsertMembershipInTx(ctx context.Context, tx pgx.Tx, membership domain.TipGroupMembership) error {
	m := mapping.ToModelMembership(membership)
	query := `
		INSERT INTO tip_group_memberships (membership_id, group_id, employee_id, status, joined_at, left_at, approved_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := tx.Exec(ctx, query, m.MembershipID, m.GroupID, m.EmployeeID, m.Status, m.JoinedAt, m.LeftAt, m.ApprovedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert membership "+m.MembershipID, err)
	}
	return nil
}

// UpdateMembershipInTx updates a membership's status, leftAt, and approvedBy.
func (r *PgxTipGroupRepository) UpdateMembershipInTx(ctx context.Context, tx pgx.Tx, membership domain.TipGroupMembership) error {
	m := mapping.ToModelMembership(membership)
	query := `
		UPDATE tip_group_memberships
		SET status = $2, left_at = $3, approved_by = $4
		WHERE membership_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, m.MembershipID, m.Status, m.LeftAt, m.ApprovedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to update membership "+m.MembershipID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CloseSegmentInTx sets endedAt on the group's open segment.
func (r *PgxTipGroupRepository) CloseSegmentInTx(ctx context.Context, tx pgx.Tx, segmentID string, endedAt time.Time) error {
	query := `UPDATE tip_group_segments SET ended_at = $2 WHERE segment_id = $1 AND ended_at IS NULL;`
	cmdTag, err := tx.Exec(ctx, query, segmentID, endedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to close segment "+segmentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// InsertSegmentInTx inserts a new open segment.
func (r *PgxTipGroupRepository) InsertSegmentInTx(ctx context.Context, tx pgx.Tx, segment domain.TipGroupSegment) error {
	m, err := mapping.ToModelSegment(segment)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode segment split", err)
	}
	query := `
		INSERT INTO tip_group_segments (segment_id, group_id, started_at, ended_at, member_count, split)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err = tx.Exec(ctx, query, m.SegmentID, m.GroupID, m.StartedAt, m.EndedAt, m.MemberCount, m.SplitJSON)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert segment "+m.SegmentID, err)
	}
	return nil
}

func scanMembershipRow(row pgx.Row) (models.TipGroupMembership, error) {
	var m models.TipGroupMembership
	err := row.Scan(
		&m.MembershipID,
		&m.GroupID,
		&m.EmployeeID,
		&m.Status,
		&m.JoinedAt,
		&m.LeftAt,
		&m.ApprovedBy,
	)
	return m, err
}
