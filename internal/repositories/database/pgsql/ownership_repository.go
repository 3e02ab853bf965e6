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

type PgxOwnershipRepository struct {
	BaseRepository
}

// newPgxOwnershipRepository creates a new repository for order ownership data.
func newPgxOwnershipRepository(pool *pgxpool.Pool) portsrepo.OwnershipRepositoryFacade {
	return &PgxOwnershipRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OwnershipRepositoryFacade = (*PgxOwnershipRepository)(nil)

const ownershipColumns = `ownership_id, order_id, location_id, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanOwnershipRow(row pgx.Row) (models.OrderOwnership, error) {
	var m models.OrderOwnership
	err := row.Scan(
		&m.OwnershipID,
		&m.OrderID,
		&m.LocationID,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindActiveByOrderID returns the order's active ownership with its entries.
func (r *PgxOwnershipRepository) FindActiveByOrderID(ctx context.Context, orderID string) (*domain.OrderOwnership, error) {
	query := `SELECT ` + ownershipColumns + ` FROM order_ownerships WHERE order_id = $1 AND is_active;`
	m, err := scanOwnershipRow(r.Pool.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find ownership for order "+orderID, err)
	}

	entries, err := r.findEntries(ctx, r.Pool, m.OwnershipID)
	if err != nil {
		return nil, err
	}
	ownership := mapping.ToDomainOwnership(m, entries)
	return &ownership, nil
}

// FindActiveByOrderIDForUpdate locks the active ownership row within tx.
func (r *PgxOwnershipRepository) FindActiveByOrderIDForUpdate(ctx context.Context, tx pgx.Tx, orderID string) (*domain.OrderOwnership, error) {
	query := `SELECT ` + ownershipColumns + ` FROM order_ownerships WHERE order_id = $1 AND is_active FOR UPDATE;`
	m, err := scanOwnershipRow(tx.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock ownership for order "+orderID, err)
	}

	entries, err := r.findEntries(ctx, tx, m.OwnershipID)
	if err != nil {
		return nil, err
	}
	ownership := mapping.ToDomainOwnership(m, entries)
	return &ownership, nil
}

// InsertOwnershipInTx inserts an ownership row with its entries.
func (r *PgxOwnershipRepository) InsertOwnershipInTx(ctx context.Context, tx pgx.Tx, ownership domain.OrderOwnership) error {
	m := mapping.ToModelOwnership(ownership)
	query := `
		INSERT INTO order_ownerships (ownership_id, order_id, location_id, is_active,
		                              created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := tx.Exec(ctx, query,
		m.OwnershipID, m.OrderID, m.LocationID, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert ownership for order "+m.OrderID, err)
	}

	return r.insertEntries(ctx, tx, ownership.OwnershipID, ownership.Entries)
}

// ReplaceEntriesInTx replaces all share entries of an ownership.
func (r *PgxOwnershipRepository) ReplaceEntriesInTx(ctx context.Context, tx pgx.Tx, ownershipID string, entries []domain.OrderOwnershipEntry, actorID string, now time.Time) error {
	if _, err := tx.Exec(ctx, `DELETE FROM order_ownership_entries WHERE ownership_id = $1;`, ownershipID); err != nil {
		return apperrors.NewAppError(500, "failed to clear entries for ownership "+ownershipID, err)
	}
	if err := r.insertEntries(ctx, tx, ownershipID, entries); err != nil {
		return err
	}

	query := `UPDATE order_ownerships SET last_updated_at = $2, last_updated_by = $3 WHERE ownership_id = $1;`
	if _, err := tx.Exec(ctx, query, ownershipID, now, actorID); err != nil {
		return apperrors.NewAppError(500, "failed to touch ownership "+ownershipID, err)
	}
	return nil
}

// DeactivateInTx marks the ownership inactive.
func (r *PgxOwnershipRepository) DeactivateInTx(ctx context.Context, tx pgx.Tx, ownershipID string, actorID string, now time.Time) error {
	query := `
		UPDATE order_ownerships
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE ownership_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, ownershipID, now, actorID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate ownership "+ownershipID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// querier lets entry reads run against the pool or an open transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *PgxOwnershipRepository) findEntries(ctx context.Context, q querier, ownershipID string) ([]models.OrderOwnershipEntry, error) {
	query := `
		SELECT entry_id, ownership_id, employee_id, share_percent
		FROM order_ownership_entries
		WHERE ownership_id = $1
		ORDER BY employee_id;
	`
	rows, err := q.Query(ctx, query, ownershipID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for ownership "+ownershipID, err)
	}
	defer rows.Close()

	entries := []models.OrderOwnershipEntry{}
	for rows.Next() {
		var e models.OrderOwnershipEntry
		if err := rows.Scan(&e.EntryID, &e.OwnershipID, &e.EmployeeID, &e.SharePercent); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ownership entry row", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ownership entry rows", err)
	}
	return entries, nil
}

func (r *PgxOwnershipRepository) insertEntries(ctx context.Context, tx pgx.Tx, ownershipID string, entries []domain.OrderOwnershipEntry) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO order_ownership_entries (entry_id, ownership_id, employee_id, share_percent)
		VALUES ($1, $2, $3, $4);
	`
	for _, e := range entries {
		batch.Queue(query, e.EntryID, ownershipID, e.EmployeeID, e.SharePercent)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert entries for ownership "+ownershipID, err)
	}
	return nil
}
