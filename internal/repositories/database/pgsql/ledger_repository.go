package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GetwithitMan/gwi-pos-sub009/internal/apperrors"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/domain"
	portsrepo "github.com/GetwithitMan/gwi-pos-sub009/internal/core/ports/repositories"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/models"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/utils/mapping"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/utils/pagination"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for ledger and entry data.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// FindLedgerByEmployeeID retrieves an employee's ledger.
func (r *PgxLedgerRepository) FindLedgerByEmployeeID(ctx context.Context, employeeID string) (*domain.Ledger, error) {
	query := `
		SELECT ledger_id, employee_id, location_id, current_balance_cents,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM ledgers
		WHERE employee_id = $1;
	`
	var m models.Ledger
	err := r.Pool.QueryRow(ctx, query, employeeID).Scan(
		&m.LedgerID,
		&m.EmployeeID,
		&m.LocationID,
		&m.CurrentBalanceCents,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find ledger for employee "+employeeID, err)
	}
	ledger := mapping.ToDomainLedger(m)
	return &ledger, nil
}

// FindEntryByIdempotencyKey returns the entry previously posted with the key.
func (r *PgxLedgerRepository) FindEntryByIdempotencyKey(ctx context.Context, key string) (*domain.LedgerEntry, error) {
	query := `
		SELECT entry_id, ledger_id, employee_id, entry_type, amount_cents,
		       source_type, source_id, idempotency_key, created_at, created_by
		FROM ledger_entries
		WHERE idempotency_key = $1;
	`
	m, err := scanLedgerEntryRow(r.Pool.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry by idempotency key", err)
	}
	entry := mapping.ToDomainLedgerEntry(m)
	return &entry, nil
}

// ListEntries retrieves a paginated, filtered entry history, newest first.
func (r *PgxLedgerRepository) ListEntries(ctx context.Context, employeeID string, filter portsrepo.EntryFilter, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT entry_id, ledger_id, employee_id, entry_type, amount_cents,
		       source_type, source_id, idempotency_key, created_at, created_by
		FROM ledger_entries
		WHERE employee_id = $1
	`
	args := []interface{}{employeeID}

	if len(filter.SourceTypes) > 0 {
		sourceTypes := make([]string, len(filter.SourceTypes))
		for i, st := range filter.SourceTypes {
			sourceTypes[i] = string(st)
		}
		args = append(args, sourceTypes)
		baseQuery += ` AND source_type = ANY($` + strconv.Itoa(len(args)) + `)`
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		baseQuery += ` AND created_at >= $` + strconv.Itoa(len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		baseQuery += ` AND created_at < $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastEntryID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt, lastEntryID)
		baseQuery += ` AND (created_at, entry_id) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query := baseQuery + ` ORDER BY created_at DESC, entry_id DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query ledger entries for employee "+employeeID, err)
	}
	defer rows.Close()

	modelEntries := make([]models.LedgerEntry, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanLedgerEntryRow(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan ledger entry row", scanErr)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating ledger entry rows", err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		last := modelEntries[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.EntryID)
		nextTokenVal = &token
		results = modelEntries[:limit]
	}

	return mapping.ToDomainLedgerEntrySlice(results), nextTokenVal, nil
}

// GetOrCreateLedger lazily creates a zero-balance ledger for the employee.
func (r *PgxLedgerRepository) GetOrCreateLedger(ctx context.Context, employeeID, locationID, actorID string) (*domain.Ledger, error) {
	if ledger, err := r.FindLedgerByEmployeeID(ctx, employeeID); err == nil {
		return ledger, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	query := `
		INSERT INTO ledgers (ledger_id, employee_id, location_id, current_balance_cents,
		                     created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, 0, $4, $5, $4, $5)
		ON CONFLICT (employee_id) DO NOTHING;
	`
	if _, err := r.Pool.Exec(ctx, query, uuid.NewString(), employeeID, locationID, now, actorID); err != nil {
		return nil, apperrors.NewAppError(500, "failed to create ledger for employee "+employeeID, err)
	}

	// Re-read to pick up either our insert or a concurrent winner's row.
	return r.FindLedgerByEmployeeID(ctx, employeeID)
}

// PostEntries atomically inserts the entries and adjusts each affected
// ledger's cached balance. Ledger rows are locked in sorted employee order so
// concurrent multi-employee postings cannot deadlock.
func (r *PgxLedgerRepository) PostEntries(ctx context.Context, locationID string, entries []domain.LedgerEntry) (map[string]int64, error) {
	if len(entries) == 0 {
		return map[string]int64{}, nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	deltas := make(map[string]int64)
	for _, e := range entries {
		deltas[e.EmployeeID] += e.AmountCents
	}
	employeeIDs := make([]string, 0, len(deltas))
	for id := range deltas {
		employeeIDs = append(employeeIDs, id)
	}
	sort.Strings(employeeIDs)

	ledgers, err := lockOrCreateLedgers(ctx, tx, employeeIDs, locationID, entries[0].CreatedBy, entries[0].CreatedAt)
	if err != nil {
		return nil, err
	}

	batch := &pgx.Batch{}
	entryQuery := `
		INSERT INTO ledger_entries (entry_id, ledger_id, employee_id, entry_type, amount_cents,
		                            source_type, source_id, idempotency_key, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, e := range entries {
		m := mapping.ToModelLedgerEntry(e)
		m.LedgerID = ledgers[e.EmployeeID].LedgerID
		batch.Queue(entryQuery,
			m.EntryID,
			m.LedgerID,
			m.EmployeeID,
			m.EntryType,
			m.AmountCents,
			m.SourceType,
			m.SourceID,
			m.IdempotencyKey,
			m.CreatedAt,
			m.CreatedBy,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: idempotency key already used", apperrors.ErrDuplicate)
		}
		return nil, apperrors.NewAppError(500, "failed to insert ledger entries", err)
	}

	newBalances := make(map[string]int64, len(deltas))
	balanceQuery := `
		UPDATE ledgers
		SET current_balance_cents = current_balance_cents + $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE ledger_id = $1;
	`
	for _, employeeID := range employeeIDs {
		ledger := ledgers[employeeID]
		if _, err := tx.Exec(ctx, balanceQuery, ledger.LedgerID, deltas[employeeID], entries[0].CreatedAt, entries[0].CreatedBy); err != nil {
			return nil, apperrors.NewAppError(500, "failed to update ledger balance for employee "+employeeID, err)
		}
		newBalances[employeeID] = ledger.CurrentBalanceCents + deltas[employeeID]
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return newBalances, nil
}

// RecalculateBalance re-sums all entries and repairs the cached balance if it
// drifted.
func (r *PgxLedgerRepository) RecalculateBalance(ctx context.Context, employeeID, actorID string) (*domain.RecalculateResult, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var ledgerID string
	var cached int64
	err = tx.QueryRow(ctx, `
		SELECT ledger_id, current_balance_cents
		FROM ledgers
		WHERE employee_id = $1
		FOR UPDATE;
	`, employeeID).Scan(&ledgerID, &cached)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock ledger for employee "+employeeID, err)
	}

	var calculated int64
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount_cents), 0)
		FROM ledger_entries
		WHERE ledger_id = $1;
	`, ledgerID).Scan(&calculated)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to sum ledger entries for employee "+employeeID, err)
	}

	result := &domain.RecalculateResult{
		EmployeeID:      employeeID,
		CachedCents:     cached,
		CalculatedCents: calculated,
	}

	if cached != calculated {
		_, err = tx.Exec(ctx, `
			UPDATE ledgers
			SET current_balance_cents = $2, last_updated_at = $3, last_updated_by = $4
			WHERE ledger_id = $1;
		`, ledgerID, calculated, time.Now().UTC(), actorID)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to repair ledger balance for employee "+employeeID, err)
		}
		result.Repaired = true
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return result, nil
}

// lockOrCreateLedgers locks each employee's ledger row for update, inserting
// a zero-balance ledger first when none exists. Callers must pass employeeIDs
// in sorted order.
func lockOrCreateLedgers(ctx context.Context, tx pgx.Tx, employeeIDs []string, locationID, actorID string, now time.Time) (map[string]models.Ledger, error) {
	ledgers := make(map[string]models.Ledger, len(employeeIDs))
	selectQuery := `
		SELECT ledger_id, employee_id, location_id, current_balance_cents
		FROM ledgers
		WHERE employee_id = $1
		FOR UPDATE;
	`
	insertQuery := `
		INSERT INTO ledgers (ledger_id, employee_id, location_id, current_balance_cents,
		                     created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, 0, $4, $5, $4, $5)
		ON CONFLICT (employee_id) DO NOTHING;
	`
	for _, employeeID := range employeeIDs {
		var m models.Ledger
		err := tx.QueryRow(ctx, selectQuery, employeeID).Scan(&m.LedgerID, &m.EmployeeID, &m.LocationID, &m.CurrentBalanceCents)
		if errors.Is(err, pgx.ErrNoRows) {
			if _, ierr := tx.Exec(ctx, insertQuery, uuid.NewString(), employeeID, locationID, now, actorID); ierr != nil {
				return nil, apperrors.NewAppError(500, "failed to create ledger for employee "+employeeID, ierr)
			}
			err = tx.QueryRow(ctx, selectQuery, employeeID).Scan(&m.LedgerID, &m.EmployeeID, &m.LocationID, &m.CurrentBalanceCents)
		}
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to lock ledger for employee "+employeeID, err)
		}
		ledgers[employeeID] = m
	}
	return ledgers, nil
}

// scanLedgerEntryRow scans one ledger_entries row in canonical column order.
func scanLedgerEntryRow(row pgx.Row) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.LedgerID,
		&m.EmployeeID,
		&m.EntryType,
		&m.AmountCents,
		&m.SourceType,
		&m.SourceID,
		&m.IdempotencyKey,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	return m, err
}
