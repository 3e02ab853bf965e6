package pgsql

import (
	"errors"
	"fmt"
	"strconv"

	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GetwithitMan/gwi-pos-sub009/internal/apperrors"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/domain"
	portsrepo "github.com/GetwithitMan/gwi-pos-sub009/internal/core/ports/repositories"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/models"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/utils/mapping"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/utils/pagination"
)

type PgxPayoutRepository struct {
	BaseRepository
}

// newPgxPayoutRepository creates a new repository for payout data.
func newPgxPayoutRepository(pool *pgxpool.Pool) portsrepo.PayoutRepositoryFacade {
	return &PgxPayoutRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PayoutRepositoryFacade = (*PgxPayoutRepository)(nil)

// SavePayout persists the payout and its ledger debit in one database
// transaction. The ledger row is locked and the balance re-checked under the
// lock; an over-balance attempt surfaces as ErrConflict.
func (r *PgxPayoutRepository) SavePayout(ctx context.Context, payout domain.Payout, entry domain.LedgerEntry) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	var ledgerID string
	var balance int64
	err = tx.QueryRow(ctx, `
		SELECT ledger_id, current_balance_cents
		FROM ledgers
		WHERE employee_id = $1
		FOR UPDATE;
	`, payout.EmployeeID).Scan(&ledgerID, &balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%w: employee %s has no ledger", apperrors.ErrConflict, payout.EmployeeID)
		}
		return 0, apperrors.NewAppError(500, "failed to lock ledger for employee "+payout.EmployeeID, err)
	}

	if balance < payout.AmountCents {
		return 0, fmt.Errorf("%w: balance %d below payout amount %d", apperrors.ErrConflict, balance, payout.AmountCents)
	}

	modelEntry := mapping.ToModelLedgerEntry(entry)
	modelEntry.LedgerID = ledgerID
	_, err = tx.Exec(ctx, `
		INSERT INTO ledger_entries (entry_id, ledger_id, employee_id, entry_type, amount_cents,
		                            source_type, source_id, idempotency_key, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`,
		modelEntry.EntryID,
		modelEntry.LedgerID,
		modelEntry.EmployeeID,
		modelEntry.EntryType,
		modelEntry.AmountCents,
		modelEntry.SourceType,
		modelEntry.SourceID,
		modelEntry.IdempotencyKey,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
	)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to insert payout ledger entry "+modelEntry.EntryID, err)
	}

	m := mapping.ToModelPayout(payout)
	_, err = tx.Exec(ctx, `
		INSERT INTO payouts (payout_id, location_id, employee_id, amount_cents, method,
		                     batch_id, ledger_entry_id, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`,
		m.PayoutID, m.LocationID, m.EmployeeID, m.AmountCents, m.Method,
		m.BatchID, m.LedgerEntryID, m.CreatedAt, m.CreatedBy,
	)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to insert payout "+m.PayoutID, err)
	}

	newBalance := balance - payout.AmountCents
	_, err = tx.Exec(ctx, `
		UPDATE ledgers
		SET current_balance_cents = $2, last_updated_at = $3, last_updated_by = $4
		WHERE ledger_id = $1;
	`, ledgerID, newBalance, payout.CreatedAt, payout.CreatedBy)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to update ledger balance for payout "+m.PayoutID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return newBalance, nil
}

// ListPayouts retrieves a paginated payout history for a location, newest
// first.
func (r *PgxPayoutRepository) ListPayouts(ctx context.Context, locationID string, filter portsrepo.PayoutFilter, limit int, nextToken *string) ([]domain.Payout, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT payout_id, location_id, employee_id, amount_cents, method,
		       batch_id, ledger_entry_id, created_at, created_by
		FROM payouts
		WHERE location_id = $1
	`
	args := []interface{}{locationID}

	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		baseQuery += ` AND employee_id = $` + strconv.Itoa(len(args))
	}
	if filter.Method != nil {
		args = append(args, string(*filter.Method))
		baseQuery += ` AND method = $` + strconv.Itoa(len(args))
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
		lastCreatedAt, lastPayoutID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt, lastPayoutID)
		baseQuery += ` AND (created_at, payout_id) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query := baseQuery + ` ORDER BY created_at DESC, payout_id DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query payouts for location "+locationID, err)
	}
	defer rows.Close()

	modelPayouts := make([]models.Payout, 0, fetchLimit)
	for rows.Next() {
		var m models.Payout
		if err := rows.Scan(
			&m.PayoutID,
			&m.LocationID,
			&m.EmployeeID,
			&m.AmountCents,
			&m.Method,
			&m.BatchID,
			&m.LedgerEntryID,
			&m.CreatedAt,
			&m.CreatedBy,
		); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan payout row", err)
		}
		modelPayouts = append(modelPayouts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating payout rows", err)
	}

	var nextTokenVal *string
	results := modelPayouts
	if len(modelPayouts) > limit {
		last := modelPayouts[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.PayoutID)
		nextTokenVal = &token
		results = modelPayouts[:limit]
	}

	return mapping.ToDomainPayoutSlice(results), nextTokenVal, nil
}
