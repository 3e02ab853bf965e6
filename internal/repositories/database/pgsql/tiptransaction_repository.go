package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GetwithitMan/gwi-pos-sub009/internal/apperrors"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/domain"
	portsrepo "github.com/GetwithitMan/gwi-pos-sub009/internal/core/ports/repositories"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/models"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/utils/mapping"
)

type PgxTipTransactionRepository struct {
	BaseRepository
}

// newPgxTipTransactionRepository creates a new repository for captured tip
// transactions and their ledger fan-out.
func newPgxTipTransactionRepository(pool *pgxpool.Pool) portsrepo.TipTransactionRepositoryFacade {
	return &PgxTipTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TipTransactionRepositoryFacade = (*PgxTipTransactionRepository)(nil)

// SaveTipTransaction persists the transaction row, all of its ledger entries,
// and every recipient's balance adjustment in one database transaction.
func (r *PgxTipTransactionRepository) SaveTipTransaction(ctx context.Context, txn domain.TipTransaction, entries []domain.LedgerEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelTxn := mapping.ToModelTipTransaction(txn)
	txnQuery := `
		INSERT INTO tip_transactions (
			transaction_id, location_id, order_id, payment_id, amount_cents,
			cc_fee_amount_cents, source_type, kind, collected_at,
			primary_employee_id, tip_group_id, segment_id, idempotency_key, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, txnQuery,
		modelTxn.TransactionID,
		modelTxn.LocationID,
		modelTxn.OrderID,
		modelTxn.PaymentID,
		modelTxn.AmountCents,
		modelTxn.CCFeeAmountCents,
		modelTxn.SourceType,
		modelTxn.Kind,
		modelTxn.CollectedAt,
		modelTxn.PrimaryEmployeeID,
		modelTxn.TipGroupID,
		modelTxn.SegmentID,
		modelTxn.IdempotencyKey,
		modelTxn.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: tip transaction %s already captured", apperrors.ErrDuplicate, modelTxn.IdempotencyKey)
		}
		return apperrors.NewAppError(500, "failed to insert tip transaction "+modelTxn.TransactionID, err)
	}

	if len(entries) == 0 {
		// Zero-amount capture: the audit row alone commits.
		return r.Commit(ctx, tx)
	}

	deltas := make(map[string]int64)
	for _, e := range entries {
		deltas[e.EmployeeID] += e.AmountCents
	}
	employeeIDs := make([]string, 0, len(deltas))
	for id := range deltas {
		employeeIDs = append(employeeIDs, id)
	}
	sort.Strings(employeeIDs)

	ledgers, err := lockOrCreateLedgers(ctx, tx, employeeIDs, txn.LocationID, txn.PrimaryEmployeeID, txn.CreatedAt)
	if err != nil {
		return err
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
	balanceQuery := `
		UPDATE ledgers
		SET current_balance_cents = current_balance_cents + $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE ledger_id = $1;
	`
	for _, employeeID := range employeeIDs {
		batch.Queue(balanceQuery, ledgers[employeeID].LedgerID, deltas[employeeID], txn.CreatedAt, txn.PrimaryEmployeeID)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: tip transaction %s already captured", apperrors.ErrDuplicate, modelTxn.IdempotencyKey)
		}
		return apperrors.NewAppError(500, "failed to post allocation entries for transaction "+modelTxn.TransactionID, err)
	}

	return r.Commit(ctx, tx)
}

// FindByIdempotencyKey returns the committed transaction for the key.
func (r *PgxTipTransactionRepository) FindByIdempotencyKey(ctx context.Context, key string) (*domain.TipTransaction, error) {
	return r.findOne(ctx, `WHERE idempotency_key = $1`, key)
}

// FindByID retrieves a tip transaction.
func (r *PgxTipTransactionRepository) FindByID(ctx context.Context, transactionID string) (*domain.TipTransaction, error) {
	return r.findOne(ctx, `WHERE transaction_id = $1`, transactionID)
}

func (r *PgxTipTransactionRepository) findOne(ctx context.Context, whereClause string, arg interface{}) (*domain.TipTransaction, error) {
	query := `
		SELECT transaction_id, location_id, order_id, payment_id, amount_cents,
		       cc_fee_amount_cents, source_type, kind, collected_at,
		       primary_employee_id, tip_group_id, segment_id, idempotency_key, created_at
		FROM tip_transactions
	` + whereClause + `;`

	var m models.TipTransaction
	err := r.Pool.QueryRow(ctx, query, arg).Scan(
		&m.TransactionID,
		&m.LocationID,
		&m.OrderID,
		&m.PaymentID,
		&m.AmountCents,
		&m.CCFeeAmountCents,
		&m.SourceType,
		&m.Kind,
		&m.CollectedAt,
		&m.PrimaryEmployeeID,
		&m.TipGroupID,
		&m.SegmentID,
		&m.IdempotencyKey,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find tip transaction", err)
	}
	txn := mapping.ToDomainTipTransaction(m)
	return &txn, nil
}

// FindAllocations returns the ledger entries posted for a transaction as
// allocation slices, ordered by employee ID for deterministic output.
func (r *PgxTipTransactionRepository) FindAllocations(ctx context.Context, transactionID string) ([]domain.Allocation, error) {
	query := `
		SELECT entry_id, employee_id, amount_cents, source_type
		FROM ledger_entries
		WHERE source_id = $1
		ORDER BY employee_id, entry_id;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query allocations for transaction "+transactionID, err)
	}
	defer rows.Close()

	allocations := []domain.Allocation{}
	for rows.Next() {
		var a domain.Allocation
		var sourceType string
		if err := rows.Scan(&a.LedgerEntryID, &a.EmployeeID, &a.AmountCents, &sourceType); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan allocation row", err)
		}
		a.SourceType = domain.EntrySourceType(sourceType)
		allocations = append(allocations, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating allocation rows", err)
	}
	return allocations, nil
}
