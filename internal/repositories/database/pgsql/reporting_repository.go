package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GetwithitMan/gwi-pos-sub009/internal/apperrors"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/domain"
	portsrepo "github.com/GetwithitMan/gwi-pos-sub009/internal/core/ports/repositories"
)

type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates the read-only reporting repository.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingReader {
	return &reportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingReader = (*reportingRepository)(nil)

// PayableBalances returns employees of the location with a positive ledger
// balance, sorted descending by balance.
func (r *reportingRepository) PayableBalances(ctx context.Context, locationID string) ([]domain.EmployeeBalance, error) {
	query := `
		SELECT l.employee_id, e.name, l.current_balance_cents
		FROM ledgers l
		JOIN employees e ON e.employee_id = l.employee_id
		WHERE l.location_id = $1 AND l.current_balance_cents > 0
		ORDER BY l.current_balance_cents DESC, l.employee_id;
	`
	rows, err := r.Pool.Query(ctx, query, locationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payable balances for location "+locationID, err)
	}
	defer rows.Close()

	balances := []domain.EmployeeBalance{}
	for rows.Next() {
		var b domain.EmployeeBalance
		if err := rows.Scan(&b.EmployeeID, &b.EmployeeName, &b.BalanceCents); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payable balance row", err)
		}
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payable balance rows", err)
	}
	return balances, nil
}

// CheckoutRows aggregates an employee's credited tips within a shift window,
// grouped by the segment that produced them. Direct tips group into a single
// row with null segment and group IDs.
func (r *reportingRepository) CheckoutRows(ctx context.Context, employeeID string, from, to time.Time) ([]portsrepo.CheckoutRow, error) {
	query := `
		SELECT t.segment_id, t.tip_group_id, le.source_type,
		       SUM(le.amount_cents) AS total_cents, COUNT(*) AS entry_count
		FROM ledger_entries le
		LEFT JOIN tip_transactions t ON t.transaction_id = le.source_id
		WHERE le.employee_id = $1
		  AND le.entry_type = 'CREDIT'
		  AND le.source_type IN ('DIRECT_TIP', 'TIP_GROUP')
		  AND le.created_at >= $2 AND le.created_at < $3
		GROUP BY t.segment_id, t.tip_group_id, le.source_type
		ORDER BY le.source_type, t.segment_id;
	`
	rows, err := r.Pool.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query checkout rows for employee "+employeeID, err)
	}
	defer rows.Close()

	result := []portsrepo.CheckoutRow{}
	for rows.Next() {
		var row portsrepo.CheckoutRow
		var sourceType string
		if err := rows.Scan(&row.SegmentID, &row.GroupID, &sourceType, &row.TotalCents, &row.EntryCount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan checkout row", err)
		}
		row.SourceType = domain.EntrySourceType(sourceType)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating checkout rows", err)
	}
	return result, nil
}
