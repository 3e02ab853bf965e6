package pgsql

import (
	portsrepo "github.com/GetwithitMan/gwi-pos-sub009/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	ledgerRepo := newPgxLedgerRepository(dbPool)
	tipGroupRepo := newPgxTipGroupRepository(dbPool)
	ownershipRepo := newPgxOwnershipRepository(dbPool)
	tipTransactionRepo := newPgxTipTransactionRepository(dbPool)
	payoutRepo := newPgxPayoutRepository(dbPool)
	employeeRepo := newPgxEmployeeRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		LedgerRepo:         ledgerRepo,
		TipGroupRepo:       tipGroupRepo,
		OwnershipRepo:      ownershipRepo,
		TipTransactionRepo: tipTransactionRepo,
		PayoutRepo:         payoutRepo,
		EmployeeRepo:       employeeRepo,
		ReportingRepo:      reportingRepo,
	}
}
