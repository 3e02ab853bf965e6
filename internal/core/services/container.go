package services

import (
	portsrepo "github.com/GetwithitMan/gwi-pos-sub009/internal/core/ports/repositories"
	portssvc "github.com/GetwithitMan/gwi-pos-sub009/internal/core/ports/services"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/platform/config"
)

// NewContainer creates the service container with properly wired dependencies.
// Order matters: ledger and employee services are leaves, the allocation
// engine composes ownership and tip group services on top of them.
func NewContainer(repos *portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Ledger = NewLedgerService(repos.LedgerRepo)
	container.Employee = NewEmployeeService(repos.EmployeeRepo, cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer)
	container.TipGroup = NewTipGroupService(repos.TipGroupRepo, container.Employee)
	container.Ownership = NewOwnershipService(repos.OwnershipRepo, container.Employee)
	container.Allocation = NewAllocationService(repos.TipTransactionRepo, container.Ownership, container.TipGroup)
	container.Payout = NewPayoutService(repos.PayoutRepo, repos.ReportingRepo, container.Ledger)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.TipGroupRepo)

	return container
}
