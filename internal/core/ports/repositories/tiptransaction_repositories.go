package repositories

import (
	"context"

	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/domain"
)

// TipTransactionReader defines read operations for captured tip transactions.
type TipTransactionReader interface {
	// FindByIdempotencyKey returns the already-committed transaction for the
	// key, or ErrNotFound.
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.TipTransaction, error)

	// FindByID retrieves a tip transaction.
	FindByID(ctx context.Context, transactionID string) (*domain.TipTransaction, error)

	// FindAllocations returns the ledger entries posted for a transaction as
	// allocation slices, in sorted-employee-ID order.
	FindAllocations(ctx context.Context, transactionID string) ([]domain.Allocation, error)
}

// TipTransactionWriter defines write operations for captured tip transactions.
type TipTransactionWriter interface {
	// SaveTipTransaction persists the transaction and all of its resulting
	// ledger entries, adjusting every recipient's cached balance, in a single
	// database transaction. Partial posting is impossible: either everything
	// commits or nothing does. A concurrent insert with the same idempotency
	// key surfaces as ErrDuplicate so the caller can re-read the winner's
	// committed result.
	SaveTipTransaction(ctx context.Context, txn domain.TipTransaction, entries []domain.LedgerEntry) error
}

// TipTransactionRepositoryFacade combines tip transaction repository interfaces.
type TipTransactionRepositoryFacade interface {
	TipTransactionReader
	TipTransactionWriter
}
