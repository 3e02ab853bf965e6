package repositories

import (
	"context"
	"time"

	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// OwnershipReader defines read operations for order ownership data.
type OwnershipReader interface {
	// FindActiveByOrderID returns the order's active ownership with its
	// entries, or ErrNotFound when the order is single-owner.
	FindActiveByOrderID(ctx context.Context, orderID string) (*domain.OrderOwnership, error)
}

// OwnershipWriter defines write operations for order ownership data.
// Mutations take a caller-managed transaction so concurrent owner changes for
// the same order serialize on the ownership row.
type OwnershipWriter interface {
	// FindActiveByOrderIDForUpdate locks the active ownership row within tx.
	FindActiveByOrderIDForUpdate(ctx context.Context, tx pgx.Tx, orderID string) (*domain.OrderOwnership, error)

	// InsertOwnershipInTx inserts an ownership row with its entries.
	InsertOwnershipInTx(ctx context.Context, tx pgx.Tx, ownership domain.OrderOwnership) error

	// ReplaceEntriesInTx replaces all share entries of an ownership.
	ReplaceEntriesInTx(ctx context.Context, tx pgx.Tx, ownershipID string, entries []domain.OrderOwnershipEntry, actorID string, now time.Time) error

	// DeactivateInTx marks the ownership inactive.
	DeactivateInTx(ctx context.Context, tx pgx.Tx, ownershipID string, actorID string, now time.Time) error
}

// OwnershipRepositoryFacade combines all ownership repository interfaces.
type OwnershipRepositoryFacade interface {
	OwnershipReader
	OwnershipWriter
	TransactionManager
}
