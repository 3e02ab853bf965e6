package models

import (
	"github.com/shopspring/decimal"
)

// OrderOwnership represents the active co-ownership row for an order.
type OrderOwnership struct {
	OwnershipID string `db:"ownership_id"`
	OrderID     string `db:"order_id"`
	LocationID  string `db:"location_id"`
	IsActive    bool   `db:"is_active"`
	AuditFields
}

// OrderOwnershipEntry represents one co-owner's percentage share.
type OrderOwnershipEntry struct {
	EntryID      string          `db:"entry_id"`
	OwnershipID  string          `db:"ownership_id"`
	EmployeeID   string          `db:"employee_id"`
	SharePercent decimal.Decimal `db:"share_percent"`
}
