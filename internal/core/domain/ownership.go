package domain

import "github.com/shopspring/decimal"

// OrderOwnership is the active co-ownership record for one order. It only
// exists while two or more servers jointly own the order's tips; dropping to
// zero owners deactivates it.
type OrderOwnership struct {
	OwnershipID string `json:"ownershipID"` // Primary Key (UUID)
	OrderID     string `json:"orderID"`
	LocationID  string `json:"locationID"`
	IsActive    bool   `json:"isActive"`
	AuditFields
	Entries []OrderOwnershipEntry `json:"entries,omitempty"`
}

// OrderOwnershipEntry is one co-owner's percentage share of an order.
// Shares of an active ownership sum to 100 within a 0.01 tolerance.
type OrderOwnershipEntry struct {
	EntryID      string          `json:"entryID"` // Primary Key (UUID)
	OwnershipID  string          `json:"ownershipID"`
	EmployeeID   string          `json:"employeeID"`
	SharePercent decimal.Decimal `json:"sharePercent"`
}
