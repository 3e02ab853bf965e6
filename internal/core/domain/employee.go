package domain

import "github.com/shopspring/decimal"

// Employee is a staff member who can hold a tip ledger, join tip groups,
// and co-own orders.
type Employee struct {
	EmployeeID string `json:"employeeID"` // Primary Key (UUID)
	LocationID string `json:"locationID"`
	Name       string `json:"name"`
	Role       string `json:"role"` // e.g. server, bartender, busser
	// TipWeight is the relative weight used by role-weighted group splits.
	TipWeight decimal.Decimal `json:"tipWeight"`
	PinHash   string          `json:"-"` // bcrypt hash of the POS PIN
	IsActive  bool            `json:"isActive"`
	AuditFields
}
