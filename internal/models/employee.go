package models

import (
	"github.com/shopspring/decimal"
)

// Employee represents a staff member row.
type Employee struct {
	EmployeeID  string          `db:"employee_id"`
	LocationID  string          `db:"location_id"`
	Name        string          `db:"name"`
	Role        string          `db:"role"`
	TipWeight   decimal.Decimal `db:"tip_weight"`
	PinHash     string          `db:"pin_hash"`
	IsActive    bool            `db:"is_active"`
	AuditFields // Embed common audit fields
}
