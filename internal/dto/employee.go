package dto

import (
	"time"

	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEmployeeRequest registers a staff member.
type CreateEmployeeRequest struct {
	LocationID string          `json:"locationID" binding:"required"`
	Name       string          `json:"name" binding:"required"`
	Role       string          `json:"role" binding:"required"`
	TipWeight  decimal.Decimal `json:"tipWeight"`
	Pin        string          `json:"pin" binding:"required,min=4,max=8"`
}

// EmployeeResponse is the public view of an employee.
type EmployeeResponse struct {
	EmployeeID string          `json:"employeeID"`
	LocationID string          `json:"locationID"`
	Name       string          `json:"name"`
	Role       string          `json:"role"`
	TipWeight  decimal.Decimal `json:"tipWeight"`
	IsActive   bool            `json:"isActive"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// LoginRequest authenticates an employee with their POS PIN.
type LoginRequest struct {
	EmployeeID string `json:"employeeID" binding:"required"`
	Pin        string `json:"pin" binding:"required"`
}

// LoginResponse carries the issued staff token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ToEmployeeResponse converts a domain employee.
func ToEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		EmployeeID: e.EmployeeID,
		LocationID: e.LocationID,
		Name:       e.Name,
		Role:       e.Role,
		TipWeight:  e.TipWeight,
		IsActive:   e.IsActive,
		CreatedAt:  e.CreatedAt,
	}
}
