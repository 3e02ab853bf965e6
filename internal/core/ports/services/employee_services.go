package services

import (
	"context"

	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/domain"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/dto"
)

// EmployeeSvcFacade manages staff records and POS authentication.
type EmployeeSvcFacade interface {
	// Create registers an employee, hashing the PIN.
	Create(ctx context.Context, req dto.CreateEmployeeRequest, actorID string) (*domain.Employee, error)

	// Authenticate verifies the PIN and issues a staff JWT.
	Authenticate(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)

	// Get retrieves an employee.
	Get(ctx context.Context, employeeID string) (*domain.Employee, error)

	// GetByIDs retrieves multiple employees keyed by ID.
	GetByIDs(ctx context.Context, employeeIDs []string) (map[string]domain.Employee, error)

	// List returns a location's employees.
	List(ctx context.Context, locationID string, activeOnly bool) ([]domain.Employee, error)

	// Deactivate marks an employee inactive.
	Deactivate(ctx context.Context, employeeID, actorID string) error
}
