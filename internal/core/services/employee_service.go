package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/GetwithitMan/gwi-pos-sub009/internal/apperrors"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/domain"
	portsrepo "github.com/GetwithitMan/gwi-pos-sub009/internal/core/ports/repositories"
	portssvc "github.com/GetwithitMan/gwi-pos-sub009/internal/core/ports/services"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/dto"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/middleware"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid employee ID or PIN")
	ErrNegativeTipWeight  = errors.New("tip weight must not be negative")
)

// employeeService manages staff records and PIN login for the POS.
type employeeService struct {
	employeeRepo portsrepo.EmployeeRepositoryFacade
	jwtSecret    string
	jwtExpiry    time.Duration
	jwtIssuer    string
}

// NewEmployeeService creates a new EmployeeService.
func NewEmployeeService(employeeRepo portsrepo.EmployeeRepositoryFacade, jwtSecret string, jwtExpiry time.Duration, jwtIssuer string) portssvc.EmployeeSvcFacade {
	return &employeeService{
		employeeRepo: employeeRepo,
		jwtSecret:    jwtSecret,
		jwtExpiry:    jwtExpiry,
		jwtIssuer:    jwtIssuer,
	}
}

var _ portssvc.EmployeeSvcFacade = (*employeeService)(nil)

// Create registers an employee, hashing the PIN before it is stored.
func (s *employeeService) Create(ctx context.Context, req dto.CreateEmployeeRequest, actorID string) (*domain.Employee, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.TipWeight.IsNegative() {
		return nil, ErrNegativeTipWeight
	}

	pinHash, err := utils.HashPin(req.Pin)
	if err != nil {
		return nil, fmt.Errorf("failed to hash PIN: %w", err)
	}

	now := time.Now().UTC()
	employee := domain.Employee{
		EmployeeID: uuid.NewString(),
		LocationID: req.LocationID,
		Name:       req.Name,
		Role:       req.Role,
		TipWeight:  req.TipWeight,
		PinHash:    pinHash,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.employeeRepo.SaveEmployee(ctx, employee); err != nil {
		return nil, fmt.Errorf("failed to save employee: %w", err)
	}

	logger.Info("Employee created",
		slog.String("employee_id", employee.EmployeeID),
		slog.String("location_id", employee.LocationID),
		slog.String("role", employee.Role),
	)
	return &employee, nil
}

// Authenticate verifies the PIN and issues a staff token. Lookup misses and
// PIN mismatches are indistinguishable to the caller.
func (s *employeeService) Authenticate(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	employee, err := s.employeeRepo.FindEmployeeByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up employee: %w", err)
	}
	if !employee.IsActive || !utils.CheckPinHash(req.Pin, employee.PinHash) {
		logger.Warn("Failed PIN login attempt", slog.String("employee_id", req.EmployeeID))
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(employee.EmployeeID, s.jwtSecret, s.jwtExpiry, s.jwtIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(s.jwtExpiry),
	}, nil
}

// Get retrieves an employee by ID.
func (s *employeeService) Get(ctx context.Context, employeeID string) (*domain.Employee, error) {
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find employee %s: %w", employeeID, err)
	}
	return employee, nil
}

// GetByIDs retrieves multiple employees keyed by ID. Missing IDs are simply
// absent from the map.
func (s *employeeService) GetByIDs(ctx context.Context, employeeIDs []string) (map[string]domain.Employee, error) {
	employees, err := s.employeeRepo.FindEmployeesByIDs(ctx, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find employees: %w", err)
	}
	return employees, nil
}

// List returns a location's employees.
func (s *employeeService) List(ctx context.Context, locationID string, activeOnly bool) ([]domain.Employee, error) {
	employees, err := s.employeeRepo.ListEmployeesByLocation(ctx, locationID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees for location %s: %w", locationID, err)
	}
	return employees, nil
}

// Deactivate marks an employee inactive. Their ledger and history remain.
func (s *employeeService) Deactivate(ctx context.Context, employeeID, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return fmt.Errorf("failed to find employee %s: %w", employeeID, err)
	}
	if !employee.IsActive {
		return nil
	}

	employee.IsActive = false
	employee.LastUpdatedAt = time.Now().UTC()
	employee.LastUpdatedBy = actorID
	if err := s.employeeRepo.UpdateEmployee(ctx, *employee); err != nil {
		return fmt.Errorf("failed to update employee %s: %w", employeeID, err)
	}

	logger.Info("Employee deactivated", slog.String("employee_id", employeeID), slog.String("actor_id", actorID))
	return nil
}
