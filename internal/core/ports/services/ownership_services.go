package services

import (
	"context"

	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/domain"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/dto"
)

// OwnershipSvcFacade manages joint table ownership of orders.
type OwnershipSvcFacade interface {
	// AddOwner adds a co-owner. Adding a second owner converts the order to
	// multi-owner; explicit percents scale existing owners proportionally.
	AddOwner(ctx context.Context, locationID, orderID string, req dto.AddOwnerRequest, actorID string) (*dto.OwnershipResponse, error)

	// RemoveOwner removes a co-owner. One remaining owner collapses to 100%;
	// zero remaining deactivates the ownership.
	RemoveOwner(ctx context.Context, orderID, employeeID, actorID string) (*dto.OwnershipResponse, error)

	// SetSplits replaces all owner percentages; they must sum to 100 within
	// tolerance.
	SetSplits(ctx context.Context, orderID string, req dto.SetSplitsRequest, actorID string) (*dto.OwnershipResponse, error)

	// GetOwnership returns the order's active ownership, or nil for
	// single-owner orders.
	GetOwnership(ctx context.Context, orderID string) (*domain.OrderOwnership, error)
}
