package dto

import (
	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AddOwnerRequest adds a co-owner to an order. SharePercent is optional; when
// omitted the new owner gets an even share and existing owners scale down
// proportionally. CurrentOwnerID names the order's existing single owner and
// is required only for the add that first converts the order to multi-owner.
type AddOwnerRequest struct {
	LocationID     string           `json:"locationID" binding:"required"`
	EmployeeID     string           `json:"employeeID" binding:"required"`
	SharePercent   *decimal.Decimal `json:"sharePercent,omitempty"`
	CurrentOwnerID string           `json:"currentOwnerID,omitempty"`
}

// OwnerSplit is one owner's explicit percentage.
type OwnerSplit struct {
	EmployeeID   string          `json:"employeeID" binding:"required"`
	SharePercent decimal.Decimal `json:"sharePercent" binding:"required"`
}

// SetSplitsRequest replaces all owner percentages; they must sum to 100
// within a 0.01 tolerance.
type SetSplitsRequest struct {
	Splits []OwnerSplit `json:"splits" binding:"required,min=1,dive"`
}

// OwnershipEntryResponse is one co-owner's share.
type OwnershipEntryResponse struct {
	EmployeeID   string          `json:"employeeID"`
	SharePercent decimal.Decimal `json:"sharePercent"`
}

// OwnershipResponse describes an order's active ownership.
type OwnershipResponse struct {
	OwnershipID string                   `json:"ownershipID"`
	OrderID     string                   `json:"orderID"`
	IsActive    bool                     `json:"isActive"`
	Entries     []OwnershipEntryResponse `json:"entries"`
}

// ToOwnershipResponse converts a domain ownership record.
func ToOwnershipResponse(o *domain.OrderOwnership) OwnershipResponse {
	entries := make([]OwnershipEntryResponse, len(o.Entries))
	for i, e := range o.Entries {
		entries[i] = OwnershipEntryResponse{EmployeeID: e.EmployeeID, SharePercent: e.SharePercent}
	}
	return OwnershipResponse{
		OwnershipID: o.OwnershipID,
		OrderID:     o.OrderID,
		IsActive:    o.IsActive,
		Entries:     entries,
	}
}
