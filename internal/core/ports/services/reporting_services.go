package services

import (
	"context"
	"time"

	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/domain"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/dto"
)

// ReportingSvcFacade is the read side consumed by shift-closeout and payroll
// display collaborators.
type ReportingSvcFacade interface {
	// PayableBalances returns positive-balance employees of the location,
	// sorted descending.
	PayableBalances(ctx context.Context, locationID string) ([]domain.EmployeeBalance, error)

	// GroupCheckout builds the segment-by-segment solo-vs-group breakdown of
	// an employee's shift window.
	GroupCheckout(ctx context.Context, employeeID string, from, to time.Time) (*dto.GroupCheckoutResponse, error)
}
