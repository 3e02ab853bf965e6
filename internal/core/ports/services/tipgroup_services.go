package services

import (
	"context"
	"time"

	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/domain"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/dto"
)

// TipGroupSvcFacade manages tip group lifecycle and segment history.
type TipGroupSvcFacade interface {
	// Start creates a group, memberships for all initial members, and the
	// initial open segment.
	Start(ctx context.Context, req dto.StartGroupRequest, creatorID string) (*dto.GroupResponse, error)

	// AddMember adds an employee, rotating the open segment.
	AddMember(ctx context.Context, groupID, employeeID, approvedBy string) (*dto.GroupResponse, error)

	// RemoveMember removes an employee, rotating the open segment; removing
	// the last member closes the group.
	RemoveMember(ctx context.Context, groupID, employeeID, actorID string) (*dto.GroupResponse, error)

	// RequestJoin records a pending membership carrying no split weight.
	RequestJoin(ctx context.Context, groupID, employeeID string) error

	// ApproveJoin promotes a pending membership, rotating the open segment.
	ApproveJoin(ctx context.Context, groupID, employeeID, approvedBy string) (*dto.GroupResponse, error)

	// Close explicitly closes an active group, ending all memberships.
	Close(ctx context.Context, groupID, actorID string) error

	// GetGroup returns a group with its open segment when active.
	GetGroup(ctx context.Context, groupID string) (*dto.GroupResponse, error)

	// ListGroups returns a location's groups.
	ListGroups(ctx context.Context, locationID string, activeOnly bool) ([]dto.GroupResponse, error)

	// FindSegmentForTimestamp reconstructs the historically accurate split for
	// a tip collected at t, independent of current membership.
	FindSegmentForTimestamp(ctx context.Context, groupID string, t time.Time) (*domain.TipGroupSegment, error)

	// ActiveMembership returns the employee's single active membership, or
	// nil when the employee is not pooling.
	ActiveMembership(ctx context.Context, employeeID string) (*domain.TipGroupMembership, error)
}
