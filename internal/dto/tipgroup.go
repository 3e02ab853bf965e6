package dto

import (
	"time"

	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/domain"
)

// StartGroupRequest creates a tip group with its initial members.
type StartGroupRequest struct {
	LocationID       string   `json:"locationID" binding:"required"`
	InitialMemberIDs []string `json:"initialMemberIDs" binding:"required,min=1,dive,required"`
	SplitMode        string   `json:"splitMode" binding:"required,oneof=equal role_weighted"`
}

// AddMemberRequest adds an employee to an active group.
type AddMemberRequest struct {
	EmployeeID string `json:"employeeID" binding:"required"`
}

// RequestJoinRequest asks to join a group, pending approval.
type RequestJoinRequest struct {
	EmployeeID string `json:"employeeID" binding:"required"`
}

// SegmentResponse is one time-bounded membership snapshot of a group.
type SegmentResponse struct {
	SegmentID   string             `json:"segmentID"`
	GroupID     string             `json:"groupID"`
	StartedAt   time.Time          `json:"startedAt"`
	EndedAt     *time.Time         `json:"endedAt,omitempty"`
	MemberCount int                `json:"memberCount"`
	Split       map[string]float64 `json:"split"`
}

// GroupResponse describes a tip group and, when loaded, its open segment.
type GroupResponse struct {
	GroupID     string           `json:"groupID"`
	LocationID  string           `json:"locationID"`
	OwnerID     string           `json:"ownerID"`
	Status      string           `json:"status"`
	SplitMode   string           `json:"splitMode"`
	CreatedAt   time.Time        `json:"createdAt"`
	ClosedAt    *time.Time       `json:"closedAt,omitempty"`
	OpenSegment *SegmentResponse `json:"openSegment,omitempty"`
}

// ToSegmentResponse converts a domain segment, rendering fractions as floats
// for display only.
func ToSegmentResponse(s *domain.TipGroupSegment) *SegmentResponse {
	if s == nil {
		return nil
	}
	split := make(map[string]float64, len(s.Split))
	for id, frac := range s.Split {
		split[id], _ = frac.Float64()
	}
	return &SegmentResponse{
		SegmentID:   s.SegmentID,
		GroupID:     s.GroupID,
		StartedAt:   s.StartedAt,
		EndedAt:     s.EndedAt,
		MemberCount: s.MemberCount,
		Split:       split,
	}
}

// ToGroupResponse converts a domain group.
func ToGroupResponse(g *domain.TipGroup, openSegment *domain.TipGroupSegment) GroupResponse {
	return GroupResponse{
		GroupID:     g.GroupID,
		LocationID:  g.LocationID,
		OwnerID:     g.OwnerID,
		Status:      string(g.Status),
		SplitMode:   string(g.SplitMode),
		CreatedAt:   g.CreatedAt,
		ClosedAt:    g.ClosedAt,
		OpenSegment: ToSegmentResponse(openSegment),
	}
}

// GroupCheckoutRow is one segment (or solo stretch) of an employee's shift
// with the tips credited during it.
type GroupCheckoutRow struct {
	GroupID     *string    `json:"groupID,omitempty"`
	SegmentID   *string    `json:"segmentID,omitempty"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	EndedAt     *time.Time `json:"endedAt,omitempty"`
	SourceType  string     `json:"sourceType"`
	TotalCents  int64      `json:"totalCents"`
	EntryCount  int        `json:"entryCount"`
	SplitShare  *float64   `json:"splitShare,omitempty"`
	MemberCount *int       `json:"memberCount,omitempty"`
}

// GroupCheckoutResponse is the shift-closeout breakdown for one employee.
type GroupCheckoutResponse struct {
	EmployeeID string             `json:"employeeID"`
	From       time.Time          `json:"from"`
	To         time.Time          `json:"to"`
	SoloCents  int64              `json:"soloCents"`
	GroupCents int64              `json:"groupCents"`
	TotalCents int64              `json:"totalCents"`
	Rows       []GroupCheckoutRow `json:"rows"`
}
