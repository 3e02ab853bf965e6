package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GroupStatus is the lifecycle state of a tip group. Closed is terminal.
type GroupStatus string

const (
	GroupActive GroupStatus = "active"
	GroupClosed GroupStatus = "closed"
)

// SplitMode determines how a group's segment split is computed.
type SplitMode string

const (
	SplitEqual        SplitMode = "equal"
	SplitRoleWeighted SplitMode = "role_weighted"
)

// MembershipStatus is the state of an employee's membership in a group.
type MembershipStatus string

const (
	MemberActive          MembershipStatus = "active"
	MemberLeft            MembershipStatus = "left"
	MemberPendingApproval MembershipStatus = "pending_approval"
)

// TipGroup is a pool of employees sharing tips. Membership changes never
// rewrite history: each change closes the open segment and opens a new one.
type TipGroup struct {
	GroupID    string      `json:"groupID"` // Primary Key (UUID)
	LocationID string      `json:"locationID"`
	OwnerID    string      `json:"ownerID"` // employee who started the group
	Status     GroupStatus `json:"status"`
	SplitMode  SplitMode   `json:"splitMode"`
	AuditFields
	ClosedAt *time.Time `json:"closedAt,omitempty"`
}

// TipGroupMembership records one employee's tenure in one group.
type TipGroupMembership struct {
	MembershipID string           `json:"membershipID"` // Primary Key (UUID)
	GroupID      string           `json:"groupID"`
	EmployeeID   string           `json:"employeeID"`
	Status       MembershipStatus `json:"status"`
	JoinedAt     time.Time        `json:"joinedAt"`
	LeftAt       *time.Time       `json:"leftAt,omitempty"`
	ApprovedBy   string           `json:"approvedBy,omitempty"`
}

// TipGroupSegment is a time-bounded snapshot of a group's membership and the
// frozen split fraction of each member. EndedAt == nil marks the single open
// segment of an active group.
type TipGroupSegment struct {
	SegmentID   string                     `json:"segmentID"` // Primary Key (UUID)
	GroupID     string                     `json:"groupID"`
	StartedAt   time.Time                  `json:"startedAt"`
	EndedAt     *time.Time                 `json:"endedAt,omitempty"`
	MemberCount int                        `json:"memberCount"`
	Split       map[string]decimal.Decimal `json:"split"` // employeeID -> fraction of 1.0
}

// Covers reports whether the segment was active at instant t.
func (s TipGroupSegment) Covers(t time.Time) bool {
	if t.Before(s.StartedAt) {
		return false
	}
	return s.EndedAt == nil || s.EndedAt.After(t)
}
