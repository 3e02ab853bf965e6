package models

import "time"

// TipGroup represents a tip pool row.
type TipGroup struct {
	GroupID    string `db:"group_id"`
	LocationID string `db:"location_id"`
	OwnerID    string `db:"owner_id"`
	Status     string `db:"status"`
	SplitMode  string `db:"split_mode"`
	AuditFields
	ClosedAt *time.Time `db:"closed_at"` // Nullable
}

// TipGroupMembership represents one employee's tenure in a group.
type TipGroupMembership struct {
	MembershipID string     `db:"membership_id"`
	GroupID      string     `db:"group_id"`
	EmployeeID   string     `db:"employee_id"`
	Status       string     `db:"status"`
	JoinedAt     time.Time  `db:"joined_at"`
	LeftAt       *time.Time `db:"left_at"`     // Nullable
	ApprovedBy   *string    `db:"approved_by"` // Nullable
}

// TipGroupSegment represents a frozen membership snapshot. SplitJSON carries
// the employeeID -> fraction map as a JSONB document.
type TipGroupSegment struct {
	SegmentID   string     `db:"segment_id"`
	GroupID     string     `db:"group_id"`
	StartedAt   time.Time  `db:"started_at"`
	EndedAt     *time.Time `db:"ended_at"` // Nullable; null marks the open segment
	MemberCount int        `db:"member_count"`
	SplitJSON   []byte     `db:"split"`
}
