package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/domain"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/models"
)

// ToModelTipGroup converts a domain TipGroup to a model TipGroup
func ToModelTipGroup(d domain.TipGroup) models.TipGroup {
	return models.TipGroup{
		GroupID:     d.GroupID,
		LocationID:  d.LocationID,
		OwnerID:     d.OwnerID,
		Status:      string(d.Status),
		SplitMode:   string(d.SplitMode),
		AuditFields: ToModelAuditFields(d.AuditFields),
		ClosedAt:    d.ClosedAt,
	}
}

// ToDomainTipGroup converts a model TipGroup to a domain TipGroup
func ToDomainTipGroup(m models.TipGroup) domain.TipGroup {
	return domain.TipGroup{
		GroupID:     m.GroupID,
		LocationID:  m.LocationID,
		OwnerID:     m.OwnerID,
		Status:      domain.GroupStatus(m.Status),
		SplitMode:   domain.SplitMode(m.SplitMode),
		AuditFields: ToDomainAuditFields(m.AuditFields),
		ClosedAt:    m.ClosedAt,
	}
}

// ToModelMembership converts a domain TipGroupMembership to a model row
func ToModelMembership(d domain.TipGroupMembership) models.TipGroupMembership {
	m := models.TipGroupMembership{
		MembershipID: d.MembershipID,
		GroupID:      d.GroupID,
		EmployeeID:   d.EmployeeID,
		Status:       string(d.Status),
		JoinedAt:     d.JoinedAt,
		LeftAt:       d.LeftAt,
	}
	if d.ApprovedBy != "" {
		approvedBy := d.ApprovedBy
		m.ApprovedBy = &approvedBy
	}
	return m
}

// ToDomainMembership converts a model TipGroupMembership to a domain value
func ToDomainMembership(m models.TipGroupMembership) domain.TipGroupMembership {
	d := domain.TipGroupMembership{
		MembershipID: m.MembershipID,
		GroupID:      m.GroupID,
		EmployeeID:   m.EmployeeID,
		Status:       domain.MembershipStatus(m.Status),
		JoinedAt:     m.JoinedAt,
		LeftAt:       m.LeftAt,
	}
	if m.ApprovedBy != nil {
		d.ApprovedBy = *m.ApprovedBy
	}
	return d
}

// ToModelSegment converts a domain TipGroupSegment, marshalling the split map
// into the JSONB column representation.
func ToModelSegment(d domain.TipGroupSegment) (models.TipGroupSegment, error) {
	splitJSON, err := json.Marshal(d.Split)
	if err != nil {
		return models.TipGroupSegment{}, fmt.Errorf("failed to marshal segment split: %w", err)
	}
	return models.TipGroupSegment{
		SegmentID:   d.SegmentID,
		GroupID:     d.GroupID,
		StartedAt:   d.StartedAt,
		EndedAt:     d.EndedAt,
		MemberCount: d.MemberCount,
		SplitJSON:   splitJSON,
	}, nil
}

// ToDomainSegment converts a model TipGroupSegment, unmarshalling the split.
func ToDomainSegment(m models.TipGroupSegment) (domain.TipGroupSegment, error) {
	split := map[string]decimal.Decimal{}
	if len(m.SplitJSON) > 0 {
		if err := json.Unmarshal(m.SplitJSON, &split); err != nil {
			return domain.TipGroupSegment{}, fmt.Errorf("failed to unmarshal segment split: %w", err)
		}
	}
	return domain.TipGroupSegment{
		SegmentID:   m.SegmentID,
		GroupID:     m.GroupID,
		StartedAt:   m.StartedAt,
		EndedAt:     m.EndedAt,
		MemberCount: m.MemberCount,
		Split:       split,
	}, nil
}
