package mapping

import (
	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/domain"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/models"
)

// ToModelOwnership converts a domain OrderOwnership to a model row (entries
// are persisted separately).
func ToModelOwnership(d domain.OrderOwnership) models.OrderOwnership {
	return models.OrderOwnership{
		OwnershipID: d.OwnershipID,
		OrderID:     d.OrderID,
		LocationID:  d.LocationID,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOwnership converts a model OrderOwnership and its entry rows.
func ToDomainOwnership(m models.OrderOwnership, entries []models.OrderOwnershipEntry) domain.OrderOwnership {
	d := domain.OrderOwnership{
		OwnershipID: m.OwnershipID,
		OrderID:     m.OrderID,
		LocationID:  m.LocationID,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	d.Entries = make([]domain.OrderOwnershipEntry, len(entries))
	for i, e := range entries {
		d.Entries[i] = domain.OrderOwnershipEntry{
			EntryID:      e.EntryID,
			OwnershipID:  e.OwnershipID,
			EmployeeID:   e.EmployeeID,
			SharePercent: e.SharePercent,
		}
	}
	return d
}
