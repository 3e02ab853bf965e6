package mapping

import (
	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/domain"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/models"
)

// ToModelEmployee converts a domain Employee to a model Employee
func ToModelEmployee(d domain.Employee) models.Employee {
	return models.Employee{
		EmployeeID:  d.EmployeeID,
		LocationID:  d.LocationID,
		Name:        d.Name,
		Role:        d.Role,
		TipWeight:   d.TipWeight,
		PinHash:     d.PinHash,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEmployee converts a model Employee to a domain Employee
func ToDomainEmployee(m models.Employee) domain.Employee {
	return domain.Employee{
		EmployeeID:  m.EmployeeID,
		LocationID:  m.LocationID,
		Name:        m.Name,
		Role:        m.Role,
		TipWeight:   m.TipWeight,
		PinHash:     m.PinHash,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
