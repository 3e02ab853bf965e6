package mapping

import (
	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/domain"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/models"
)

// ToModelLedger converts a domain Ledger to a model Ledger
func ToModelLedger(d domain.Ledger) models.Ledger {
	return models.Ledger{
		LedgerID:            d.LedgerID,
		EmployeeID:          d.EmployeeID,
		LocationID:          d.LocationID,
		CurrentBalanceCents: d.CurrentBalanceCents,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedger converts a model Ledger to a domain Ledger
func ToDomainLedger(m models.Ledger) domain.Ledger {
	return domain.Ledger{
		LedgerID:            m.LedgerID,
		EmployeeID:          m.EmployeeID,
		LocationID:          m.LocationID,
		CurrentBalanceCents: m.CurrentBalanceCents,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:        d.EntryID,
		LedgerID:       d.LedgerID,
		EmployeeID:     d.EmployeeID,
		EntryType:      models.EntryType(d.EntryType),
		AmountCents:    d.AmountCents,
		SourceType:     string(d.SourceType),
		SourceID:       d.SourceID,
		IdempotencyKey: d.IdempotencyKey,
		CreatedAt:      d.CreatedAt,
		CreatedBy:      d.CreatedBy,
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:        m.EntryID,
		LedgerID:       m.LedgerID,
		EmployeeID:     m.EmployeeID,
		EntryType:      domain.EntryType(m.EntryType),
		AmountCents:    m.AmountCents,
		SourceType:     domain.EntrySourceType(m.SourceType),
		SourceID:       m.SourceID,
		IdempotencyKey: m.IdempotencyKey,
		CreatedAt:      m.CreatedAt,
		CreatedBy:      m.CreatedBy,
	}
}

// ToDomainLedgerEntrySlice converts a slice of model LedgerEntries
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
