package mapping

import (
	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/domain"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/models"
)

// ToModelPayout converts a domain Payout to a model row
func ToModelPayout(d domain.Payout) models.Payout {
	return models.Payout{
		PayoutID:      d.PayoutID,
		LocationID:    d.LocationID,
		EmployeeID:    d.EmployeeID,
		AmountCents:   d.AmountCents,
		Method:        string(d.Method),
		BatchID:       d.BatchID,
		LedgerEntryID: d.LedgerEntryID,
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
	}
}

// ToDomainPayout converts a model Payout to a domain value
func ToDomainPayout(m models.Payout) domain.Payout {
	return domain.Payout{
		PayoutID:      m.PayoutID,
		LocationID:    m.LocationID,
		EmployeeID:    m.EmployeeID,
		AmountCents:   m.AmountCents,
		Method:        domain.PayoutMethod(m.Method),
		BatchID:       m.BatchID,
		LedgerEntryID: m.LedgerEntryID,
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
	}
}

// ToDomainPayoutSlice converts a slice of model Payouts
func ToDomainPayoutSlice(ms []models.Payout) []domain.Payout {
	ds := make([]domain.Payout, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayout(m)
	}
	return ds
}
