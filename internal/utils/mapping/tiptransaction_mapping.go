package mapping

import (
	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/domain"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/models"
)

// ToModelTipTransaction converts a domain TipTransaction to a model row
func ToModelTipTransaction(d domain.TipTransaction) models.TipTransaction {
	return models.TipTransaction{
		TransactionID:     d.TransactionID,
		LocationID:        d.LocationID,
		OrderID:           d.OrderID,
		PaymentID:         d.PaymentID,
		AmountCents:       d.AmountCents,
		CCFeeAmountCents:  d.CCFeeAmountCents,
		SourceType:        string(d.SourceType),
		Kind:              string(d.Kind),
		CollectedAt:       d.CollectedAt,
		PrimaryEmployeeID: d.PrimaryEmployeeID,
		TipGroupID:        d.TipGroupID,
		SegmentID:         d.SegmentID,
		IdempotencyKey:    d.IdempotencyKey,
		CreatedAt:         d.CreatedAt,
	}
}

// ToDomainTipTransaction converts a model TipTransaction to a domain value
func ToDomainTipTransaction(m models.TipTransaction) domain.TipTransaction {
	return domain.TipTransaction{
		TransactionID:     m.TransactionID,
		LocationID:        m.LocationID,
		OrderID:           m.OrderID,
		PaymentID:         m.PaymentID,
		AmountCents:       m.AmountCents,
		CCFeeAmountCents:  m.CCFeeAmountCents,
		SourceType:        domain.TipSourceType(m.SourceType),
		Kind:              domain.TipKind(m.Kind),
		CollectedAt:       m.CollectedAt,
		PrimaryEmployeeID: m.PrimaryEmployeeID,
		TipGroupID:        m.TipGroupID,
		SegmentID:         m.SegmentID,
		IdempotencyKey:    m.IdempotencyKey,
		CreatedAt:         m.CreatedAt,
	}
}
