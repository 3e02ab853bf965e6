package models

import "time"

// TipTransaction represents one captured gratuity event row.
type TipTransaction struct {
	TransactionID     string    `db:"transaction_id"`
	LocationID        string    `db:"location_id"`
	OrderID           string    `db:"order_id"`
	PaymentID         string    `db:"payment_id"`
	AmountCents       int64     `db:"amount_cents"`
	CCFeeAmountCents  int64     `db:"cc_fee_amount_cents"`
	SourceType        string    `db:"source_type"`
	Kind              string    `db:"kind"`
	CollectedAt       time.Time `db:"collected_at"`
	PrimaryEmployeeID string    `db:"primary_employee_id"`
	TipGroupID        *string   `db:"tip_group_id"` // Nullable
	SegmentID         *string   `db:"segment_id"`   // Nullable
	IdempotencyKey    string    `db:"idempotency_key"`
	CreatedAt         time.Time `db:"created_at"`
}
