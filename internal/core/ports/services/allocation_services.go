package services

import (
	"context"

	"github.com/GetwithitMan/gwi-pos-sub009/internal/dto"
)

// AllocationSvcFacade is the engine the payment-capture flow calls for every
// captured gratuity.
type AllocationSvcFacade interface {
	// Allocate slices a captured tip by ownership, then per owner slice by
	// group segment, and posts every resulting ledger credit atomically with
	// the tip transaction record. Replaying the same (orderID, paymentID)
	// returns the original result unchanged.
	Allocate(ctx context.Context, req dto.CaptureTipRequest) (*dto.AllocateTipResponse, error)
}
