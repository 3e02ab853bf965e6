package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GetwithitMan/gwi-pos-sub009/internal/apperrors"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/domain"
	portsrepo "github.com/GetwithitMan/gwi-pos-sub009/internal/core/ports/repositories"
	portssvc "github.com/GetwithitMan/gwi-pos-sub009/internal/core/ports/services"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/dto"
)

// reportingService answers the read-side questions shift closeout and payroll
// screens ask. It never mutates anything.
type reportingService struct {
	reportingRepo portsrepo.ReportingReader
	tipGroupRepo  portsrepo.TipGroupReader
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingReader, tipGroupRepo portsrepo.TipGroupReader) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo, tipGroupRepo: tipGroupRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// PayableBalances lists the location's positive balances, largest first.
func (s *reportingService) PayableBalances(ctx context.Context, locationID string) ([]domain.EmployeeBalance, error) {
	balances, err := s.reportingRepo.PayableBalances(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payable balances: %w", err)
	}
	return balances, nil
}

// GroupCheckout breaks an employee's shift window into solo tips and
// per-segment group tips, enriching group rows with the segment's timing and
// the employee's share of its split.
func (s *reportingService) GroupCheckout(ctx context.Context, employeeID string, from, to time.Time) (*dto.GroupCheckoutResponse, error) {
	rows, err := s.reportingRepo.CheckoutRows(ctx, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate checkout rows: %w", err)
	}

	resp := &dto.GroupCheckoutResponse{
		EmployeeID: employeeID,
		From:       from,
		To:         to,
	}

	segments := map[string]*domain.TipGroupSegment{}
	for _, row := range rows {
		out := dto.GroupCheckoutRow{
			GroupID:    row.GroupID,
			SegmentID:  row.SegmentID,
			SourceType: string(row.SourceType),
			TotalCents: row.TotalCents,
			EntryCount: row.EntryCount,
		}

		if row.SegmentID != nil && row.GroupID != nil {
			segment, serr := s.segmentByID(ctx, segments, *row.GroupID, *row.SegmentID)
			if serr != nil {
				return nil, serr
			}
			if segment != nil {
				out.StartedAt = &segment.StartedAt
				out.EndedAt = segment.EndedAt
				memberCount := segment.MemberCount
				out.MemberCount = &memberCount
				if frac, ok := segment.Split[employeeID]; ok {
					share, _ := frac.Float64()
					out.SplitShare = &share
				}
			}
			resp.GroupCents += row.TotalCents
		} else {
			resp.SoloCents += row.TotalCents
		}
		resp.TotalCents += row.TotalCents
		resp.Rows = append(resp.Rows, out)
	}
	return resp, nil
}

// segmentByID resolves a segment through a per-call cache, tolerating
// segments purged since the ledger entries were written.
func (s *reportingService) segmentByID(ctx context.Context, cache map[string]*domain.TipGroupSegment, groupID, segmentID string) (*domain.TipGroupSegment, error) {
	if cached, ok := cache[segmentID]; ok {
		return cached, nil
	}

	segs, err := s.tipGroupRepo.ListSegments(ctx, groupID, nil, nil)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			cache[segmentID] = nil
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load segments for group %s: %w", groupID, err)
	}
	for i := range segs {
		seg := segs[i]
		cache[seg.SegmentID] = &seg
	}
	if _, ok := cache[segmentID]; !ok {
		cache[segmentID] = nil
	}
	return cache[segmentID], nil
}
