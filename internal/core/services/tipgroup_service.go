package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/GetwithitMan/gwi-pos-sub009/internal/apperrors"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/domain"
	portsrepo "github.com/GetwithitMan/gwi-pos-sub009/internal/core/ports/repositories"
	portssvc "github.com/GetwithitMan/gwi-pos-sub009/internal/core/ports/services"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/dto"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/middleware"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/utils/tipmath"
)

var (
	ErrGroupNotActive    = errors.New("tip group is not active")
	ErrAlreadyMember     = errors.New("employee is already an active member of this group")
	ErrNotMember         = errors.New("employee is not an active member of this group")
	ErrNoPendingRequest  = errors.New("no pending join request for this employee")
	ErrAlreadyInGroup    = errors.New("employee already has an active membership in another group")
	ErrNoInitialMembers  = errors.New("group must start with at least one member")
	ErrEmployeeInactive  = errors.New("employee is not active")
	ErrDuplicateMemberID = errors.New("duplicate employee in initial member list")
)

// tipGroupService manages group lifecycle and the append-only segment
// history that freezes each member's split at every membership change.
type tipGroupService struct {
	groupRepo   portsrepo.TipGroupRepositoryFacade
	employeeSvc portssvc.EmployeeSvcFacade
}

// NewTipGroupService creates a new TipGroupService.
func NewTipGroupService(groupRepo portsrepo.TipGroupRepositoryFacade, employeeSvc portssvc.EmployeeSvcFacade) portssvc.TipGroupSvcFacade {
	return &tipGroupService{groupRepo: groupRepo, employeeSvc: employeeSvc}
}

var _ portssvc.TipGroupSvcFacade = (*tipGroupService)(nil)

// computeSplit builds the frozen fraction map for a member set, equal or
// proportional to employee tip weights.
func (s *tipGroupService) computeSplit(ctx context.Context, mode domain.SplitMode, memberIDs []string) (map[string]decimal.Decimal, error) {
	if mode != domain.SplitRoleWeighted {
		return tipmath.EqualSplit(memberIDs), nil
	}

	employees, err := s.employeeSvc.GetByIDs(ctx, memberIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load employees for weighted split: %w", err)
	}
	weights := make(map[string]decimal.Decimal, len(memberIDs))
	for _, id := range memberIDs {
		emp, ok := employees[id]
		if !ok {
			return nil, fmt.Errorf("%w: employee %s", apperrors.ErrNotFound, id)
		}
		weights[id] = emp.TipWeight
	}
	return tipmath.WeightedSplit(weights), nil
}

// openSegment creates and inserts a new open segment for the member set.
func (s *tipGroupService) openSegment(ctx context.Context, tx pgx.Tx, group *domain.TipGroup, memberIDs []string, startedAt time.Time) (*domain.TipGroupSegment, error) {
	split, err := s.computeSplit(ctx, group.SplitMode, memberIDs)
	if err != nil {
		return nil, err
	}
	if err := tipmath.ValidateSplitTotal(split); err != nil {
		return nil, fmt.Errorf("internal error building segment split: %w", err)
	}

	segment := domain.TipGroupSegment{
		SegmentID:   uuid.NewString(),
		GroupID:     group.GroupID,
		StartedAt:   startedAt,
		MemberCount: len(memberIDs),
		Split:       split,
	}
	if err := s.groupRepo.InsertSegmentInTx(ctx, tx, segment); err != nil {
		return nil, fmt.Errorf("failed to insert segment: %w", err)
	}
	return &segment, nil
}

// closeOpenSegment ends the group's open segment at the given instant.
// Missing open segments are tolerated so a group closed by a crash mid-change
// can still be repaired by the next membership operation.
func (s *tipGroupService) closeOpenSegment(ctx context.Context, tx pgx.Tx, groupID string, endedAt time.Time) error {
	open, err := s.groupRepo.FindOpenSegmentInTx(ctx, tx, groupID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to find open segment: %w", err)
	}
	if err := s.groupRepo.CloseSegmentInTx(ctx, tx, open.SegmentID, endedAt); err != nil {
		return fmt.Errorf("failed to close segment %s: %w", open.SegmentID, err)
	}
	return nil
}

// requireNoActiveMembership enforces the single-group rule.
func (s *tipGroupService) requireNoActiveMembership(ctx context.Context, employeeID string) error {
	existing, err := s.groupRepo.FindActiveMembershipByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check memberships for employee %s: %w", employeeID, err)
	}
	return fmt.Errorf("%w: group %s", ErrAlreadyInGroup, existing.GroupID)
}

// Start creates a group with its initial members and opening segment.
func (s *tipGroupService) Start(ctx context.Context, req dto.StartGroupRequest, creatorID string) (*dto.GroupResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.InitialMemberIDs) == 0 {
		return nil, ErrNoInitialMembers
	}
	seen := make(map[string]struct{}, len(req.InitialMemberIDs))
	for _, id := range req.InitialMemberIDs {
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateMemberID, id)
		}
		seen[id] = struct{}{}
	}

	employees, err := s.employeeSvc.GetByIDs(ctx, req.InitialMemberIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load initial members: %w", err)
	}
	for _, id := range req.InitialMemberIDs {
		emp, ok := employees[id]
		if !ok {
			return nil, fmt.Errorf("%w: employee %s", apperrors.ErrNotFound, id)
		}
		if !emp.IsActive {
			return nil, fmt.Errorf("%w: %s", ErrEmployeeInactive, id)
		}
		if err := s.requireNoActiveMembership(ctx, id); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	group := domain.TipGroup{
		GroupID:    uuid.NewString(),
		LocationID: req.LocationID,
		OwnerID:    creatorID,
		Status:     domain.GroupActive,
		SplitMode:  domain.SplitMode(req.SplitMode),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	tx, err := s.groupRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.groupRepo.Rollback(ctx, tx)

	if err := s.groupRepo.InsertGroupInTx(ctx, tx, group); err != nil {
		return nil, fmt.Errorf("failed to insert group: %w", err)
	}
	for _, id := range req.InitialMemberIDs {
		membership := domain.TipGroupMembership{
			MembershipID: uuid.NewString(),
			GroupID:      group.GroupID,
			EmployeeID:   id,
			Status:       domain.MemberActive,
			JoinedAt:     now,
			ApprovedBy:   creatorID,
		}
		if err := s.groupRepo.InsertMembershipInTx(ctx, tx, membership); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				return nil, fmt.Errorf("%w: employee %s", ErrAlreadyInGroup, id)
			}
			return nil, fmt.Errorf("failed to insert membership for %s: %w", id, err)
		}
	}

	segment, err := s.openSegment(ctx, tx, &group, req.InitialMemberIDs, now)
	if err != nil {
		return nil, err
	}

	if err := s.groupRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Tip group started",
		slog.String("group_id", group.GroupID),
		slog.Int("members", len(req.InitialMemberIDs)),
		slog.String("split_mode", string(group.SplitMode)),
	)
	resp := dto.ToGroupResponse(&group, segment)
	return &resp, nil
}

// AddMember adds an employee to an active group, rotating the open segment so
// the prior split stays frozen for historical lookups.
func (s *tipGroupService) AddMember(ctx context.Context, groupID, employeeID, approvedBy string) (*dto.GroupResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.requireNoActiveMembership(ctx, employeeID); err != nil {
		return nil, err
	}

	tx, err := s.groupRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.groupRepo.Rollback(ctx, tx)

	group, err := s.groupRepo.FindGroupByIDForUpdate(ctx, tx, groupID)
	if err != nil {
		return nil, err
	}
	if group.Status != domain.GroupActive {
		return nil, ErrGroupNotActive
	}

	memberships, err := s.groupRepo.FindMembershipsInTx(ctx, tx, groupID)
	if err != nil {
		return nil, err
	}
	memberIDs := make([]string, 0, len(memberships)+1)
	for _, m := range memberships {
		if m.EmployeeID == employeeID && m.Status == domain.MemberActive {
			return nil, ErrAlreadyMember
		}
		if m.Status == domain.MemberActive {
			memberIDs = append(memberIDs, m.EmployeeID)
		}
	}
	memberIDs = append(memberIDs, employeeID)

	now := time.Now().UTC()
	if err := s.closeOpenSegment(ctx, tx, groupID, now); err != nil {
		return nil, err
	}

	membership := domain.TipGroupMembership{
		MembershipID: uuid.NewString(),
		GroupID:      groupID,
		EmployeeID:   employeeID,
		Status:       domain.MemberActive,
		JoinedAt:     now,
		ApprovedBy:   approvedBy,
	}
	if err := s.groupRepo.InsertMembershipInTx(ctx, tx, membership); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: employee %s", ErrAlreadyInGroup, employeeID)
		}
		return nil, fmt.Errorf("failed to insert membership: %w", err)
	}

	segment, err := s.openSegment(ctx, tx, group, memberIDs, now)
	if err != nil {
		return nil, err
	}

	if err := s.groupRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Member added to tip group", slog.String("group_id", groupID), slog.String("employee_id", employeeID), slog.Int("member_count", len(memberIDs)))
	resp := dto.ToGroupResponse(group, segment)
	return &resp, nil
}

// RemoveMember removes an employee from an active group. Zero remaining
// members closes the group; a single remaining member keeps 100%.
func (s *tipGroupService) RemoveMember(ctx context.Context, groupID, employeeID, actorID string) (*dto.GroupResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.groupRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.groupRepo.Rollback(ctx, tx)

	group, err := s.groupRepo.FindGroupByIDForUpdate(ctx, tx, groupID)
	if err != nil {
		return nil, err
	}
	if group.Status != domain.GroupActive {
		return nil, ErrGroupNotActive
	}

	memberships, err := s.groupRepo.FindMembershipsInTx(ctx, tx, groupID)
	if err != nil {
		return nil, err
	}

	var leaving *domain.TipGroupMembership
	remaining := make([]string, 0, len(memberships))
	for i, m := range memberships {
		if m.Status != domain.MemberActive {
			continue
		}
		if m.EmployeeID == employeeID {
			leaving = &memberships[i]
			continue
		}
		remaining = append(remaining, m.EmployeeID)
	}
	if leaving == nil {
		return nil, ErrNotMember
	}

	now := time.Now().UTC()
	if err := s.closeOpenSegment(ctx, tx, groupID, now); err != nil {
		return nil, err
	}

	leaving.Status = domain.MemberLeft
	leaving.LeftAt = &now
	if err := s.groupRepo.UpdateMembershipInTx(ctx, tx, *leaving); err != nil {
		return nil, fmt.Errorf("failed to update membership: %w", err)
	}

	var segment *domain.TipGroupSegment
	if len(remaining) == 0 {
		group.Status = domain.GroupClosed
		group.ClosedAt = &now
		if err := s.groupRepo.UpdateGroupStatusInTx(ctx, tx, groupID, domain.GroupClosed, &now, actorID, now); err != nil {
			return nil, fmt.Errorf("failed to close group: %w", err)
		}
	} else {
		segment, err = s.openSegment(ctx, tx, group, remaining, now)
		if err != nil {
			return nil, err
		}
	}

	if err := s.groupRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Member removed from tip group",
		slog.String("group_id", groupID),
		slog.String("employee_id", employeeID),
		slog.Int("remaining_members", len(remaining)),
		slog.Bool("group_closed", len(remaining) == 0),
	)
	resp := dto.ToGroupResponse(group, segment)
	return &resp, nil
}

// RequestJoin records a pending membership; it carries no split weight until
// approved.
func (s *tipGroupService) RequestJoin(ctx context.Context, groupID, employeeID string) error {
	group, err := s.groupRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		return err
	}
	if group.Status != domain.GroupActive {
		return ErrGroupNotActive
	}

	memberships, err := s.membershipsOf(ctx, groupID)
	if err != nil {
		return err
	}
	for _, m := range memberships {
		if m.EmployeeID != employeeID {
			continue
		}
		if m.Status == domain.MemberActive {
			return ErrAlreadyMember
		}
		if m.Status == domain.MemberPendingApproval {
			return fmt.Errorf("%w: join request already pending", apperrors.ErrDuplicate)
		}
	}

	tx, err := s.groupRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.groupRepo.Rollback(ctx, tx)

	membership := domain.TipGroupMembership{
		MembershipID: uuid.NewString(),
		GroupID:      groupID,
		EmployeeID:   employeeID,
		Status:       domain.MemberPendingApproval,
		JoinedAt:     time.Now().UTC(),
	}
	if err := s.groupRepo.InsertMembershipInTx(ctx, tx, membership); err != nil {
		return fmt.Errorf("failed to insert pending membership: %w", err)
	}
	return s.groupRepo.Commit(ctx, tx)
}

// ApproveJoin promotes a pending membership; from here on it behaves exactly
// like AddMember.
func (s *tipGroupService) ApproveJoin(ctx context.Context, groupID, employeeID, approvedBy string) (*dto.GroupResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.requireNoActiveMembership(ctx, employeeID); err != nil {
		return nil, err
	}

	tx, err := s.groupRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.groupRepo.Rollback(ctx, tx)

	group, err := s.groupRepo.FindGroupByIDForUpdate(ctx, tx, groupID)
	if err != nil {
		return nil, err
	}
	if group.Status != domain.GroupActive {
		return nil, ErrGroupNotActive
	}

	memberships, err := s.groupRepo.FindMembershipsInTx(ctx, tx, groupID)
	if err != nil {
		return nil, err
	}

	var pending *domain.TipGroupMembership
	memberIDs := make([]string, 0, len(memberships)+1)
	for i, m := range memberships {
		if m.EmployeeID == employeeID && m.Status == domain.MemberPendingApproval {
			pending = &memberships[i]
		}
		if m.Status == domain.MemberActive {
			memberIDs = append(memberIDs, m.EmployeeID)
		}
	}
	if pending == nil {
		return nil, ErrNoPendingRequest
	}
	memberIDs = append(memberIDs, employeeID)

	now := time.Now().UTC()
	if err := s.closeOpenSegment(ctx, tx, groupID, now); err != nil {
		return nil, err
	}

	pending.Status = domain.MemberActive
	pending.JoinedAt = now
	pending.ApprovedBy = approvedBy
	if err := s.groupRepo.UpdateMembershipInTx(ctx, tx, *pending); err != nil {
		return nil, fmt.Errorf("failed to activate membership: %w", err)
	}

	segment, err := s.openSegment(ctx, tx, group, memberIDs, now)
	if err != nil {
		return nil, err
	}

	if err := s.groupRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Join request approved", slog.String("group_id", groupID), slog.String("employee_id", employeeID), slog.String("approved_by", approvedBy))
	resp := dto.ToGroupResponse(group, segment)
	return &resp, nil
}

// Close explicitly closes an active group, ending every membership and the
// open segment. Closed is terminal.
func (s *tipGroupService) Close(ctx context.Context, groupID, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.groupRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.groupRepo.Rollback(ctx, tx)

	group, err := s.groupRepo.FindGroupByIDForUpdate(ctx, tx, groupID)
	if err != nil {
		return err
	}
	if group.Status != domain.GroupActive {
		return ErrGroupNotActive
	}

	now := time.Now().UTC()
	if err := s.closeOpenSegment(ctx, tx, groupID, now); err != nil {
		return err
	}

	memberships, err := s.groupRepo.FindMembershipsInTx(ctx, tx, groupID)
	if err != nil {
		return err
	}
	for _, m := range memberships {
		if m.Status != domain.MemberActive && m.Status != domain.MemberPendingApproval {
			continue
		}
		m.Status = domain.MemberLeft
		m.LeftAt = &now
		if err := s.groupRepo.UpdateMembershipInTx(ctx, tx, m); err != nil {
			return fmt.Errorf("failed to end membership %s: %w", m.MembershipID, err)
		}
	}

	if err := s.groupRepo.UpdateGroupStatusInTx(ctx, tx, groupID, domain.GroupClosed, &now, actorID, now); err != nil {
		return fmt.Errorf("failed to close group: %w", err)
	}

	if err := s.groupRepo.Commit(ctx, tx); err != nil {
		return err
	}

	logger.Info("Tip group closed", slog.String("group_id", groupID), slog.String("actor_id", actorID))
	return nil
}

// GetGroup returns a group with its open segment when active.
func (s *tipGroupService) GetGroup(ctx context.Context, groupID string) (*dto.GroupResponse, error) {
	group, err := s.groupRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	var open *domain.TipGroupSegment
	if group.Status == domain.GroupActive {
		open, err = s.groupRepo.FindSegmentForTimestamp(ctx, groupID, time.Now().UTC())
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}

	resp := dto.ToGroupResponse(group, open)
	return &resp, nil
}

// ListGroups returns a location's groups.
func (s *tipGroupService) ListGroups(ctx context.Context, locationID string, activeOnly bool) ([]dto.GroupResponse, error) {
	groups, err := s.groupRepo.ListGroupsByLocation(ctx, locationID, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GroupResponse, len(groups))
	for i := range groups {
		out[i] = dto.ToGroupResponse(&groups[i], nil)
	}
	return out, nil
}

// FindSegmentForTimestamp reconstructs the historically accurate split for a
// tip collected at t.
func (s *tipGroupService) FindSegmentForTimestamp(ctx context.Context, groupID string, t time.Time) (*domain.TipGroupSegment, error) {
	return s.groupRepo.FindSegmentForTimestamp(ctx, groupID, t)
}

// ActiveMembership returns the employee's single active membership, or nil
// when the employee is not pooling.
func (s *tipGroupService) ActiveMembership(ctx context.Context, employeeID string) (*domain.TipGroupMembership, error) {
	membership, err := s.groupRepo.FindActiveMembershipByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return membership, nil
}

// membershipsOf reads the group's memberships outside a transaction.
func (s *tipGroupService) membershipsOf(ctx context.Context, groupID string) ([]domain.TipGroupMembership, error) {
	tx, err := s.groupRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.groupRepo.Rollback(ctx, tx)

	memberships, err := s.groupRepo.FindMembershipsInTx(ctx, tx, groupID)
	if err != nil {
		return nil, err
	}
	if err := s.groupRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return memberships, nil
}
