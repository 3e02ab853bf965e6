package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/GetwithitMan/gwi-pos-sub009/internal/apperrors"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/domain"
	portssvc "github.com/GetwithitMan/gwi-pos-sub009/internal/core/ports/services"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/services"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/dto"
)

// MockTipGroupRepository is a mock type for the TipGroupRepositoryFacade interface
type MockTipGroupRepository struct {
	mock.Mock
}

func (m *MockTipGroupRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockTipGroupRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTipGroupRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTipGroupRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.TipGroup, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TipGroup), args.Error(1)
}

func (m *MockTipGroupRepository) ListGroupsByLocation(ctx context.Context, locationID string, activeOnly bool) ([]domain.TipGroup, error) {
	args := m.Called(ctx, locationID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TipGroup), args.Error(1)
}

func (m *MockTipGroupRepository) FindActiveMembershipByEmployee(ctx context.Context, employeeID string) (*domain.TipGroupMembership, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TipGroupMembership), args.Error(1)
}

func (m *MockTipGroupRepository) FindSegmentForTimestamp(ctx context.Context, groupID string, t time.Time) (*domain.TipGroupSegment, error) {
	args := m.Called(ctx, groupID, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TipGroupSegment), args.Error(1)
}

func (m *MockTipGroupRepository) ListSegments(ctx context.Context, groupID string, from, to *time.Time) ([]domain.TipGroupSegment, error) {
	args := m.Called(ctx, groupID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TipGroupSegment), args.Error(1)
}

func (m *MockTipGroupRepository) FindGroupByIDForUpdate(ctx context.Context, tx pgx.Tx, groupID string) (*domain.TipGroup, error) {
	args := m.Called(ctx, tx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TipGroup), args.Error(1)
}

func (m *MockTipGroupRepository) FindMembershipsInTx(ctx context.Context, tx pgx.Tx, groupID string) ([]domain.TipGroupMembership, error) {
	args := m.Called(ctx, tx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TipGroupMembership), args.Error(1)
}

func (m *MockTipGroupRepository) FindOpenSegmentInTx(ctx context.Context, tx pgx.Tx, groupID string) (*domain.TipGroupSegment, error) {
	args := m.Called(ctx, tx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TipGroupSegment), args.Error(1)
}

func (m *MockTipGroupRepository) InsertGroupInTx(ctx context.Context, tx pgx.Tx, group domain.TipGroup) error {
	args := m.Called(ctx, tx, group)
	return args.Error(0)
}

func (m *MockTipGroupRepository) UpdateGroupStatusInTx(ctx context.Context, tx pgx.Tx, groupID string, status domain.GroupStatus, closedAt *time.Time, actorID string, now time.Time) error {
	args := m.Called(ctx, tx, groupID, status, closedAt, actorID, now)
	return args.Error(0)
}

func (m *MockTipGroupRepository) InsertMembershipInTx(ctx context.Context, tx pgx.Tx, membership domain.TipGroupMembership) error {
	args := m.Called(ctx, tx, membership)
	return args.Error(0)
}

func (m *MockTipGroupRepository) UpdateMembershipInTx(ctx context.Context, tx pgx.Tx, membership domain.TipGroupMembership) error {
	args := m.Called(ctx, tx, membership)
	return args.Error(0)
}

func (m *MockTipGroupRepository) CloseSegmentInTx(ctx context.Context, tx pgx.Tx, segmentID string, endedAt time.Time) error {
	args := m.Called(ctx, tx, segmentID, endedAt)
	return args.Error(0)
}

func (m *MockTipGroupRepository) InsertSegmentInTx(ctx context.Context, tx pgx.Tx, segment domain.TipGroupSegment) error {
	args := m.Called(ctx, tx, segment)
	return args.Error(0)
}

// --- Test Suite Setup ---

type TipGroupServiceTestSuite struct {
	suite.Suite
	mockRepo        *MockTipGroupRepository
	mockEmployeeSvc *MockEmployeeService
	service         portssvc.TipGroupSvcFacade

	insertedSegments []domain.TipGroupSegment
	closedAt         time.Time
}

func (suite *TipGroupServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTipGroupRepository)
	suite.mockEmployeeSvc = new(MockEmployeeService)
	suite.service = services.NewTipGroupService(suite.mockRepo, suite.mockEmployeeSvc)
	suite.insertedSegments = nil
	suite.closedAt = time.Time{}

	suite.mockRepo.On("Begin", mock.Anything).Return(nil, nil).Maybe()
	suite.mockRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Maybe()
	suite.mockRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()
}

// expectSegmentInsert captures every segment the service opens.
func (suite *TipGroupServiceTestSuite) expectSegmentInsert() {
	suite.mockRepo.On("InsertSegmentInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.TipGroupSegment")).
		Run(func(args mock.Arguments) {
			suite.insertedSegments = append(suite.insertedSegments, args.Get(2).(domain.TipGroupSegment))
		}).Return(nil)
}

func activeEmployees(ids ...string) map[string]domain.Employee {
	out := make(map[string]domain.Employee, len(ids))
	for _, id := range ids {
		out[id] = domain.Employee{EmployeeID: id, IsActive: true, TipWeight: decimal.NewFromInt(1)}
	}
	return out
}

func splitSum(split map[string]decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, frac := range split {
		sum = sum.Add(frac)
	}
	return sum
}

// --- Test Cases ---

func (suite *TipGroupServiceTestSuite) TestStart_EqualSplit() {
	ctx := context.Background()
	req := dto.StartGroupRequest{
		LocationID:       "loc-1",
		InitialMemberIDs: []string{"emp-a", "emp-b"},
		SplitMode:        "equal",
	}

	suite.mockEmployeeSvc.On("GetByIDs", ctx, req.InitialMemberIDs).Return(activeEmployees("emp-a", "emp-b"), nil).Once()
	suite.mockRepo.On("FindActiveMembershipByEmployee", ctx, "emp-a").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindActiveMembershipByEmployee", ctx, "emp-b").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("InsertGroupInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.TipGroup")).Return(nil).Once()
	suite.mockRepo.On("InsertMembershipInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.TipGroupMembership")).Return(nil).Twice()
	suite.expectSegmentInsert()

	resp, err := suite.service.Start(ctx, req, "emp-owner")

	suite.Require().NoError(err)
	suite.Equal("active", resp.Status)
	suite.Equal("emp-owner", resp.OwnerID)

	suite.Require().Len(suite.insertedSegments, 1)
	segment := suite.insertedSegments[0]
	suite.Equal(2, segment.MemberCount)
	suite.True(segment.Split["emp-a"].Equal(decimal.RequireFromString("0.5")))
	suite.True(segment.Split["emp-b"].Equal(decimal.RequireFromString("0.5")))
	suite.True(splitSum(segment.Split).Equal(decimal.NewFromInt(1)))

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TipGroupServiceTestSuite) TestStart_RoleWeightedSplit() {
	ctx := context.Background()
	req := dto.StartGroupRequest{
		LocationID:       "loc-1",
		InitialMemberIDs: []string{"emp-a", "emp-b", "emp-c"},
		SplitMode:        "role_weighted",
	}

	employees := map[string]domain.Employee{
		"emp-a": {EmployeeID: "emp-a", IsActive: true, TipWeight: decimal.NewFromInt(2)},
		"emp-b": {EmployeeID: "emp-b", IsActive: true, TipWeight: decimal.NewFromInt(1)},
		"emp-c": {EmployeeID: "emp-c", IsActive: true, TipWeight: decimal.NewFromInt(1)},
	}
	suite.mockEmployeeSvc.On("GetByIDs", ctx, req.InitialMemberIDs).Return(employees, nil)
	for _, id := range req.InitialMemberIDs {
		suite.mockRepo.On("FindActiveMembershipByEmployee", ctx, id).Return(nil, apperrors.ErrNotFound).Once()
	}
	suite.mockRepo.On("InsertGroupInTx", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockRepo.On("InsertMembershipInTx", mock.Anything, mock.Anything, mock.Anything).Return(nil).Times(3)
	suite.expectSegmentInsert()

	_, err := suite.service.Start(ctx, req, "emp-a")

	suite.Require().NoError(err)
	suite.Require().Len(suite.insertedSegments, 1)
	split := suite.insertedSegments[0].Split
	suite.True(split["emp-a"].Equal(decimal.RequireFromString("0.5")))
	suite.True(split["emp-b"].Equal(decimal.RequireFromString("0.25")))
	suite.True(split["emp-c"].Equal(decimal.RequireFromString("0.25")))
	suite.True(splitSum(split).Equal(decimal.NewFromInt(1)))
}

func (suite *TipGroupServiceTestSuite) TestStart_RejectsDuplicateMembers() {
	ctx := context.Background()
	req := dto.StartGroupRequest{
		LocationID:       "loc-1",
		InitialMemberIDs: []string{"emp-a", "emp-a"},
		SplitMode:        "equal",
	}

	_, err := suite.service.Start(ctx, req, "emp-a")

	suite.Require().ErrorIs(err, services.ErrDuplicateMemberID)
	suite.mockRepo.AssertNotCalled(suite.T(), "InsertGroupInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TipGroupServiceTestSuite) TestAddMember_RotatesSegmentWithoutGaps() {
	ctx := context.Background()
	group := &domain.TipGroup{GroupID: "group-1", Status: domain.GroupActive, SplitMode: domain.SplitEqual}
	openSegment := &domain.TipGroupSegment{SegmentID: "seg-1", GroupID: "group-1", StartedAt: time.Now().Add(-time.Hour)}

	suite.mockRepo.On("FindActiveMembershipByEmployee", ctx, "emp-b").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindGroupByIDForUpdate", mock.Anything, mock.Anything, "group-1").Return(group, nil).Once()
	suite.mockRepo.On("FindMembershipsInTx", mock.Anything, mock.Anything, "group-1").Return([]domain.TipGroupMembership{
		{MembershipID: "m-1", GroupID: "group-1", EmployeeID: "emp-a", Status: domain.MemberActive},
	}, nil).Once()
	suite.mockRepo.On("FindOpenSegmentInTx", mock.Anything, mock.Anything, "group-1").Return(openSegment, nil).Once()
	suite.mockRepo.On("CloseSegmentInTx", mock.Anything, mock.Anything, "seg-1", mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			suite.closedAt = args.Get(3).(time.Time)
		}).Return(nil).Once()
	suite.mockRepo.On("InsertMembershipInTx", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.expectSegmentInsert()

	resp, err := suite.service.AddMember(ctx, "group-1", "emp-b", "emp-a")

	suite.Require().NoError(err)
	suite.Require().Len(suite.insertedSegments, 1)
	newSegment := suite.insertedSegments[0]

	// The old segment ends exactly when the new one starts.
	suite.Equal(suite.closedAt, newSegment.StartedAt)
	suite.Equal(2, newSegment.MemberCount)
	suite.True(newSegment.Split["emp-a"].Equal(decimal.RequireFromString("0.5")))
	suite.True(newSegment.Split["emp-b"].Equal(decimal.RequireFromString("0.5")))
	suite.Require().NotNil(resp.OpenSegment)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TipGroupServiceTestSuite) TestAddMember_RejectsClosedGroup() {
	ctx := context.Background()
	group := &domain.TipGroup{GroupID: "group-1", Status: domain.GroupClosed}

	suite.mockRepo.On("FindActiveMembershipByEmployee", ctx, "emp-b").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindGroupByIDForUpdate", mock.Anything, mock.Anything, "group-1").Return(group, nil).Once()

	_, err := suite.service.AddMember(ctx, "group-1", "emp-b", "emp-a")

	suite.Require().ErrorIs(err, services.ErrGroupNotActive)
}

func (suite *TipGroupServiceTestSuite) TestAddMember_RejectsEmployeeInAnotherGroup() {
	ctx := context.Background()
	existing := &domain.TipGroupMembership{MembershipID: "m-9", GroupID: "group-other", EmployeeID: "emp-b", Status: domain.MemberActive}

	suite.mockRepo.On("FindActiveMembershipByEmployee", ctx, "emp-b").Return(existing, nil).Once()

	_, err := suite.service.AddMember(ctx, "group-1", "emp-b", "emp-a")

	suite.Require().ErrorIs(err, services.ErrAlreadyInGroup)
}

func (suite *TipGroupServiceTestSuite) TestRemoveMember_LastMemberClosesGroup() {
	ctx := context.Background()
	group := &domain.TipGroup{GroupID: "group-1", Status: domain.GroupActive, SplitMode: domain.SplitEqual}
	openSegment := &domain.TipGroupSegment{SegmentID: "seg-1", GroupID: "group-1"}

	suite.mockRepo.On("FindGroupByIDForUpdate", mock.Anything, mock.Anything, "group-1").Return(group, nil).Once()
	suite.mockRepo.On("FindMembershipsInTx", mock.Anything, mock.Anything, "group-1").Return([]domain.TipGroupMembership{
		{MembershipID: "m-1", GroupID: "group-1", EmployeeID: "emp-a", Status: domain.MemberActive},
	}, nil).Once()
	suite.mockRepo.On("FindOpenSegmentInTx", mock.Anything, mock.Anything, "group-1").Return(openSegment, nil).Once()
	suite.mockRepo.On("CloseSegmentInTx", mock.Anything, mock.Anything, "seg-1", mock.Anything).Return(nil).Once()
	suite.mockRepo.On("UpdateMembershipInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(m domain.TipGroupMembership) bool {
		return m.EmployeeID == "emp-a" && m.Status == domain.MemberLeft && m.LeftAt != nil
	})).Return(nil).Once()
	suite.mockRepo.On("UpdateGroupStatusInTx", mock.Anything, mock.Anything, "group-1", domain.GroupClosed, mock.Anything, "emp-a", mock.Anything).Return(nil).Once()

	resp, err := suite.service.RemoveMember(ctx, "group-1", "emp-a", "emp-a")

	suite.Require().NoError(err)
	suite.Equal("closed", resp.Status)
	suite.Nil(resp.OpenSegment)
	suite.Empty(suite.insertedSegments)
	suite.mockRepo.AssertNotCalled(suite.T(), "InsertSegmentInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TipGroupServiceTestSuite) TestRemoveMember_NonMember() {
	ctx := context.Background()
	group := &domain.TipGroup{GroupID: "group-1", Status: domain.GroupActive}

	suite.mockRepo.On("FindGroupByIDForUpdate", mock.Anything, mock.Anything, "group-1").Return(group, nil).Once()
	suite.mockRepo.On("FindMembershipsInTx", mock.Anything, mock.Anything, "group-1").Return([]domain.TipGroupMembership{
		{MembershipID: "m-1", GroupID: "group-1", EmployeeID: "emp-a", Status: domain.MemberActive},
	}, nil).Once()

	_, err := suite.service.RemoveMember(ctx, "group-1", "emp-x", "emp-a")

	suite.Require().ErrorIs(err, services.ErrNotMember)
}

func (suite *TipGroupServiceTestSuite) TestRequestJoin_CreatesPendingMembership() {
	ctx := context.Background()
	group := &domain.TipGroup{GroupID: "group-1", Status: domain.GroupActive, SplitMode: domain.SplitEqual}

	var inserted domain.TipGroupMembership
	suite.mockRepo.On("FindGroupByID", ctx, "group-1").Return(group, nil).Once()
	suite.mockRepo.On("FindMembershipsInTx", mock.Anything, mock.Anything, "group-1").Return([]domain.TipGroupMembership{
		{MembershipID: "m-1", GroupID: "group-1", EmployeeID: "emp-a", Status: domain.MemberActive},
	}, nil).Once()
	suite.mockRepo.On("InsertMembershipInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.TipGroupMembership")).
		Run(func(args mock.Arguments) {
			inserted = args.Get(2).(domain.TipGroupMembership)
		}).Return(nil).Once()

	err := suite.service.RequestJoin(ctx, "group-1", "emp-b")

	suite.Require().NoError(err)
	suite.Equal("emp-b", inserted.EmployeeID)
	suite.Equal(domain.MemberPendingApproval, inserted.Status)
	// The stored value is the literal the schema constrains on.
	suite.Equal("pending_approval", string(inserted.Status))
	suite.Empty(inserted.ApprovedBy)

	// Pending members carry no split weight, so no segment rotates.
	suite.Empty(suite.insertedSegments)
	suite.mockRepo.AssertNotCalled(suite.T(), "CloseSegmentInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TipGroupServiceTestSuite) TestApproveJoin_RotatesSegment() {
	ctx := context.Background()
	group := &domain.TipGroup{GroupID: "group-1", Status: domain.GroupActive, SplitMode: domain.SplitEqual}
	openSegment := &domain.TipGroupSegment{SegmentID: "seg-1", GroupID: "group-1", StartedAt: time.Now().Add(-time.Hour)}

	suite.mockRepo.On("FindActiveMembershipByEmployee", ctx, "emp-b").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindGroupByIDForUpdate", mock.Anything, mock.Anything, "group-1").Return(group, nil).Once()
	suite.mockRepo.On("FindMembershipsInTx", mock.Anything, mock.Anything, "group-1").Return([]domain.TipGroupMembership{
		{MembershipID: "m-1", GroupID: "group-1", EmployeeID: "emp-a", Status: domain.MemberActive},
		{MembershipID: "m-2", GroupID: "group-1", EmployeeID: "emp-b", Status: domain.MemberPendingApproval},
	}, nil).Once()
	suite.mockRepo.On("FindOpenSegmentInTx", mock.Anything, mock.Anything, "group-1").Return(openSegment, nil).Once()
	suite.mockRepo.On("CloseSegmentInTx", mock.Anything, mock.Anything, "seg-1", mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			suite.closedAt = args.Get(3).(time.Time)
		}).Return(nil).Once()
	suite.mockRepo.On("UpdateMembershipInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(m domain.TipGroupMembership) bool {
		return m.EmployeeID == "emp-b" && m.Status == domain.MemberActive && m.ApprovedBy == "emp-a"
	})).Return(nil).Once()
	suite.expectSegmentInsert()

	resp, err := suite.service.ApproveJoin(ctx, "group-1", "emp-b", "emp-a")

	suite.Require().NoError(err)
	suite.Require().Len(suite.insertedSegments, 1)
	newSegment := suite.insertedSegments[0]

	// Approval rotates the segment just like a direct add: the old segment
	// ends exactly when the new one starts.
	suite.Equal(suite.closedAt, newSegment.StartedAt)
	suite.Equal(2, newSegment.MemberCount)
	suite.True(newSegment.Split["emp-a"].Equal(decimal.RequireFromString("0.5")))
	suite.True(newSegment.Split["emp-b"].Equal(decimal.RequireFromString("0.5")))
	suite.Require().NotNil(resp.OpenSegment)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TipGroupServiceTestSuite) TestApproveJoin_NoPendingRequest() {
	ctx := context.Background()
	group := &domain.TipGroup{GroupID: "group-1", Status: domain.GroupActive}

	suite.mockRepo.On("FindActiveMembershipByEmployee", ctx, "emp-b").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindGroupByIDForUpdate", mock.Anything, mock.Anything, "group-1").Return(group, nil).Once()
	suite.mockRepo.On("FindMembershipsInTx", mock.Anything, mock.Anything, "group-1").Return([]domain.TipGroupMembership{
		{MembershipID: "m-1", GroupID: "group-1", EmployeeID: "emp-a", Status: domain.MemberActive},
	}, nil).Once()

	_, err := suite.service.ApproveJoin(ctx, "group-1", "emp-b", "emp-a")

	suite.Require().ErrorIs(err, services.ErrNoPendingRequest)
}

func (suite *TipGroupServiceTestSuite) TestClose_AlreadyClosed() {
	ctx := context.Background()
	group := &domain.TipGroup{GroupID: "group-1", Status: domain.GroupClosed}

	suite.mockRepo.On("FindGroupByIDForUpdate", mock.Anything, mock.Anything, "group-1").Return(group, nil).Once()

	err := suite.service.Close(ctx, "group-1", "emp-a")

	suite.Require().ErrorIs(err, services.ErrGroupNotActive)
}

func (suite *TipGroupServiceTestSuite) TestFindSegmentForTimestamp_UsesHistoricalSegment() {
	ctx := context.Background()
	at := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	ended := at.Add(30 * time.Minute)
	segment := &domain.TipGroupSegment{
		SegmentID: "seg-old",
		GroupID:   "group-1",
		StartedAt: at.Add(-time.Hour),
		EndedAt:   &ended,
		Split:     map[string]decimal.Decimal{"emp-a": decimal.NewFromInt(1)},
	}

	suite.mockRepo.On("FindSegmentForTimestamp", ctx, "group-1", at).Return(segment, nil).Once()

	got, err := suite.service.FindSegmentForTimestamp(ctx, "group-1", at)

	suite.Require().NoError(err)
	suite.Equal("seg-old", got.SegmentID)
	suite.True(got.Covers(at))
	suite.False(got.Covers(ended))
}

func TestTipGroupServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TipGroupServiceTestSuite))
}
