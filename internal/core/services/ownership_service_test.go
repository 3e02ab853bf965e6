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

// MockOwnershipRepository is a mock type for the OwnershipRepositoryFacade interface
type MockOwnershipRepository struct {
	mock.Mock
}

func (m *MockOwnershipRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockOwnershipRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockOwnershipRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockOwnershipRepository) FindActiveByOrderID(ctx context.Context, orderID string) (*domain.OrderOwnership, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderOwnership), args.Error(1)
}

func (m *MockOwnershipRepository) FindActiveByOrderIDForUpdate(ctx context.Context, tx pgx.Tx, orderID string) (*domain.OrderOwnership, error) {
	args := m.Called(ctx, tx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderOwnership), args.Error(1)
}

func (m *MockOwnershipRepository) InsertOwnershipInTx(ctx context.Context, tx pgx.Tx, ownership domain.OrderOwnership) error {
	args := m.Called(ctx, tx, ownership)
	return args.Error(0)
}

func (m *MockOwnershipRepository) ReplaceEntriesInTx(ctx context.Context, tx pgx.Tx, ownershipID string, entries []domain.OrderOwnershipEntry, actorID string, now time.Time) error {
	args := m.Called(ctx, tx, ownershipID, entries, actorID, now)
	return args.Error(0)
}

func (m *MockOwnershipRepository) DeactivateInTx(ctx context.Context, tx pgx.Tx, ownershipID, actorID string, now time.Time) error {
	args := m.Called(ctx, tx, ownershipID, actorID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---

type OwnershipServiceTestSuite struct {
	suite.Suite
	mockRepo        *MockOwnershipRepository
	mockEmployeeSvc *MockEmployeeService
	service         portssvc.OwnershipSvcFacade
}

func (suite *OwnershipServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockOwnershipRepository)
	suite.mockEmployeeSvc = new(MockEmployeeService)
	suite.service = services.NewOwnershipService(suite.mockRepo, suite.mockEmployeeSvc)

	suite.mockRepo.On("Begin", mock.Anything).Return(nil, nil).Maybe()
	suite.mockRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Maybe()
	suite.mockRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()
}

func (suite *OwnershipServiceTestSuite) expectActiveEmployee(employeeID string) {
	suite.mockEmployeeSvc.On("Get", mock.Anything, employeeID).
		Return(&domain.Employee{EmployeeID: employeeID, IsActive: true}, nil).Once()
}

func shareOf(resp *dto.OwnershipResponse, employeeID string) decimal.Decimal {
	for _, e := range resp.Entries {
		if e.EmployeeID == employeeID {
			return e.SharePercent
		}
	}
	return decimal.Zero
}

func pct(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// --- Test Cases ---

func (suite *OwnershipServiceTestSuite) TestAddOwner_FirstConversionNeedsCurrentOwner() {
	ctx := context.Background()
	req := dto.AddOwnerRequest{LocationID: "loc-1", EmployeeID: "emp-b"}

	suite.expectActiveEmployee("emp-b")
	suite.mockRepo.On("FindActiveByOrderIDForUpdate", mock.Anything, mock.Anything, "order-1").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.AddOwner(ctx, "loc-1", "order-1", req, "emp-a")

	suite.Require().ErrorIs(err, services.ErrCurrentOwnerRequired)
	suite.mockRepo.AssertNotCalled(suite.T(), "InsertOwnershipInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OwnershipServiceTestSuite) TestAddOwner_ConvertsToEvenPair() {
	ctx := context.Background()
	req := dto.AddOwnerRequest{LocationID: "loc-1", EmployeeID: "emp-b", CurrentOwnerID: "emp-a"}

	suite.expectActiveEmployee("emp-b")
	suite.mockRepo.On("FindActiveByOrderIDForUpdate", mock.Anything, mock.Anything, "order-1").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("InsertOwnershipInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(o domain.OrderOwnership) bool {
		return o.OrderID == "order-1" && o.IsActive && len(o.Entries) == 2
	})).Return(nil).Once()

	resp, err := suite.service.AddOwner(ctx, "loc-1", "order-1", req, "emp-a")

	suite.Require().NoError(err)
	suite.True(shareOf(resp, "emp-a").Equal(pct("50")))
	suite.True(shareOf(resp, "emp-b").Equal(pct("50")))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *OwnershipServiceTestSuite) TestAddOwner_ExplicitShareScalesExistingOwners() {
	ctx := context.Background()
	share := pct("30")
	req := dto.AddOwnerRequest{LocationID: "loc-1", EmployeeID: "emp-c", SharePercent: &share}
	existing := &domain.OrderOwnership{
		OwnershipID: "own-1",
		OrderID:     "order-1",
		IsActive:    true,
		Entries: []domain.OrderOwnershipEntry{
			{EntryID: "e-1", EmployeeID: "emp-a", SharePercent: pct("50")},
			{EntryID: "e-2", EmployeeID: "emp-b", SharePercent: pct("50")},
		},
	}

	suite.expectActiveEmployee("emp-c")
	suite.mockRepo.On("FindActiveByOrderIDForUpdate", mock.Anything, mock.Anything, "order-1").Return(existing, nil).Once()
	suite.mockRepo.On("ReplaceEntriesInTx", mock.Anything, mock.Anything, "own-1", mock.Anything, "emp-a", mock.Anything).Return(nil).Once()

	resp, err := suite.service.AddOwner(ctx, "loc-1", "order-1", req, "emp-a")

	suite.Require().NoError(err)
	suite.True(shareOf(resp, "emp-c").Equal(pct("30")))
	suite.True(shareOf(resp, "emp-a").Equal(pct("35")))
	suite.True(shareOf(resp, "emp-b").Equal(pct("35")))
}

func (suite *OwnershipServiceTestSuite) TestAddOwner_RejectsShareThatZeroesExistingOwner() {
	ctx := context.Background()
	share := pct("99.99")
	req := dto.AddOwnerRequest{LocationID: "loc-1", EmployeeID: "emp-c", SharePercent: &share}
	existing := &domain.OrderOwnership{
		OwnershipID: "own-1",
		OrderID:     "order-1",
		IsActive:    true,
		Entries: []domain.OrderOwnershipEntry{
			{EntryID: "e-1", EmployeeID: "emp-a", SharePercent: pct("50")},
			{EntryID: "e-2", EmployeeID: "emp-b", SharePercent: pct("50")},
		},
	}

	suite.expectActiveEmployee("emp-c")
	suite.mockRepo.On("FindActiveByOrderIDForUpdate", mock.Anything, mock.Anything, "order-1").Return(existing, nil).Once()

	// 99.99 leaves 0.01 for two owners; rescaling floors one of them to zero.
	_, err := suite.service.AddOwner(ctx, "loc-1", "order-1", req, "emp-a")

	suite.Require().ErrorIs(err, services.ErrInvalidSharePercent)
	suite.mockRepo.AssertNotCalled(suite.T(), "ReplaceEntriesInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OwnershipServiceTestSuite) TestAddOwner_RejectsExistingOwner() {
	ctx := context.Background()
	req := dto.AddOwnerRequest{LocationID: "loc-1", EmployeeID: "emp-a"}
	existing := &domain.OrderOwnership{
		OwnershipID: "own-1",
		OrderID:     "order-1",
		IsActive:    true,
		Entries: []domain.OrderOwnershipEntry{
			{EntryID: "e-1", EmployeeID: "emp-a", SharePercent: pct("50")},
			{EntryID: "e-2", EmployeeID: "emp-b", SharePercent: pct("50")},
		},
	}

	suite.expectActiveEmployee("emp-a")
	suite.mockRepo.On("FindActiveByOrderIDForUpdate", mock.Anything, mock.Anything, "order-1").Return(existing, nil).Once()

	_, err := suite.service.AddOwner(ctx, "loc-1", "order-1", req, "emp-mgr")

	suite.Require().ErrorIs(err, services.ErrAlreadyOwner)
}

func (suite *OwnershipServiceTestSuite) TestAddOwner_RejectsInactiveEmployee() {
	ctx := context.Background()
	req := dto.AddOwnerRequest{LocationID: "loc-1", EmployeeID: "emp-gone"}

	suite.mockEmployeeSvc.On("Get", mock.Anything, "emp-gone").
		Return(&domain.Employee{EmployeeID: "emp-gone", IsActive: false}, nil).Once()

	_, err := suite.service.AddOwner(ctx, "loc-1", "order-1", req, "emp-a")

	suite.Require().ErrorIs(err, services.ErrNewOwnerNotActive)
}

func (suite *OwnershipServiceTestSuite) TestRemoveOwner_RemainingOwnersRescaleToHundred() {
	ctx := context.Background()
	existing := &domain.OrderOwnership{
		OwnershipID: "own-1",
		OrderID:     "order-1",
		IsActive:    true,
		Entries: []domain.OrderOwnershipEntry{
			{EntryID: "e-1", EmployeeID: "emp-a", SharePercent: pct("35")},
			{EntryID: "e-2", EmployeeID: "emp-b", SharePercent: pct("35")},
			{EntryID: "e-3", EmployeeID: "emp-c", SharePercent: pct("30")},
		},
	}

	suite.mockRepo.On("FindActiveByOrderIDForUpdate", mock.Anything, mock.Anything, "order-1").Return(existing, nil).Once()
	suite.mockRepo.On("ReplaceEntriesInTx", mock.Anything, mock.Anything, "own-1", mock.Anything, "emp-mgr", mock.Anything).Return(nil).Once()

	resp, err := suite.service.RemoveOwner(ctx, "order-1", "emp-c", "emp-mgr")

	suite.Require().NoError(err)
	suite.Len(resp.Entries, 2)
	suite.True(shareOf(resp, "emp-a").Equal(pct("50")))
	suite.True(shareOf(resp, "emp-b").Equal(pct("50")))

	total := decimal.Zero
	for _, e := range resp.Entries {
		total = total.Add(e.SharePercent)
	}
	suite.True(total.Equal(pct("100")))
}

func (suite *OwnershipServiceTestSuite) TestRemoveOwner_LastOwnerDeactivatesRecord() {
	ctx := context.Background()
	existing := &domain.OrderOwnership{
		OwnershipID: "own-1",
		OrderID:     "order-1",
		IsActive:    true,
		Entries: []domain.OrderOwnershipEntry{
			{EntryID: "e-1", EmployeeID: "emp-a", SharePercent: pct("100")},
		},
	}

	suite.mockRepo.On("FindActiveByOrderIDForUpdate", mock.Anything, mock.Anything, "order-1").Return(existing, nil).Once()
	suite.mockRepo.On("DeactivateInTx", mock.Anything, mock.Anything, "own-1", "emp-mgr", mock.Anything).Return(nil).Once()

	resp, err := suite.service.RemoveOwner(ctx, "order-1", "emp-a", "emp-mgr")

	suite.Require().NoError(err)
	suite.False(resp.IsActive)
	suite.Empty(resp.Entries)
	suite.mockRepo.AssertNotCalled(suite.T(), "ReplaceEntriesInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OwnershipServiceTestSuite) TestRemoveOwner_NonOwner() {
	ctx := context.Background()
	existing := &domain.OrderOwnership{
		OwnershipID: "own-1",
		OrderID:     "order-1",
		IsActive:    true,
		Entries: []domain.OrderOwnershipEntry{
			{EntryID: "e-1", EmployeeID: "emp-a", SharePercent: pct("100")},
		},
	}

	suite.mockRepo.On("FindActiveByOrderIDForUpdate", mock.Anything, mock.Anything, "order-1").Return(existing, nil).Once()

	_, err := suite.service.RemoveOwner(ctx, "order-1", "emp-x", "emp-mgr")

	suite.Require().ErrorIs(err, services.ErrOwnerNotFound)
}

func (suite *OwnershipServiceTestSuite) TestSetSplits_RejectsBadTotal() {
	ctx := context.Background()
	existing := &domain.OrderOwnership{
		OwnershipID: "own-1",
		OrderID:     "order-1",
		IsActive:    true,
		Entries: []domain.OrderOwnershipEntry{
			{EntryID: "e-1", EmployeeID: "emp-a", SharePercent: pct("50")},
			{EntryID: "e-2", EmployeeID: "emp-b", SharePercent: pct("50")},
		},
	}
	req := dto.SetSplitsRequest{Splits: []dto.OwnerSplit{
		{EmployeeID: "emp-a", SharePercent: pct("60")},
		{EmployeeID: "emp-b", SharePercent: pct("50")},
	}}

	suite.mockRepo.On("FindActiveByOrderIDForUpdate", mock.Anything, mock.Anything, "order-1").Return(existing, nil).Once()

	_, err := suite.service.SetSplits(ctx, "order-1", req, "emp-mgr")

	suite.Require().ErrorIs(err, services.ErrInvalidSplitTotal)
	suite.mockRepo.AssertNotCalled(suite.T(), "ReplaceEntriesInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OwnershipServiceTestSuite) TestSetSplits_RejectsZeroShare() {
	ctx := context.Background()
	existing := &domain.OrderOwnership{
		OwnershipID: "own-1",
		OrderID:     "order-1",
		IsActive:    true,
		Entries: []domain.OrderOwnershipEntry{
			{EntryID: "e-1", EmployeeID: "emp-a", SharePercent: pct("50")},
			{EntryID: "e-2", EmployeeID: "emp-b", SharePercent: pct("50")},
		},
	}
	req := dto.SetSplitsRequest{Splits: []dto.OwnerSplit{
		{EmployeeID: "emp-a", SharePercent: pct("100")},
		{EmployeeID: "emp-b", SharePercent: pct("0")},
	}}

	suite.mockRepo.On("FindActiveByOrderIDForUpdate", mock.Anything, mock.Anything, "order-1").Return(existing, nil).Once()

	_, err := suite.service.SetSplits(ctx, "order-1", req, "emp-mgr")

	suite.Require().ErrorIs(err, services.ErrInvalidSharePercent)
	suite.mockRepo.AssertNotCalled(suite.T(), "ReplaceEntriesInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OwnershipServiceTestSuite) TestSetSplits_RejectsMissingOwner() {
	ctx := context.Background()
	existing := &domain.OrderOwnership{
		OwnershipID: "own-1",
		OrderID:     "order-1",
		IsActive:    true,
		Entries: []domain.OrderOwnershipEntry{
			{EntryID: "e-1", EmployeeID: "emp-a", SharePercent: pct("50")},
			{EntryID: "e-2", EmployeeID: "emp-b", SharePercent: pct("50")},
		},
	}
	req := dto.SetSplitsRequest{Splits: []dto.OwnerSplit{
		{EmployeeID: "emp-a", SharePercent: pct("60")},
		{EmployeeID: "emp-x", SharePercent: pct("40")},
	}}

	suite.mockRepo.On("FindActiveByOrderIDForUpdate", mock.Anything, mock.Anything, "order-1").Return(existing, nil).Once()

	_, err := suite.service.SetSplits(ctx, "order-1", req, "emp-mgr")

	suite.Require().ErrorIs(err, services.ErrOwnerNotFound)
}

func (suite *OwnershipServiceTestSuite) TestSetSplits_AppliesNewPercentages() {
	ctx := context.Background()
	existing := &domain.OrderOwnership{
		OwnershipID: "own-1",
		OrderID:     "order-1",
		IsActive:    true,
		Entries: []domain.OrderOwnershipEntry{
			{EntryID: "e-1", EmployeeID: "emp-a", SharePercent: pct("50")},
			{EntryID: "e-2", EmployeeID: "emp-b", SharePercent: pct("50")},
		},
	}
	req := dto.SetSplitsRequest{Splits: []dto.OwnerSplit{
		{EmployeeID: "emp-a", SharePercent: pct("70")},
		{EmployeeID: "emp-b", SharePercent: pct("30")},
	}}

	suite.mockRepo.On("FindActiveByOrderIDForUpdate", mock.Anything, mock.Anything, "order-1").Return(existing, nil).Once()
	suite.mockRepo.On("ReplaceEntriesInTx", mock.Anything, mock.Anything, "own-1", mock.Anything, "emp-mgr", mock.Anything).Return(nil).Once()

	resp, err := suite.service.SetSplits(ctx, "order-1", req, "emp-mgr")

	suite.Require().NoError(err)
	suite.True(shareOf(resp, "emp-a").Equal(pct("70")))
	suite.True(shareOf(resp, "emp-b").Equal(pct("30")))
}

func (suite *OwnershipServiceTestSuite) TestGetOwnership_NilForSingleOwnerOrders() {
	ctx := context.Background()

	suite.mockRepo.On("FindActiveByOrderID", ctx, "order-1").Return(nil, apperrors.ErrNotFound).Once()

	ownership, err := suite.service.GetOwnership(ctx, "order-1")

	suite.Require().NoError(err)
	suite.Nil(ownership)
}

func TestOwnershipServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OwnershipServiceTestSuite))
}
