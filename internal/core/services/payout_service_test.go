package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/GetwithitMan/gwi-pos-sub009/internal/apperrors"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/domain"
	portsrepo "github.com/GetwithitMan/gwi-pos-sub009/internal/core/ports/repositories"
	portssvc "github.com/GetwithitMan/gwi-pos-sub009/internal/core/ports/services"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/services"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/dto"
)

// MockPayoutRepository is a mock type for the PayoutRepositoryFacade interface
type MockPayoutRepository struct {
	mock.Mock
}

func (m *MockPayoutRepository) ListPayouts(ctx context.Context, locationID string, filter portsrepo.PayoutFilter, limit int, nextToken *string) ([]domain.Payout, *string, error) {
	args := m.Called(ctx, locationID, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Payout), token, args.Error(2)
}

func (m *MockPayoutRepository) SavePayout(ctx context.Context, payout domain.Payout, entry domain.LedgerEntry) (int64, error) {
	args := m.Called(ctx, payout, entry)
	return args.Get(0).(int64), args.Error(1)
}

// MockLedgerService is a mock type for the LedgerSvcFacade interface
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetOrCreate(ctx context.Context, employeeID, locationID, actorID string) (*domain.Ledger, error) {
	args := m.Called(ctx, employeeID, locationID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ledger), args.Error(1)
}

func (m *MockLedgerService) Post(ctx context.Context, locationID, employeeID string, amountCents int64, entryType domain.EntryType, sourceType domain.EntrySourceType, sourceID string, idempotencyKey *string, actorID string) (*domain.LedgerEntry, int64, error) {
	args := m.Called(ctx, locationID, employeeID, amountCents, entryType, sourceType, sourceID, idempotencyKey, actorID)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Get(1).(int64), args.Error(2)
}

func (m *MockLedgerService) Balance(ctx context.Context, employeeID string) (int64, error) {
	args := m.Called(ctx, employeeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerService) Entries(ctx context.Context, employeeID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, employeeID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}

func (m *MockLedgerService) Recalculate(ctx context.Context, employeeID, actorID string) (*domain.RecalculateResult, error) {
	args := m.Called(ctx, employeeID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecalculateResult), args.Error(1)
}

func (m *MockLedgerService) Transfer(ctx context.Context, locationID string, req dto.TransferRequest, actorID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, locationID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

// --- Test Suite Setup ---

type PayoutServiceTestSuite struct {
	suite.Suite
	mockRepo      *MockPayoutRepository
	mockReporting *MockReportingReader
	mockLedgerSvc *MockLedgerService
	service       portssvc.PayoutSvcFacade

	savedPayouts []domain.Payout
	savedEntries []domain.LedgerEntry
}

func (suite *PayoutServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPayoutRepository)
	suite.mockReporting = new(MockReportingReader)
	suite.mockLedgerSvc = new(MockLedgerService)
	suite.service = services.NewPayoutService(suite.mockRepo, suite.mockReporting, suite.mockLedgerSvc)
	suite.savedPayouts = nil
	suite.savedEntries = nil
}

// expectSave captures every payout and backing debit handed to the repository.
func (suite *PayoutServiceTestSuite) expectSave(newBalance int64, err error) *mock.Call {
	return suite.mockRepo.On("SavePayout", mock.Anything, mock.AnythingOfType("domain.Payout"), mock.AnythingOfType("domain.LedgerEntry")).
		Run(func(args mock.Arguments) {
			suite.savedPayouts = append(suite.savedPayouts, args.Get(1).(domain.Payout))
			suite.savedEntries = append(suite.savedEntries, args.Get(2).(domain.LedgerEntry))
		}).Return(newBalance, err)
}

// --- Test Cases ---

func (suite *PayoutServiceTestSuite) TestCashOut_FullBalance() {
	ctx := context.Background()
	req := dto.CashOutRequest{LocationID: "loc-1", EmployeeID: "emp-1"}

	suite.mockLedgerSvc.On("Balance", ctx, "emp-1").Return(int64(4250), nil).Once()
	suite.expectSave(0, nil).Once()

	resp, err := suite.service.CashOut(ctx, "loc-1", req, "emp-mgr")

	suite.Require().NoError(err)
	suite.True(resp.Success)
	suite.Equal(int64(0), resp.NewBalanceCents)
	suite.Require().NotNil(resp.Payout)
	suite.Equal(int64(4250), resp.Payout.AmountCents)
	suite.Equal("CASH", resp.Payout.Method)

	suite.Require().Len(suite.savedEntries, 1)
	entry := suite.savedEntries[0]
	payout := suite.savedPayouts[0]
	suite.Equal(domain.Debit, entry.EntryType)
	suite.Equal(int64(-4250), entry.AmountCents)
	suite.Equal(domain.SourcePayoutCash, entry.SourceType)
	suite.Equal(payout.PayoutID, entry.SourceID)
	suite.Equal(entry.EntryID, payout.LedgerEntryID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PayoutServiceTestSuite) TestCashOut_PartialAmount() {
	ctx := context.Background()
	amount := int64(1000)
	req := dto.CashOutRequest{LocationID: "loc-1", EmployeeID: "emp-1", AmountCents: &amount}

	suite.mockLedgerSvc.On("Balance", ctx, "emp-1").Return(int64(4250), nil).Once()
	suite.expectSave(3250, nil).Once()

	resp, err := suite.service.CashOut(ctx, "loc-1", req, "emp-mgr")

	suite.Require().NoError(err)
	suite.True(resp.Success)
	suite.Equal(int64(3250), resp.NewBalanceCents)
	suite.Equal(int64(1000), resp.Payout.AmountCents)
}

func (suite *PayoutServiceTestSuite) TestCashOut_SoftFailsWhenAmountExceedsBalance() {
	ctx := context.Background()
	amount := int64(5000)
	req := dto.CashOutRequest{LocationID: "loc-1", EmployeeID: "emp-1", AmountCents: &amount}

	suite.mockLedgerSvc.On("Balance", ctx, "emp-1").Return(int64(4250), nil).Once()

	resp, err := suite.service.CashOut(ctx, "loc-1", req, "emp-mgr")

	suite.Require().NoError(err)
	suite.False(resp.Success)
	suite.Equal("insufficient balance", resp.Reason)
	suite.Equal(int64(4250), resp.NewBalanceCents)
	suite.Nil(resp.Payout)
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePayout", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PayoutServiceTestSuite) TestCashOut_SoftFailsOnZeroBalance() {
	ctx := context.Background()
	req := dto.CashOutRequest{LocationID: "loc-1", EmployeeID: "emp-1"}

	suite.mockLedgerSvc.On("Balance", ctx, "emp-1").Return(int64(0), nil).Once()

	resp, err := suite.service.CashOut(ctx, "loc-1", req, "emp-mgr")

	suite.Require().NoError(err)
	suite.False(resp.Success)
	suite.Equal("payout amount must be positive", resp.Reason)
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePayout", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PayoutServiceTestSuite) TestCashOut_SoftFailsWhenRowLockLosesRace() {
	ctx := context.Background()
	req := dto.CashOutRequest{LocationID: "loc-1", EmployeeID: "emp-1"}

	// Pre-check sees 4250, but a concurrent payout drains it before the save.
	suite.mockLedgerSvc.On("Balance", ctx, "emp-1").Return(int64(4250), nil).Once()
	suite.expectSave(0, apperrors.ErrConflict).Once()
	suite.mockLedgerSvc.On("Balance", ctx, "emp-1").Return(int64(0), nil).Once()

	resp, err := suite.service.CashOut(ctx, "loc-1", req, "emp-mgr")

	suite.Require().NoError(err)
	suite.False(resp.Success)
	suite.Equal("insufficient balance", resp.Reason)
	suite.Equal(int64(0), resp.NewBalanceCents)
	suite.mockLedgerSvc.AssertExpectations(suite.T())
}

func (suite *PayoutServiceTestSuite) TestBatchPayroll_SkipsFailedEmployeesAndSumsRest() {
	ctx := context.Background()
	req := dto.BatchPayrollRequest{LocationID: "loc-1"}

	suite.mockReporting.On("PayableBalances", ctx, "loc-1").Return([]domain.EmployeeBalance{
		{EmployeeID: "emp-a", BalanceCents: 3000},
		{EmployeeID: "emp-b", BalanceCents: 2000},
		{EmployeeID: "emp-c", BalanceCents: 1000},
	}, nil).Once()

	suite.expectSave(0, nil).Once()
	suite.expectSave(0, apperrors.ErrConflict).Once()
	suite.expectSave(0, nil).Once()

	summary, err := suite.service.BatchPayrollPayout(ctx, req, "emp-mgr")

	suite.Require().NoError(err)
	suite.Equal(2, summary.EmployeesPaid)
	suite.Equal(int64(4000), summary.TotalCents)
	suite.Equal([]string{"emp-b"}, summary.SkippedEmployees)
	suite.NotEmpty(summary.BatchID)

	// Every payout in the run shares the batch ID and debits through payroll.
	suite.Require().Len(suite.savedPayouts, 3)
	for i, p := range suite.savedPayouts {
		suite.Require().NotNil(p.BatchID)
		suite.Equal(summary.BatchID, *p.BatchID)
		suite.Equal(domain.PayoutPayroll, p.Method)
		suite.Equal(domain.SourcePayoutPayroll, suite.savedEntries[i].SourceType)
	}
}

func (suite *PayoutServiceTestSuite) TestBatchPayroll_HonorsEmployeeFilter() {
	ctx := context.Background()
	req := dto.BatchPayrollRequest{LocationID: "loc-1", EmployeeIDs: []string{"emp-b"}}

	suite.mockReporting.On("PayableBalances", ctx, "loc-1").Return([]domain.EmployeeBalance{
		{EmployeeID: "emp-a", BalanceCents: 3000},
		{EmployeeID: "emp-b", BalanceCents: 2000},
	}, nil).Once()
	suite.expectSave(0, nil).Once()

	summary, err := suite.service.BatchPayrollPayout(ctx, req, "emp-mgr")

	suite.Require().NoError(err)
	suite.Equal(1, summary.EmployeesPaid)
	suite.Equal(int64(2000), summary.TotalCents)
	suite.Require().Len(suite.savedPayouts, 1)
	suite.Equal("emp-b", suite.savedPayouts[0].EmployeeID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PayoutServiceTestSuite) TestPayoutHistory_PassesFilterAndDefaultLimit() {
	ctx := context.Background()
	method := "CASH"
	params := dto.ListPayoutsParams{Method: &method}

	suite.mockRepo.On("ListPayouts", ctx, "loc-1", mock.MatchedBy(func(f portsrepo.PayoutFilter) bool {
		return f.Method != nil && *f.Method == domain.PayoutCash
	}), 50, (*string)(nil)).Return([]domain.Payout{
		{PayoutID: "pay-1", EmployeeID: "emp-1", AmountCents: 4250, Method: domain.PayoutCash},
	}, nil, nil).Once()

	resp, err := suite.service.PayoutHistory(ctx, "loc-1", params)

	suite.Require().NoError(err)
	suite.Require().Len(resp.Payouts, 1)
	suite.Equal("pay-1", resp.Payouts[0].PayoutID)
	suite.Nil(resp.NextToken)
}

func TestPayoutServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PayoutServiceTestSuite))
}
