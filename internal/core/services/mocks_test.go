package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/domain"
	portsrepo "github.com/GetwithitMan/gwi-pos-sub009/internal/core/ports/repositories"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/dto"
)

// Shared service facade mocks used by more than one suite in this package.

// MockEmployeeService is a mock type for the EmployeeSvcFacade interface
type MockEmployeeService struct {
	mock.Mock
}

func (m *MockEmployeeService) Create(ctx context.Context, req dto.CreateEmployeeRequest, actorID string) (*domain.Employee, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeService) Authenticate(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LoginResponse), args.Error(1)
}

func (m *MockEmployeeService) Get(ctx context.Context, employeeID string) (*domain.Employee, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeService) GetByIDs(ctx context.Context, employeeIDs []string) (map[string]domain.Employee, error) {
	args := m.Called(ctx, employeeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Employee), args.Error(1)
}

func (m *MockEmployeeService) List(ctx context.Context, locationID string, activeOnly bool) ([]domain.Employee, error) {
	args := m.Called(ctx, locationID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Employee), args.Error(1)
}

func (m *MockEmployeeService) Deactivate(ctx context.Context, employeeID, actorID string) error {
	args := m.Called(ctx, employeeID, actorID)
	return args.Error(0)
}

// MockOwnershipService is a mock type for the OwnershipSvcFacade interface
type MockOwnershipService struct {
	mock.Mock
}

func (m *MockOwnershipService) AddOwner(ctx context.Context, locationID, orderID string, req dto.AddOwnerRequest, actorID string) (*dto.OwnershipResponse, error) {
	args := m.Called(ctx, locationID, orderID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.OwnershipResponse), args.Error(1)
}

func (m *MockOwnershipService) RemoveOwner(ctx context.Context, orderID, employeeID, actorID string) (*dto.OwnershipResponse, error) {
	args := m.Called(ctx, orderID, employeeID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.OwnershipResponse), args.Error(1)
}

func (m *MockOwnershipService) SetSplits(ctx context.Context, orderID string, req dto.SetSplitsRequest, actorID string) (*dto.OwnershipResponse, error) {
	args := m.Called(ctx, orderID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.OwnershipResponse), args.Error(1)
}

func (m *MockOwnershipService) GetOwnership(ctx context.Context, orderID string) (*domain.OrderOwnership, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderOwnership), args.Error(1)
}

// MockTipGroupService is a mock type for the TipGroupSvcFacade interface
type MockTipGroupService struct {
	mock.Mock
}

func (m *MockTipGroupService) Start(ctx context.Context, req dto.StartGroupRequest, creatorID string) (*dto.GroupResponse, error) {
	args := m.Called(ctx, req, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.GroupResponse), args.Error(1)
}

func (m *MockTipGroupService) AddMember(ctx context.Context, groupID, employeeID, approvedBy string) (*dto.GroupResponse, error) {
	args := m.Called(ctx, groupID, employeeID, approvedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.GroupResponse), args.Error(1)
}

func (m *MockTipGroupService) RemoveMember(ctx context.Context, groupID, employeeID, actorID string) (*dto.GroupResponse, error) {
	args := m.Called(ctx, groupID, employeeID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.GroupResponse), args.Error(1)
}

func (m *MockTipGroupService) RequestJoin(ctx context.Context, groupID, employeeID string) error {
	args := m.Called(ctx, groupID, employeeID)
	return args.Error(0)
}

func (m *MockTipGroupService) ApproveJoin(ctx context.Context, groupID, employeeID, approvedBy string) (*dto.GroupResponse, error) {
	args := m.Called(ctx, groupID, employeeID, approvedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.GroupResponse), args.Error(1)
}

func (m *MockTipGroupService) Close(ctx context.Context, groupID, actorID string) error {
	args := m.Called(ctx, groupID, actorID)
	return args.Error(0)
}

func (m *MockTipGroupService) GetGroup(ctx context.Context, groupID string) (*dto.GroupResponse, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.GroupResponse), args.Error(1)
}

func (m *MockTipGroupService) ListGroups(ctx context.Context, locationID string, activeOnly bool) ([]dto.GroupResponse, error) {
	args := m.Called(ctx, locationID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.GroupResponse), args.Error(1)
}

func (m *MockTipGroupService) FindSegmentForTimestamp(ctx context.Context, groupID string, t time.Time) (*domain.TipGroupSegment, error) {
	args := m.Called(ctx, groupID, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TipGroupSegment), args.Error(1)
}

func (m *MockTipGroupService) ActiveMembership(ctx context.Context, employeeID string) (*domain.TipGroupMembership, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TipGroupMembership), args.Error(1)
}

// MockReportingReader is a mock type for the ReportingReader interface
type MockReportingReader struct {
	mock.Mock
}

func (m *MockReportingReader) PayableBalances(ctx context.Context, locationID string) ([]domain.EmployeeBalance, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EmployeeBalance), args.Error(1)
}

func (m *MockReportingReader) CheckoutRows(ctx context.Context, employeeID string, from, to time.Time) ([]portsrepo.CheckoutRow, error) {
	args := m.Called(ctx, employeeID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.CheckoutRow), args.Error(1)
}
