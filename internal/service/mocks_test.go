package service_test

import (
	"context"
	"time"

	"stepline-backend/internal/domain"
	"stepline-backend/internal/identity"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByAuthUID(ctx context.Context, uid string) (*domain.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockProjectRepo
type MockProjectRepo struct {
	mock.Mock
}

func (m *MockProjectRepo) Create(ctx context.Context, project *domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}
func (m *MockProjectRepo) GetByID(ctx context.Context, id int32) (*domain.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}
func (m *MockProjectRepo) ListByMember(ctx context.Context, userID int32) ([]domain.Project, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Project), args.Error(1)
}
func (m *MockProjectRepo) Update(ctx context.Context, project *domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}
func (m *MockProjectRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockStepRepo
type MockStepRepo struct {
	mock.Mock
}

func (m *MockStepRepo) Create(ctx context.Context, step *domain.Step) error {
	args := m.Called(ctx, step)
	return args.Error(0)
}
func (m *MockStepRepo) GetByID(ctx context.Context, id int32) (*domain.Step, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Step), args.Error(1)
}
func (m *MockStepRepo) ListByProject(ctx context.Context, projectID int32) ([]domain.Step, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]domain.Step), args.Error(1)
}
func (m *MockStepRepo) Update(ctx context.Context, step *domain.Step) error {
	args := m.Called(ctx, step)
	return args.Error(0)
}
func (m *MockStepRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMembershipRepo
type MockMembershipRepo struct {
	mock.Mock
}

func (m *MockMembershipRepo) Add(ctx context.Context, membership *domain.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}
func (m *MockMembershipRepo) Exists(ctx context.Context, projectID, userID int32) (bool, error) {
	args := m.Called(ctx, projectID, userID)
	return args.Bool(0), args.Error(1)
}
func (m *MockMembershipRepo) ListByProject(ctx context.Context, projectID int32) ([]domain.User, []domain.Membership, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]domain.User), args.Get(1).([]domain.Membership), args.Error(2)
}
func (m *MockMembershipRepo) Remove(ctx context.Context, projectID, userID int32) error {
	args := m.Called(ctx, projectID, userID)
	return args.Error(0)
}

// MockInviteRepo
type MockInviteRepo struct {
	mock.Mock
}

func (m *MockInviteRepo) Create(ctx context.Context, inv *domain.Invitation) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}
func (m *MockInviteRepo) GetPendingByToken(ctx context.Context, token string) (*domain.Invitation, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invitation), args.Error(1)
}
func (m *MockInviteRepo) HasPending(ctx context.Context, projectID int32, email string) (bool, error) {
	args := m.Called(ctx, projectID, email)
	return args.Bool(0), args.Error(1)
}
func (m *MockInviteRepo) ListPendingByProject(ctx context.Context, projectID int32) ([]domain.Invitation, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]domain.Invitation), args.Error(1)
}
func (m *MockInviteRepo) MarkAccepted(ctx context.Context, token string, userID int32, at time.Time) error {
	args := m.Called(ctx, token, userID, at)
	return args.Error(0)
}
func (m *MockInviteRepo) MarkDispatched(ctx context.Context, token string, at time.Time) error {
	args := m.Called(ctx, token, at)
	return args.Error(0)
}
func (m *MockInviteRepo) MarkReminded(ctx context.Context, token string, at time.Time) error {
	args := m.Called(ctx, token, at)
	return args.Error(0)
}
func (m *MockInviteRepo) ListUndispatched(ctx context.Context) ([]domain.Invitation, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Invitation), args.Error(1)
}
func (m *MockInviteRepo) ListExpiringSoon(ctx context.Context, within time.Duration) ([]domain.Invitation, error) {
	args := m.Called(ctx, within)
	return args.Get(0).([]domain.Invitation), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendInvitation(ctx context.Context, email, inviterName, projectName, token string, projectID int32) error {
	args := m.Called(ctx, email, inviterName, projectName, token, projectID)
	return args.Error(0)
}
func (m *MockEmailService) SendInvitationReminder(ctx context.Context, email, projectName, token string, projectID int32) error {
	args := m.Called(ctx, email, projectName, token, projectID)
	return args.Error(0)
}

// MockVerifier
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(ctx context.Context, idToken string) (*identity.Claims, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Claims), args.Error(1)
}
