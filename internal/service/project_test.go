package service_test

import (
	"context"
	"testing"

	"stepline-backend/internal/domain"
	"stepline-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type projectFixture struct {
	userRepo       *MockUserRepo
	projectRepo    *MockProjectRepo
	stepRepo       *MockStepRepo
	membershipRepo *MockMembershipRepo
	svc            service.ProjectService
}

func newProjectFixture() *projectFixture {
	f := &projectFixture{
		userRepo:       new(MockUserRepo),
		projectRepo:    new(MockProjectRepo),
		stepRepo:       new(MockStepRepo),
		membershipRepo: new(MockMembershipRepo),
	}
	f.svc = service.NewProjectService(f.projectRepo, f.stepRepo, f.membershipRepo, f.userRepo)
	return f
}

func TestProjectService_CreateProject_CreatorBecomesFirstMember(t *testing.T) {
	f := newProjectFixture()
	ctx := context.Background()

	f.userRepo.On("GetByID", mock.Anything, int32(1)).
		Return(&domain.User{ID: 1, Email: "ana@example.com"}, nil)
	f.projectRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Project) bool {
		return p.Name == "Apollo" && p.OwnerID == 1 && p.Status == domain.ProjectStatusActive
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Project).ID = 7
	}).Return(nil)
	f.membershipRepo.On("Add", mock.Anything, mock.MatchedBy(func(m *domain.Membership) bool {
		return m.ProjectID == 7 && m.UserID == 1 && m.Email == "ana@example.com"
	})).Return(nil)

	project, err := f.svc.CreateProject(ctx, 1, "  Apollo ", "moon stuff")
	require.NoError(t, err)
	assert.Equal(t, int32(7), project.ID)
	f.membershipRepo.AssertExpectations(t)
}

func TestProjectService_CreateProject_EmptyName(t *testing.T) {
	f := newProjectFixture()

	_, err := f.svc.CreateProject(context.Background(), 1, "   ", "")
	assert.ErrorIs(t, err, service.ErrEmptyProjectName)
}

func TestProjectService_GetProject_RequiresMembership(t *testing.T) {
	f := newProjectFixture()
	ctx := context.Background()

	f.membershipRepo.On("Exists", mock.Anything, int32(7), int32(2)).Return(false, nil)

	_, _, err := f.svc.GetProject(ctx, 2, 7)
	assert.ErrorIs(t, err, service.ErrNotMember)
}

func TestProjectService_DeleteProject_OwnerOnly(t *testing.T) {
	f := newProjectFixture()
	ctx := context.Background()

	f.projectRepo.On("GetByID", mock.Anything, int32(7)).
		Return(&domain.Project{ID: 7, OwnerID: 1}, nil)

	err := f.svc.DeleteProject(ctx, 2, 7)
	assert.ErrorIs(t, err, service.ErrNotOwner)

	f.projectRepo.On("Delete", mock.Anything, int32(7)).Return(nil)
	err = f.svc.DeleteProject(ctx, 1, 7)
	assert.NoError(t, err)
}

func TestProjectService_UpdateProject_ArchivesProject(t *testing.T) {
	f := newProjectFixture()
	ctx := context.Background()

	f.membershipRepo.On("Exists", mock.Anything, int32(7), int32(1)).Return(true, nil)
	f.projectRepo.On("GetByID", mock.Anything, int32(7)).
		Return(&domain.Project{ID: 7, Name: "Apollo", OwnerID: 1, Status: domain.ProjectStatusActive}, nil)
	f.projectRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.Project) bool {
		return p.Status == domain.ProjectStatusArchived && p.Name == "Apollo"
	})).Return(nil)

	project, err := f.svc.UpdateProject(ctx, 1, 7, "", "", domain.ProjectStatusArchived)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectStatusArchived, project.Status)
}
