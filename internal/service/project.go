package service

import (
	"context"
	"errors"
	"strings"

	"stepline-backend/internal/domain"
	"stepline-backend/internal/repository"
)

var ErrEmptyProjectName = errors.New("project name cannot be empty")

type projectService struct {
	projectRepo    repository.ProjectRepository
	stepRepo       repository.StepRepository
	membershipRepo repository.MembershipRepository
	userRepo       repository.UserRepository
}

func NewProjectService(
	projectRepo repository.ProjectRepository,
	stepRepo repository.StepRepository,
	membershipRepo repository.MembershipRepository,
	userRepo repository.UserRepository,
) ProjectService {
	return &projectService{
		projectRepo:    projectRepo,
		stepRepo:       stepRepo,
		membershipRepo: membershipRepo,
		userRepo:       userRepo,
	}
}

func (s *projectService) CreateProject(ctx context.Context, ownerID int32, name, description string) (*domain.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyProjectName
	}

	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	project := &domain.Project{
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
		Status:      domain.ProjectStatusActive,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	// The creator is the first member.
	m := &domain.Membership{ProjectID: project.ID, UserID: ownerID, Email: owner.Email}
	if err := s.membershipRepo.Add(ctx, m); err != nil && !errors.Is(err, repository.ErrDuplicate) {
		return nil, err
	}

	return project, nil
}

func (s *projectService) GetProject(ctx context.Context, userID, projectID int32) (*domain.Project, []domain.Step, error) {
	if err := s.requireMember(ctx, projectID, userID); err != nil {
		return nil, nil, err
	}

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	steps, err := s.stepRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	return project, steps, nil
}

func (s *projectService) ListMyProjects(ctx context.Context, userID int32) ([]domain.Project, error) {
	return s.projectRepo.ListByMember(ctx, userID)
}

func (s *projectService) UpdateProject(ctx context.Context, userID, projectID int32, name, description string, status domain.ProjectStatus) (*domain.Project, error) {
	if err := s.requireMember(ctx, projectID, userID); err != nil {
		return nil, err
	}

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		project.Name = name
	}
	if description != "" {
		project.Description = description
	}
	if status == domain.ProjectStatusActive || status == domain.ProjectStatusArchived {
		project.Status = status
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) DeleteProject(ctx context.Context, userID, projectID int32) error {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project.OwnerID != userID {
		return ErrNotOwner
	}
	return s.projectRepo.Delete(ctx, projectID)
}

func (s *projectService) requireMember(ctx context.Context, projectID, userID int32) error {
	exists, err := s.membershipRepo.Exists(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotMember
	}
	return nil
}
