package service

import (
	"context"
	"errors"
	"strings"

	"stepline-backend/internal/domain"
	"stepline-backend/internal/repository"
)

var ErrEmptyName = errors.New("display name cannot be empty")

type userService struct {
	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
}

func NewUserService(userRepo repository.UserRepository, projectRepo repository.ProjectRepository) UserService {
	return &userService{
		userRepo:    userRepo,
		projectRepo: projectRepo,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID int32) (*domain.User, []domain.Project, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	projects, err := s.projectRepo.ListByMember(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return user, projects, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int32, name string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Name = name
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
