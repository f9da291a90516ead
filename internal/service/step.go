package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"stepline-backend/internal/domain"
	"stepline-backend/internal/repository"
)

var ErrEmptyStepTitle = errors.New("step title cannot be empty")

type stepService struct {
	stepRepo       repository.StepRepository
	membershipRepo repository.MembershipRepository
}

func NewStepService(stepRepo repository.StepRepository, membershipRepo repository.MembershipRepository) StepService {
	return &stepService{
		stepRepo:       stepRepo,
		membershipRepo: membershipRepo,
	}
}

func (s *stepService) AddStep(ctx context.Context, userID, projectID int32, title, note string) (*domain.Step, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyStepTitle
	}
	if err := s.requireMember(ctx, projectID, userID); err != nil {
		return nil, err
	}

	step := &domain.Step{ProjectID: projectID, Title: title, Note: note}
	if err := s.stepRepo.Create(ctx, step); err != nil {
		return nil, err
	}
	return step, nil
}

func (s *stepService) UpdateStep(ctx context.Context, userID, stepID int32, title, note string, position int32) (*domain.Step, error) {
	step, err := s.loadForMember(ctx, userID, stepID)
	if err != nil {
		return nil, err
	}

	if title = strings.TrimSpace(title); title != "" {
		step.Title = title
	}
	if note != "" {
		step.Note = note
	}
	if position > 0 {
		step.Position = position
	}

	if err := s.stepRepo.Update(ctx, step); err != nil {
		return nil, err
	}
	return step, nil
}

func (s *stepService) ToggleStep(ctx context.Context, userID, stepID int32) (*domain.Step, error) {
	step, err := s.loadForMember(ctx, userID, stepID)
	if err != nil {
		return nil, err
	}

	if step.Done() {
		step.CompletedOn = nil
	} else {
		now := time.Now()
		step.CompletedOn = &now
	}

	if err := s.stepRepo.Update(ctx, step); err != nil {
		return nil, err
	}
	return step, nil
}

func (s *stepService) DeleteStep(ctx context.Context, userID, stepID int32) error {
	step, err := s.loadForMember(ctx, userID, stepID)
	if err != nil {
		return err
	}
	return s.stepRepo.Delete(ctx, step.ID)
}

func (s *stepService) loadForMember(ctx context.Context, userID, stepID int32) (*domain.Step, error) {
	step, err := s.stepRepo.GetByID(ctx, stepID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(ctx, step.ProjectID, userID); err != nil {
		return nil, err
	}
	return step, nil
}

func (s *stepService) requireMember(ctx context.Context, projectID, userID int32) error {
	exists, err := s.membershipRepo.Exists(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotMember
	}
	return nil
}
