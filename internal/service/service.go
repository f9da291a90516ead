package service

import (
	"context"

	"stepline-backend/internal/domain"
)

type AuthService interface {
	// ExchangeSession verifies a provider ID token, resolves (or creates) the
	// internal user record, and issues backend session tokens.
	ExchangeSession(ctx context.Context, idToken string) (*domain.User, string, string, error) // user, access, refresh
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type UserService interface {
	GetProfile(ctx context.Context, userID int32) (*domain.User, []domain.Project, error)
	UpdateProfile(ctx context.Context, userID int32, name string) (*domain.User, error)
}

type ProjectService interface {
	CreateProject(ctx context.Context, ownerID int32, name, description string) (*domain.Project, error)
	GetProject(ctx context.Context, userID, projectID int32) (*domain.Project, []domain.Step, error)
	ListMyProjects(ctx context.Context, userID int32) ([]domain.Project, error)
	UpdateProject(ctx context.Context, userID, projectID int32, name, description string, status domain.ProjectStatus) (*domain.Project, error)
	DeleteProject(ctx context.Context, userID, projectID int32) error
}

type StepService interface {
	AddStep(ctx context.Context, userID, projectID int32, title, note string) (*domain.Step, error)
	UpdateStep(ctx context.Context, userID, stepID int32, title, note string, position int32) (*domain.Step, error)
	ToggleStep(ctx context.Context, userID, stepID int32) (*domain.Step, error)
	DeleteStep(ctx context.Context, userID, stepID int32) error
}

// TeamService is the invitation workflow orchestrator plus the thin
// membership surface around it.
type TeamService interface {
	Invite(ctx context.Context, inviterID, projectID int32, rawEmail string) (*domain.InviteOutcome, error)
	InviteMany(ctx context.Context, inviterID, projectID int32, rawEmails []string) []domain.InviteOutcome
	Accept(ctx context.Context, userID int32, token string) (int32, error) // returns project id
	ListMembers(ctx context.Context, userID, projectID int32) ([]domain.User, []domain.Membership, error)
	ListPendingInvitations(ctx context.Context, userID, projectID int32) ([]domain.Invitation, error)
	RemoveMember(ctx context.Context, callerID, projectID, memberID int32) error
}

type EmailService interface {
	SendInvitation(ctx context.Context, email, inviterName, projectName, token string, projectID int32) error
	SendInvitationReminder(ctx context.Context, email, projectName, token string, projectID int32) error
}
