package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"stepline-backend/internal/domain"
	"stepline-backend/internal/logger"
	"stepline-backend/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput     = errors.New("project id and email are required")
	ErrNotAuthenticated = errors.New("authentication required")
	ErrInviteNotFound   = errors.New("invalid or expired invitation")
	ErrInviteExpired    = errors.New("invitation has expired")
	ErrInviteProcessing = errors.New("failed to process invitation")
	ErrNotMember        = errors.New("not a member of this project")
	ErrNotOwner         = errors.New("only the project owner can do this")
)

// EmailMismatchError is returned when the signed-in account's address does
// not match the invited address. A token leaked to the wrong inbox must not
// grant access; both addresses are carried so the caller can tell the user
// which account to sign in with.
type EmailMismatchError struct {
	SessionEmail string
	InviteEmail  string
}

func (e *EmailMismatchError) Error() string {
	return fmt.Sprintf("invitation was sent to %s but you are signed in as %s", e.InviteEmail, e.SessionEmail)
}

// invitationTTL is how long an invitation stays acceptable.
const invitationTTL = 7 * 24 * time.Hour

// dispatchTimeout bounds the inline email send so a slow provider cannot
// hold the request hostage; the invitation itself is already persisted.
const dispatchTimeout = 10 * time.Second

type teamService struct {
	userRepo       repository.UserRepository
	projectRepo    repository.ProjectRepository
	membershipRepo repository.MembershipRepository
	inviteRepo     repository.InvitationRepository
	emailSvc       EmailService
}

func NewTeamService(
	userRepo repository.UserRepository,
	projectRepo repository.ProjectRepository,
	membershipRepo repository.MembershipRepository,
	inviteRepo repository.InvitationRepository,
	emailSvc EmailService,
) TeamService {
	return &teamService{
		userRepo:       userRepo,
		projectRepo:    projectRepo,
		membershipRepo: membershipRepo,
		inviteRepo:     inviteRepo,
		emailSvc:       emailSvc,
	}
}

// Invite processes a single invite request. Existing users are added to the
// project directly; unknown addresses get a pending invitation and an email.
// AlreadyMember and DuplicateInvite are reported on the outcome, not as
// errors. A failed email send never rolls back the persisted invitation.
func (s *teamService) Invite(ctx context.Context, inviterID, projectID int32, rawEmail string) (*domain.InviteOutcome, error) {
	trimmed := strings.TrimSpace(rawEmail)
	if projectID == 0 || trimmed == "" {
		return nil, ErrInvalidInput
	}
	// Matching is case-insensitive; the trimmed original casing is kept for
	// display on the invitation itself.
	normalized := strings.ToLower(trimmed)

	inviter, err := s.userRepo.GetByID(ctx, inviterID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotAuthenticated
		}
		logger.Error("failed to resolve inviter", "inviter_id", inviterID, "error", err)
		return nil, ErrInviteProcessing
	}

	target, err := s.userRepo.GetByEmail(ctx, normalized)
	switch {
	case err == nil:
		return s.addExistingUser(ctx, projectID, target)
	case errors.Is(err, repository.ErrNotFound):
		return s.createInvitation(ctx, inviter, projectID, trimmed, normalized)
	default:
		logger.Error("failed to look up invitee", "project_id", projectID, "error", err)
		return nil, ErrInviteProcessing
	}
}

// InviteMany applies Invite to each address independently and concurrently.
// The result slice is index-aligned with the input; a hard failure on one
// address is folded into its outcome and never aborts the others.
func (s *teamService) InviteMany(ctx context.Context, inviterID, projectID int32, rawEmails []string) []domain.InviteOutcome {
	outcomes := make([]domain.InviteOutcome, len(rawEmails))

	var wg sync.WaitGroup
	for i, email := range rawEmails {
		wg.Add(1)
		go func(i int, email string) {
			defer wg.Done()
			outcome, err := s.Invite(ctx, inviterID, projectID, email)
			if err != nil {
				outcomes[i] = domain.InviteOutcome{Email: email, Success: false, Error: err.Error()}
				return
			}
			outcomes[i] = *outcome
		}(i, email)
	}
	wg.Wait()

	return outcomes
}

func (s *teamService) addExistingUser(ctx context.Context, projectID int32, target *domain.User) (*domain.InviteOutcome, error) {
	exists, err := s.membershipRepo.Exists(ctx, projectID, target.ID)
	if err != nil {
		logger.Error("failed to check membership", "project_id", projectID, "user_id", target.ID, "error", err)
		return nil, ErrInviteProcessing
	}
	if exists {
		return &domain.InviteOutcome{Email: target.Email, Success: false, Reason: domain.InviteReasonAlreadyMember}, nil
	}

	m := &domain.Membership{ProjectID: projectID, UserID: target.ID, Email: target.Email}
	if err := s.membershipRepo.Add(ctx, m); err != nil {
		// A concurrent request can win the race past the existence check;
		// the unique constraint reports it as the same idempotency signal.
		if errors.Is(err, repository.ErrDuplicate) {
			return &domain.InviteOutcome{Email: target.Email, Success: false, Reason: domain.InviteReasonAlreadyMember}, nil
		}
		logger.Error("failed to add member", "project_id", projectID, "user_id", target.ID, "error", err)
		return nil, ErrInviteProcessing
	}

	return &domain.InviteOutcome{Email: target.Email, Success: true, IsInvitation: false}, nil
}

func (s *teamService) createInvitation(ctx context.Context, inviter *domain.User, projectID int32, displayEmail, normalized string) (*domain.InviteOutcome, error) {
	pending, err := s.inviteRepo.HasPending(ctx, projectID, normalized)
	if err != nil {
		logger.Error("failed to check pending invitations", "project_id", projectID, "error", err)
		return nil, ErrInviteProcessing
	}
	if pending {
		return &domain.InviteOutcome{Email: displayEmail, Success: false, Reason: domain.InviteReasonDuplicateInvite}, nil
	}

	now := time.Now()
	inv := &domain.Invitation{
		Token:     uuid.NewString(),
		ProjectID: projectID,
		Email:     displayEmail,
		InvitedBy: inviter.ID,
		Status:    domain.InvitationStatusPending,
		CreatedOn: now,
		ExpiresOn: now.Add(invitationTTL),
	}
	if err := s.inviteRepo.Create(ctx, inv); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return &domain.InviteOutcome{Email: displayEmail, Success: false, Reason: domain.InviteReasonDuplicateInvite}, nil
		}
		logger.Error("failed to create invitation", "project_id", projectID, "error", err)
		return nil, ErrInviteProcessing
	}

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		// The invitation is persisted; a missing project name only degrades
		// the email, so fall back to a generic label.
		logger.Warn("failed to load project for invitation email", "project_id", projectID, "error", err)
		project = &domain.Project{ID: projectID, Name: "a project"}
	}

	outcome := &domain.InviteOutcome{Email: displayEmail, Success: true, IsInvitation: true}

	sendCtx, cancel := context.WithTimeout(ctx, dispatchTimeout)
	defer cancel()
	if err := s.emailSvc.SendInvitation(sendCtx, displayEmail, inviter.Name, project.Name, inv.Token, projectID); err != nil {
		// The invitation survives; the retry job picks up rows that never
		// got a successful dispatch.
		logger.Error("invitation email dispatch failed", "project_id", projectID, "email", displayEmail, "error", err)
		outcome.Warning = fmt.Sprintf("invitation saved but the email could not be delivered: %v", err)
		return outcome, nil
	}

	if err := s.inviteRepo.MarkDispatched(ctx, inv.Token, time.Now()); err != nil {
		logger.Warn("failed to record invitation dispatch", "token", inv.Token, "error", err)
	}
	return outcome, nil
}

// Accept validates and consumes a pending invitation for the signed-in user.
// Unknown, already-accepted, and mistyped tokens all read as not-found on
// purpose; the caller cannot probe which it was.
func (s *teamService) Accept(ctx context.Context, userID int32, token string) (int32, error) {
	if strings.TrimSpace(token) == "" {
		return 0, ErrInviteNotFound
	}

	inv, err := s.inviteRepo.GetPendingByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrInviteNotFound
		}
		logger.Error("failed to look up invitation", "error", err)
		return 0, ErrInviteProcessing
	}
	if inv.IsExpired() {
		return 0, ErrInviteExpired
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrNotAuthenticated
		}
		logger.Error("failed to resolve accepting user", "user_id", userID, "error", err)
		return 0, ErrInviteProcessing
	}

	if !strings.EqualFold(user.Email, inv.Email) {
		return 0, &EmailMismatchError{SessionEmail: user.Email, InviteEmail: inv.Email}
	}

	now := time.Now()
	exists, err := s.membershipRepo.Exists(ctx, inv.ProjectID, user.ID)
	if err != nil {
		logger.Error("failed to check membership", "project_id", inv.ProjectID, "user_id", user.ID, "error", err)
		return 0, ErrInviteProcessing
	}
	if !exists {
		m := &domain.Membership{ProjectID: inv.ProjectID, UserID: user.ID, Email: user.Email}
		if err := s.membershipRepo.Add(ctx, m); err != nil && !errors.Is(err, repository.ErrDuplicate) {
			logger.Error("failed to add member on acceptance", "project_id", inv.ProjectID, "user_id", user.ID, "error", err)
			return 0, ErrInviteProcessing
		}
	}

	// Close out the invitation either way; an existing membership still
	// consumes the token.
	if err := s.inviteRepo.MarkAccepted(ctx, inv.Token, user.ID, now); err != nil {
		logger.Error("failed to mark invitation accepted", "token", inv.Token, "error", err)
		return 0, ErrInviteProcessing
	}

	logger.Info("invitation accepted", "project_id", inv.ProjectID, "user_id", user.ID)
	return inv.ProjectID, nil
}

func (s *teamService) ListMembers(ctx context.Context, userID, projectID int32) ([]domain.User, []domain.Membership, error) {
	if err := s.requireMember(ctx, projectID, userID); err != nil {
		return nil, nil, err
	}
	return s.membershipRepo.ListByProject(ctx, projectID)
}

func (s *teamService) ListPendingInvitations(ctx context.Context, userID, projectID int32) ([]domain.Invitation, error) {
	if err := s.requireMember(ctx, projectID, userID); err != nil {
		return nil, err
	}
	return s.inviteRepo.ListPendingByProject(ctx, projectID)
}

func (s *teamService) RemoveMember(ctx context.Context, callerID, projectID, memberID int32) error {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project.OwnerID != callerID {
		return ErrNotOwner
	}
	if memberID == project.OwnerID {
		return fmt.Errorf("the project owner cannot be removed")
	}
	return s.membershipRepo.Remove(ctx, projectID, memberID)
}

func (s *teamService) requireMember(ctx context.Context, projectID, userID int32) error {
	exists, err := s.membershipRepo.Exists(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotMember
	}
	return nil
}
