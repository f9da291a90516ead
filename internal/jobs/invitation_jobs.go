package jobs

import (
	"context"
	"time"

	"stepline-backend/internal/config"
	"stepline-backend/internal/logger"
	"stepline-backend/internal/repository/postgres"
	"stepline-backend/internal/service"
)

// reminderWindow is how close to expiry a pending invitation gets its one
// reminder email.
const reminderWindow = 48 * time.Hour

const jobTimeout = 5 * time.Minute

// JobRunner coordinates the scheduled invitation jobs. Email dispatch is
// deliberately decoupled from invitation persistence; these jobs are the
// retry half of that contract.
type JobRunner struct {
	store    *postgres.Store
	emailSvc service.EmailService
	config   *config.Config
}

func NewJobRunner(store *postgres.Store, emailSvc service.EmailService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		store:    store,
		emailSvc: emailSvc,
		config:   cfg,
	}
}

// Config exposes the loaded configuration to the scheduler.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery so a failing job
// never takes the scheduler process down.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("job panicked", "job", jobName, "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	logger.Info("job started", "job", jobName)
	jobFunc(ctx)
	logger.Info("job finished", "job", jobName, "duration", time.Since(start))
}

// RetryUndeliveredInvitations re-sends pending invitations whose inline
// email dispatch never succeeded.
func (jr *JobRunner) RetryUndeliveredInvitations() {
	jr.runWithRecovery("RetryUndeliveredInvitations", func(ctx context.Context) {
		invitations, err := jr.store.InvitationRepository.ListUndispatched(ctx)
		if err != nil {
			logger.Error("failed to list undelivered invitations", "error", err)
			return
		}

		for _, inv := range invitations {
			project, err := jr.store.ProjectRepository.GetByID(ctx, inv.ProjectID)
			if err != nil {
				logger.Error("failed to load project for retry", "project_id", inv.ProjectID, "error", err)
				continue
			}
			inviter, err := jr.store.UserRepository.GetByID(ctx, inv.InvitedBy)
			if err != nil {
				logger.Error("failed to load inviter for retry", "user_id", inv.InvitedBy, "error", err)
				continue
			}

			if err := jr.emailSvc.SendInvitation(ctx, inv.Email, inviter.Name, project.Name, inv.Token, inv.ProjectID); err != nil {
				logger.Error("invitation retry dispatch failed", "token", inv.Token, "error", err)
				continue
			}
			if err := jr.store.InvitationRepository.MarkDispatched(ctx, inv.Token, time.Now()); err != nil {
				logger.Warn("failed to record retried dispatch", "token", inv.Token, "error", err)
			}
		}
	})
}

// SendExpiryReminders nudges invitees whose pending invitation expires
// within the reminder window. Each invitation is reminded at most once.
func (jr *JobRunner) SendExpiryReminders() {
	jr.runWithRecovery("SendExpiryReminders", func(ctx context.Context) {
		invitations, err := jr.store.InvitationRepository.ListExpiringSoon(ctx, reminderWindow)
		if err != nil {
			logger.Error("failed to list expiring invitations", "error", err)
			return
		}

		for _, inv := range invitations {
			project, err := jr.store.ProjectRepository.GetByID(ctx, inv.ProjectID)
			if err != nil {
				logger.Error("failed to load project for reminder", "project_id", inv.ProjectID, "error", err)
				continue
			}

			if err := jr.emailSvc.SendInvitationReminder(ctx, inv.Email, project.Name, inv.Token, inv.ProjectID); err != nil {
				logger.Error("reminder dispatch failed", "token", inv.Token, "error", err)
				continue
			}
			if err := jr.store.InvitationRepository.MarkReminded(ctx, inv.Token, time.Now()); err != nil {
				logger.Warn("failed to record reminder", "token", inv.Token, "error", err)
			}
		}
	})
}
