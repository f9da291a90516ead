package domain

import "time"

type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
)

// Invitation is a time-bounded, single-use offer for an email address to
// join a project. The token is the sole credential needed to accept it.
// Email keeps the casing the inviter typed; matching is case-insensitive.
type Invitation struct {
	Token        string           `json:"token"`
	ProjectID    int32            `json:"project_id"`
	Email        string           `json:"email"`
	InvitedBy    int32            `json:"invited_by"`
	Status       InvitationStatus `json:"status"`
	CreatedOn    time.Time        `json:"created_on"`
	ExpiresOn    time.Time        `json:"expires_on"`
	AcceptedOn   *time.Time       `json:"accepted_on,omitempty"`
	AcceptedBy   *int32           `json:"accepted_by,omitempty"`
	DispatchedOn *time.Time       `json:"-"`
	RemindedOn   *time.Time       `json:"-"`
}

// IsExpired reports whether the invitation is past its expiry. Expiry is
// evaluated at read time; an expired invitation still reads as pending in
// storage but can no longer be accepted.
func (i *Invitation) IsExpired() bool {
	return time.Now().After(i.ExpiresOn)
}
