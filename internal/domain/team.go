package domain

// InviteReason tags the idempotency signals of the invite flow. They are
// reported on the outcome, not raised as errors.
type InviteReason string

const (
	InviteReasonAlreadyMember   InviteReason = "already_member"
	InviteReasonDuplicateInvite InviteReason = "duplicate_invite"
)

// InviteOutcome is the per-address result of processing one invite request.
// IsInvitation distinguishes the invitation path (no account yet, email
// sent) from the direct-add path (existing user added immediately).
type InviteOutcome struct {
	Email        string       `json:"email"`
	Success      bool         `json:"success"`
	IsInvitation bool         `json:"is_invitation"`
	Reason       InviteReason `json:"reason,omitempty"`
	Warning      string       `json:"warning,omitempty"`
	Error        string       `json:"error,omitempty"`
}
