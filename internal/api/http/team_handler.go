package http

import (
	"errors"
	"net/http"

	"stepline-backend/internal/domain"
	"stepline-backend/internal/service"
)

type TeamHandler struct {
	teamSvc service.TeamService
}

func NewTeamHandler(teamSvc service.TeamService) *TeamHandler {
	return &TeamHandler{teamSvc: teamSvc}
}

type inviteRequest struct {
	Emails []string `json:"emails"`
}

type inviteResponse struct {
	Success  bool                   `json:"success"`
	Outcomes []domain.InviteOutcome `json:"outcomes"`
}

// HandleInvite processes a batch of invite addresses for a project. Overall
// success is the AND of the per-address outcomes; failures are reported per
// item, never as a single aggregated error.
func (h *TeamHandler) HandleInvite(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	projectID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	var req inviteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Emails) == 0 {
		writeError(w, http.StatusBadRequest, "at least one email is required")
		return
	}

	outcomes := h.teamSvc.InviteMany(r.Context(), userID, projectID, req.Emails)

	success := true
	for _, o := range outcomes {
		if !o.Success {
			success = false
			break
		}
	}
	writeJSON(w, http.StatusOK, inviteResponse{Success: success, Outcomes: outcomes})
}

type acceptRequest struct {
	Token string `json:"token"`
}

type acceptResponse struct {
	ProjectID int32 `json:"project_id"`
}

// HandleAccept consumes a pending invitation for the signed-in user. The
// GET variant serves the emailed link; the POST variant serves the app.
func (h *TeamHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var token string
	if r.Method == http.MethodGet {
		token = r.URL.Query().Get("token")
	} else {
		var req acceptRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		token = req.Token
	}

	projectID, err := h.teamSvc.Accept(r.Context(), userID, token)
	if err != nil {
		h.writeAcceptError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, acceptResponse{ProjectID: projectID})
}

func (h *TeamHandler) writeAcceptError(w http.ResponseWriter, err error) {
	var mismatch *service.EmailMismatchError
	switch {
	case errors.Is(err, service.ErrInviteNotFound):
		writeError(w, http.StatusNotFound, service.ErrInviteNotFound.Error())
	case errors.Is(err, service.ErrInviteExpired):
		writeError(w, http.StatusGone, service.ErrInviteExpired.Error())
	case errors.Is(err, service.ErrNotAuthenticated):
		writeError(w, http.StatusUnauthorized, "authentication required")
	case errors.As(err, &mismatch):
		writeError(w, http.StatusForbidden, mismatch.Error())
	default:
		writeError(w, http.StatusInternalServerError, service.ErrInviteProcessing.Error())
	}
}

type teamMemberResponse struct {
	User   domain.User       `json:"user"`
	Member domain.Membership `json:"membership"`
}

func (h *TeamHandler) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	projectID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	users, members, err := h.teamSvc.ListMembers(r.Context(), userID, projectID)
	if err != nil {
		writeProjectError(w, err)
		return
	}

	resp := make([]teamMemberResponse, 0, len(users))
	for i := range users {
		resp = append(resp, teamMemberResponse{User: users[i], Member: members[i]})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *TeamHandler) HandleListInvitations(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	projectID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	invitations, err := h.teamSvc.ListPendingInvitations(r.Context(), userID, projectID)
	if err != nil {
		writeProjectError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invitations)
}

func (h *TeamHandler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	projectID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}
	memberID, ok := pathID(r, "memberId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid member id")
		return
	}

	if err := h.teamSvc.RemoveMember(r.Context(), userID, projectID, memberID); err != nil {
		writeProjectError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
