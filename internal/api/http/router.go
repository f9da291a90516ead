package http

import (
	"stepline-backend/internal/security"
	"stepline-backend/internal/service"

	"github.com/gorilla/mux"
)

// NewRouter wires all HTTP routes. Everything under /api except the auth
// endpoints requires a valid access token; the emailed /invite/accept link
// does too, since accepting requires knowing who is signing in.
func NewRouter(
	tokens security.TokenManager,
	authSvc service.AuthService,
	userSvc service.UserService,
	projectSvc service.ProjectService,
	stepSvc service.StepService,
	teamSvc service.TeamService,
) *mux.Router {
	authHandler := NewAuthHandler(authSvc)
	userHandler := NewUserHandler(userSvc)
	projectHandler := NewProjectHandler(projectSvc, stepSvc)
	teamHandler := NewTeamHandler(teamSvc)
	authMw := NewAuthMiddleware(tokens)

	r := mux.NewRouter()

	// Public auth endpoints
	r.HandleFunc("/api/auth/session", authHandler.HandleSession).Methods("POST")
	r.HandleFunc("/api/auth/refresh", authHandler.HandleRefresh).Methods("POST")

	// Authenticated API
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMw.Handler)

	api.HandleFunc("/me", userHandler.HandleGetProfile).Methods("GET")
	api.HandleFunc("/me", userHandler.HandleUpdateProfile).Methods("PATCH")

	api.HandleFunc("/projects", projectHandler.HandleCreate).Methods("POST")
	api.HandleFunc("/projects", projectHandler.HandleList).Methods("GET")
	api.HandleFunc("/projects/{id}", projectHandler.HandleGet).Methods("GET")
	api.HandleFunc("/projects/{id}", projectHandler.HandleUpdate).Methods("PATCH")
	api.HandleFunc("/projects/{id}", projectHandler.HandleDelete).Methods("DELETE")

	api.HandleFunc("/projects/{id}/steps", projectHandler.HandleAddStep).Methods("POST")
	api.HandleFunc("/steps/{id}", projectHandler.HandleUpdateStep).Methods("PATCH")
	api.HandleFunc("/steps/{id}/toggle", projectHandler.HandleToggleStep).Methods("POST")
	api.HandleFunc("/steps/{id}", projectHandler.HandleDeleteStep).Methods("DELETE")

	api.HandleFunc("/projects/{id}/team", teamHandler.HandleListMembers).Methods("GET")
	api.HandleFunc("/projects/{id}/team/invites", teamHandler.HandleInvite).Methods("POST")
	api.HandleFunc("/projects/{id}/team/invites", teamHandler.HandleListInvitations).Methods("GET")
	api.HandleFunc("/projects/{id}/team/{memberId}", teamHandler.HandleRemoveMember).Methods("DELETE")
	api.HandleFunc("/invites/accept", teamHandler.HandleAccept).Methods("POST")

	// The emailed link lands here.
	invite := r.PathPrefix("/invite").Subrouter()
	invite.Use(authMw.Handler)
	invite.HandleFunc("/accept", teamHandler.HandleAccept).Methods("GET")

	return r
}
