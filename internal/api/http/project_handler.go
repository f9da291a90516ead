package http

import (
	"errors"
	"net/http"
	"strconv"

	"stepline-backend/internal/domain"
	"stepline-backend/internal/repository"
	"stepline-backend/internal/service"

	"github.com/gorilla/mux"
)

type ProjectHandler struct {
	projectSvc service.ProjectService
	stepSvc    service.StepService
}

func NewProjectHandler(projectSvc service.ProjectService, stepSvc service.StepService) *ProjectHandler {
	return &ProjectHandler{projectSvc: projectSvc, stepSvc: stepSvc}
}

func pathID(r *http.Request, name string) (int32, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int32(id), true
}

func writeProjectError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotMember):
		writeError(w, http.StatusForbidden, "not a member of this project")
	case errors.Is(err, service.ErrNotOwner):
		writeError(w, http.StatusForbidden, "only the project owner can do this")
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "project not found")
	case errors.Is(err, service.ErrEmptyProjectName), errors.Is(err, service.ErrEmptyStepTitle):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "failed to process request")
	}
}

type projectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func (h *ProjectHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req projectRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	project, err := h.projectSvc.CreateProject(r.Context(), userID, req.Name, req.Description)
	if err != nil {
		writeProjectError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

func (h *ProjectHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	projects, err := h.projectSvc.ListMyProjects(r.Context(), userID)
	if err != nil {
		writeProjectError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

type projectDetailResponse struct {
	Project *domain.Project `json:"project"`
	Steps   []domain.Step   `json:"steps"`
}

func (h *ProjectHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
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

	project, steps, err := h.projectSvc.GetProject(r.Context(), userID, projectID)
	if err != nil {
		writeProjectError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projectDetailResponse{Project: project, Steps: steps})
}

func (h *ProjectHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
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

	var req projectRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	project, err := h.projectSvc.UpdateProject(r.Context(), userID, projectID, req.Name, req.Description, domain.ProjectStatus(req.Status))
	if err != nil {
		writeProjectError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.projectSvc.DeleteProject(r.Context(), userID, projectID); err != nil {
		writeProjectError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type stepRequest struct {
	Title    string `json:"title"`
	Note     string `json:"note"`
	Position int32  `json:"position"`
}

func (h *ProjectHandler) HandleAddStep(w http.ResponseWriter, r *http.Request) {
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

	var req stepRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	step, err := h.stepSvc.AddStep(r.Context(), userID, projectID, req.Title, req.Note)
	if err != nil {
		writeProjectError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, step)
}

func (h *ProjectHandler) HandleUpdateStep(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	stepID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid step id")
		return
	}

	var req stepRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	step, err := h.stepSvc.UpdateStep(r.Context(), userID, stepID, req.Title, req.Note, req.Position)
	if err != nil {
		writeProjectError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, step)
}

func (h *ProjectHandler) HandleToggleStep(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	stepID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid step id")
		return
	}

	step, err := h.stepSvc.ToggleStep(r.Context(), userID, stepID)
	if err != nil {
		writeProjectError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, step)
}

func (h *ProjectHandler) HandleDeleteStep(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	stepID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid step id")
		return
	}

	if err := h.stepSvc.DeleteStep(r.Context(), userID, stepID); err != nil {
		writeProjectError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
