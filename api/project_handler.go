package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
}

func newProjectHandler(projectRepo *database.ProjectRepo) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
	}
}

// getAllProjects retrieves all projects
// @Summary Get all projects
// @Description Retrieves all projects from the database
// @Tags Projects
// @Accept json
// @Produce json
// @Success 200 {array} models.Project "List of projects"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching projects"
// @Router /api/projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}

		if projects == nil {
			projects = []*models.Project{}
		}
		h.responder.WriteJSON(w, projects)
	}
}

// createProject creates a new project
// @Summary Create project
// @Description Creates a new project in the database
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body models.Project true "Project data"
// @Success 201 {object} models.Project "Created project"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error creating project"
// @Router /api/projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var project models.Project
		if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("project", err))
			return
		}

		project.Normalize()
		if err := project.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projectRepo.Add(&project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create project", "project", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, project)
	}
}

// updateProject replaces an existing project
// @Summary Update project
// @Description Updates an existing project in the database (full-record replace)
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Param project body models.Project true "Updated project data"
// @Success 200 {object} models.Project "Updated project"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error updating project"
// @Router /api/projects/{projectID} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseIDParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existing, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		var project models.Project
		if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("project", err))
			return
		}

		// Full-record replace. ID and creation time come from the stored row.
		project.ID = projectID
		project.CreatedAt = existing.CreatedAt

		project.Normalize()
		if err := project.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projectRepo.Update(&project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update project", "project", err))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// deleteProject deletes a project by ID
// @Summary Delete project
// @Description Deletes a project from the database by ID
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} map[string]string "Success message"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid projectID"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error deleting project"
// @Router /api/projects/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseIDParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := h.projectRepo.FindByID(projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		if err := h.projectRepo.Delete(projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete project", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "Project deleted successfully",
		})
	}
}

// parseIDParam extracts and parses a uuid path parameter.
func parseIDParam(r *http.Request, name string) (uuid.UUID, error) {
	idStr := chi.URLParam(r, name)
	if idStr == "" {
		return uuid.Nil, errs.NewBadRequestError("missing " + name)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid " + name)
	}
	return id, nil
}
