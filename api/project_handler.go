package api

import (
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/misionvictoriosa/site-backend/database"
	"github.com/misionvictoriosa/site-backend/errs"
	"github.com/misionvictoriosa/site-backend/models"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
	mediaRepo   *database.MediaRepo
	userRepo    *database.UserRepo
}

func newProjectHandler(templates *template.Template, projectRepo *database.ProjectRepo, mediaRepo *database.MediaRepo, userRepo *database.UserRepo) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger, templates),
		logger:      logger,
		projectRepo: projectRepo,
		mediaRepo:   mediaRepo,
		userRepo:    userRepo,
	}
}

// dashboardData feeds the admin dashboard: all projects newest first plus
// every account.
type dashboardData struct {
	Projects []ProjectView
	Users    []*models.User
}

// dashboard renders the admin overview of projects and users.
func (h projectHandler) dashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("find", "projects", err), "/")
			return
		}

		users, err := h.userRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("find", "users", err), "/")
			return
		}

		h.responder.Render(w, r, "admin.html", dashboardData{
			Projects: newProjectViews(projects, 0),
			Users:    users,
		})
	}
}

// projectFormData feeds the create/edit form. Project is nil on create.
type projectFormData struct {
	Project *ProjectView
	Action  string
}

// newProjectForm renders the empty project form.
func (h projectHandler) newProjectForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.Render(w, r, "project_form.html", projectFormData{Action: "Crear"})
	}
}

// createProject handles the create submission: required title/description,
// optional legacy image, gallery files numbered in submission order, and new
// characteristics, all written in one transaction.
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := parseProjectForm(r)
		if err != nil {
			h.responder.RenderError(w, r, err, "project_form.html", projectFormData{Action: "Crear"})
			return
		}

		project := models.Project{
			Title:       form.Title,
			Description: form.Description,
			Image:       form.Image,
		}

		if err := h.projectRepo.Create(&project, form.Gallery, form.NewCharacteristics); err != nil {
			h.logger.Error().Err(err).Msg("error saving project")
			h.responder.RenderWithFlash(w, r, "project_form.html", projectFormData{Action: "Crear"}, "error", "Error al crear el proyecto.")
			return
		}

		h.responder.RedirectWithFlash(w, r, "/admin", "success", "Proyecto creado exitosamente.")
	}
}

// editProjectForm renders the form pre-filled with the project's current
// state, including the existing gallery and characteristics.
func (h projectHandler) editProjectForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseUintParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, r, err, "/admin")
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("find", "project", err), "/admin")
			return
		}
		if project == nil {
			h.responder.WriteError(w, r, errs.NewNotFound("proyecto"), "/admin")
			return
		}

		view := newProjectView(project, 0)
		h.responder.Render(w, r, "project_form.html", projectFormData{
			Project: &view,
			Action:  "Editar",
		})
	}
}

// updateProject applies an edit submission atomically: title/description,
// optional legacy image replacement, appended gallery files, and
// characteristic updates/deletes/adds. Any failure rolls back the whole
// submission and returns the admin to the edit view.
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseUintParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, r, err, "/admin")
			return
		}
		editURL := fmt.Sprintf("/admin/project/%d/edit", projectID)

		existing, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("find", "project", err), "/admin")
			return
		}
		if existing == nil {
			h.responder.WriteError(w, r, errs.NewNotFound("proyecto"), "/admin")
			return
		}

		form, err := parseProjectForm(r)
		if err != nil {
			h.responder.WriteError(w, r, err, editURL)
			return
		}

		edit := database.ProjectEdit{
			Title:                 form.Title,
			Description:           form.Description,
			Image:                 form.Image,
			NewMedia:              form.Gallery,
			UpdateCharacteristics: form.UpdateCharacteristics,
			DeleteCharacteristics: form.DeleteCharacteristics,
			NewCharacteristics:    form.NewCharacteristics,
		}

		if err := h.projectRepo.ApplyEdit(projectID, edit); err != nil {
			h.responder.WriteError(w, r, errs.NewTransactionFailedError("project update", err), editURL)
			return
		}

		h.responder.RedirectWithFlash(w, r, "/admin", "success", "Proyecto actualizado exitosamente.")
	}
}

// deleteProject removes a project; the cascade removes its media and
// characteristics with it.
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseUintParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, r, err, "/admin")
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("find", "project", err), "/admin")
			return
		}
		if project == nil {
			h.responder.WriteError(w, r, errs.NewNotFound("proyecto"), "/admin")
			return
		}

		if err := h.projectRepo.Delete(projectID); err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("delete", "project", err), "/admin")
			return
		}

		h.responder.RedirectWithFlash(w, r, "/admin", "success", "Proyecto eliminado exitosamente.")
	}
}

// deleteMedia removes one gallery image and returns the admin to the owning
// project's edit view, or the dashboard when the owner cannot be determined.
func (h projectHandler) deleteMedia() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mediaID, err := parseUintParam(r, "mediaID")
		if err != nil {
			h.responder.WriteError(w, r, err, "/admin")
			return
		}

		media, err := h.mediaRepo.FindByID(mediaID)
		if err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("find", "media", err), "/admin")
			return
		}
		if media == nil {
			h.responder.WriteError(w, r, errs.NewNotFound("recurso"), "/admin")
			return
		}

		if err := h.mediaRepo.Delete(mediaID); err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("delete", "media", err), "/admin")
			return
		}

		target := "/admin"
		if media.ProjectID != 0 {
			target = fmt.Sprintf("/admin/project/%d/edit", media.ProjectID)
		}
		h.responder.RedirectWithFlash(w, r, target, "success", "Recurso eliminado exitosamente.")
	}
}

// parseUintParam reads a numeric chi URL parameter.
func parseUintParam(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return 0, errs.NewBadRequestError("missing " + name)
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errs.NewBadRequestError("invalid " + name)
	}
	return uint(value), nil
}
