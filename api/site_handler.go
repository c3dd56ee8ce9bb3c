package api

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/misionvictoriosa/site-backend/database"
	"github.com/misionvictoriosa/site-backend/errs"
)

// siteHandler serves the public surface: the project listing and detail
// pages, the legacy image endpoint, the contact form, and login/logout.
type siteHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
	userRepo    *database.UserRepo
	sessions    sessionManager
}

func newSiteHandler(templates *template.Template, projectRepo *database.ProjectRepo, userRepo *database.UserRepo, sessions sessionManager) siteHandler {
	logger := log.With().Str("handlerName", "siteHandler").Logger()

	return siteHandler{
		responder:   NewResponder(logger, templates),
		logger:      logger,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		sessions:    sessions,
	}
}

// index renders the public listing: every project newest first, with its
// combined image list and at most three characteristics.
func (h siteHandler) index() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("find", "projects", err), "/")
			return
		}

		h.responder.Render(w, r, "index.html", newProjectViews(projects, indexCharacteristicLimit))
	}
}

// projectDetail renders one project with its full characteristic list.
func (h siteHandler) projectDetail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseUintParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, r, err, "/")
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("find", "project", err), "/")
			return
		}
		if project == nil {
			h.responder.WriteError(w, r, errs.NewNotFound("proyecto"), "/")
			return
		}

		h.responder.Render(w, r, "project_detail.html", newProjectView(project, 0))
	}
}

// serveImage streams a project's legacy image. Gallery media are embedded
// as data URIs and have no endpoint of their own.
func (h siteHandler) serveImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseUintParam(r, "projectID")
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.logger.Error().Err(err).Uint("projectID", projectID).Msg("error loading project image")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if project == nil || !project.HasImage() {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "image/jpeg")
		if _, err := w.Write(project.Image); err != nil {
			h.logger.Error().Err(err).Msg("error writing image response")
		}
	}
}

// contact acknowledges a contact-form submission. Nothing is persisted or
// sent.
func (h siteHandler) contact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			h.responder.WriteError(w, r, errs.NewBadRequestError("malformed form"), "/")
			return
		}

		name := strings.TrimSpace(r.FormValue("nombre"))
		message := fmt.Sprintf("Gracias %s, hemos recibido tu mensaje. Te contactaremos pronto.", name)
		h.responder.RedirectWithFlash(w, r, "/", "success", message)
	}
}

// loginForm renders the login page.
func (h siteHandler) loginForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.Render(w, r, "login.html", nil)
	}
}

// login verifies credentials and issues the session cookie. Failures get a
// single invalid-credentials message that never says which field was wrong.
func (h siteHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			h.responder.WriteError(w, r, errs.NewBadRequestError("malformed form"), "/login")
			return
		}

		username := r.FormValue("username")
		password := r.FormValue("password")

		user, err := h.userRepo.FindByUsername(username)
		if err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("find", "user", err), "/login")
			return
		}

		if user == nil || !user.CheckPassword(password) {
			h.responder.RenderWithFlash(w, r, "login.html", nil, "error", "Usuario o contraseña incorrectos.")
			return
		}

		if err := h.sessions.issue(w, user); err != nil {
			h.responder.WriteError(w, r, err, "/login")
			return
		}

		h.logger.Info().Str("username", user.Username).Msg("user logged in")
		h.responder.RedirectWithFlash(w, r, "/admin", "success", "Inicio de sesión exitoso.")
	}
}

// logout clears the session.
func (h siteHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.sessions.clear(w)
		h.responder.RedirectWithFlash(w, r, "/", "success", "Sesión cerrada exitosamente.")
	}
}
