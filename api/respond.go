package api

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/misionvictoriosa/site-backend/errs"
)

type Responder struct {
	logger    zerolog.Logger
	templates *template.Template
}

func NewResponder(logger zerolog.Logger, templates *template.Template) Responder {
	return Responder{logger: logger, templates: templates}
}

// page is the envelope every rendered template receives.
type page struct {
	Flashes         []flash
	IsAuthenticated bool
	IsAdmin         bool
	Data            any
}

// Render executes the named template with the standard page envelope:
// pending flash messages plus the request's authentication state.
func (r Responder) Render(w http.ResponseWriter, req *http.Request, name string, data any) {
	r.render(w, req, name, data, nil)
}

// RenderWithFlash renders the named template with a message shown on this
// response. Flash cookies only surface on the next request, so failures
// that re-render the same form must pass their message through here.
func (r Responder) RenderWithFlash(w http.ResponseWriter, req *http.Request, name string, data any, category, message string) {
	r.render(w, req, name, data, []flash{{Category: category, Message: message}})
}

// RenderError re-renders the given form with the error's flash message, for
// failures that keep the user on the page they submitted.
func (r Responder) RenderError(w http.ResponseWriter, req *http.Request, err error, name string, data any) {
	var apiErr *errs.ApiErr

	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Str("path", req.URL.Path).Msg("unexpected error")
		r.RenderWithFlash(w, req, name, data, "error", "Ha ocurrido un error inesperado.")
		return
	}

	r.logger.Warn().Str("path", req.URL.Path).Msg(apiErr.GetFullError())
	r.RenderWithFlash(w, req, name, data, "error", flashMessage(apiErr))
}

func (r Responder) render(w http.ResponseWriter, req *http.Request, name string, data any, queued []flash) {
	auth, authenticated := ctxAuth(req.Context())
	p := page{
		Flashes:         append(queued, popFlash(w, req)...),
		IsAuthenticated: authenticated,
		IsAdmin:         auth.IsAdmin,
		Data:            data,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := r.templates.ExecuteTemplate(w, name, p); err != nil {
		r.logger.Error().Err(err).Str("template", name).Msg("error rendering template")
	}
}

// RedirectWithFlash queues a flash message and redirects.
func (r Responder) RedirectWithFlash(w http.ResponseWriter, req *http.Request, location, category, message string) {
	setFlash(w, category, message)
	http.Redirect(w, req, location, http.StatusFound)
}

// WriteError surfaces an error as a flash message and a redirect to
// fallback. Known error classes keep their user-facing message; anything
// unexpected is logged and shown as a generic failure.
func (r Responder) WriteError(w http.ResponseWriter, req *http.Request, err error, fallback string) {
	var apiErr *errs.ApiErr

	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Str("path", req.URL.Path).Msg("unexpected error")
		r.RedirectWithFlash(w, req, fallback, "error", "Ha ocurrido un error inesperado.")
		return
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().Str("path", req.URL.Path).Msg(apiErr.GetFullError())
	} else {
		r.logger.Warn().Str("path", req.URL.Path).Msg(apiErr.GetFullError())
	}

	r.RedirectWithFlash(w, req, fallback, "error", flashMessage(apiErr))
}

// flashMessage picks the user-facing text for a known error class.
func flashMessage(err *errs.ApiErr) string {
	switch {
	case errs.IsNotFound(err):
		return "El recurso solicitado no existe."
	case errs.IsProtectedAccount(err):
		return "No se puede eliminar al usuario administrador."
	case errs.IsAlreadyExists(err):
		return "El nombre de usuario ya existe."
	case errs.IsValidation(err):
		if err.Details != "" {
			return err.Details
		}
		return "Datos del formulario inválidos."
	case errs.IsBadRequest(err):
		return "Datos del formulario inválidos."
	case errs.IsTransactionFailed(err):
		return "Error al actualizar el proyecto."
	default:
		return "Ha ocurrido un error inesperado."
	}
}
