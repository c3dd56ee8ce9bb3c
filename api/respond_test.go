package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misionvictoriosa/site-backend/errs"
)

func testResponder(t *testing.T) Responder {
	t.Helper()
	templates, err := ParseTemplates()
	require.NoError(t, err)
	return NewResponder(zerolog.Nop(), templates)
}

func TestRenderWithFlashShowsMessageImmediately(t *testing.T) {
	responder := testResponder(t)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	rr := httptest.NewRecorder()
	responder.RenderWithFlash(rr, req, "login.html", nil, "error", "Usuario o contraseña incorrectos.")

	assert.Contains(t, rr.Body.String(), "Usuario o contraseña incorrectos.")
}

func TestRenderMergesQueuedAndCookieFlashes(t *testing.T) {
	responder := testResponder(t)

	seed := httptest.NewRecorder()
	setFlash(seed, "success", "Proyecto creado exitosamente.")
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	for _, cookie := range seed.Result().Cookies() {
		req.AddCookie(cookie)
	}

	rr := httptest.NewRecorder()
	responder.RenderWithFlash(rr, req, "login.html", nil, "error", "Mensaje inmediato.")

	body := rr.Body.String()
	assert.Contains(t, body, "Mensaje inmediato.")
	assert.Contains(t, body, "Proyecto creado exitosamente.")
}

func TestRenderErrorPicksMessageByClass(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{"validation with details", errs.NewValidationError("titulo", "Título y descripción son obligatorios."), "Título y descripción son obligatorios."},
		{"duplicate", errs.NewAlreadyExists("usuario"), "El nombre de usuario ya existe."},
		{"bad request", errs.NewBadRequestError("malformed multipart form"), "Datos del formulario inválidos."},
		{"unknown", assert.AnError, "Ha ocurrido un error inesperado."},
	}

	responder := testResponder(t)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/login", nil)
			rr := httptest.NewRecorder()
			responder.RenderError(rr, req, tc.err, "login.html", nil)

			assert.Contains(t, rr.Body.String(), tc.message)
		})
	}
}
