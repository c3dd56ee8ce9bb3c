package api

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/misionvictoriosa/site-backend/database"
	"github.com/misionvictoriosa/site-backend/errs"
	"github.com/misionvictoriosa/site-backend/models"
)

type userHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
}

func newUserHandler(templates *template.Template, userRepo *database.UserRepo) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder: NewResponder(logger, templates),
		logger:    logger,
		userRepo:  userRepo,
	}
}

// userFormData feeds the create/edit form. User is nil on create.
type userFormData struct {
	User   *models.User
	Action string
}

// newUserForm renders the empty account form.
func (h userHandler) newUserForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.Render(w, r, "user_form.html", userFormData{Action: "Crear"})
	}
}

// createUser inserts a new account. A username held by any existing account
// is rejected before anything is written.
func (h userHandler) createUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			h.responder.WriteError(w, r, errs.NewBadRequestError("malformed form"), "/admin")
			return
		}

		username := strings.TrimSpace(r.FormValue("username"))
		password := r.FormValue("password")
		if username == "" || password == "" {
			err := errs.NewValidationError("username", "Usuario y contraseña son obligatorios.")
			h.responder.RenderError(w, r, err, "user_form.html", userFormData{Action: "Crear"})
			return
		}

		taken, err := h.userRepo.UsernameTaken(username, 0)
		if err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("find", "user", err), "/admin")
			return
		}
		if taken {
			h.responder.RenderError(w, r, errs.NewAlreadyExists("usuario"), "user_form.html", userFormData{Action: "Crear"})
			return
		}

		hash, err := models.HashPassword(password)
		if err != nil {
			h.responder.WriteError(w, r, err, "/admin")
			return
		}

		user := models.User{Username: username, PasswordHash: hash}
		if err := h.userRepo.Add(&user); err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("create", "user", err), "/admin")
			return
		}

		h.responder.RedirectWithFlash(w, r, "/admin", "success", "Usuario creado exitosamente.")
	}
}

// editUserForm renders the form pre-filled with the account's username.
func (h userHandler) editUserForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := parseUintParam(r, "userID")
		if err != nil {
			h.responder.WriteError(w, r, err, "/admin")
			return
		}

		user, err := h.userRepo.FindByID(userID)
		if err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("find", "user", err), "/admin")
			return
		}
		if user == nil {
			h.responder.WriteError(w, r, errs.NewNotFound("usuario"), "/admin")
			return
		}

		h.responder.Render(w, r, "user_form.html", userFormData{User: user, Action: "Editar"})
	}
}

// updateUser renames an account and, only when a new password was supplied,
// replaces its hash. The duplicate check excludes the account itself.
func (h userHandler) updateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := parseUintParam(r, "userID")
		if err != nil {
			h.responder.WriteError(w, r, err, "/admin")
			return
		}

		user, err := h.userRepo.FindByID(userID)
		if err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("find", "user", err), "/admin")
			return
		}
		if user == nil {
			h.responder.WriteError(w, r, errs.NewNotFound("usuario"), "/admin")
			return
		}

		if err := r.ParseForm(); err != nil {
			h.responder.WriteError(w, r, errs.NewBadRequestError("malformed form"), "/admin")
			return
		}

		username := strings.TrimSpace(r.FormValue("username"))
		password := r.FormValue("password")
		if username == "" {
			err := errs.NewValidationError("username", "El nombre de usuario es obligatorio.")
			h.responder.RenderError(w, r, err, "user_form.html", userFormData{User: user, Action: "Editar"})
			return
		}

		taken, err := h.userRepo.UsernameTaken(username, userID)
		if err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("find", "user", err), "/admin")
			return
		}
		if taken {
			h.responder.RenderError(w, r, errs.NewAlreadyExists("usuario"), "user_form.html", userFormData{User: user, Action: "Editar"})
			return
		}

		user.Username = username
		if password != "" {
			hash, err := models.HashPassword(password)
			if err != nil {
				h.responder.WriteError(w, r, err, "/admin")
				return
			}
			user.PasswordHash = hash
		}

		if err := h.userRepo.Update(user); err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("update", "user", err), "/admin")
			return
		}

		h.responder.RedirectWithFlash(w, r, "/admin", "success", "Usuario actualizado exitosamente.")
	}
}

// deleteUser removes an account. The distinguished admin account is
// protected and can never be deleted.
func (h userHandler) deleteUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := parseUintParam(r, "userID")
		if err != nil {
			h.responder.WriteError(w, r, err, "/admin")
			return
		}

		user, err := h.userRepo.FindByID(userID)
		if err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("find", "user", err), "/admin")
			return
		}
		if user == nil {
			h.responder.WriteError(w, r, errs.NewNotFound("usuario"), "/admin")
			return
		}

		if user.IsAdmin() {
			h.responder.WriteError(w, r, errs.NewProtectedAccountError(user.Username), "/admin")
			return
		}

		if err := h.userRepo.Delete(userID); err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("delete", "user", err), "/admin")
			return
		}

		h.responder.RedirectWithFlash(w, r, "/admin", "success", "Usuario eliminado exitosamente.")
	}
}
