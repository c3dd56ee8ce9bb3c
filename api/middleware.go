package api

import (
	"net/http"
	"os"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// authMiddleware guards routes behind the session cookie. requireLogin and
// requireAdmin are composed explicitly in front of handler groups.
type authMiddleware struct {
	sessions sessionManager
}

func newAuthMiddleware(sessions sessionManager) authMiddleware {
	return authMiddleware{sessions: sessions}
}

// requireLogin verifies the session cookie and injects the auth context.
// Unauthenticated requests are flashed and redirected to the login page.
func (m authMiddleware) requireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth, ok := m.sessions.authenticate(r)
		if !ok {
			setFlash(w, "error", "Debe iniciar sesión para acceder a esta página.")
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctxWithAuth(r.Context(), auth)))
	})
}

// requireAdmin restricts a route to the distinguished admin identity. It
// must run after requireLogin; non-admin users are sent back to the
// dashboard.
func (m authMiddleware) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth, ok := ctxAuth(r.Context())
		if !ok {
			setFlash(w, "error", "Debe iniciar sesión para acceder a esta página.")
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		if !auth.IsAdmin {
			setFlash(w, "error", "Solo el administrador puede acceder a esta función.")
			http.Redirect(w, r, "/admin", http.StatusFound)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withSession injects the auth context when a valid session cookie is
// present, without requiring one. Public pages use it to vary rendering for
// logged-in visitors.
func (m authMiddleware) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth, ok := m.sessions.authenticate(r); ok {
			r = r.WithContext(ctxWithAuth(r.Context(), auth))
		}
		next.ServeHTTP(w, r)
	})
}

type statusResponseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusResponseWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.status = statusCode
		w.wroteHeader = true
		w.ResponseWriter.WriteHeader(statusCode)
	}
}

func LogInternalServerErrors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Interface("panic", err).
					Str("stack", string(debug.Stack())).
					Msg("Recovered from panic")

				// Write 500 if nothing written yet
				if !srw.wroteHeader {
					srw.WriteHeader(http.StatusInternalServerError)
				}
			}
		}()

		next.ServeHTTP(srw, r)

		// Optionally log 500s that weren't panics (e.g. manually set by handlers)
		if srw.status == http.StatusInternalServerError {
			log.Error().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("500 error response")
		}
	})
}

// ColoredHTTPLoggingMiddleware logs HTTP requests with colored output based on status codes
func ColoredHTTPLoggingMiddleware(next http.Handler) http.Handler {
	// Set up colored console writer for development
	colorLogger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		next.ServeHTTP(srw, r)

		duration := time.Since(start)

		// Color-code based on HTTP status codes
		var logEvent *zerolog.Event
		switch {
		case srw.status >= 500:
			logEvent = colorLogger.Error()
		case srw.status >= 400:
			logEvent = colorLogger.Warn()
		default:
			logEvent = colorLogger.Info()
		}

		logEvent.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", srw.status).
			Dur("duration", duration).
			Str("remote_addr", r.RemoteAddr).
			Msg("HTTP Request")
	})
}
