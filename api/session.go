package api

import (
	"encoding/base64"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/misionvictoriosa/site-backend/models"
)

const (
	sessionCookieName = "mv_session"
	flashCookieName   = "mv_flash"
	sessionTTL        = 24 * time.Hour
)

type sessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// sessionManager issues and verifies the signed session cookie carrying the
// authenticated identity.
type sessionManager struct {
	secret []byte
}

func newSessionManager(secret string) sessionManager {
	return sessionManager{secret: []byte(secret)}
}

// issue signs a session token for the user and sets it as an HTTP-only
// cookie.
func (m sessionManager) issue(w http.ResponseWriter, user *models.User) error {
	now := time.Now()
	claims := sessionClaims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// clear removes the session cookie, ending the session.
func (m sessionManager) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// authenticate verifies the session cookie and rebuilds the auth context.
// A missing, expired, or tampered cookie yields ok=false.
func (m sessionManager) authenticate(r *http.Request) (authContext, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return authContext{}, false
	}

	var claims sessionClaims
	token, err := jwt.ParseWithClaims(cookie.Value, &claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return authContext{}, false
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return authContext{}, false
	}

	return authContext{
		UserID:   uint(userID),
		Username: claims.Username,
		IsAdmin:  claims.Username == models.AdminUsername,
	}, true
}

// flash is a one-shot message shown on the next rendered page. Category is
// "success" or "error".
type flash struct {
	Category string
	Message  string
}

// setFlash queues a flash message via a short-lived cookie.
func setFlash(w http.ResponseWriter, category, message string) {
	value := base64.URLEncoding.EncodeToString([]byte(category + "|" + message))
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads and clears the queued flash message, if any.
func popFlash(w http.ResponseWriter, r *http.Request) []flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	decoded, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	category, message, found := strings.Cut(string(decoded), "|")
	if !found {
		return nil
	}
	return []flash{{Category: category, Message: message}}
}
