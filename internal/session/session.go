// Package session binds authenticated identities to browsing sessions. The
// binding lives entirely on the client as a signed, tamper-evident JWT in an
// HttpOnly cookie carrying the user's numeric id; there is no server-side
// session store. The identity is re-resolved against the credential store on
// every request that needs it.
package session

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"go-shop/internal/apperror"
	"go-shop/internal/models"
)

const CookieName = "session_token"

// UserLookup resolves a session's user id against the credential store.
type UserLookup interface {
	GetUserByID(userID int) (*models.User, error)
}

type Claims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret []byte
	ttl    time.Duration
	users  UserLookup
	logger zerolog.Logger
}

func NewManager(secret string, ttl time.Duration, users UserLookup, logger zerolog.Logger) *Manager {
	if secret == "" {
		secret = "default-secret-key-change-in-production"
		logger.Warn().Msg("SESSION_SECRET not set, using default key")
	}

	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		users:  users,
		logger: logger,
	}
}

// Login binds the request's session to the given identity by placing a
// signed credential in the response.
func (m *Manager) Login(w http.ResponseWriter, user *models.User) error {
	expirationTime := time.Now().Add(m.ttl)

	claims := &Claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		m.logger.Error().Err(err).Msg("Error signing session token")
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    tokenString,
		Path:     "/",
		Expires:  expirationTime,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Logout clears the session binding unconditionally.
func (m *Manager) Logout(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Current resolves the identity bound to the request. A missing, malformed,
// expired or tampered credential yields the anonymous sentinel. A valid
// credential whose user id no longer exists in the store is a dangling
// session and is treated as an implicit logout.
func (m *Manager) Current(w http.ResponseWriter, r *http.Request) *models.User {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return models.Anonymous()
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid || claims.UserID == models.AnonymousID {
		m.Logout(w)
		return models.Anonymous()
	}

	user, err := m.users.GetUserByID(claims.UserID)
	if err != nil {
		if apperror.IsNotFound(err) {
			m.logger.Warn().Int("user_id", claims.UserID).Msg("Dangling session, logging out")
		} else {
			m.logger.Error().Err(err).Int("user_id", claims.UserID).Msg("Identity lookup failed")
		}
		m.Logout(w)
		return models.Anonymous()
	}

	return user
}
