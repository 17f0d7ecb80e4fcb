package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"go-shop/internal/apperror"
	"go-shop/internal/forms"
	"go-shop/internal/middleware"
	"go-shop/internal/models"
	"go-shop/internal/services"
	"go-shop/internal/session"
)

type AuthHandler struct {
	userService *services.UserService
	sessions    *session.Manager
	logger      zerolog.Logger
}

func NewAuthHandler(db *sql.DB, sessions *session.Manager, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		userService: services.NewUserService(db, logger),
		sessions:    sessions,
		logger:      logger,
	}
}

func (h *AuthHandler) ShowRegister(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)
	h.respondWithJSON(w, http.StatusOK, page("register", user, session.PopFlash(w, r)))
}

// Register creates a user and immediately authenticates them. A duplicate
// email redirects to the login page with a flash instead of creating
// anything.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid form body")
		return
	}

	form := forms.ParseRegister(r.PostForm)
	if errs := form.Validate(); errs != nil {
		h.respondWithValidationErrors(w, errs)
		return
	}

	user, err := h.userService.Register(&models.RegisterRequest{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		if apperror.IsConflict(err) {
			session.SetFlash(w, apperror.Message(err))
			redirect(w, r, "/login")
			return
		}
		h.logger.Error().Err(err).Msg("Registration failed")
		h.respondWithError(w, apperror.StatusCode(err), "registration_failed", apperror.Message(err))
		return
	}

	if err := h.sessions.Login(w, user); err != nil {
		h.respondWithError(w, http.StatusInternalServerError, "session_failed", "Failed to create session")
		return
	}

	redirect(w, r, "/all-products")
}

func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)
	h.respondWithJSON(w, http.StatusOK, page("login", user, session.PopFlash(w, r)))
}

// Login authenticates an email/password pair. Unknown email and wrong
// password each flash their own message back to the login page.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid form body")
		return
	}

	form := forms.ParseLogin(r.PostForm)
	if errs := form.Validate(); errs != nil {
		h.respondWithValidationErrors(w, errs)
		return
	}

	user, err := h.userService.Authenticate(&models.LoginRequest{
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		if apperror.IsAuth(err) {
			session.SetFlash(w, apperror.Message(err))
			redirect(w, r, "/login")
			return
		}
		h.logger.Error().Err(err).Msg("Login failed")
		h.respondWithError(w, apperror.StatusCode(err), "login_failed", apperror.Message(err))
		return
	}

	if err := h.sessions.Login(w, user); err != nil {
		h.respondWithError(w, http.StatusInternalServerError, "session_failed", "Failed to create session")
		return
	}

	redirect(w, r, "/all-products")
}

// Logout is an unconditional transition to anonymous.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout(w)
	redirect(w, r, "/all-products")
}

func (h *AuthHandler) respondWithValidationErrors(w http.ResponseWriter, errs forms.Errors) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":  "validation_failed",
		"fields": errs,
	})
}

func (h *AuthHandler) respondWithError(w http.ResponseWriter, code int, errorCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   errorCode,
		"message": message,
	})
}

func (h *AuthHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
