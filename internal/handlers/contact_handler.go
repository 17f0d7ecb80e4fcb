package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"go-shop/internal/apperror"
	"go-shop/internal/forms"
	"go-shop/internal/middleware"
	"go-shop/internal/services"
	"go-shop/internal/session"
)

type ContactHandler struct {
	contactService *services.ContactService
	logger         zerolog.Logger
}

func NewContactHandler(contactService *services.ContactService, logger zerolog.Logger) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		logger:         logger,
	}
}

func (h *ContactHandler) ShowContact(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)
	h.respondWithJSON(w, http.StatusOK, page("contact", user, session.PopFlash(w, r)))
}

// SubmitContact validates the form and hands it to the mailer. Both the
// success and the failure of delivery are flashed back to the contact page.
func (h *ContactHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid form body")
		return
	}

	form := forms.ParseContact(r.PostForm)
	if errs := form.Validate(); errs != nil {
		h.respondWithValidationErrors(w, errs)
		return
	}

	if err := h.contactService.Submit(form.ToMessage()); err != nil {
		h.logger.Error().Err(err).Msg("Contact submission failed")
		session.SetFlash(w, apperror.Message(err))
		redirect(w, r, "/contact")
		return
	}

	session.SetFlash(w, services.MsgContactSent)
	redirect(w, r, "/contact")
}

func (h *ContactHandler) respondWithValidationErrors(w http.ResponseWriter, errs forms.Errors) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":  "validation_failed",
		"fields": errs,
	})
}

func (h *ContactHandler) respondWithError(w http.ResponseWriter, code int, errorCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   errorCode,
		"message": message,
	})
}

func (h *ContactHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
