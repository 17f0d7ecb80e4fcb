package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"go-shop/internal/middleware"
	"go-shop/internal/session"
)

// PageHandler serves the pure display flows: home, about and the checkout
// stub.
type PageHandler struct {
	logger zerolog.Logger
}

func NewPageHandler(logger zerolog.Logger) *PageHandler {
	return &PageHandler{logger: logger}
}

func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.respondWithJSON(w, http.StatusOK, page("home", middleware.CurrentUser(r), session.PopFlash(w, r)))
}

func (h *PageHandler) About(w http.ResponseWriter, r *http.Request) {
	h.respondWithJSON(w, http.StatusOK, page("about", middleware.CurrentUser(r), session.PopFlash(w, r)))
}

// Checkout is a stub: the page exists but no payment processing is wired
// behind it.
func (h *PageHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	data := page("checkout", middleware.CurrentUser(r), session.PopFlash(w, r))
	data["message"] = "Checkout is not available yet."
	h.respondWithJSON(w, http.StatusOK, data)
}

func (h *PageHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
