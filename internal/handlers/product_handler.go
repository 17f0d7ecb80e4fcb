package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"go-shop/internal/apperror"
	"go-shop/internal/forms"
	"go-shop/internal/middleware"
	"go-shop/internal/services"
	"go-shop/internal/session"
)

type ProductHandler struct {
	productService *services.ProductService
	logger         zerolog.Logger
}

func NewProductHandler(db *sql.DB, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		productService: services.NewProductService(db, logger),
		logger:         logger,
	}
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.List()
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list products")
		h.respondWithError(w, apperror.StatusCode(err), "list_failed", "Failed to list products")
		return
	}

	data := page("all_products", middleware.CurrentUser(r), session.PopFlash(w, r))
	data["products"] = products
	h.respondWithJSON(w, http.StatusOK, data)
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "invalid_product_id", "Invalid product ID")
		return
	}

	product, err := h.productService.GetByID(productID)
	if err != nil {
		if apperror.IsNotFound(err) {
			h.respondWithError(w, http.StatusNotFound, "product_not_found", "Product not found")
			return
		}
		h.logger.Error().Err(err).Int("product_id", productID).Msg("Failed to fetch product")
		h.respondWithError(w, apperror.StatusCode(err), "fetch_failed", "Failed to fetch product")
		return
	}

	data := page("product", middleware.CurrentUser(r), session.PopFlash(w, r))
	data["product"] = product
	h.respondWithJSON(w, http.StatusOK, data)
}

// ShowAddProduct renders the admin product form. The admin gate runs before
// this handler, so an unauthorized identity never sees the form.
func (h *ProductHandler) ShowAddProduct(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)
	h.respondWithJSON(w, http.StatusOK, page("add_product", user, session.PopFlash(w, r)))
}

func (h *ProductHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid form body")
		return
	}

	form := forms.ParseAddProduct(r.PostForm)
	if errs := form.Validate(); errs != nil {
		h.respondWithValidationErrors(w, errs)
		return
	}

	creator := middleware.CurrentUser(r)
	_, err := h.productService.Create(form.ToRequest(), creator.ID)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to create product")
		h.respondWithError(w, apperror.StatusCode(err), "create_failed", "Failed to create product")
		return
	}

	redirect(w, r, "/all-products")
}

func (h *ProductHandler) respondWithValidationErrors(w http.ResponseWriter, errs forms.Errors) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":  "validation_failed",
		"fields": errs,
	})
}

func (h *ProductHandler) respondWithError(w http.ResponseWriter, code int, errorCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   errorCode,
		"message": message,
	})
}

func (h *ProductHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
