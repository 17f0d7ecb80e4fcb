package router

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"go-shop/internal/config"
	"go-shop/internal/handlers"
	"go-shop/internal/mailer"
	"go-shop/internal/middleware"
	"go-shop/internal/services"
	"go-shop/internal/session"
)

func SetupRouter(db *sql.DB, cfg config.Config, logger zerolog.Logger) *mux.Router {
	userService := services.NewUserService(db, logger)
	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL, userService, logger)

	var m mailer.Mailer
	if cfg.SMTPAddr != "" {
		m = mailer.NewSMTPMailer(cfg.SMTPAddr, cfg.SMTPFrom, cfg.SMTPTo, logger)
	} else {
		logger.Warn().Msg("SMTP_ADDR not set, contact mail delivery disabled")
		m = mailer.NewLogMailer(logger)
	}
	contactService := services.NewContactService(m, logger)

	authHandler := handlers.NewAuthHandler(db, sessions, logger)
	productHandler := handlers.NewProductHandler(db, logger)
	contactHandler := handlers.NewContactHandler(contactService, logger)
	pageHandler := handlers.NewPageHandler(logger)

	r := mux.NewRouter()

	rateLimiter := middleware.NewRateLimiter(rate.Limit(10), 20)

	r.Use(middleware.ErrorHandling(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())
	r.Use(rateLimiter.Middleware())
	// Identity resolution runs before every handler, so authorization checks
	// never see an unresolved identity.
	r.Use(middleware.Identity(sessions))

	r.HandleFunc("/", pageHandler.Home).Methods("GET")
	r.HandleFunc("/about", pageHandler.About).Methods("GET")
	r.HandleFunc("/checkout", pageHandler.Checkout).Methods("GET")

	r.HandleFunc("/register", authHandler.ShowRegister).Methods("GET")
	r.HandleFunc("/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/login", authHandler.ShowLogin).Methods("GET")
	r.HandleFunc("/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/logout", authHandler.Logout).Methods("GET")

	r.HandleFunc("/contact", contactHandler.ShowContact).Methods("GET")
	r.HandleFunc("/contact", contactHandler.SubmitContact).Methods("POST")

	r.HandleFunc("/all-products", productHandler.ListProducts).Methods("GET")
	r.HandleFunc("/product", productHandler.GetProduct).Methods("GET", "POST")

	// The gate wraps the whole /new-post flow: an unauthorized identity never
	// even sees the form.
	privileged := middleware.NewPrivilegedIDs(cfg.AdminUserID)
	admin := r.PathPrefix("/new-post").Subrouter()
	admin.Use(middleware.RequireAdmin(privileged))
	admin.HandleFunc("", productHandler.ShowAddProduct).Methods("GET")
	admin.HandleFunc("", productHandler.AddProduct).Methods("POST")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	return r
}
