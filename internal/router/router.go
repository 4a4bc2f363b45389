package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"greenmarket/internal/config"
	"greenmarket/internal/handlers"
	"greenmarket/internal/middleware"
	"greenmarket/internal/models"
	"greenmarket/internal/services"
)

func SetupRouter(db *sqlx.DB, cfg config.Config, logger zerolog.Logger) *mux.Router {
	mailer := services.NewSMTPMailer(cfg.SMTP)
	userService := services.NewUserService(db, logger, mailer)
	authService := services.NewAuthService(cfg, logger)
	productService := services.NewProductService(db, logger)
	categoryService := services.NewCategoryService(db, logger)
	orderService := services.NewOrderService(db, logger)
	reviewService := services.NewReviewService(db, productService, logger)
	blockService := services.NewWhitneyBlockService(db, logger)

	authHandler := handlers.NewAuthHandler(userService, authService, logger)
	adminHandler := handlers.NewAdminHandler(userService, logger)
	productHandler := handlers.NewProductHandler(productService, logger)
	categoryHandler := handlers.NewCategoryHandler(categoryService, logger)
	orderHandler := handlers.NewOrderHandler(orderService, logger)
	reviewHandler := handlers.NewReviewHandler(reviewService, logger)
	blockHandler := handlers.NewWhitneyBlockHandler(blockService, logger)

	r := mux.NewRouter()

	rateLimiter := middleware.NewRateLimiter(rate.Limit(10), 20)

	r.Use(middleware.ErrorHandling(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())
	r.Use(rateLimiter.Middleware())

	api := r.PathPrefix("/api/v1").Subrouter()

	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/signup", authHandler.Signup).Methods("POST")
	auth.HandleFunc("/login", authHandler.Login).Methods("POST")
	auth.HandleFunc("/forgot-password", authHandler.ForgotPassword).Methods("POST")
	auth.HandleFunc("/verify-otp", authHandler.VerifyOTP).Methods("POST")
	auth.HandleFunc("/reset-password", authHandler.ResetPassword).Methods("POST")

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Authentication(cfg.JWTSecret, logger))
	admin.Use(middleware.RequireRole(models.AccountTypeAdmin))
	admin.HandleFunc("/account-requests", adminHandler.ListAccountRequests).Methods("GET")
	admin.HandleFunc("/users", adminHandler.ListApprovedUsers).Methods("GET")
	admin.HandleFunc("/users/custom/{displayId}", adminHandler.GetUserByDisplayID).Methods("GET")
	admin.HandleFunc("/users/{id}", adminHandler.GetUser).Methods("GET")
	admin.HandleFunc("/users/{id}/status", adminHandler.UpdateAccountStatus).Methods("PATCH")
	admin.HandleFunc("/users/{id}/block", adminHandler.BlockUser).Methods("PATCH")
	admin.HandleFunc("/reviews", reviewHandler.ListPending).Methods("GET")
	admin.HandleFunc("/reviews/status", reviewHandler.UpdateStatus).Methods("PATCH")

	categories := api.PathPrefix("/category").Subrouter()
	categories.HandleFunc("", categoryHandler.List).Methods("GET")
	categories.HandleFunc("/{id}", categoryHandler.Get).Methods("GET")

	categoriesAdmin := api.PathPrefix("/category").Subrouter()
	categoriesAdmin.Use(middleware.Authentication(cfg.JWTSecret, logger))
	categoriesAdmin.Use(middleware.RequireRole(models.AccountTypeAdmin))
	categoriesAdmin.HandleFunc("", categoryHandler.Create).Methods("POST")
	categoriesAdmin.HandleFunc("/{id}", categoryHandler.Update).Methods("PUT")
	categoriesAdmin.HandleFunc("/{id}", categoryHandler.Delete).Methods("DELETE")

	// Public catalog and review aggregates need no credentials.
	api.HandleFunc("/product/public", productHandler.ListPublic).Methods("GET")
	api.HandleFunc("/review/get-review/{productId}", reviewHandler.GetAggregate).Methods("GET")

	products := api.PathPrefix("/product").Subrouter()
	products.Use(middleware.Authentication(cfg.JWTSecret, logger))
	products.HandleFunc("", productHandler.List).Methods("GET")
	products.HandleFunc("", productHandler.Create).Methods("POST")
	products.HandleFunc("/{id}", productHandler.Get).Methods("GET")
	products.HandleFunc("/{id}", productHandler.Update).Methods("PATCH")
	products.HandleFunc("/{id}", productHandler.Delete).Methods("DELETE")

	productsAdmin := api.PathPrefix("/product").Subrouter()
	productsAdmin.Use(middleware.Authentication(cfg.JWTSecret, logger))
	productsAdmin.Use(middleware.RequireRole(models.AccountTypeAdmin))
	productsAdmin.HandleFunc("/{id}/add-margin", productHandler.AddProfitMargin).Methods("PATCH")
	productsAdmin.HandleFunc("/{id}/update-margin", productHandler.UpdateProfitMargin).Methods("PATCH")
	productsAdmin.HandleFunc("/{id}/add-tag", productHandler.AddTag).Methods("PATCH")

	reviews := api.PathPrefix("/review").Subrouter()
	reviews.Use(middleware.Authentication(cfg.JWTSecret, logger))
	reviews.HandleFunc("/submit-review", reviewHandler.Submit).Methods("POST")

	// Admin order routes register first so /statistics is not swallowed by
	// the {id} catch-all below.
	ordersAdmin := api.PathPrefix("/order").Subrouter()
	ordersAdmin.Use(middleware.Authentication(cfg.JWTSecret, logger))
	ordersAdmin.Use(middleware.RequireRole(models.AccountTypeAdmin))
	ordersAdmin.HandleFunc("/statistics", orderHandler.Statistics).Methods("GET")
	ordersAdmin.HandleFunc("/{id}", orderHandler.Delete).Methods("DELETE")

	orders := api.PathPrefix("/order").Subrouter()
	orders.Use(middleware.Authentication(cfg.JWTSecret, logger))
	orders.HandleFunc("", orderHandler.Create).Methods("POST")
	orders.HandleFunc("", orderHandler.List).Methods("GET")
	orders.HandleFunc("/customer/{id}", orderHandler.ListByCustomer).Methods("GET")
	orders.HandleFunc("/seller/{id}", orderHandler.ListBySeller).Methods("GET")
	orders.HandleFunc("/custom/{displayId}", orderHandler.GetByDisplayID).Methods("GET")
	orders.HandleFunc("/{id}", orderHandler.Get).Methods("GET")
	orders.HandleFunc("/{id}", orderHandler.Update).Methods("PATCH")

	blocks := api.PathPrefix("/whitney-block").Subrouter()
	blocks.Use(middleware.Authentication(cfg.JWTSecret, logger))
	blocks.HandleFunc("", blockHandler.Create).Methods("POST")
	blocks.HandleFunc("", blockHandler.List).Methods("GET")
	blocks.HandleFunc("/{id}", blockHandler.Get).Methods("GET")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	return r
}
