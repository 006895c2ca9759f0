package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/crypto/bcrypt"

	"logitrack/internal/config"
	"logitrack/internal/database"
	"logitrack/internal/handler"
	"logitrack/internal/mw"
	"logitrack/internal/service"
)

func main() {
	cfg := config.New()

	db, err := database.NewDB(cfg.DatabaseURI)
	if err != nil {
		slog.Error("failed to connect to DB", "error", err)
		os.Exit(1)
	}
	defer database.CloseDB(context.Background(), db)

	if err := database.InitSchema(db); err != nil {
		slog.Error("failed to init DB schema", "error", err)
		os.Exit(1)
	}

	adminHash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("failed to hash admin password", "error", err)
		os.Exit(1)
	}

	// Services
	userSvc := service.NewUserService(db)
	recipientSvc := service.NewRecipientService(db)
	orderSvc := service.NewOrderService(db)
	addressSvc := service.NewAddressService(db)
	consolidationSvc := service.NewConsolidationService(db)
	adminSvc := service.NewAdminService(db)

	// Router
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept", "Authorization", "Content-Type",
			"X-Telegram-Id", "X-Telegram-Username", "X-Telegram-First-Name", "X-Telegram-Last-Name",
		},
		ExposedHeaders:   []string{"Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Public routes
	r.Get("/", handler.RootHandler())
	r.Get("/health", handler.HealthHandler())
	r.Get("/api/health", handler.HealthHandler())
	r.Post("/admin/login", handler.AdminLoginHandler(adminHash, cfg.JWTSecret))

	// Identity-scoped routes. The X-Telegram-* headers are trusted as-is.
	r.Group(func(r chi.Router) {
		r.Use(mw.Identity(userSvc))

		r.Get("/api/users/me", handler.MeHandler())

		r.Get("/api/recipients", handler.ListRecipientsHandler(recipientSvc))
		r.Get("/api/recipients/{id}", handler.GetRecipientHandler(recipientSvc))
		r.Post("/api/recipients", handler.CreateRecipientHandler(recipientSvc))
		r.Put("/api/recipients/{id}", handler.UpdateRecipientHandler(recipientSvc))
		r.Delete("/api/recipients/{id}", handler.DeleteRecipientHandler(recipientSvc))

		r.Get("/api/orders", handler.ListOrdersHandler(orderSvc))
		r.Get("/api/orders/{id}", handler.GetOrderHandler(orderSvc))
		r.Post("/api/orders", handler.CreateOrderHandler(orderSvc))
		r.Put("/api/orders/{id}", handler.UpdateOrderHandler(orderSvc))
		r.Delete("/api/orders/{id}", handler.DeleteOrderHandler(orderSvc))
		r.Delete("/api/orders", handler.DeleteOrdersHandler(orderSvc))

		r.Get("/api/delivery-addresses", handler.ListAddressesHandler(addressSvc))
		r.Get("/api/delivery-addresses/{id}", handler.GetAddressHandler(addressSvc))
		r.Post("/api/delivery-addresses", handler.CreateAddressHandler(addressSvc))
		r.Put("/api/delivery-addresses/{id}", handler.UpdateAddressHandler(addressSvc))
		r.Delete("/api/delivery-addresses/{id}", handler.DeleteAddressHandler(addressSvc))

		r.Get("/api/consolidations", handler.ListConsolidationsHandler(consolidationSvc))
		r.Get("/api/consolidations/{id}", handler.GetConsolidationHandler(consolidationSvc))
		r.Post("/api/consolidations", handler.CreateConsolidationHandler(consolidationSvc))
		r.Put("/api/consolidations/{id}", handler.UpdateConsolidationHandler(consolidationSvc))
		r.Delete("/api/consolidations/{id}", handler.DeleteConsolidationHandler(consolidationSvc))
	})

	// Read-only reporting surface
	r.Group(func(r chi.Router) {
		r.Use(mw.AdminAuth(cfg.JWTSecret))

		r.Get("/admin/stats", handler.AdminStatsHandler(adminSvc))
		r.Get("/admin/users", handler.AdminUsersHandler(adminSvc))
		r.Get("/admin/recipients", handler.AdminRecipientsHandler(adminSvc))
		r.Get("/admin/orders", handler.AdminOrdersHandler(adminSvc))
		r.Get("/admin/consolidations", handler.AdminConsolidationsHandler(adminSvc))
		r.Get("/admin/delivery-addresses", handler.AdminAddressesHandler(adminSvc))
	})

	srv := &http.Server{
		Addr:         cfg.RunAddress,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	slog.Info("starting server", "addr", cfg.RunAddress)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-quit
	slog.Info("shutting down...")

	ctxShut, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()

	if err := srv.Shutdown(ctxShut); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}

	slog.Info("server stopped")
}
