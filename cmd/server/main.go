package main

import (
	"database/sql"
	"log"
	"net/http"

	"lavka-be/internal/config"
	"lavka-be/internal/db"
	"lavka-be/internal/logger"
	"lavka-be/internal/middleware"
	"lavka-be/internal/monopay"
	"lavka-be/internal/order"
	"lavka-be/internal/payment"
	"lavka-be/internal/payment/webhook"
	"lavka-be/internal/storage"
)

// seams for testing
var (
	initDBFunc      = db.InitDB
	startServerFunc = http.ListenAndServe
)

func setupRouter(h *orderHandler, webhookHandler http.HandlerFunc, secret string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	mux.Handle("POST /webhook/monopay", webhookHandler)

	mux.Handle("POST /orders/checkout", middleware.RequireAuth(secret, http.HandlerFunc(h.Checkout)))
	mux.Handle("POST /orders/finalize", middleware.RequireAuth(secret, http.HandlerFunc(h.Finalize)))
	mux.Handle("GET /payments/status", middleware.RequireAuth(secret, http.HandlerFunc(h.PaymentStatus)))

	return logger.RequestIDMiddleware(
		middleware.LoggingMiddleware(
			middleware.RateLimitMiddleware(mux),
		),
	)
}

func newServer(cfg *config.Config, database *sql.DB) http.Handler {
	images := storage.NewPublicStorage(cfg.StorageBaseURL)
	client := monopay.NewClient(cfg.MonoToken, cfg.MonoBaseURL)

	gateway := payment.NewMonoAdapter(client, images, cfg.MonoWebhookSecret)
	paySvc := payment.NewService(gateway)
	payRepo := payment.NewRepository(database)

	orderRepo := order.NewRepository(database)
	orders := order.NewService(orderRepo, paySvc, payRepo, order.CheckoutConfig{
		RedirectURL: cfg.RedirectURL,
		WebHookURL:  cfg.WebhookURL,
		Validity:    cfg.InvoiceValidity,
	})

	wh := webhook.NewHandler(orders, payRepo, gateway)
	h := &orderHandler{orders: orders}

	return setupRouter(h, wh.InvoiceStatus, cfg.SecretKey)
}

func run() error {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	router := newServer(cfg, database)

	log.Printf("🚀 server running at http://localhost:%s/", cfg.AppPort)
	return startServerFunc(":"+cfg.AppPort, router)
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
