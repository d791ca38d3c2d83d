package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/brightroom/studio-bookings/internal/booking"
	"github.com/brightroom/studio-bookings/internal/checkout"
	"github.com/brightroom/studio-bookings/internal/fulfillment"
	"github.com/brightroom/studio-bookings/internal/holds"
	"github.com/brightroom/studio-bookings/internal/http/handlers"
	"github.com/brightroom/studio-bookings/internal/payments"
	"github.com/brightroom/studio-bookings/internal/platform/mailer"
	"github.com/brightroom/studio-bookings/internal/pricing"
	"github.com/brightroom/studio-bookings/pkg/config"
	"github.com/brightroom/studio-bookings/pkg/events"
	"github.com/brightroom/studio-bookings/pkg/logger"
	mw "github.com/brightroom/studio-bookings/pkg/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	// Hold store: Redis when configured, in-process otherwise.
	var store holds.Store
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			logger.Error("Invalid REDIS_URL", "error", err)
			os.Exit(1)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(context.Background()).Err(); err != nil {
			logger.Error("Failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		store = holds.NewRedisStore(client)
		logger.Info("Using Redis hold store")
	} else {
		store = holds.NewMemoryStore()
		logger.Info("Using in-memory hold store; holds will not survive restarts")
	}

	// Event bus: NATS when configured, no-op otherwise.
	var bus events.Publisher = events.NoopEventBus{}
	if cfg.NATS.URL != "" {
		natsBus, err := events.NewNATSEventBus(cfg.NATS.URL)
		if err != nil {
			logger.Error("Failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer natsBus.Close()
		bus = natsBus
	}

	// Mailer: real MailerSend unless running in dev mode.
	var mail mailer.Service
	if cfg.Email.DevMode || cfg.Email.MailerSendKey == "" {
		mail = mailer.NewDevMailer()
	} else {
		mail = mailer.NewMailer(cfg.Email.MailerSendKey, cfg.Email.FromName, cfg.Email.FromEmail)
	}

	// External calendar feeds, when rooms have them.
	var busy holds.BusySource
	if len(cfg.Scheduling.RoomCalendars) > 0 {
		busy = holds.NewCalendarSource(cfg.Scheduling.RoomCalendars, 5*time.Second)
	}

	priceCfg := pricing.DefaultConfig()
	rules := booking.DefaultRules()
	rules.MinLeadDays = cfg.Scheduling.MinLeadDays

	h := handlers.New(handlers.Deps{
		Config:     cfg,
		Calculator: pricing.NewCalculator(priceCfg),
		Validator:  booking.NewValidator(rules),
		Projector:  checkout.NewProjector(priceCfg),
		Holds:      holds.NewManager(store, busy, cfg.Scheduling.HoldTTL),
		Payments:   payments.NewStripeClient(cfg.Stripe),
		Webhooks:   payments.NewStripeWebhookVerifier(cfg.Stripe.WebhookSecret),
		Relay:      fulfillment.NewHTTPRelay(cfg.Fulfillment.RelayURL, cfg.Fulfillment.Timeout),
		Mailer:     mail,
		Events:     bus,
	})

	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("api"))
	r.Use(mw.Logging)
	r.Use(mw.Recover)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CORS.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Stripe-Signature"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(mw.Health)

	r.Mount("/", h.Routes())

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down API...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Shutdown error", "error", err)
		}
	}()

	logger.Info("Starting booking API",
		"port", cfg.Server.Port,
		"payments", payments.KeyMode(cfg.Stripe.SecretKey),
	)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}
