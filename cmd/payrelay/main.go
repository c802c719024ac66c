package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	v10validator "github.com/go-playground/validator/v10"
	"github.com/ivanpodgorny/payrelay/internal/client"
	"github.com/ivanpodgorny/payrelay/internal/config"
	"github.com/ivanpodgorny/payrelay/internal/entity"
	"github.com/ivanpodgorny/payrelay/internal/handler"
	"github.com/ivanpodgorny/payrelay/internal/middleware"
	"github.com/ivanpodgorny/payrelay/internal/repository"
	"github.com/ivanpodgorny/payrelay/internal/security"
	"github.com/ivanpodgorny/payrelay/internal/service"
	"github.com/ivanpodgorny/payrelay/internal/validator"
	"github.com/ivanpodgorny/payrelay/internal/worker"
	"go.uber.org/zap"
)

func main() {
	if err := Execute(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func Execute() error {
	cfg, err := config.NewBuilder().LoadFlags().LoadEnv().Build()
	if err != nil {
		return err
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}

	defer func() {
		_ = logger.Sync()
	}()

	validationEngine := v10validator.New()
	if err := validationEngine.RegisterValidation("orderid", validator.OrderID); err != nil {
		return err
	}

	var (
		ctx, cancel = context.WithCancel(context.Background())
		r           = chi.NewRouter()
		v           = validator.New(validationEngine)
		wv          = security.NewWebhookVerifier(cfg.WebhookSecret())
		wg          = &sync.WaitGroup{}
		scj         = make(chan entity.StatusCheckJob, 8)
		scr         = make(chan entity.StatusCheckResult, 8)
		sr          = repository.NewStatus()
		cf          = client.NewCashfree(cfg.GatewayAddress(), cfg.ClientID(), cfg.ClientSecret())
		scw         = worker.NewStatusChecker(sr, cf, scj, scr, wg, logger, 30*time.Second, 4)
		cuw         = worker.NewCacheUpdater(sr, scr, wg, 4)
		ps          = service.NewPayment(sr, cf, scj, cfg.FallbackPhone())
		ph          = handler.NewPayment(ps, v)
		hh          = handler.NewHealth(cfg.Environment())
	)

	defer func() {
		cancel()
		wg.Wait()
	}()

	scw.Do(ctx)
	cuw.Do(ctx)

	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.SignatureHeader},
	}))

	r.Get("/", hh.Check)
	r.Post("/generate-token", ph.GenerateToken)
	r.Get("/verify-payment/{orderID}", ph.VerifyPayment)

	r.Group(func(r chi.Router) {
		r.Use(middleware.VerifySignature(wv))

		r.Post("/webhook/payment", ph.Webhook)
	})

	logger.Info("server starting",
		zap.String("address", cfg.ServerAddress()),
		zap.String("environment", cfg.Environment()),
	)

	return http.ListenAndServe(cfg.ServerAddress(), r)
}
