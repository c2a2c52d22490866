package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mamafavourite/api/internal/alert"
	"github.com/mamafavourite/api/internal/config"
	"github.com/mamafavourite/api/internal/database"
	"github.com/mamafavourite/api/internal/notify"
	"github.com/mamafavourite/api/internal/payment"
	"github.com/mamafavourite/api/internal/router"
	"github.com/mamafavourite/api/internal/service"
	"github.com/mamafavourite/api/internal/ws"
)

func main() {
	cfg := config.Load()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Unable to ping database: %v", err)
	}
	log.Println("Connected to database")

	queries := database.New(pool)

	hub := ws.NewHub()
	go hub.Run()

	provider := payment.NewStripeProvider(cfg.StripeSecretKey, cfg.StripeSuccessURL, cfg.StripeCancelURL)
	notifier := notify.NewResendDispatcher(cfg.ResendAPIKey, cfg.FromEmail, cfg.ChefEmail)
	svc := service.NewCheckoutService(queries, provider, notifier)

	// Console bell for operators running the API on the counter
	// machine; the dashboard's own audio rides on the ws events.
	alerts := alert.NewEngine(alert.SounderFunc(func() {
		fmt.Print("\a")
	}), alert.Config{})
	alerts.EnableAudio()
	defer alerts.Stop()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router.New(cfg, queries, svc, hub, alerts),
		// No write timeout: the websocket connections are long-lived.
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on :%s", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-stop:
		log.Printf("Received %s, shutting down", sig)
		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("ERROR: graceful shutdown: %v", err)
		}
	}
}
