// @title                       Kanso Habits API
// @version                     1.0
// @description                 Daily habit tracking with streaks, statistics and achievements.
// @BasePath                    /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"

	_ "github.com/comitanigiacomo/kanso-habits/docs"
	"github.com/comitanigiacomo/kanso-habits/internal/config"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("Critical: invalid configuration: %v", err)
	}

	startCtx, startCancel := context.WithTimeout(context.Background(), 10*time.Second)
	app, err := newApplication(startCtx, cfg, services.SystemClock(cfg.Location))
	startCancel()
	if err != nil {
		log.Fatalf("Critical: Failed to start: %v", err)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      app.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Kanso Habits running on http://localhost:%s (timezone %s)", cfg.Port, cfg.Location)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown error: %v", err)
	}

	_ = app.Close(ctx)

	log.Println("Server stopped gracefully.")
}
