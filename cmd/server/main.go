package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/flutterdev77/purple-bank-transfer/internal/adapter/http/controller"
	"github.com/flutterdev77/purple-bank-transfer/internal/adapter/http/middleware"
	"github.com/flutterdev77/purple-bank-transfer/internal/adapter/http/router"
	"github.com/flutterdev77/purple-bank-transfer/internal/adapter/session"
	"github.com/flutterdev77/purple-bank-transfer/internal/backend"
	"github.com/flutterdev77/purple-bank-transfer/internal/config"
	"github.com/flutterdev77/purple-bank-transfer/internal/usecase/service_interfaces"
	"github.com/flutterdev77/purple-bank-transfer/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	client := backend.NewSimulatedClient(backend.WithDelay(cfg.SubmissionDelay))
	sessions := session.NewStore(func() service_interfaces.WizardService {
		return services.NewWizardService(client)
	})

	wizardController := controller.NewWizardController(sessions)
	historyController := controller.NewHistoryController(client)
	authMiddleware := middleware.BasicAuth(cfg.ChannelID, cfg.ChannelKey)

	mux := router.New(wizardController, historyController, authMiddleware)

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.SubmissionTimeout + 15*time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("listening on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
