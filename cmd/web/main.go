package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/safar/go-json-shop/internal/config"
	"github.com/safar/go-json-shop/internal/database"
	"github.com/safar/go-json-shop/internal/session"
	"github.com/safar/go-json-shop/internal/store"
	"github.com/safar/go-json-shop/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load config")
	}

	db, err := database.Open(&cfg.Store)
	if err != nil {
		log.WithError(err).Fatal("Failed to open store")
	}

	if err := store.Seed(context.Background(), db); err != nil {
		log.WithError(err).Fatal("Failed to seed store")
	}

	renderer, err := web.NewRenderer(cfg.Server.TemplateDir)
	if err != nil {
		log.WithError(err).Fatal("Failed to load templates")
	}

	sessions := session.NewManager(&cfg.Session)
	router := web.Router(db, sessions, renderer, cfg.Server.PublicDir)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.WithField("port", cfg.Server.Port).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	waitForKillSignal()
	srv.Shutdown(context.Background())
}

func waitForKillSignal() {
	killSignalChan := make(chan os.Signal, 1)
	signal.Notify(killSignalChan, os.Interrupt, syscall.SIGTERM)

	switch <-killSignalChan {
	case os.Interrupt:
		log.Info("Got SIGINT...")
	case syscall.SIGTERM:
		log.Info("Got SIGTERM...")
	}
}
