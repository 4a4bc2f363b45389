package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"greenmarket/internal/config"
	"greenmarket/internal/db"
	"greenmarket/internal/logger"
	"greenmarket/internal/router"
	"greenmarket/internal/services"
)

func main() {
	cfg := config.LoadConfig()

	log := logger.InitLogger()
	log.Info().Msg("Starting greenmarket API")

	database := db.InitDB(cfg.DBUrl)
	defer database.Close()

	db.RunMigrations(database)

	// The admin account is seeded opportunistically; a failure must not
	// prevent boot.
	if cfg.Admin.Complete() {
		mailer := services.NewSMTPMailer(cfg.SMTP)
		userService := services.NewUserService(database, log, mailer)
		if err := userService.SeedAdmin(cfg.Admin); err != nil {
			log.Error().Err(err).Msg("Admin seed failed")
		}
	} else {
		log.Warn().Msg("Admin seed configuration incomplete, skipping")
	}

	r := router.SetupRouter(database, cfg, log)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Info().Msgf("Server listening on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Info().Msg("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}

	log.Info().Msg("Server stopped")
}
