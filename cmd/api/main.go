package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"dog-training-api/internal/adapters/auth/tokens"
	"dog-training-api/internal/app"
	"dog-training-api/internal/config"
	"dog-training-api/internal/notify"
	"dog-training-api/internal/platform/logger"
	"dog-training-api/internal/ports/auth"
	"dog-training-api/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging)

	// Sin SMTP configurado los mails van al log (dev). La cola y los
	// templates son los mismos en ambos modos.
	var mailer notify.Mailer
	if cfg.SMTP.Enabled() {
		mailer = notify.NewSMTPMailer(notify.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			User:     cfg.SMTP.User,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
			FromName: cfg.SMTP.FromName,
			StartTLS: cfg.SMTP.StartTLS,
			Timeout:  cfg.SMTP.Timeout,
		})
	} else {
		log.Warn().Msg("smtp not configured, emails go to the log")
		mailer = notify.LogMailer{Log: log}
	}

	a, err := app.New(cfg, log, mailer)
	if err != nil {
		log.Fatal().Err(err).Msg("app init failed")
	}
	a.Start()

	var verifier auth.AuthVerifier
	if cfg.Auth.JWTSecret != "" {
		verifier = tokens.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	} else {
		log.Warn().Msg("no jwt secret, auth in dev mode (X-Debug-User-ID)")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router.New(a, router.Options{AuthVerifier: verifier}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting server")
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
		}
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	a.Stop(ctx)
}
