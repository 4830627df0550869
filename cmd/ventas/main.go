// Package main запускает HTTP-сервер сервиса продаж.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mmeshcher/ventas-system/internal/config"
	"github.com/mmeshcher/ventas-system/internal/handler"
	"github.com/mmeshcher/ventas-system/internal/middleware"
	"github.com/mmeshcher/ventas-system/internal/notify"
	"github.com/mmeshcher/ventas-system/internal/repository"
	"github.com/mmeshcher/ventas-system/internal/service"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	repo, err := repository.NewPostgresRepository(cfg.DatabaseURI)
	if err != nil {
		sugar.Fatalw("database initialization error", "error", err.Error())
	}

	registry := prometheus.NewRegistry()

	mailCfg := notify.Config{
		From:      cfg.MailFrom,
		Recipient: cfg.ConfirmationRecipient,
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUsername,
		Password:  cfg.SMTPPassword,
		Timeout:   cfg.SMTPTimeout,
	}
	if mailCfg.From == "" || mailCfg.Recipient == "" {
		sugar.Warn("order confirmation addresses are not configured, emails will fail")
	}
	notifier := notify.NewNotifier(mailCfg, notify.NewSMTPTransport(mailCfg), registry)

	svc := service.NewService(repo, notifier, logger)
	defer svc.Close()

	metrics := middleware.NewMetrics(registry)
	h := handler.NewHandler(svc, logger, metrics)

	r := h.SetupRouter()

	server := &http.Server{
		Addr:              cfg.RunAddress,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sugar.Infow("starting ventas server", "addr", cfg.RunAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown при отмене контекста (сигнал или ошибка сервера)
	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}
