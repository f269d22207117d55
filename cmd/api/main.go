package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/salesdesk/internal/attachment"
	attachmentStore "github.com/MrJamesThe3rd/salesdesk/internal/attachment/store"
	"github.com/MrJamesThe3rd/salesdesk/internal/auth"
	authStore "github.com/MrJamesThe3rd/salesdesk/internal/auth/store"
	"github.com/MrJamesThe3rd/salesdesk/internal/cache"
	"github.com/MrJamesThe3rd/salesdesk/internal/config"
	"github.com/MrJamesThe3rd/salesdesk/internal/contract"
	contractStore "github.com/MrJamesThe3rd/salesdesk/internal/contract/store"
	"github.com/MrJamesThe3rd/salesdesk/internal/customer"
	customerStore "github.com/MrJamesThe3rd/salesdesk/internal/customer/store"
	"github.com/MrJamesThe3rd/salesdesk/internal/database"
	salesdeskHttp "github.com/MrJamesThe3rd/salesdesk/internal/http"
	attachmentHandler "github.com/MrJamesThe3rd/salesdesk/internal/http/attachment"
	authHandler "github.com/MrJamesThe3rd/salesdesk/internal/http/auth"
	contractHandler "github.com/MrJamesThe3rd/salesdesk/internal/http/contract"
	customerHandler "github.com/MrJamesThe3rd/salesdesk/internal/http/customer"
	importsHandler "github.com/MrJamesThe3rd/salesdesk/internal/http/imports"
	ledgerHandler "github.com/MrJamesThe3rd/salesdesk/internal/http/ledger"
	reportHandler "github.com/MrJamesThe3rd/salesdesk/internal/http/report"
	"github.com/MrJamesThe3rd/salesdesk/internal/importer"
	"github.com/MrJamesThe3rd/salesdesk/internal/ledger"
	ledgerStore "github.com/MrJamesThe3rd/salesdesk/internal/ledger/store"
	"github.com/MrJamesThe3rd/salesdesk/internal/report"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	blobs, err := attachment.NewDiskStore(cfg.Storage.AttachmentDir)
	if err != nil {
		return err
	}

	var (
		contractOpts = []contract.Option{contract.WithCompletionPolicy(cfg.Policy.Completion)}
		ledgerOpts   = []ledger.Option{ledger.WithOverridePolicy(cfg.Policy.AllowOverLimitOverride)}
	)

	if cfg.Redis.Addr != "" {
		rdb, err := cache.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			slog.Warn("redis unavailable, contract cache disabled", "addr", cfg.Redis.Addr, "error", err)
		} else {
			defer rdb.Close()

			snapshots := cache.NewContracts(rdb, cfg.Redis.TTL)
			contractOpts = append(contractOpts, contract.WithCache(snapshots))
			ledgerOpts = append(ledgerOpts, ledger.WithCache(snapshots))

			slog.Info("contract cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL)
		}
	}

	var (
		authService       = auth.NewService(authStore.New(db), cfg.Auth.Secret, cfg.Auth.TokenTTL, cfg.Auth.RefreshWindow)
		contractService   = contract.NewService(contractStore.New(db), contractOpts...)
		customerService   = customer.NewService(customerStore.New(db), contractService)
		ledgerService     = ledger.NewService(ledgerStore.New(db), ledgerOpts...)
		attachmentService = attachment.NewService(attachmentStore.New(db), blobs, cfg.Storage.MaxUploadBytes)
		reportService     = report.NewService(contractService)
	)

	if cfg.Auth.BootstrapEmail != "" {
		created, err := authService.EnsureManager(ctx, cfg.Auth.BootstrapEmail, cfg.Auth.BootstrapPassword)
		if err != nil {
			return err
		}

		if created {
			slog.Info("created manager account", "email", cfg.Auth.BootstrapEmail)
		}
	}

	router := salesdeskHttp.New(authService, cfg.Server.AllowedOrigins, salesdeskHttp.Handlers{
		Auth:        authHandler.NewHandler(authService),
		Customers:   customerHandler.NewHandler(customerService),
		Contracts:   contractHandler.NewHandler(contractService),
		Ledger:      ledgerHandler.NewHandler(ledgerService),
		Attachments: attachmentHandler.NewHandler(attachmentService),
		Reports:     reportHandler.NewHandler(reportService),
		Imports:     importsHandler.NewHandler(importer.NewService(), customerService, cfg.Storage.MaxUploadBytes),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "app", cfg.App.Name, "port", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
