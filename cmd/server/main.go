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

	"github.com/joho/godotenv"

	"github.com/ledgerbank/bankd/internal/api"
	"github.com/ledgerbank/bankd/internal/events"
	eventskafka "github.com/ledgerbank/bankd/internal/events/kafka"
	"github.com/ledgerbank/bankd/internal/infra/logging"
	"github.com/ledgerbank/bankd/internal/services/bank"
	"github.com/ledgerbank/bankd/pkg/envconf"
	"github.com/ledgerbank/bankd/pkg/shutdownqueue"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error running server: %v", err)
		//nolint:gocritic
		os.Exit(1)
	}
}

func run(ctx context.Context) (retErr error) {
	// Local overrides; absence of a .env file is fine.
	_ = godotenv.Load()

	cfg := new(serverConfig)

	err := envconf.Load(cfg)
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	logging.Setup("bankd", cfg.LogLevel)

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		serr := shutdownqueue.Shutdown(shutdownCtx)
		if serr != nil {
			retErr = errors.Join(retErr, serr)
		}
	}()

	// --- Engine + events ---
	bankSrv := bank.New()

	var pub events.Publisher = events.Noop{}

	brokers := cfg.brokerList()
	if len(brokers) > 0 {
		kp := eventskafka.NewPublisher(brokers, cfg.KafkaTopic)

		shutdownqueue.Add(func(context.Context) error {
			slog.Info("Close event publisher")

			cerr := kp.Close()
			if cerr != nil {
				return fmt.Errorf("close publisher: %w", cerr)
			}

			return nil
		})

		pub = kp

		slog.Info("Event publishing enabled", "brokers", brokers, "topic", cfg.KafkaTopic)
	}

	// --- HTTP server ---
	srv := api.NewServer(cfg.Addr, bankSrv, pub)

	// Register HTTP server graceful shutdown
	shutdownqueue.Add(func(c context.Context) error {
		slog.Info("Shut down server")

		err := srv.Shutdown(c)
		if err != nil {
			return fmt.Errorf("shutdown srv: %w", err)
		}

		return nil
	})

	// Run server
	errCh := make(chan error, 1)

	go func() {
		serr := srv.ListenAndServe()
		// http.ErrServerClosed is the normal path during Shutdown
		if serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			errCh <- serr
			return
		}

		errCh <- nil
	}()

	slog.Info("Ledger API started", "addr", cfg.Addr)

	// --- Wait until either context cancels or server errors out ---
	select {
	case <-ctx.Done():
		// graceful path; deferred shutdownqueue.Shutdown will run
		return nil
	case serr := <-errCh:
		if serr != nil {
			return fmt.Errorf("server error: %w", serr)
		}

		return nil
	}
}
