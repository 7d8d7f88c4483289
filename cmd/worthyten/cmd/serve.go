package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/worthyten/internal/engine"
	"github.com/donaldgifford/worthyten/internal/session"
	"github.com/donaldgifford/worthyten/internal/store"
	"github.com/donaldgifford/worthyten/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server and scheduler",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Setup(ctx, cfg.Telemetry, Version)
	if err != nil {
		return fmt.Errorf("setting up telemetry: %w", err)
	}

	st, err := store.NewPostgresStore(ctx, cfg.Database.DSN(), store.WithPoolSize(cfg.Database.PoolSize))
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer st.Close()

	sessions, err := session.Dial(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
		session.WithTTL(cfg.Session.TTL))
	if err != nil {
		return fmt.Errorf("connecting to session store: %w", err)
	}
	defer func() { _ = sessions.Close() }()

	notifier, err := newNotifier(ctx, cfg.Notifications, log)
	if err != nil {
		return err
	}
	log.Info("order notifications", "backend", notifier.Name())

	eng := engine.NewEngine(st, engine.WithLogger(log))
	eng.SyncStateMetrics(ctx)

	sched, err := engine.NewScheduler(eng, cfg.Schedule.StateMetricsInterval, log)
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}
	sched.Start()

	e := newRouter(&app{
		cfg:      cfg,
		log:      log,
		store:    st,
		sessions: sessions,
		notifier: notifier,
		engine:   eng,
	})
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr, "version", Version)

	serveErr := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var errs []error
	select {
	case <-ctx.Done():
		log.Info("shutting down server")
	case err, ok := <-serveErr:
		if ok {
			errs = append(errs, fmt.Errorf("serving: %w", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("shutting down server: %w", err))
	}

	select {
	case <-sched.Stop().Done():
	case <-shutdownCtx.Done():
		log.Warn("scheduler did not stop before timeout")
	}

	if err := shutdownTelemetry(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("flushing telemetry: %w", err))
	}

	log.Info("server stopped")
	return errors.Join(errs...)
}
