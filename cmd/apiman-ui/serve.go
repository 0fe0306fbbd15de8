package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/apiman/apiman-ui/internal/config"
	httpapp "github.com/apiman/apiman-ui/internal/http"
	"github.com/apiman/apiman-ui/internal/http/handlers"
	"github.com/apiman/apiman-ui/internal/manager"
	"github.com/apiman/apiman-ui/internal/metrics"
	"github.com/apiman/apiman-ui/internal/session"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the console HTTP server.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return configError(err)
	}
	logger := slog.Default()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store scs.Store
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			return err
		}
		store = session.NewPostgresStore(pool)
		logger.Info("using postgres session store")
	}

	client, err := manager.New(cfg.ManagerAPIURL, cfg.ManagerAPIToken, cfg.ManagerTimeout)
	if err != nil {
		return configError(err)
	}

	clock := clockwork.NewRealClock()
	h := &handlers.Handlers{
		Cfg: cfg,
		Sessions: session.NewManager(session.NewSessionManager(cfg.AuthCookieSecure, store), session.Settings{
			LogoutURL:        cfg.LogoutURL,
			BackToConsoleURL: cfg.BackToConsoleURL,
			PluginBasePath:   handlers.MountedBasePath(cfg),
			UserHeader:       cfg.AuthUserHeader,
		}),
		Orgs:    client,
		Dialogs: handlers.NewDialogRegistry(clock, cfg),
		Clock:   clock,
		Logger:  logger,
	}
	srv := httpapp.NewEchoServer(h, logger)
	httpServer := httpapp.NewHTTPServer(cfg, srv.Handler())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", cfg.HTTPAddr, "base_path", handlers.MountedBasePath(cfg))
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return h.RunDialogSweeper(gctx, sweepInterval(cfg.DialogTTL))
	})
	if metrics.Enabled(cfg.MetricsAddr) {
		g.Go(func() error {
			return metrics.Serve(gctx, cfg.MetricsAddr)
		})
	}
	return g.Wait()
}

// sweepInterval checks for expired dialogs a few times per TTL.
func sweepInterval(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 0
	}
	interval := ttl / 4
	if interval < time.Second {
		interval = time.Second
	}
	return interval
}
