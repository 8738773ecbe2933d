package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	backend "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hierview/pkg/api"
	"github.com/matzehuels/hierview/pkg/cache"
	"github.com/matzehuels/hierview/pkg/observability/prom"
	"github.com/matzehuels/hierview/pkg/pipeline"
	"github.com/matzehuels/hierview/pkg/session"
)

// shutdownTimeout bounds the graceful shutdown of the HTTP server.
const shutdownTimeout = 10 * time.Second

type serveOpts struct {
	addr          string
	redisAddr     string
	redisPassword string
	redisDB       int
	namespace     string
	metrics       bool
	timeout       time.Duration
	sessionTTL    time.Duration
}

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:       ":8080",
		metrics:    true,
		timeout:    api.DefaultTimeout,
		sessionTTL: session.DefaultTTL,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Without --redis, layouts and artifacts are cached on disk and sessions are
kept in the local config directory. With --redis both live in Redis so that
several instances share them.

Prometheus metrics are served at /metrics unless --metrics=false.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address for the shared cache and sessions")
	cmd.Flags().StringVar(&opts.redisPassword, "redis-password", "", "Redis password")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", 0, "Redis database")
	cmd.Flags().StringVar(&opts.namespace, "namespace", "", "key prefix separating deployments that share a Redis")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", opts.metrics, "serve Prometheus metrics at /metrics")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", opts.timeout, "per-request timeout")
	cmd.Flags().DurationVar(&opts.sessionTTL, "session-ttl", opts.sessionTTL, "session lifetime")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	srv, err := c.newAPIServer(opts)
	if err != nil {
		return err
	}
	defer srv.Runner.Close()

	httpServer := &http.Server{
		Addr:              opts.addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", opts.addr, "redis", opts.redisAddr != "", "metrics", opts.metrics)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}

// newAPIServer wires the cache, session store and metrics of the service.
func (c *CLI) newAPIServer(opts serveOpts) (*api.Server, error) {
	keyer := cache.NewDefaultKeyer()
	if opts.namespace != "" {
		keyer = cache.NewScopedKeyer(keyer, opts.namespace)
	}

	var (
		store   session.Store
		backing cache.Cache
	)
	if opts.redisAddr != "" {
		client := backend.NewClient(&backend.Options{
			Addr:     opts.redisAddr,
			Password: opts.redisPassword,
			DB:       opts.redisDB,
		})
		rc := cache.NewRedisCacheFromClient(client)
		if err := rc.Ping(context.Background()); err != nil {
			client.Close()
			return nil, fmt.Errorf("connect to redis %s: %w", opts.redisAddr, err)
		}
		backing = rc
		store = session.NewRedisStore(client, session.WithKeyer(keyer))
	} else {
		fc, err := newCache(false)
		if err != nil {
			return nil, fmt.Errorf("open cache: %w", err)
		}
		fs, err := newSessionStore()
		if err != nil {
			return nil, fmt.Errorf("open sessions: %w", err)
		}
		backing, store = fc, fs
	}

	runner := pipeline.NewRunner(backing, keyer, c.Logger)
	serverOpts := []api.Option{api.WithSessions(store), api.WithTimeout(opts.timeout)}
	if opts.metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		prom.New(reg).Install()
		serverOpts = append(serverOpts, api.WithMetrics(reg))
	}

	srv := api.NewServer(runner, c.Logger, serverOpts...)
	srv.SessionTTL = opts.sessionTTL
	return srv, nil
}
