// Package api serves the visualization pipeline over HTTP.
//
// # Routes
//
//	POST   /v1/layout          compute a layout and render artifacts
//	POST   /v1/hittest         find the placed node under a point
//	POST   /v1/transition      animation steps between two view states
//	GET    /v1/sessions        list session ids
//	POST   /v1/sessions        create a view state
//	GET    /v1/sessions/{id}   fetch a view state
//	PUT    /v1/sessions/{id}   replace a view state
//	DELETE /v1/sessions/{id}   delete a view state
//	GET    /healthz            liveness and build information
//	GET    /metrics            Prometheus metrics, when a gatherer is set
//
// Request bodies are [pipeline.Options] in JSON. Documents must be sent
// inline; the server never reads paths from requests. Errors are answered
// with {"error": code, "message": text} and the status from
// [errs.HTTPStatus].
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/hierview/pkg/pipeline"
	"github.com/matzehuels/hierview/pkg/session"
)

// DefaultMaxBodyBytes limits request bodies.
const DefaultMaxBodyBytes = 8 << 20

// DefaultTimeout bounds the handling of one request.
const DefaultTimeout = 30 * time.Second

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	Runner   *pipeline.Runner
	Sessions session.Store // nil disables the session routes
	Logger   *log.Logger

	// Gatherer backs /metrics. Nil disables the route.
	Gatherer prometheus.Gatherer

	MaxBodyBytes int64
	Timeout      time.Duration
	SessionTTL   time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithSessions enables the session routes and session lookups in pipeline
// requests.
func WithSessions(s session.Store) Option { return func(srv *Server) { srv.Sessions = s } }

// WithMetrics serves g at /metrics.
func WithMetrics(g prometheus.Gatherer) Option { return func(srv *Server) { srv.Gatherer = g } }

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option { return func(srv *Server) { srv.Timeout = d } }

// NewServer creates a server around runner.
func NewServer(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		Runner:       runner,
		Logger:       logger,
		MaxBodyBytes: DefaultMaxBodyBytes,
		Timeout:      DefaultTimeout,
		SessionTTL:   session.DefaultTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Sessions != nil && runner.Sessions == nil {
		runner.WithSessions(s.Sessions)
	}
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)
	r.Use(middleware.Timeout(s.Timeout))

	r.Get("/healthz", s.health)
	if s.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.layout)
		r.Post("/hittest", s.hitTest)
		r.Post("/transition", s.transition)

		if s.Sessions != nil {
			r.Route("/sessions", func(r chi.Router) {
				r.Get("/", s.listSessions)
				r.Post("/", s.createSession)
				r.Get("/{id}", s.getSession)
				r.Put("/{id}", s.putSession)
				r.Delete("/{id}", s.deleteSession)
			})
		}
	})
	return r
}
