package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/shaharia-lab/nomadweb/internal/api"
	"github.com/shaharia-lab/nomadweb/internal/frontend"
)

// Options configures a Server.
type Options struct {
	Addr string

	// Root is the frontend directory resolved at startup. An unavailable
	// Root puts the server in degraded mode.
	Root frontend.Root

	PublicEnv   frontend.PublicEnv
	Placeholder string

	// DevURL proxies frontend requests to a dev server when set.
	DevURL string

	CORSOrigins  []string
	RateLimitRPM int
	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Leave it off unless a reverse proxy sets those headers, otherwise
	// clients can pick their own rate-limit key.
	TrustProxy     bool
	MetricsEnabled bool

	// Lookup reads environment values per request. Defaults to os.LookupEnv.
	Lookup func(string) (string, bool)
}

// Server is the HTTP server for the frontend and its runtime environment.
type Server struct {
	root        frontend.Root
	publicEnv   frontend.PublicEnv
	placeholder string
	lookup      func(string) (string, bool)
	devProxy    http.Handler
	metrics     *Metrics
	logger      *slog.Logger
	httpServer  *http.Server
}

// New creates a new Server with all routes and middleware wired.
func New(opts Options, apiSrv *api.Server, logger *slog.Logger) (*Server, error) {
	s := &Server{
		root:        opts.Root,
		publicEnv:   opts.PublicEnv,
		placeholder: opts.Placeholder,
		lookup:      opts.Lookup,
		metrics:     NewMetrics(),
		logger:      logger,
	}
	if s.lookup == nil {
		s.lookup = os.LookupEnv
	}

	if opts.DevURL != "" {
		target, err := url.Parse(opts.DevURL)
		if err != nil || target.Scheme == "" || target.Host == "" {
			return nil, fmt.Errorf("invalid frontend dev URL %q", opts.DevURL)
		}
		s.devProxy = httputil.NewSingleHostReverseProxy(target)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	if opts.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(s.requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{"GET", "HEAD", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "apikey"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))
	if opts.RateLimitRPM > 0 {
		r.Use(httprate.LimitByIP(opts.RateLimitRPM, time.Minute))
	}

	// API routes
	r.Route(api.Prefix, apiSrv.Mount)

	// Runtime environment as a script. HEAD is registered explicitly: the
	// "/*" catch-all accepts every method, so middleware.GetHead would never
	// reroute it here.
	r.Get("/env.js", s.handleEnvScript)
	r.Head("/env.js", s.handleEnvScript)

	if opts.MetricsEnabled {
		r.Handle("/metrics", s.metrics.Handler())
	}

	// Static files + SPA fallback
	r.HandleFunc("/*", s.handleFrontend)

	s.httpServer = &http.Server{
		Addr:              opts.Addr,
		Handler:           otelhttp.NewHandler(r, "nomadweb"),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler returns the root handler, including middleware.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run starts the HTTP server and blocks until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	lc := &net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down server")
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// requestLogger is a chi middleware that logs each request once it has
// been answered.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}

		s.metrics.observeRequest(r.Method, status)
		s.logger.Log(r.Context(), level, "http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			slog.String("content_type", ww.Header().Get("Content-Type")),
			slog.Int("bytes", ww.BytesWritten()),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
