// Package http serves the chatbot over HTTP.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/challengegit/chatbot"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ShutdownTimeout is the time given for outstanding requests to finish.
const ShutdownTimeout = 10 * time.Second

// MaxRequestBytes bounds the size of a request body.
const MaxRequestBytes = 1 << 20

// StatsProvider reports statistics about the cached context.
type StatsProvider interface {
	Stats() chatbot.ContextStats
}

// Server represents the HTTP server of the chatbot.
type Server struct {
	ln     net.Listener
	server *http.Server

	// Bind address to open. Set before calling Open().
	Addr string

	// Directory of static assets served at the root path. Optional.
	PublicDir string

	// Services used by the handlers.
	Asker  chatbot.Asker
	Stats  StatsProvider
	Logger *slog.Logger

	// Gatherer exposed on /metrics. Optional.
	Gatherer prometheus.Gatherer
}

// NewServer returns a new instance of Server.
func NewServer() *Server {
	return &Server{
		server: &http.Server{
			ReadHeaderTimeout: 10 * time.Second,
		},
		Logger: slog.Default(),
	}
}

// Open validates the server options and begins listening on the bind address.
func (s *Server) Open() (err error) {
	if s.Asker == nil {
		return chatbot.Errorf(chatbot.EINVALID, "asker required")
	}

	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}

	s.server.Handler = s.Handler()

	go func() {
		if err := s.server.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Error("http server stopped", "err", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Port returns the TCP port for the running server.
// This is useful in tests where we allocate a random port by using ":0".
func (s *Server) Port() int {
	if s.ln == nil {
		return 0
	}
	return s.ln.Addr().(*net.TCPAddr).Port
}

// URL returns the local base URL of the running server.
func (s *Server) URL() string {
	return "http://localhost:" + strconv.Itoa(s.Port())
}

// Handler returns the router serving all endpoints.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Post("/ask", s.handleAsk)
	r.Get("/healthz", s.handleHealth)

	if s.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}

	if s.PublicDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(s.PublicDir)))
	}

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		defer func(begin time.Time) {
			s.Logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(begin),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}(time.Now())
		next.ServeHTTP(ww, r)
	})
}
