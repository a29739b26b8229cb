// Package app wires the seminar runtime and HTTP lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/seminarhub/backend/internal/platform/config"
	"github.com/seminarhub/backend/internal/services/seminar/api/httpapi"
	"github.com/seminarhub/backend/internal/services/seminar/awards"
	"github.com/seminarhub/backend/internal/services/seminar/evaluation"
	"github.com/seminarhub/backend/internal/services/seminar/registry"
	"github.com/seminarhub/backend/internal/services/seminar/reports"
	"github.com/seminarhub/backend/internal/services/seminar/scheduler"
	seminarsqlite "github.com/seminarhub/backend/internal/services/seminar/storage/sqlite"
)

const shutdownTimeout = 10 * time.Second

type serverEnv struct {
	DBPath         string   `env:"SEMINARHUB_DB_PATH"`
	JWTSecret      string   `env:"SEMINARHUB_JWT_SECRET"`
	AllowedOrigins []string `env:"SEMINARHUB_CORS_ORIGINS" envSeparator:","`
}

func loadServerEnv() serverEnv {
	var cfg serverEnv
	_ = config.ParseEnv(&cfg)
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = filepath.Join("data", "seminar.db")
	}
	return cfg
}

// Server hosts the seminar HTTP API and storage lifecycle.
type Server struct {
	listener   net.Listener
	httpServer *http.Server
	store      *seminarsqlite.Store
	logger     *slog.Logger
}

// New creates a configured seminar server listening on the provided port.
func New(port int) (*Server, error) {
	return NewWithAddr(fmt.Sprintf(":%d", port))
}

// NewWithAddr creates a configured seminar server for the provided address.
func NewWithAddr(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	env := loadServerEnv()
	store, err := openSeminarStore(env.DBPath)
	if err != nil {
		_ = listener.Close()
		return nil, err
	}

	logger := httplog.NewLogger("seminard", httplog.Options{
		LogLevel: slog.LevelInfo,
		Concise:  true,
	})

	reg := registry.New(store)
	handler := httpapi.New(httpapi.Config{
		Scheduler:  scheduler.New(store),
		Registry:   reg,
		Evaluation: evaluation.New(store, reg),
		Awards:     awards.New(store),
		Reports:    reports.New(store),
		Logger:     logger.Logger,
		JWTSecret:  secretBytes(env.JWTSecret),
	})

	router := chi.NewRouter()
	router.Use(middleware.RealIP)
	router.Use(httplog.RequestLogger(logger))
	router.Use(middleware.Recoverer)
	if len(env.AllowedOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   env.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
		}))
	}
	router.Mount("/", handler.Routes())

	return &Server{
		listener: listener,
		httpServer: &http.Server{
			Handler:           otelhttp.NewHandler(router, "seminard"),
			ReadHeaderTimeout: 10 * time.Second,
		},
		store:  store,
		logger: logger.Logger,
	}, nil
}

// Addr returns the listener address for the server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves a seminar server until context cancellation.
func Run(ctx context.Context, port int) error {
	server, err := New(port)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the HTTP server until context cancellation.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	log.Printf("seminar server listening at %v", s.listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		err := <-serveErr
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	case err := <-serveErr:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases seminar server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.httpServer != nil {
		_ = s.httpServer.Close()
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("close seminar store: %v", err)
		}
	}
}

func openSeminarStore(path string) (*seminarsqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := seminarsqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seminar sqlite store: %w", err)
	}
	return store, nil
}

func secretBytes(secret string) []byte {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil
	}
	return []byte(secret)
}
