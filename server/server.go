package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/theoremus-urban-solutions/flight-normalizer/cache"
	"github.com/theoremus-urban-solutions/flight-normalizer/config"
	"github.com/theoremus-urban-solutions/flight-normalizer/converter"
	"github.com/theoremus-urban-solutions/flight-normalizer/upstream"
)

// Server serves normalized flights over HTTP.
type Server struct {
	cfg     config.AppConfig
	ref     converter.Resolver
	client  *upstream.Client
	tracer  converter.Tracer
	cache   *cache.Cache[[]byte]
	now     func() time.Time
	started time.Time

	httpServer *http.Server
}

// New creates a server. A nil client disables the search route; a nil tracer means none.
func New(cfg config.AppConfig, ref converter.Resolver, client *upstream.Client, tracer converter.Tracer) *Server {
	if tracer == nil {
		tracer = converter.NopTracer{}
	}
	s := &Server{
		cfg:    cfg,
		ref:    ref,
		client: client,
		tracer: tracer,
		cache: cache.New(
			time.Duration(cfg.Cache.TTLSeconds)*time.Second,
			cfg.Cache.MaxEntries,
			cache.WithClone(cache.CloneBytes),
		),
		now: time.Now,
	}
	s.started = s.now()
	return s
}

// Handler returns the routed handler wrapped in CORS.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/flights/normalize", s.handleNormalize)
	mux.HandleFunc("/api/flights/search", s.handleSearch)

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.Server.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(mux)
}

// Start listens in the background.
func (s *Server) Start() {
	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       time.Duration(s.cfg.Server.ReadTimeoutMS) * time.Millisecond,
		WriteTimeout:      time.Duration(s.cfg.Server.WriteTimeoutMS) * time.Millisecond,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Printf("server listening on %s", addr)
}

// Shutdown stops the listener and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// HandleGracefulShutdown blocks until SIGINT or SIGTERM, then shuts the server down.
func (s *Server) HandleGracefulShutdown() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Printf("shutdown signal received")
	timeout := time.Duration(s.cfg.Server.ShutdownTimeoutS) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	} else {
		log.Printf("server shut down successfully")
	}
}
