package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/propscout/hmo-app/internal/admin"
	"github.com/propscout/hmo-app/internal/area"
	"github.com/propscout/hmo-app/internal/article4"
	"github.com/propscout/hmo-app/internal/health"
	"github.com/propscout/hmo-app/internal/listings"
	"github.com/propscout/hmo-app/internal/metrics"
	"github.com/rs/zerolog"
)

type Server struct {
	Router   *chi.Mux
	Addr     string
	Interval time.Duration
	Logger   zerolog.Logger
	Checks   *article4.Service
	Areas    *area.Store
	Health   *health.Reporter
	Listings *listings.Service
	Admins   *admin.Service

	handler      *Handler
	shutdownCh   chan os.Signal
	worker       *worker
	workerKillCh chan<- struct{}
	wg           *sync.WaitGroup
}

func (s *Server) addr() string {
	if s.Addr == "" {
		s.Addr = "8080"
	}

	return fmt.Sprintf(":%s", s.Addr)
}

func (s *Server) interval() time.Duration {
	if s.Interval == 0 {
		s.Interval = 24 * time.Hour
	}

	return s.Interval
}

func (s *Server) init() {
	s.handler = NewHandler(s.Logger)
	s.handler.checks = s.Checks
	s.handler.areas = s.Areas
	s.handler.health = s.Health
	s.handler.listings = s.Listings
	s.handler.admins = s.Admins
	s.setRoutes()

	s.shutdownCh = make(chan os.Signal, 1)
	signal.Notify(s.shutdownCh, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	workerKillCh := make(chan struct{}, 1)
	s.workerKillCh = workerKillCh
	s.worker = &worker{
		areas:  s.Areas,
		logger: s.Logger,
		d:      s.interval(),
		killCh: workerKillCh,
	}

	s.wg = &sync.WaitGroup{}
}

func (s *Server) setRoutes() {
	limiter := NewRateLimiter(10, 20)

	s.Router.Use(RequestID)

	s.Router.Group(func(r chi.Router) {
		r.Use(limiter.Limit)
		r.Get("/api/check", s.handler.HandleCheck())
		r.Post("/api/check/batch", s.handler.HandleBatchCheck())
		r.Get("/api/listings", s.handler.HandleGetListings())
	})

	s.Router.Get("/api/health", s.handler.HandleHealth())
	s.Router.Method(http.MethodGet, "/metrics", metrics.Handler())

	// Set the admin routes.
	adminValidater := AdminValidater{
		admins: s.Admins,
		logger: s.Logger,
	}

	s.Router.Post("/admins/login", s.handler.HandlePostLogin())
	s.Router.Post("/admins/signup", s.handler.HandlePostSignup())
	s.Router.Post("/admins/areas/refresh", adminValidater.Validate(s.handler.HandleRefreshAreas()))
	s.Router.Post("/admins/listings/import", adminValidater.Validate(s.handler.HandleImportListings()))
}

func (s *Server) run(runFn func()) {
	go func() {
		s.wg.Add(1)
		defer s.wg.Done()

		runFn()
	}()
}

func (s *Server) listenAndServe() error {
	httpServer := &http.Server{
		Addr:    s.addr(),
		Handler: s.Router,
	}

	startCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			startCh <- fmt.Errorf("failed to start server: %w", err)
		}
	}()

	// Wait for either a shutdown signal or an error if the server
	// cannot start.
	select {
	case err := <-startCh:
		return err
	case <-s.shutdownCh:
		ctx, cancel := context.WithTimeout(context.Background(), 7*time.Second)
		defer func() {
			defer cancel()

			// Kill background worker.
			s.workerKillCh <- struct{}{}

			// Wait for all resources to stop.
			s.wg.Wait()
		}()

		// Gracefully shutdown the http server.
		if err := httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	return nil
}

func (s *Server) validate() error {
	if s.Router == nil {
		return errors.New("router is nil")
	}

	if s.Checks == nil {
		return errors.New("checks is nil")
	}

	if s.Areas == nil {
		return errors.New("areas is nil")
	}

	if s.Health == nil {
		return errors.New("health is nil")
	}

	if s.Listings == nil {
		return errors.New("listings is nil")
	}

	if s.Admins == nil {
		return errors.New("admins is nil")
	}

	return nil
}

func (s *Server) Start() error {
	if err := s.validate(); err != nil {
		return err
	}

	s.init()
	s.run(func() {
		s.worker.start()
	})

	return s.listenAndServe()
}
