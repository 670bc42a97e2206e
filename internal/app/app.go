package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/SergeyBogomolovv/wholesale-order-service/internal/config"
	"github.com/SergeyBogomolovv/wholesale-order-service/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/sync/errgroup"
)

type application struct {
	logger *slog.Logger

	router    chi.Router
	httpSrv   *http.Server
	consumers []Consumer
	starters  []Starter

	cancel context.CancelFunc
	group  *errgroup.Group
}

func New(logger *slog.Logger, cfg config.Config) *application {
	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(middleware.Logger(logger))
	router.Use(chimw.Recoverer)
	router.Use(middleware.Metrics)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Cors.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	}))

	router.Handle("/metrics", promhttp.Handler())
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	httpSrv := &http.Server{
		Handler:           router,
		Addr:              net.JoinHostPort(cfg.Http.Host, cfg.Http.Port),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &application{
		logger:  logger,
		httpSrv: httpSrv,
		router:  router,
	}
}

type HTTPHandler interface {
	Init(r chi.Router)
}

func (a *application) SetHTTPHandlers(handlers ...HTTPHandler) {
	for _, h := range handlers {
		h.Init(a.router)
	}
}

type Consumer interface {
	Consume(ctx context.Context)
	Close() error
}

func (a *application) SetConsumers(consumers ...Consumer) {
	a.consumers = append(a.consumers, consumers...)
}

// Starter is a background job started together with the application,
// for example a cache janitor or the cache warm up.
type Starter interface {
	Start(ctx context.Context) error
}

func (a *application) SetStarters(starters ...Starter) {
	a.starters = append(a.starters, starters...)
}

// Start runs starters, consumers and the http server in the background. It
// only fails when the listener cannot be bound.
func (a *application) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.httpSrv.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen %s: %w", a.httpSrv.Addr, err)
	}

	ctx, a.cancel = context.WithCancel(ctx)
	a.group, ctx = errgroup.WithContext(ctx)

	for _, s := range a.starters {
		a.group.Go(func() error {
			if err := s.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Error("background job failed", slog.Any("error", err))
			}
			return nil
		})
	}

	for _, c := range a.consumers {
		a.group.Go(func() error {
			c.Consume(ctx)
			return nil
		})
	}

	a.group.Go(func() error {
		a.logger.Info("starting http server", slog.String("addr", a.httpSrv.Addr))
		if err := a.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	a.logger.Info("application started")
	return nil
}

const gracefulShutdownTimeout = 5 * time.Second

func (a *application) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.httpSrv.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to shutdown http server: %w", err))
	}

	if a.cancel != nil {
		a.cancel()
	}
	for _, c := range a.consumers {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close consumer: %w", err))
		}
	}
	if a.group != nil {
		if err := a.group.Wait(); err != nil {
			errs = append(errs, err)
		}
	}

	a.logger.Info("application stopped")
	return errors.Join(errs...)
}
