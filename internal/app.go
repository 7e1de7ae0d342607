package internal

import (
	"context"
	"fmt"
	"kinstore/internal/backup/interfaces"
	"kinstore/internal/controllers"
	"kinstore/internal/providers"
	"kinstore/internal/structures"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type App struct {
	WebServer *http.Server
}

// NewHandler assembles the router: infrastructure endpoints, the API routes
// and the static media and public directories.
func NewHandler(
	conf *structures.Config,
	logger providers.Logger,
	router providers.RouterProviderInterface,
	healthController *controllers.HealthController,
	metrics providers.MetricsProviderInterface,
	tracing providers.TracingProviderInterface,
	sessions providers.SessionProviderInterface,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   conf.Cors.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(func(next http.Handler) http.Handler {
		return providers.TracingMiddleware(tracing, next)
	})
	r.Use(func(next http.Handler) http.Handler {
		return providers.SessionMiddleware(sessions, next)
	})
	r.Use(providers.AdminGate)

	r.Get("/health", healthController.Health)
	if conf.Metrics.Enabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Group(func(api chi.Router) {
		api.Use(func(next http.Handler) http.Handler {
			return providers.RequestLogMiddleware(logger, providers.MetricsMiddleware(metrics, next))
		})
		router.Mount(api)
	})

	r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(conf.Upload.MediaDir))))
	r.Handle("/*", http.FileServer(http.Dir(conf.Upload.PublicDir)))
	return r
}

func NewApp(
	handler http.Handler,
	scheduler interfaces.SchedulerInterface,
	conf *structures.Config,
	logger providers.Logger,
	tracing providers.TracingProviderInterface,
) (*App, error) {
	logger.Infof(providers.TypeApp, "Starting %s", conf.AppName)
	if err := scheduler.Restore(); err != nil {
		logger.Errorf(providers.TypeApp, "Restore error: %s", err)
	}

	app := &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      handler,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}

	scheduler.Init()

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof(providers.TypeApp, "Listening HTTP clients on %s:%d", conf.WebServer.Host, conf.WebServer.Port)
		if err := app.WebServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		scheduler.Stop()
		return nil, fmt.Errorf("server error: %w", err)
	}

	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.WebServer.Shutdown(ctx); err != nil {
		return nil, err
	}
	if err := scheduler.Persist(); err != nil {
		return nil, err
	}
	if err := tracing.Shutdown(ctx); err != nil {
		logger.Errorf(providers.TypeApp, "Tracing shutdown error: %s", err)
	}
	logger.Infof(providers.TypeApp, "gracefully stopped")
	return app, nil
}
