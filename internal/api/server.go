package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/nexalink/lead-manager-api/internal/api/handler"
	"github.com/nexalink/lead-manager-api/internal/api/handler/router"
	"github.com/nexalink/lead-manager-api/internal/config"
	"github.com/nexalink/lead-manager-api/internal/scheduler"
	"github.com/nexalink/lead-manager-api/internal/usecases/authenticating"
	"github.com/nexalink/lead-manager-api/internal/usecases/configuring"
	"github.com/nexalink/lead-manager-api/internal/usecases/exporting"
	"github.com/nexalink/lead-manager-api/internal/usecases/prospecting"
	"github.com/nexalink/lead-manager-api/internal/usecases/reporting"
	"github.com/nexalink/lead-manager-api/pkg/middleware"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	prospector prospecting.Prospector,
	reporter reporting.Reporter,
	exporter exporting.Exporter,
	configurer configuring.Configurer,
	authenticator authenticating.Authenticator,
	metricsSnapshotSyncService *scheduler.MetricsSnapshotSyncService,
) (*Server, error) {
	cronServices := handler.CronJobServices{
		MetricsSnapshotSyncService: metricsSnapshotSyncService,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Authentication(authenticator)...),
		router.WithRoutes(handler.User(authenticator)...),
		router.WithRoutes(handler.Leads(prospector)...),
		router.WithRoutes(handler.Submissions(prospector)...),
		router.WithRoutes(handler.Exports(exporter)...),
		router.WithRoutes(handler.Analytics(reporter)...),
		router.WithRoutes(handler.Settings(configurer)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
		middleware.AuthMiddleware(authenticator),
	}

	handler := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Server starting")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Error while running the server")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Interrupt signal received")
	case <-ctx.Done():
		logrus.Info("Application context cancelled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Starting graceful server shutdown")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Error during server shutdown")
		return err
	}

	logrus.Info("Server stopped")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("HTTP server stopped")
	return nil
}
