package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/nexalink/lead-manager-api/infrastructure/database/postgres"
	"github.com/nexalink/lead-manager-api/infrastructure/repository"
	"github.com/nexalink/lead-manager-api/internal/api"
	"github.com/nexalink/lead-manager-api/internal/config"
	"github.com/nexalink/lead-manager-api/internal/scheduler"
	"github.com/nexalink/lead-manager-api/internal/usecases/authenticating"
	"github.com/nexalink/lead-manager-api/internal/usecases/configuring"
	"github.com/nexalink/lead-manager-api/internal/usecases/exporting"
	"github.com/nexalink/lead-manager-api/internal/usecases/prospecting"
	"github.com/nexalink/lead-manager-api/internal/usecases/reporting"
	"github.com/sirupsen/logrus"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Invalid log level %q, falling back to 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Log level set to %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	leadRepo := repository.NewLeadRepository(pgConn)
	submissionRepo := repository.NewSubmissionRepository(pgConn)
	settingRepo := repository.NewSettingRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)
	snapshotRepo := repository.NewMetricsSnapshotRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)
	prospector := prospecting.NewService(leadRepo, submissionRepo)
	reporter := reporting.NewService(leadRepo, submissionRepo, snapshotRepo, cfg.RevenueModel)
	exporter := exporting.NewService(leadRepo, submissionRepo)
	configurer := configuring.NewService(settingRepo)

	metricsSnapshotSyncService := scheduler.NewMetricsSnapshotSyncService(reporter, cfg)

	if err := metricsSnapshotSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Failed to start the metrics snapshot scheduler")
	} else {
		logrus.Info("Metrics snapshot scheduler started")
	}

	server, err := api.New(
		cfg,
		prospector,
		reporter,
		exporter,
		configurer,
		authenticator,
		metricsSnapshotSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("PostgreSQL connection check failed")
	}

	logrus.Info("PostgreSQL connection established")
	return conn
}
