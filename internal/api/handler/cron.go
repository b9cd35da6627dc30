package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/nexalink/lead-manager-api/internal/domain"
	"github.com/nexalink/lead-manager-api/internal/scheduler"
	"github.com/nexalink/lead-manager-api/pkg/apiErrors"
	"github.com/nexalink/lead-manager-api/pkg/middleware"
	"github.com/sirupsen/logrus"
)

const (
	CronJobTypeMetricsSnapshot = "metrics-snapshot"
	CronJobTypeAll             = "all"
)

// CronJobServices bundles the schedulers that support manual runs.
type CronJobServices struct {
	MetricsSnapshotSyncService *scheduler.MetricsSnapshotSyncService
}

// RunCronJob triggers one scheduled job manually. Admin only.
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID != middleware.RoleAdmin {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Only administrators can run cron jobs", nil)
			return
		}

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Cron job type is required", nil)
			return
		}

		switch cronType {
		case CronJobTypeMetricsSnapshot, CronJobTypeAll:
			if services.MetricsSnapshotSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Metrics snapshot service unavailable", nil)
				return
			}
			services.MetricsSnapshotSyncService.TriggerManualSync()
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Unknown cron job type. Accepted values: metrics-snapshot, all", nil)
			return
		}

		logrus.WithField("type", cronType).Info("cron job triggered manually")

		writeJSON(w, map[string]any{
			"message": "Cron job started",
			"type":    cronType,
		})
	}
}

// GetCronStatus reports scheduler state. Admin only.
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID != middleware.RoleAdmin {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Only administrators can check cron job status", nil)
			return
		}

		writeJSON(w, map[string]any{
			"metrics-snapshot": services.MetricsSnapshotSyncService.GetStatus(),
		})
	}
}
