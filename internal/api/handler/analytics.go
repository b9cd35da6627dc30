package handler

import (
	"net/http"
	"strconv"

	"github.com/nexalink/lead-manager-api/internal/usecases/reporting"
	"github.com/nexalink/lead-manager-api/pkg/apiErrors"
	"github.com/sirupsen/logrus"
)

// maxTrendDays caps the trend window a client can request.
const maxTrendDays = 365

// GetDashboard serves the full KPI summary, computed on demand.
func GetDashboard(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := service.Dashboard()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Could not compute dashboard summary", nil)
			return
		}

		writeJSON(w, summary)
	}
}

// GetFunnel serves the conversion funnel breakdown.
func GetFunnel(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stages, err := service.Funnel()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Could not compute funnel", nil)
			return
		}

		writeJSON(w, stages)
	}
}

// GetPackageMix serves the preferred-package breakdown.
func GetPackageMix(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mix, err := service.PackageMix()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Could not compute package mix", nil)
			return
		}

		writeJSON(w, mix)
	}
}

// GetSources serves per-source lead performance.
func GetSources(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sources, err := service.Sources()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Could not compute source performance", nil)
			return
		}

		writeJSON(w, sources)
	}
}

// GetTrend serves the daily trend series. The optional days query param
// selects the window, defaulting to the reporting default and capped at a
// year.
func GetTrend(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := reporting.DefaultTrendDays
		if raw := r.URL.Query().Get("days"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 || parsed > maxTrendDays {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "days must be an integer between 1 and 365", nil)
				return
			}
			days = parsed
		}

		points, err := service.Trend(days)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Could not compute trend", nil)
			return
		}

		writeJSON(w, points)
	}
}

// GetLatestSnapshot serves the newest scheduler-computed snapshot, for
// pollers that do not want to trigger a full aggregation.
func GetLatestSnapshot(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := service.LatestSnapshot()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Could not load snapshot", nil)
			return
		}

		if snapshot == nil {
			apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "No snapshot computed yet", nil)
			return
		}

		writeJSON(w, snapshot)
	}
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.Error(err)
	}
}
