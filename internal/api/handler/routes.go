package handler

import (
	"net/http"

	"github.com/nexalink/lead-manager-api/internal/api/handler/router"
	"github.com/nexalink/lead-manager-api/internal/usecases/authenticating"
	"github.com/nexalink/lead-manager-api/internal/usecases/configuring"
	"github.com/nexalink/lead-manager-api/internal/usecases/exporting"
	"github.com/nexalink/lead-manager-api/internal/usecases/prospecting"
	"github.com/nexalink/lead-manager-api/internal/usecases/reporting"
	"github.com/nexalink/lead-manager-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Leads(service prospecting.Prospector) []router.Route {
	return []router.Route{
		{
			// Public intake endpoint for the marketing site form.
			Path:    "/v1/leads/capture",
			Method:  http.MethodPost,
			Handler: CaptureLead(service),
		},
		{
			Path:        "/v1/leads",
			Method:      http.MethodGet,
			Handler:     ListLeads(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/leads/:id",
			Method:      http.MethodGet,
			Handler:     GetLead(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/leads/:id/status",
			Method:      http.MethodPut,
			Handler:     UpdateLeadStatus(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Submissions(service prospecting.Prospector) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/submissions",
			Method:      http.MethodGet,
			Handler:     ListSubmissions(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/submissions",
			Method:      http.MethodPost,
			Handler:     CreateSubmission(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Exports(service exporting.Exporter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/exports/leads",
			Method:      http.MethodGet,
			Handler:     ExportLeads(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/exports/submissions",
			Method:      http.MethodGet,
			Handler:     ExportSubmissions(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Analytics(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/analytics/dashboard",
			Method:      http.MethodGet,
			Handler:     GetDashboard(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/analytics/funnel",
			Method:      http.MethodGet,
			Handler:     GetFunnel(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/analytics/package-mix",
			Method:      http.MethodGet,
			Handler:     GetPackageMix(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/analytics/sources",
			Method:      http.MethodGet,
			Handler:     GetSources(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/analytics/trend",
			Method:      http.MethodGet,
			Handler:     GetTrend(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/analytics/snapshots/latest",
			Method:      http.MethodGet,
			Handler:     GetLatestSnapshot(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Settings(service configuring.Configurer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/settings",
			Method:      http.MethodGet,
			Handler:     ListSettings(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/settings/:key",
			Method:      http.MethodGet,
			Handler:     GetSetting(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/settings/:key",
			Method:      http.MethodPut,
			Handler:     UpdateSetting(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: CreateUser(service),
		},
		{
			Path:        "/v1/users/:id/generate-password",
			Method:      http.MethodPost,
			Handler:     GeneratePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodGet,
			Handler:     GetUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
