package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/nexalink/lead-manager-api/internal/domain"
	"github.com/nexalink/lead-manager-api/internal/usecases/prospecting"
	"github.com/nexalink/lead-manager-api/pkg/apiErrors"
	"github.com/sirupsen/logrus"
)

type UpdateLeadStatusRequest struct {
	Status string `json:"status"`
}

// CaptureLead is the public landing-page form endpoint.
func CaptureLead(service prospecting.Prospector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req prospecting.CaptureLeadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Could not decode request body", nil)
			return
		}

		lead, err := service.CaptureLead(&req)
		if err != nil {
			handleProspectingError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(lead); err != nil {
			logrus.Error(err)
		}
	}
}

// ListLeads serves the lead book, filtered by the dashboard query params.
func ListLeads(service prospecting.Prospector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		filters := domain.LeadFilters{
			Search: query.Get("search"),
			Status: domain.LeadStatus(query.Get("status")),
			Tag:    domain.LeadTag(query.Get("tag")),
		}

		if filters.Status != "" && !filters.Status.Valid() {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Unknown lead status filter", nil)
			return
		}
		if filters.Tag != "" && !filters.Tag.Valid() {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Unknown lead tag filter", nil)
			return
		}

		leads, err := service.ListLeads(filters)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Could not list leads", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(leads); err != nil {
			logrus.Error(err)
		}
	}
}

// GetLead serves a single lead by ID.
func GetLead(service prospecting.Prospector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := leadIDFromRequest(w, r)
		if !ok {
			return
		}

		lead, err := service.GetLead(id)
		if err != nil {
			handleProspectingError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(lead); err != nil {
			logrus.Error(err)
		}
	}
}

// UpdateLeadStatus moves a lead through the funnel. The automation workflows
// call this as leads progress.
func UpdateLeadStatus(service prospecting.Prospector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := leadIDFromRequest(w, r)
		if !ok {
			return
		}

		var req UpdateLeadStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Could not decode request body", nil)
			return
		}

		if err := service.UpdateLeadStatus(id, req.Status); err != nil {
			handleProspectingError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
	}
}

func leadIDFromRequest(w http.ResponseWriter, r *http.Request) (int, bool) {
	idStr := httprouter.ParamsFromContext(r.Context()).ByName("id")
	if idStr == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Lead ID is required", nil)
		return 0, false
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Lead ID must be numeric", nil)
		return 0, false
	}

	return id, true
}

func handleProspectingError(w http.ResponseWriter, err error) {
	logrus.Error(err)

	switch {
	case errors.Is(err, prospecting.ErrPhoneRequired):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
	case errors.Is(err, prospecting.ErrInvalidTag),
		errors.Is(err, prospecting.ErrInvalidPackage),
		errors.Is(err, prospecting.ErrInvalidStatus),
		errors.Is(err, prospecting.ErrInvalidSubmission):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
	case errors.Is(err, prospecting.ErrLeadNotFound):
		apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Lead not found", nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Lead operation failed", nil)
	}
}
