package handler

import (
	"net/http"

	"github.com/nexalink/lead-manager-api/internal/usecases/prospecting"
	"github.com/nexalink/lead-manager-api/pkg/apiErrors"
	"github.com/sirupsen/logrus"
)

// ListSubmissions serves the submission log.
func ListSubmissions(service prospecting.Prospector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		submissions, err := service.ListSubmissions()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Could not list submissions", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(submissions); err != nil {
			logrus.Error(err)
		}
	}
}

// CreateSubmission records one portal submission attempt.
func CreateSubmission(service prospecting.Prospector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req prospecting.RecordSubmissionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Could not decode request body", nil)
			return
		}

		submission, err := service.RecordSubmission(&req)
		if err != nil {
			handleProspectingError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(submission); err != nil {
			logrus.Error(err)
		}
	}
}
