package handler

import (
	"fmt"
	"net/http"

	"github.com/nexalink/lead-manager-api/internal/usecases/exporting"
	"github.com/nexalink/lead-manager-api/pkg/apiErrors"
	"github.com/sirupsen/logrus"
)

// ExportLeads streams the lead book as a CSV download.
func ExportLeads(service exporting.Exporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := service.ExportLeads()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Could not export leads", nil)
			return
		}

		writeCSV(w, doc)
	}
}

// ExportSubmissions streams the submission log as a CSV download.
func ExportSubmissions(service exporting.Exporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := service.ExportSubmissions()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Could not export submissions", nil)
			return
		}

		writeCSV(w, doc)
	}
}

func writeCSV(w http.ResponseWriter, doc *exporting.Document) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))

	if _, err := w.Write([]byte(doc.Body)); err != nil {
		logrus.Error(err)
	}
}
