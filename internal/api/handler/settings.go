package handler

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/nexalink/lead-manager-api/internal/usecases/configuring"
	"github.com/nexalink/lead-manager-api/pkg/apiErrors"
	"github.com/sirupsen/logrus"
)

type UpdateSettingRequest struct {
	Value       string  `json:"value"`
	Description *string `json:"description"`
}

// ListSettings serves every automation tuning knob.
func ListSettings(service configuring.Configurer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := service.ListSettings()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Could not list settings", nil)
			return
		}

		writeJSON(w, settings)
	}
}

// GetSetting serves one setting by key.
func GetSetting(service configuring.Configurer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := httprouter.ParamsFromContext(r.Context()).ByName("key")

		setting, err := service.GetSetting(key)
		if err != nil {
			handleConfiguringError(w, err)
			return
		}

		writeJSON(w, setting)
	}
}

// UpdateSetting upserts one setting by key.
func UpdateSetting(service configuring.Configurer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := httprouter.ParamsFromContext(r.Context()).ByName("key")

		var req UpdateSettingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Could not decode request body", nil)
			return
		}

		setting, err := service.UpdateSetting(key, req.Value, req.Description)
		if err != nil {
			handleConfiguringError(w, err)
			return
		}

		writeJSON(w, setting)
	}
}

func handleConfiguringError(w http.ResponseWriter, err error) {
	logrus.Error(err)

	switch {
	case errors.Is(err, configuring.ErrKeyRequired):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
	case errors.Is(err, configuring.ErrSettingNotFound):
		apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Setting not found", nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Setting operation failed", nil)
	}
}
