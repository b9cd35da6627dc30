package handler

import (
	"net/http"

	"github.com/nexalink/lead-manager-api/internal/domain"
	"github.com/nexalink/lead-manager-api/internal/usecases/authenticating"
	"github.com/nexalink/lead-manager-api/pkg/apiErrors"
	"github.com/nexalink/lead-manager-api/pkg/middleware"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// GetUser serves one user's profile.
func GetUser(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := userIDFromRequest(w, r)
		if !ok {
			return
		}

		user, err := service.GetUserProfile(id)
		if err != nil {
			logrus.Error(err)
			if errors.Is(err, authenticating.ErrUserNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrUserNotFound, "User not found", nil)
				return
			}
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Could not load user", nil)
			return
		}

		writeJSON(w, user)
	}
}

// CreateUser registers a new account. New accounts stay inactive until an
// admin enables them.
func CreateUser(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var user *domain.User
		if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Could not decode request body", nil)
			return
		}

		user, err := service.CreateUser(user)
		if err != nil {
			logrus.Error(err)

			var authErr *authenticating.AuthError
			switch {
			case errors.Is(err, authenticating.ErrUserAlreadyExists):
				apiErrors.WriteError(w, apiErrors.ErrUserAlreadyExists, "Email already registered", nil)
			case errors.Is(err, authenticating.ErrMissingRequiredData):
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
			case errors.As(err, &authErr):
				apiErrors.WriteError(w, authErr.Code, authErr.Details, nil)
			default:
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Could not create user", nil)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(user); err != nil {
			logrus.Error(err)
		}
	}
}

// ListUsers lists every account. Admin only.
func ListUsers(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID != middleware.RoleAdmin {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Only administrators can list users", nil)
			return
		}

		users, err := service.ListUser()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Could not list users", nil)
			return
		}

		writeJSON(w, users)
	}
}

// UpdateUser updates a profile. Users can edit themselves; only admins can
// edit others or change roles.
func UpdateUser(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := userIDFromRequest(w, r)
		if !ok {
			return
		}

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || (userClaims.UserID != id && userClaims.UserRoleID != middleware.RoleAdmin) {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Cannot edit this user", nil)
			return
		}

		var updateReq domain.UpdateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Could not decode request body", nil)
			return
		}

		updateReq.ID = id

		if updateReq.RoleID != nil && userClaims.UserRoleID != middleware.RoleAdmin {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Only administrators can change user roles", nil)
			return
		}

		if err := service.UpdateUser(&updateReq); err != nil {
			logrus.Error(err)
			if errors.Is(err, authenticating.ErrUserNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrUserNotFound, "User not found", nil)
				return
			}
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Could not update user", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
	}
}
