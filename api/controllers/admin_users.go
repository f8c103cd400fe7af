package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/api/middleware"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/api/responses"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/api/validators"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/auth"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/users"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
	pkgerrors "github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/errors"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/logger"
)

// AdminCreateStaff lets an administrator provision staff and client accounts
// directly, skipping email verification.
func AdminCreateStaff(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		adminID := middleware.UserIDFromContext(r.Context())
		if adminID == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		var body auth.AdminCreateUserRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.AdminCreateStaff(r.Context(), adminID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AdminUpdateUser edits another account's profile, role, or status.
func AdminUpdateUser(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		adminID := middleware.UserIDFromContext(r.Context())
		if adminID == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		targetID, err := pathID(r, "userID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body auth.AdminUpdateUserRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.AdminUpdateUser(r.Context(), adminID, targetID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

// ListUsers pages through accounts for the admin dashboard.
func ListUsers(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var filter users.ListFilter

		if raw := r.URL.Query().Get("active_only"); raw != "" {
			val, err := strconv.ParseBool(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "active_only must be a boolean").WithDetails(map[string]string{"field": "active_only"}))
				return
			}
			filter.ActiveOnly = val
		}
		if raw := r.URL.Query().Get("role"); raw != "" {
			role, err := enums.ParseUserRole(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Invalid role filter").WithDetails(map[string]string{"field": "role"}))
				return
			}
			filter.Role = &role
		}
		if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
			filter.Q = &q
		}

		page, err := listParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter.Pagination = page

		result, err := svc.ListUsers(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// CountUsers reports account totals broken down by role.
func CountUsers(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		activeOnly := false
		if raw := r.URL.Query().Get("active_only"); raw != "" {
			val, err := strconv.ParseBool(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "active_only must be a boolean").WithDetails(map[string]string{"field": "active_only"}))
				return
			}
			activeOnly = val
		}

		summary, err := svc.CountUsers(r.Context(), activeOnly)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}
