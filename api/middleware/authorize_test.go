package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/authz"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
)

func TestRequireAccess(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	cases := []struct {
		name     string
		userID   int64
		role     enums.UserRole
		resource authz.Resource
		action   authz.Action
		want     int
	}{
		{"allowed role passes", 7, enums.UserRoleCaretaker, authz.ResourcePigs, authz.ActionWrite, http.StatusOK},
		{"denied role blocked", 7, enums.UserRoleSales, authz.ResourcePigs, authz.ActionWrite, http.StatusForbidden},
		{"client blocked from staff surface", 7, enums.UserRoleClient, authz.ResourceSupplies, authz.ActionRead, http.StatusForbidden},
		{"missing user context", 0, enums.UserRoleAdmin, authz.ResourcePigs, authz.ActionRead, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := RequireAccess(tc.resource, tc.action, nil)(next)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			ctx := req.Context()
			if tc.userID != 0 {
				ctx = WithUserID(ctx, tc.userID)
				ctx = WithRole(ctx, tc.role)
			}
			resp := httptest.NewRecorder()
			handler.ServeHTTP(resp, req.WithContext(ctx))

			if resp.Code != tc.want {
				t.Fatalf("expected %d got %d", tc.want, resp.Code)
			}
		})
	}
}
