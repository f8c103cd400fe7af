package controllers

import (
	"net/http"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/api/responses"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/audit"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
	pkgerrors "github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/errors"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/logger"
)

// AuditMeta serves the who-and-when trail for one entity: creator, last
// editor, and timestamps resolved to usernames. One factory covers every
// audited resource; the route supplies the entity type and id param name.
func AuditMeta(svc audit.Service, entityType enums.AuditEntity, idParam string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "audit service unavailable"))
			return
		}

		id, err := pathID(r, idParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		meta, err := svc.Meta(r.Context(), entityType, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, meta)
	}
}
