package audit

import (
	"context"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
	pkgerrors "github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/errors"
)

// unknownActor is rendered when an event has no actor or the actor account
// was deleted.
const unknownActor = "—"

// Service records audit events and resolves record metadata for the meta
// endpoints. Record is designed to run inside the caller's transaction so
// the event commits or rolls back with the change it describes.
type Service interface {
	Record(ctx context.Context, tx *gorm.DB, entry Entry) error
	Meta(ctx context.Context, entityType enums.AuditEntity, entityID int64) (*Meta, error)
}

type userDirectory interface {
	FindByIDs(ctx context.Context, ids []int64) ([]models.User, error)
}

type service struct {
	repo  Repository
	users userDirectory
}

// NewService constructs the audit service.
func NewService(repo Repository, users userDirectory) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("audit repository required")
	}
	if users == nil {
		return nil, fmt.Errorf("user directory required")
	}
	return &service{repo: repo, users: users}, nil
}

func (s *service) Record(ctx context.Context, tx *gorm.DB, entry Entry) error {
	if !entry.EntityType.IsValid() {
		return fmt.Errorf("audit: invalid entity type %q", entry.EntityType)
	}
	if !entry.Action.IsValid() {
		return fmt.Errorf("audit: invalid action %q", entry.Action)
	}
	if entry.EntityID <= 0 {
		return fmt.Errorf("audit: entity id required")
	}

	event := models.AuditEvent{
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Action:     entry.Action,
		RecordedBy: entry.ActorID,
		Note:       entry.Note,
	}
	if err := s.repo.WithTx(tx).Insert(ctx, &event); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record audit event")
	}
	return nil
}

func (s *service) Meta(ctx context.Context, entityType enums.AuditEntity, entityID int64) (*Meta, error) {
	if !entityType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid audit entity")
	}

	events, err := s.repo.ListForEntity(ctx, entityType, entityID, []enums.AuditAction{
		enums.AuditActionCreate,
		enums.AuditActionUpdate,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list audit events")
	}

	meta := &Meta{}
	if len(events) == 0 {
		return meta, nil
	}

	var created, updated *models.AuditEvent
	for i := range events {
		switch events[i].Action {
		case enums.AuditActionCreate:
			if created == nil {
				created = &events[i]
			}
		case enums.AuditActionUpdate:
			// Events arrive oldest first, keep the latest update.
			updated = &events[i]
		}
	}

	names, err := s.resolveActors(ctx, created, updated)
	if err != nil {
		return nil, err
	}

	if created != nil {
		at := created.RecordedAt
		by := names[actorKey(created.RecordedBy)]
		meta.CreatedAt = &at
		meta.CreatedBy = &by
	}
	if updated != nil {
		at := updated.RecordedAt
		by := names[actorKey(updated.RecordedBy)]
		meta.UpdatedAt = &at
		meta.UpdatedBy = &by
	}
	return meta, nil
}

// resolveActors maps the recorded_by ids on the chosen events to display
// names, falling back to unknownActor for missing accounts.
func (s *service) resolveActors(ctx context.Context, events ...*models.AuditEvent) (map[int64]string, error) {
	ids := make([]int64, 0, len(events))
	seen := make(map[int64]bool, len(events))
	for _, event := range events {
		if event == nil || event.RecordedBy == nil {
			continue
		}
		if id := *event.RecordedBy; !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	names := map[int64]string{0: unknownActor}
	if len(ids) == 0 {
		return names, nil
	}

	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve audit actors")
	}
	for id := range seen {
		names[id] = unknownActor
	}
	for i := range users {
		names[users[i].ID] = displayName(&users[i])
	}
	return names, nil
}

func actorKey(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}

func displayName(u *models.User) string {
	switch {
	case u == nil:
		return unknownActor
	case u.Name != "":
		return u.Name
	case u.Username != "":
		return u.Username
	case u.Email != nil && *u.Email != "":
		return *u.Email
	default:
		return strconv.FormatInt(u.ID, 10)
	}
}
