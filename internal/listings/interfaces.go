package listings

import (
	"context"

	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/pagination"
)

// Repository persists sale listings. A pig's active listing is the one row
// whose status is still available or reserved; Reserve flips such a row to
// reserved only while it is still available, and MarkSold closes out the
// active listings of every pig in the slice.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, listing *models.AvailablePig) error
	FindByID(ctx context.Context, id int64) (*models.AvailablePig, error)
	FindActiveByPig(ctx context.Context, pigID int64) (*models.AvailablePig, error)
	HasActiveListing(ctx context.Context, pigID int64, excludeID int64) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]models.AvailablePig, error)
	ListAvailable(ctx context.Context, p pagination.Params) ([]models.AvailablePig, error)
	Save(ctx context.Context, listing *models.AvailablePig) error
	Delete(ctx context.Context, id int64) error
	Reserve(ctx context.Context, id int64) (bool, error)
	MarkSold(ctx context.Context, pigIDs []int64) error
}

// Service exposes listing management plus the anonymous browse view.
type Service interface {
	Create(ctx context.Context, actorID int64, req CreateListingRequest) (*ListingDTO, error)
	Get(ctx context.Context, id int64) (*ListingDTO, error)
	List(ctx context.Context, filter ListFilter) ([]ListingDTO, error)
	ListPublic(ctx context.Context, p pagination.Params) ([]PublicListingDTO, error)
	Update(ctx context.Context, actorID int64, id int64, req UpdateListingRequest) (*ListingDTO, error)
	Delete(ctx context.Context, actorID int64, id int64) error
}
