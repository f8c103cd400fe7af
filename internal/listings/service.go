package listings

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
	pkgerrors "github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/errors"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type pigChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type service struct {
	repo Repository
	pigs pigChecker
	tx   txRunner
}

// NewService wires the listing service.
func NewService(repo Repository, pigs pigChecker, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("listing repository required")
	}
	if pigs == nil {
		return nil, fmt.Errorf("pig checker required")
	}
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	return &service{repo: repo, pigs: pigs, tx: tx}, nil
}

// Create lists a pig for sale. A pig can carry at most one active listing,
// where active means still available or reserved.
func (s *service) Create(ctx context.Context, actorID int64, req CreateListingRequest) (*ListingDTO, error) {
	if !req.WeightKg.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "weight_kg must be positive")
	}
	if !req.SaleType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid sale type").
			WithDetails(map[string]any{"field": "sale_type"})
	}
	if err := s.checkPig(ctx, req.PigID); err != nil {
		return nil, err
	}

	listing := &models.AvailablePig{
		PigID:    req.PigID,
		WeightKg: req.WeightKg,
		SaleType: req.SaleType,
		Status:   enums.ListingStatusAvailable,
		ListedBy: &actorID,
		Notes:    req.Notes,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		taken, err := repo.HasActiveListing(ctx, req.PigID, 0)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check active listing")
		}
		if taken {
			return pkgerrors.New(pkgerrors.CodeConflict, "Pig already has an active listing")
		}
		if err := repo.Create(ctx, listing); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create listing")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(listing), nil
}

func (s *service) Get(ctx context.Context, id int64) (*ListingDTO, error) {
	listing, err := s.loadListing(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(listing), nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]ListingDTO, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list listings")
	}
	return FromModels(rows), nil
}

// ListPublic serves the anonymous browse view with only available stock.
func (s *service) ListPublic(ctx context.Context, p pagination.Params) ([]PublicListingDTO, error) {
	rows, err := s.repo.ListAvailable(ctx, p)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list available pigs")
	}
	return PublicFromModels(rows), nil
}

func (s *service) Update(ctx context.Context, actorID int64, id int64, req UpdateListingRequest) (*ListingDTO, error) {
	listing, err := s.loadListing(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.WeightKg != nil {
		if !req.WeightKg.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "weight_kg must be positive")
		}
		listing.WeightKg = *req.WeightKg
	}
	if req.SaleType != nil {
		if !req.SaleType.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid sale type").
				WithDetails(map[string]any{"field": "sale_type"})
		}
		listing.SaleType = *req.SaleType
	}
	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid listing status").
				WithDetails(map[string]any{"field": "status"})
		}
		listing.Status = *req.Status
	}
	if req.Notes != nil {
		listing.Notes = req.Notes
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Save(ctx, listing); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update listing")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(listing), nil
}

func (s *service) Delete(ctx context.Context, actorID int64, id int64) error {
	if _, err := s.loadListing(ctx, id); err != nil {
		return err
	}
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "Listing not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete listing")
		}
		return nil
	})
}

func (s *service) checkPig(ctx context.Context, pigID int64) error {
	ok, err := s.pigs.Exists(ctx, pigID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check pig")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Pig not found")
	}
	return nil
}

func (s *service) loadListing(ctx context.Context, id int64) (*models.AvailablePig, error) {
	listing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Listing not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load listing")
	}
	return listing, nil
}
