package service

import (
	"context"

	"github.com/deppfellow/sampledb-api/internal/errs"
	"github.com/deppfellow/sampledb-api/internal/model"
	"github.com/deppfellow/sampledb-api/internal/sqlerr"
	"github.com/deppfellow/sampledb-api/internal/validation"
)

type CompanyService struct {
	store CompanyStore
}

func NewCompanyService(store CompanyStore) *CompanyService {
	return &CompanyService{store: store}
}

func (s *CompanyService) List(ctx context.Context) ([]model.Company, error) {
	return s.store.List(ctx)
}

// Get returns a one-element slice holding the company with rawID.
//
// rawID is not validated: an id that cannot be a company id is not found,
// without a round trip to the database.
func (s *CompanyService) Get(ctx context.Context, rawID string) ([]model.Company, error) {
	id, ok := model.ParseID(rawID)
	if !ok {
		return nil, sqlerr.HandleError(sqlerr.NoRows("company"))
	}

	company, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}

	return []model.Company{*company}, nil
}

// Create stores a new company and returns its id.
func (s *CompanyService) Create(ctx context.Context, req *model.CreateCompanyRequest) (int64, error) {
	return s.store.Create(ctx, validation.Escape(req.Name), validation.Escape(req.City))
}

func (s *CompanyService) Replace(ctx context.Context, req *model.ReplaceCompanyRequest) error {
	id, err := parseID(req.ID)
	if err != nil {
		return err
	}

	return storeError(s.store.Replace(ctx, id, validation.Escape(req.Name), validation.Escape(req.City)))
}

// Patch updates the supplied fields of a company. An empty name counts as
// not supplied; a patch with nothing to change still requires the company
// to exist.
func (s *CompanyService) Patch(ctx context.Context, req *model.PatchCompanyRequest) error {
	id, err := parseID(req.ID)
	if err != nil {
		return err
	}

	var patch model.CompanyPatch
	if req.Name != nil && *req.Name != "" {
		name := validation.Escape(*req.Name)
		patch.Name = &name
	}
	if req.City != nil {
		city := validation.Escape(*req.City)
		patch.City = &city
	}

	return storeError(s.store.Patch(ctx, id, patch))
}

func (s *CompanyService) Delete(ctx context.Context, req *model.DeleteCompanyRequest) error {
	id, err := parseID(req.ID)
	if err != nil {
		return err
	}

	return storeError(s.store.Delete(ctx, id))
}

// parseID parses an id that already passed the "integer" rule.
func parseID(raw string) (int64, error) {
	id, ok := model.ParseID(raw)
	if !ok {
		return 0, errs.NewValidationError([]errs.FieldError{
			{Field: "id", Error: "must be an integer", Location: errs.LocationParams},
		})
	}
	return id, nil
}
