package model

import "github.com/deppfellow/sampledb-api/internal/validation"

// ListRequest is the payload of the collection endpoints; it has no inputs.
type ListRequest struct{}

func (r *ListRequest) Validate() error {
	return nil
}

// GetCompanyRequest is the payload of GET /companies/:id.
//
// The id is not validated: anything that is not an existing company id is
// not found.
type GetCompanyRequest struct {
	ID string `param:"id" json:"-"`
}

func (r *GetCompanyRequest) Validate() error {
	return nil
}

type CreateCompanyRequest struct {
	Name string `json:"companyName" validate:"required"`
	City string `json:"companyCity" validate:"required,alphaspace"`
}

func (r *CreateCompanyRequest) Validate() error {
	return validation.Validator().Struct(r)
}

type ReplaceCompanyRequest struct {
	ID   string `param:"id" json:"-" validate:"required,integer"`
	Name string `json:"companyName" validate:"required"`
	City string `json:"companyCity" validate:"required,alphaspace"`
}

func (r *ReplaceCompanyRequest) Validate() error {
	return validation.Validator().Struct(r)
}

// PatchCompanyRequest is the payload of PATCH /companies/:id.
//
// Absent fields are nil. An empty companyName is treated as absent, an
// empty companyCity fails the alphabetic rule.
type PatchCompanyRequest struct {
	ID   string  `param:"id" json:"-" validate:"required,integer"`
	Name *string `json:"companyName"`
	City *string `json:"companyCity" validate:"omitnil,alphaspace"`
}

func (r *PatchCompanyRequest) Validate() error {
	return validation.Validator().Struct(r)
}

type DeleteCompanyRequest struct {
	ID string `param:"id" json:"-" validate:"required,integer"`
}

func (r *DeleteCompanyRequest) Validate() error {
	return validation.Validator().Struct(r)
}
