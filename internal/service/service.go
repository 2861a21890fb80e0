// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, sanitizes it,
// decides what "not found" means, and calls repository methods
// to interact with the data
package service

import (
	"context"
	"errors"

	"github.com/deppfellow/sampledb-api/internal/model"
	"github.com/deppfellow/sampledb-api/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

// RecordLister lists opaque read-only rows (agents, customers).
type RecordLister interface {
	List(ctx context.Context) ([]model.Record, error)
}

// CompanyStore is the persistence the company service needs.
//
// Replace, Patch and Delete check existence and mutate atomically; they
// report a missing company with an error wrapping pgx.ErrNoRows.
type CompanyStore interface {
	List(ctx context.Context) ([]model.Company, error)
	GetByID(ctx context.Context, id int64) (*model.Company, error)
	Create(ctx context.Context, name, city string) (int64, error)
	Replace(ctx context.Context, id int64, name, city string) error
	Patch(ctx context.Context, id int64, patch model.CompanyPatch) error
	Delete(ctx context.Context, id int64) error
}

// storeError turns "no rows" into a 404 and leaves everything else for the
// global error handler.
func storeError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return sqlerr.HandleError(err)
	}
	return err
}
