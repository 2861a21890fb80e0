package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/sampledb-api/internal/model"
)

const listCustomersQuery = `SELECT * FROM customer`

type CustomerRepository struct {
	db DBTX
}

func NewCustomerRepository(db DBTX) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// List returns every customer with whatever columns the table has.
func (r *CustomerRepository) List(ctx context.Context) ([]model.Record, error) {
	records, err := listRecords(ctx, r.db, listCustomersQuery)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return records, nil
}
