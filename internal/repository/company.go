package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/sampledb-api/internal/model"
	"github.com/deppfellow/sampledb-api/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

const (
	companyTable = "company"

	listCompaniesQuery = `SELECT company_id, company_name, company_city FROM company ORDER BY company_id`

	getCompanyQuery = `SELECT company_id, company_name, company_city FROM company WHERE company_id = $1`

	insertCompanyQuery = `INSERT INTO company (company_name, company_city) VALUES ($1, $2) RETURNING company_id`

	// lockCompanyQuery is the existence check of every mutation. The row lock
	// holds until the transaction ends, so the row cannot vanish or change
	// between the check and the write.
	lockCompanyQuery = `SELECT company_id FROM company WHERE company_id = $1 FOR UPDATE`

	replaceCompanyQuery = `UPDATE company SET company_name = $1, company_city = $2 WHERE company_id = $3`

	deleteCompanyQuery = `DELETE FROM company WHERE company_id = $1`
)

type CompanyRepository struct {
	db DBTX
}

func NewCompanyRepository(db DBTX) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) List(ctx context.Context) ([]model.Company, error) {
	rows, err := r.db.Query(ctx, listCompaniesQuery)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}

	companies, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Company])
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}

	if companies == nil {
		companies = []model.Company{}
	}
	return companies, nil
}

// GetByID returns the company with id, or an error wrapping pgx.ErrNoRows.
func (r *CompanyRepository) GetByID(ctx context.Context, id int64) (*model.Company, error) {
	rows, err := r.db.Query(ctx, getCompanyQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get company %d: %w", id, err)
	}

	company, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Company])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sqlerr.NoRows(companyTable)
		}
		return nil, fmt.Errorf("get company %d: %w", id, err)
	}

	return company, nil
}

// Create inserts a company and returns the id the database assigned.
func (r *CompanyRepository) Create(ctx context.Context, name, city string) (int64, error) {
	var id int64
	if err := r.db.QueryRow(ctx, insertCompanyQuery, name, city).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert company: %w", err)
	}
	return id, nil
}

// Replace overwrites name and city of an existing company.
func (r *CompanyRepository) Replace(ctx context.Context, id int64, name, city string) error {
	return inTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := lockCompany(ctx, tx, id); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, replaceCompanyQuery, name, city, id); err != nil {
			return fmt.Errorf("replace company %d: %w", id, err)
		}
		return nil
	})
}

// Patch overwrites the columns set in patch. An empty patch only checks
// that the company exists.
func (r *CompanyRepository) Patch(ctx context.Context, id int64, patch model.CompanyPatch) error {
	return inTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := lockCompany(ctx, tx, id); err != nil {
			return err
		}

		query, args, ok := buildPatchQuery(id, patch)
		if !ok {
			return nil
		}

		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("patch company %d: %w", id, err)
		}
		return nil
	})
}

// Delete removes an existing company.
func (r *CompanyRepository) Delete(ctx context.Context, id int64) error {
	return inTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := lockCompany(ctx, tx, id); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, deleteCompanyQuery, id); err != nil {
			return fmt.Errorf("delete company %d: %w", id, err)
		}
		return nil
	})
}

func lockCompany(ctx context.Context, tx pgx.Tx, id int64) error {
	var locked int64
	err := tx.QueryRow(ctx, lockCompanyQuery, id).Scan(&locked)
	if errors.Is(err, pgx.ErrNoRows) {
		return sqlerr.NoRows(companyTable)
	}
	if err != nil {
		return fmt.Errorf("lock company %d: %w", id, err)
	}
	return nil
}

// buildPatchQuery accumulates one "column = $n" per supplied field and
// reports false when there is nothing to update.
//
//	UPDATE company SET company_name = $1, company_city = $2 WHERE company_id = $3
func buildPatchQuery(id int64, patch model.CompanyPatch) (string, []any, bool) {
	var (
		sets []string
		args []any
	)

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		add("company_name", *patch.Name)
	}
	if patch.City != nil {
		add("company_city", *patch.City)
	}

	if len(sets) == 0 {
		return "", nil, false
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE company SET %s WHERE company_id = $%d", strings.Join(sets, ", "), len(args))

	return query, args, true
}
