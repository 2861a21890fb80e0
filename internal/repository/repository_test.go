package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/deppfellow/sampledb-api/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var companyColumns = []string{"company_id", "company_name", "company_city"}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock
}

func strPtr(s string) *string {
	return &s
}

func TestAgentRepository_List(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(listAgentsQuery).
		WillReturnRows(mock.NewRows([]string{"agent_code", "agent_name"}).
			AddRow("A007", "Ramasundar").
			AddRow("A003", "Alex"))

	agents, err := NewAgentRepository(mock).List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []model.Record{
		{"agent_code": "A007", "agent_name": "Ramasundar"},
		{"agent_code": "A003", "agent_name": "Alex"},
	}, agents)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepository_ListEmpty(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(listCustomersQuery).
		WillReturnRows(mock.NewRows([]string{"cust_code"}))

	customers, err := NewCustomerRepository(mock).List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, customers)
	assert.Empty(t, customers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepository_ListError(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(listCustomersQuery).WillReturnError(errors.New("connection refused"))

	_, err := NewCustomerRepository(mock).List(context.Background())

	assert.ErrorContains(t, err, "list customers: connection refused")
}

func TestCompanyRepository_List(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(listCompaniesQuery).
		WillReturnRows(mock.NewRows(companyColumns).
			AddRow(int64(1), "Order All", "Boston").
			AddRow(int64(2), "Akas Foods", "Delhi"))

	companies, err := NewCompanyRepository(mock).List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []model.Company{
		{ID: 1, Name: "Order All", City: "Boston"},
		{ID: 2, Name: "Akas Foods", City: "Delhi"},
	}, companies)
}

func TestCompanyRepository_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(getCompanyQuery).WithArgs(int64(3)).
			WillReturnRows(mock.NewRows(companyColumns).AddRow(int64(3), "Foodies.", "London"))

		company, err := NewCompanyRepository(mock).GetByID(context.Background(), 3)

		require.NoError(t, err)
		assert.Equal(t, &model.Company{ID: 3, Name: "Foodies.", City: "London"}, company)
	})

	t.Run("missing", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(getCompanyQuery).WithArgs(int64(404)).
			WillReturnRows(mock.NewRows(companyColumns))

		_, err := NewCompanyRepository(mock).GetByID(context.Background(), 404)

		assert.ErrorIs(t, err, pgx.ErrNoRows)
		assert.Contains(t, err.Error(), "table:company:")
	})
}

func TestCompanyRepository_Create(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(insertCompanyQuery).WithArgs("Acme", "Boston").
		WillReturnRows(mock.NewRows([]string{"company_id"}).AddRow(int64(42)))

	id, err := NewCompanyRepository(mock).Create(context.Background(), "Acme", "Boston")

	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyRepository_Replace(t *testing.T) {
	t.Run("existing row is locked then updated", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(lockCompanyQuery).WithArgs(int64(1)).
			WillReturnRows(mock.NewRows([]string{"company_id"}).AddRow(int64(1)))
		mock.ExpectExec(replaceCompanyQuery).WithArgs("Acme", "Boston", int64(1)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectCommit()

		err := NewCompanyRepository(mock).Replace(context.Background(), 1, "Acme", "Boston")

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row rolls back without update", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(lockCompanyQuery).WithArgs(int64(9)).
			WillReturnRows(mock.NewRows([]string{"company_id"}))
		mock.ExpectRollback()

		err := NewCompanyRepository(mock).Replace(context.Background(), 9, "Acme", "Boston")

		assert.ErrorIs(t, err, pgx.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCompanyRepository_Patch(t *testing.T) {
	t.Run("city only", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(lockCompanyQuery).WithArgs(int64(2)).
			WillReturnRows(mock.NewRows([]string{"company_id"}).AddRow(int64(2)))
		mock.ExpectExec("UPDATE company SET company_city = $1 WHERE company_id = $2").
			WithArgs("Paris", int64(2)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectCommit()

		err := NewCompanyRepository(mock).Patch(context.Background(), 2, model.CompanyPatch{City: strPtr("Paris")})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty patch only checks existence", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(lockCompanyQuery).WithArgs(int64(2)).
			WillReturnRows(mock.NewRows([]string{"company_id"}).AddRow(int64(2)))
		mock.ExpectCommit()

		err := NewCompanyRepository(mock).Patch(context.Background(), 2, model.CompanyPatch{})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update failure rolls back", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(lockCompanyQuery).WithArgs(int64(2)).
			WillReturnRows(mock.NewRows([]string{"company_id"}).AddRow(int64(2)))
		mock.ExpectExec("UPDATE company SET company_name = $1 WHERE company_id = $2").
			WithArgs("Acme", int64(2)).
			WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		err := NewCompanyRepository(mock).Patch(context.Background(), 2, model.CompanyPatch{Name: strPtr("Acme")})

		assert.ErrorContains(t, err, "disk full")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCompanyRepository_Delete(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery(lockCompanyQuery).WithArgs(int64(5)).
		WillReturnRows(mock.NewRows([]string{"company_id"}).AddRow(int64(5)))
	mock.ExpectExec(deleteCompanyQuery).WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	err := NewCompanyRepository(mock).Delete(context.Background(), 5)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildPatchQuery(t *testing.T) {
	query, args, ok := buildPatchQuery(7, model.CompanyPatch{Name: strPtr("Acme"), City: strPtr("Boston")})

	require.True(t, ok)
	assert.Equal(t, "UPDATE company SET company_name = $1, company_city = $2 WHERE company_id = $3", query)
	assert.Equal(t, []any{"Acme", "Boston", int64(7)}, args)

	_, _, ok = buildPatchQuery(7, model.CompanyPatch{})
	assert.False(t, ok)
}
