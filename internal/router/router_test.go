package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/sampledb-api/internal/config"
	"github.com/deppfellow/sampledb-api/internal/errs"
	"github.com/deppfellow/sampledb-api/internal/handler"
	"github.com/deppfellow/sampledb-api/internal/model"
	"github.com/deppfellow/sampledb-api/internal/server"
	"github.com/deppfellow/sampledb-api/internal/service"
	"github.com/deppfellow/sampledb-api/internal/service/servicetest"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type testAPI struct {
	router    *echo.Echo
	companies *servicetest.CompanyStore
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	logger := zerolog.Nop()
	s := server.NewWithDatabase(config.DefaultConfig(), &logger, nil, nil)

	companies := servicetest.NewCompanyStore(
		model.Company{ID: 1, Name: "Order All", City: "Boston"},
		model.Company{ID: 2, Name: "Akas Foods", City: "Delhi"},
	)
	services := &service.Services{
		Agents:    service.NewRecordService(servicetest.Records{{"agent_code": "A007", "agent_name": "Ramasundar"}}),
		Companies: service.NewCompanyService(companies),
		Customers: service.NewRecordService(servicetest.Records(nil)),
	}

	return &testAPI{
		router:    NewRouter(s, handler.NewHandlers(s, services)),
		companies: companies,
	}
}

func (api *testAPI) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)
	return rec
}

func (api *testAPI) getCompany(t *testing.T, location string) model.Company {
	t.Helper()

	rec := api.do(http.MethodGet, location, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var companies []model.Company
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &companies))
	require.Len(t, companies, 1)
	return companies[0]
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errs.HTTPError {
	t.Helper()

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestListEndpoints(t *testing.T) {
	api := newTestAPI(t)

	t.Run("agents", func(t *testing.T) {
		rec := api.do(http.MethodGet, "/agents", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "max-age=604800", rec.Header().Get(echo.HeaderCacheControl))
		assert.JSONEq(t, `[{"agent_code":"A007","agent_name":"Ramasundar"}]`, rec.Body.String())
	})

	t.Run("empty customers is an empty array", func(t *testing.T) {
		rec := api.do(http.MethodGet, "/customers", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("companies", func(t *testing.T) {
		rec := api.do(http.MethodGet, "/companies", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[
			{"company_id":1,"company_name":"Order All","company_city":"Boston"},
			{"company_id":2,"company_name":"Akas Foods","company_city":"Delhi"}
		]`, rec.Body.String())
	})
}

func TestGetCompany(t *testing.T) {
	api := newTestAPI(t)

	company := api.getCompany(t, "/companies/2")
	assert.Equal(t, model.Company{ID: 2, Name: "Akas Foods", City: "Delhi"}, company)

	for _, id := range []string{"99", "abc"} {
		rec := api.do(http.MethodGet, "/companies/"+id, "")

		assert.Equal(t, http.StatusNotFound, rec.Code, "id %s", id)
		assert.Equal(t, "Company not found", decodeError(t, rec).Message)
		assert.Empty(t, rec.Header().Get(echo.HeaderCacheControl))
	}
}

func TestCreateCompany(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/companies", `{"companyName":"Tom & Jerry <Ltd>","companyCity":"New York"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	location := rec.Header().Get(echo.HeaderLocation)
	assert.Equal(t, "/companies/3", location)

	company := api.getCompany(t, location)
	assert.Equal(t, "Tom &amp; Jerry &lt;Ltd&gt;", company.Name)
	assert.Equal(t, "New York", company.City)

	// Re-submitting the fetched value does not double-escape.
	rec = api.do(http.MethodPut, location, fmt.Sprintf(`{"companyName":%q,"companyCity":"Boston"}`, company.Name))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, company.Name, api.getCompany(t, location).Name)
}

func TestCreateCompany_ValidationErrors(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/companies", `{"companyName":"","companyCity":"R2D2"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, []errs.FieldError{
		{Field: "companyName", Error: "is required", Location: errs.LocationBody},
		{Field: "companyCity", Error: "must contain only letters and spaces", Location: errs.LocationBody},
	}, body.Errors)
	assert.Equal(t, 2, api.companies.Len(), "no row created")
}

func TestCreateCompany_MalformedBody(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/companies", `{"companyName":42}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 2, api.companies.Len())
}

func TestReplaceCompany(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPut, "/companies/77", `{"companyName":"Ghost","companyCity":"Nowhere"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, api.companies.Writes)

	rec = api.do(http.MethodPut, "/companies/x", `{"companyName":"Ghost","companyCity":"Nowhere"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []errs.FieldError{
		{Field: "id", Error: "must be an integer", Location: errs.LocationParams},
	}, decodeError(t, rec).Errors)

	rec = api.do(http.MethodPut, "/companies/1", `{"companyName":"Acme","companyCity":"Austin"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, model.Company{ID: 1, Name: "Acme", City: "Austin"}, api.getCompany(t, "/companies/1"))
}

func TestPatchCompany(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPatch, "/companies/1", `{"companyCity":"Chicago"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.Company{ID: 1, Name: "Order All", City: "Chicago"}, api.getCompany(t, "/companies/1"))

	writes := api.companies.Writes
	rec = api.do(http.MethodPatch, "/companies/1", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, writes, api.companies.Writes, "empty patch writes nothing")
	assert.Equal(t, model.Company{ID: 1, Name: "Order All", City: "Chicago"}, api.getCompany(t, "/companies/1"))

	rec = api.do(http.MethodPatch, "/companies/1", `{"companyCity":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodPatch, "/companies/404", `{"companyName":"Nobody"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteCompanyTwice(t *testing.T) {
	api := newTestAPI(t)

	assert.Equal(t, http.StatusOK, api.do(http.MethodDelete, "/companies/2", "").Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodDelete, "/companies/2", "").Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/companies/2", "").Code)
}

func TestConcurrentCreates(t *testing.T) {
	api := newTestAPI(t)

	locations := make([]string, 50)
	var g errgroup.Group
	for i := range locations {
		g.Go(func() error {
			rec := api.do(http.MethodPost, "/companies", fmt.Sprintf(`{"companyName":"Company %d","companyCity":"Boston"}`, i))
			if rec.Code != http.StatusCreated {
				return fmt.Errorf("create %d: status %d", i, rec.Code)
			}
			locations[i] = rec.Header().Get(echo.HeaderLocation)
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, 52, api.companies.Len())
	for i, location := range locations {
		assert.Equal(t, fmt.Sprintf("Company %d", i), api.getCompany(t, location).Name)
	}
}

func TestUnknownRoute(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/nope", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decodeError(t, rec).Message)
}

func TestSystemRoutes(t *testing.T) {
	api := newTestAPI(t)

	t.Run("status without a database is unhealthy", func(t *testing.T) {
		rec := api.do(http.MethodGet, "/status", "")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), `"unhealthy"`)
	})

	t.Run("docs", func(t *testing.T) {
		rec := api.do(http.MethodGet, "/docs", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "/docs/openapi.yaml")

		rec = api.do(http.MethodGet, "/docs/openapi.yaml", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "/companies/{companyId}:")
	})

	t.Run("metrics", func(t *testing.T) {
		api.do(http.MethodGet, "/agents", "")

		rec := api.do(http.MethodGet, "/metrics", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `route="/agents"`)
	})
}

func TestCreateCompany_DatabaseErrors(t *testing.T) {
	t.Run("value too long is a bad request", func(t *testing.T) {
		api := newTestAPI(t)
		api.companies.Err = fmt.Errorf("insert company: %w",
			&pgconn.PgError{Code: "22001", Severity: "ERROR", TableName: "company"})

		rec := api.do(http.MethodPost, "/companies", `{"companyName":"`+strings.Repeat("x", 300)+`","companyCity":"Oslo"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, "COMPANY_INVALID", body.Code)
		assert.Equal(t, "One or more values are too long", body.Message)
	})

	t.Run("other database errors are internal", func(t *testing.T) {
		api := newTestAPI(t)
		api.companies.Err = &pgconn.PgError{Code: "23505", Severity: "ERROR", TableName: "company"}

		rec := api.do(http.MethodPost, "/companies", `{"companyName":"Acme","companyCity":"Oslo"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "23505")
	})
}
