package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/sampledb-api/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleError_NoRowsNamesEntity(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(NoRows("company")))

	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Company not found", httpErr.Message)
	assert.True(t, httpErr.Override)
}

func TestHandleError_BareNoRows(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(pgx.ErrNoRows))

	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Resource not found", httpErr.Message)
}

func TestHandleError_PgErrors(t *testing.T) {
	tests := []struct {
		name    string
		pgErr   *pgconn.PgError
		status  int
		code    string
		message string
	}{
		{
			name:    "value too long",
			pgErr:   &pgconn.PgError{Code: "22001", Severity: "ERROR", TableName: "company"},
			status:  http.StatusBadRequest,
			code:    "COMPANY_INVALID",
			message: "One or more values are too long",
		},
		{
			name:    "invalid text",
			pgErr:   &pgconn.PgError{Code: "22P02", Severity: "ERROR", TableName: "company"},
			status:  http.StatusBadRequest,
			code:    "COMPANY_INVALID",
			message: "One or more values have an invalid format",
		},
		{
			name:    "unique violation is not an API outcome",
			pgErr:   &pgconn.PgError{Code: "23505", Severity: "ERROR", TableName: "company", ConstraintName: "company_name_key"},
			status:  http.StatusInternalServerError,
			code:    "INTERNAL_SERVER_ERROR",
			message: "Internal Server Error",
		},
		{
			name:    "unknown sqlstate hides details",
			pgErr:   &pgconn.PgError{Code: "XX000", Severity: "ERROR", Message: "internal detail"},
			status:  http.StatusInternalServerError,
			code:    "INTERNAL_SERVER_ERROR",
			message: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := asHTTPError(t, HandleError(fmt.Errorf("query failed: %w", tt.pgErr)))

			assert.Equal(t, tt.status, httpErr.Status)
			assert.Equal(t, tt.code, httpErr.Code)
			assert.Equal(t, tt.message, httpErr.Message)
		})
	}
}

func TestHandleError_NotNullCarriesFieldError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23502", Severity: "ERROR", TableName: "company", ColumnName: "company_city"}

	httpErr := asHTTPError(t, HandleError(pgErr))

	assert.Equal(t, "The Company City is required", httpErr.Message)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "company_city", httpErr.Errors[0].Field)
}

func TestHandleError_PassesHTTPErrorThrough(t *testing.T) {
	original := errs.NewNotFoundError("gone", false, nil)

	assert.Same(t, original, HandleError(original))
}

func TestHandleError_UnknownIsInternal(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(errors.New("connection reset")))

	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestErrCode(t *testing.T) {
	converted := ConvertPgError(&pgconn.PgError{Code: "23514", Severity: "ERROR"})

	assert.Equal(t, CheckViolation, ErrCode(fmt.Errorf("wrap: %w", converted)))
	assert.Equal(t, Other, ErrCode(errors.New("plain")))
	assert.ErrorIs(t, converted, converted.driverErr)
}
