package handler

import (
	"net/http"
	"strconv"

	"github.com/deppfellow/sampledb-api/internal/model"
	"github.com/deppfellow/sampledb-api/internal/server"
	"github.com/deppfellow/sampledb-api/internal/service"
	"github.com/labstack/echo/v4"
)

type CompanyHandler struct {
	Handler
	companies *service.CompanyService
}

func NewCompanyHandler(s *server.Server, companies *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{
		Handler:   NewHandler(s),
		companies: companies,
	}
}

func (h *CompanyHandler) ListCompanies() echo.HandlerFunc {
	return HandleCached(h.Handler,
		func(c echo.Context, req *model.ListRequest) ([]model.Company, error) {
			return h.companies.List(c.Request().Context())
		},
		http.StatusOK,
		&model.ListRequest{},
	)
}

// GetCompany responds with a one-element array, or 404.
func (h *CompanyHandler) GetCompany() echo.HandlerFunc {
	return HandleCached(h.Handler,
		func(c echo.Context, req *model.GetCompanyRequest) ([]model.Company, error) {
			return h.companies.Get(c.Request().Context(), req.ID)
		},
		http.StatusOK,
		&model.GetCompanyRequest{},
	)
}

// CreateCompany responds 201 with the new resource in the Location header.
func (h *CompanyHandler) CreateCompany() echo.HandlerFunc {
	return HandleNoContent(h.Handler,
		func(c echo.Context, req *model.CreateCompanyRequest) error {
			id, err := h.companies.Create(c.Request().Context(), req)
			if err != nil {
				return err
			}

			c.Response().Header().Set(echo.HeaderLocation, "/companies/"+strconv.FormatInt(id, 10))
			return nil
		},
		http.StatusCreated,
		&model.CreateCompanyRequest{},
	)
}

func (h *CompanyHandler) ReplaceCompany() echo.HandlerFunc {
	return HandleNoContent(h.Handler,
		func(c echo.Context, req *model.ReplaceCompanyRequest) error {
			return h.companies.Replace(c.Request().Context(), req)
		},
		http.StatusOK,
		&model.ReplaceCompanyRequest{},
	)
}

func (h *CompanyHandler) PatchCompany() echo.HandlerFunc {
	return HandleNoContent(h.Handler,
		func(c echo.Context, req *model.PatchCompanyRequest) error {
			return h.companies.Patch(c.Request().Context(), req)
		},
		http.StatusOK,
		&model.PatchCompanyRequest{},
	)
}

func (h *CompanyHandler) DeleteCompany() echo.HandlerFunc {
	return HandleNoContent(h.Handler,
		func(c echo.Context, req *model.DeleteCompanyRequest) error {
			return h.companies.Delete(c.Request().Context(), req)
		},
		http.StatusOK,
		&model.DeleteCompanyRequest{},
	)
}
