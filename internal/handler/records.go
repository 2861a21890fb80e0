package handler

import (
	"net/http"

	"github.com/deppfellow/sampledb-api/internal/model"
	"github.com/deppfellow/sampledb-api/internal/server"
	"github.com/deppfellow/sampledb-api/internal/service"
	"github.com/labstack/echo/v4"
)

// RecordHandler serves a read-only table (agents, customers) as a JSON array.
type RecordHandler struct {
	Handler
	records *service.RecordService
}

func NewRecordHandler(s *server.Server, records *service.RecordService) *RecordHandler {
	return &RecordHandler{
		Handler: NewHandler(s),
		records: records,
	}
}

func (h *RecordHandler) List() echo.HandlerFunc {
	return HandleCached(h.Handler,
		func(c echo.Context, req *model.ListRequest) ([]model.Record, error) {
			return h.records.List(c.Request().Context())
		},
		http.StatusOK,
		&model.ListRequest{},
	)
}
