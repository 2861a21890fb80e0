package handler

import (
	"github.com/deppfellow/sampledb-api/internal/server"
	"github.com/deppfellow/sampledb-api/internal/service"
)

// Handlers groups all HTTP handlers so the router receives one value.
type Handlers struct {
	Agents    *RecordHandler
	Companies *CompanyHandler
	Customers *RecordHandler

	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Metrics *MetricsHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Agents:    NewRecordHandler(s, services.Agents),
		Companies: NewCompanyHandler(s, services.Companies),
		Customers: NewRecordHandler(s, services.Customers),
		Health:    NewHealthHandler(s),
		OpenAPI:   NewOpenAPIHandler(s),
		Metrics:   NewMetricsHandler(s),
	}
}
