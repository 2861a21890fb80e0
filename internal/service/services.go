package service

import (
	"github.com/deppfellow/sampledb-api/internal/repository"
)

type Services struct {
	Agents    *RecordService
	Companies *CompanyService
	Customers *RecordService
}

func NewServices(repos *repository.Repositories) *Services {
	return &Services{
		Agents:    NewRecordService(repos.Agents),
		Companies: NewCompanyService(repos.Companies),
		Customers: NewRecordService(repos.Customers),
	}
}
