package repository

import (
	"github.com/deppfellow/sampledb-api/internal/server"
)

// Repositories is a container for all repository instances.
//
// All of them share the server's connection pool.
type Repositories struct {
	Agents    *AgentRepository
	Companies *CompanyRepository
	Customers *CustomerRepository
}

// NewRepositories constructs the repository container on top of s.DB.Pool.
func NewRepositories(s *server.Server) *Repositories {
	return NewRepositoriesWithDB(s.DB.Pool)
}

// NewRepositoriesWithDB builds the repositories over any DBTX, e.g. a mock pool in tests.
func NewRepositoriesWithDB(db DBTX) *Repositories {
	return &Repositories{
		Agents:    NewAgentRepository(db),
		Companies: NewCompanyRepository(db),
		Customers: NewCustomerRepository(db),
	}
}
