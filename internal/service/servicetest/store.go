// Package servicetest provides in-memory stores for exercising the service
// and HTTP layers without a database.
package servicetest

import (
	"context"
	"sort"
	"sync"

	"github.com/deppfellow/sampledb-api/internal/model"
	"github.com/deppfellow/sampledb-api/internal/sqlerr"
)

// Records is a fixed, read-only table.
type Records []model.Record

func (r Records) List(context.Context) ([]model.Record, error) {
	if r == nil {
		return []model.Record{}, nil
	}
	return r, nil
}

// CompanyStore keeps companies in a map guarded by a mutex, assigning ids
// the way a serial column does.
type CompanyStore struct {
	mu        sync.Mutex
	nextID    int64
	companies map[int64]model.Company

	// Err, when set, is returned by every call.
	Err error

	// Writes counts mutating calls that changed a row.
	Writes int
}

func NewCompanyStore(seed ...model.Company) *CompanyStore {
	s := &CompanyStore{companies: make(map[int64]model.Company)}
	for _, c := range seed {
		s.companies[c.ID] = c
		if c.ID > s.nextID {
			s.nextID = c.ID
		}
	}
	return s
}

func (s *CompanyStore) List(context.Context) ([]model.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	companies := make([]model.Company, 0, len(s.companies))
	for _, c := range s.companies {
		companies = append(companies, c)
	}
	sort.Slice(companies, func(i, j int) bool { return companies[i].ID < companies[j].ID })

	return companies, nil
}

func (s *CompanyStore) GetByID(_ context.Context, id int64) (*model.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	c, ok := s.companies[id]
	if !ok {
		return nil, sqlerr.NoRows("company")
	}
	return &c, nil
}

func (s *CompanyStore) Create(_ context.Context, name, city string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return 0, s.Err
	}

	s.nextID++
	s.companies[s.nextID] = model.Company{ID: s.nextID, Name: name, City: city}
	s.Writes++

	return s.nextID, nil
}

func (s *CompanyStore) Replace(_ context.Context, id int64, name, city string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}

	if _, ok := s.companies[id]; !ok {
		return sqlerr.NoRows("company")
	}
	s.companies[id] = model.Company{ID: id, Name: name, City: city}
	s.Writes++

	return nil
}

func (s *CompanyStore) Patch(_ context.Context, id int64, patch model.CompanyPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}

	c, ok := s.companies[id]
	if !ok {
		return sqlerr.NoRows("company")
	}
	if patch.Empty() {
		return nil
	}

	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.City != nil {
		c.City = *patch.City
	}
	s.companies[id] = c
	s.Writes++

	return nil
}

func (s *CompanyStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}

	if _, ok := s.companies[id]; !ok {
		return sqlerr.NoRows("company")
	}
	delete(s.companies, id)
	s.Writes++

	return nil
}

// Len reports how many companies are stored.
func (s *CompanyStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.companies)
}
