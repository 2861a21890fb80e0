package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/sampledb-api/internal/model"
)

const listAgentsQuery = `SELECT * FROM agents`

type AgentRepository struct {
	db DBTX
}

func NewAgentRepository(db DBTX) *AgentRepository {
	return &AgentRepository{db: db}
}

// List returns every agent with whatever columns the table has.
func (r *AgentRepository) List(ctx context.Context) ([]model.Record, error) {
	records, err := listRecords(ctx, r.db, listAgentsQuery)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	return records, nil
}
