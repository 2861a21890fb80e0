package service

import (
	"context"

	"github.com/deppfellow/sampledb-api/internal/model"
)

// RecordService serves a read-only table.
type RecordService struct {
	store RecordLister
}

func NewRecordService(store RecordLister) *RecordService {
	return &RecordService{store: store}
}

func (s *RecordService) List(ctx context.Context) ([]model.Record, error) {
	return s.store.List(ctx)
}
