package storage

import (
	"context"

	"conicPool/internal/model"
)

// Storage defines a sink for operation records.
type Storage interface {
	PutOperationBatch(ctx context.Context, records []model.OperationRecord) error
}

// Multi fans a batch out to every sink in order, stopping at the first error.
type Multi []Storage

func (m Multi) PutOperationBatch(ctx context.Context, records []model.OperationRecord) error {
	for _, sink := range m {
		if sink == nil {
			continue
		}
		if err := sink.PutOperationBatch(ctx, records); err != nil {
			return err
		}
	}
	return nil
}
