package ingest

import (
	"context"

	"github.com/vantaworks/vectoradmin/internal/domain/batch"
	"github.com/vantaworks/vectoradmin/internal/domain/record"
	"github.com/vantaworks/vectoradmin/internal/domain/schema"
)

// Repository defines the storage contract for document ingestion.
type Repository interface {
	Properties(ctx context.Context, collection string) ([]schema.PropertyDef, error)
	InsertBatch(ctx context.Context, collection string, docs []record.Record) (succeeded int, failures []batch.Failure, err error)
	Sample(ctx context.Context, collection string, limit, offset int) ([]record.Stored, error)
	Get(ctx context.Context, collection, id string) (record.Stored, error)
	Update(ctx context.Context, collection, id string, doc record.Record) error
	Delete(ctx context.Context, collection, id string) error
}
