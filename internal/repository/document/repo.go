// Package document adapts the cluster object API to typed domain records.
package document

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vantaworks/vectoradmin/internal/db"
	"github.com/vantaworks/vectoradmin/internal/domain"
	"github.com/vantaworks/vectoradmin/internal/domain/batch"
	"github.com/vantaworks/vectoradmin/internal/domain/record"
	"github.com/vantaworks/vectoradmin/internal/domain/schema"
)

// store is the consumer interface for documents (ISP).
type store interface {
	GetClass(ctx context.Context, name string) (db.ClassDefinition, error)
	BatchObjects(ctx context.Context, objects []db.Object) (db.BatchReport, error)
	ListObjects(ctx context.Context, q db.ObjectQuery) ([]db.Object, error)
	GetObject(ctx context.Context, class, id string) (db.Object, error)
	UpdateObject(ctx context.Context, obj db.Object) error
	DeleteObject(ctx context.Context, class, id string) error
}

// Repo implements usecase/ingest.Repository.
type Repo struct {
	store store
}

// New creates a document repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Properties fetches the target collection's property definitions, used to
// coerce raw upload values.
func (r *Repo) Properties(ctx context.Context, collection string) ([]schema.PropertyDef, error) {
	def, err := r.store.GetClass(ctx, collection)
	if err != nil {
		if errors.Is(err, db.ErrClassNotFound) {
			return nil, fmt.Errorf("collection %q: %w", collection, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get class %s: %w", collection, err)
	}

	props := make([]schema.PropertyDef, 0, len(def.Properties))
	for _, p := range def.Properties {
		var dt schema.DataType
		if len(p.DataType) > 0 {
			if mapped, ok := schema.DataTypeFromWire(p.DataType[0]); ok {
				dt = mapped
			} else {
				dt = schema.DataType(p.DataType[0])
			}
		}
		searchable := p.IndexSearchable != nil && *p.IndexSearchable
		filterable := p.IndexFilterable != nil && *p.IndexFilterable
		props = append(props, schema.Reconstruct(p.Name, dt, p.Description, searchable, filterable))
	}
	return props, nil
}

// InsertBatch writes one batch of typed records in a single call and reports
// the per-record outcome. Failure indexes are batch-relative.
func (r *Repo) InsertBatch(ctx context.Context, collection string, docs []record.Record) (int, []batch.Failure, error) {
	objects := make([]db.Object, 0, len(docs))
	for _, doc := range docs {
		objects = append(objects, db.Object{Class: collection, Properties: doc.ToWire()})
	}

	report, err := r.store.BatchObjects(ctx, objects)
	if err != nil {
		return 0, nil, fmt.Errorf("batch insert into %s: %w", collection, err)
	}

	failures := make([]batch.Failure, 0, len(report.Failures))
	for _, f := range report.Failures {
		failures = append(failures, batch.Failure{Index: f.Index, Reason: f.Message})
	}
	return report.Succeeded, failures, nil
}

// Sample fetches a bounded page of stored documents for display.
func (r *Repo) Sample(ctx context.Context, collection string, limit, offset int) ([]record.Stored, error) {
	objects, err := r.store.ListObjects(ctx, db.ObjectQuery{Class: collection, Limit: limit, Offset: offset})
	if err != nil {
		if errors.Is(err, db.ErrClassNotFound) {
			return nil, fmt.Errorf("collection %q: %w", collection, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("list objects %s: %w", collection, err)
	}

	docs := make([]record.Stored, 0, len(objects))
	for _, obj := range objects {
		docs = append(docs, storedFromObject(obj))
	}
	return docs, nil
}

// Get fetches one stored document by id.
func (r *Repo) Get(ctx context.Context, collection, id string) (record.Stored, error) {
	obj, err := r.store.GetObject(ctx, collection, id)
	if err != nil {
		if errors.Is(err, db.ErrObjectNotFound) {
			return record.Stored{}, fmt.Errorf("object %q: %w", id, domain.ErrNotFound)
		}
		return record.Stored{}, fmt.Errorf("get object %s/%s: %w", collection, id, err)
	}
	return storedFromObject(obj), nil
}

// Update replaces one stored document's properties.
func (r *Repo) Update(ctx context.Context, collection, id string, doc record.Record) error {
	err := r.store.UpdateObject(ctx, db.Object{Class: collection, ID: id, Properties: doc.ToWire()})
	if err != nil {
		if errors.Is(err, db.ErrObjectNotFound) {
			return fmt.Errorf("object %q: %w", id, domain.ErrNotFound)
		}
		return fmt.Errorf("update object %s/%s: %w", collection, id, err)
	}
	return nil
}

// Delete removes one stored document.
func (r *Repo) Delete(ctx context.Context, collection, id string) error {
	if err := r.store.DeleteObject(ctx, collection, id); err != nil {
		if errors.Is(err, db.ErrObjectNotFound) {
			return fmt.Errorf("object %q: %w", id, domain.ErrNotFound)
		}
		return fmt.Errorf("delete object %s/%s: %w", collection, id, err)
	}
	return nil
}

func storedFromObject(obj db.Object) record.Stored {
	return record.Stored{
		ID:         obj.ID,
		Properties: obj.Properties,
		CreatedAt:  unixMilli(obj.CreationTimeUnix),
		UpdatedAt:  unixMilli(obj.LastUpdateTimeUnix),
	}
}

func unixMilli(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
