// Package backuphist persists backup audit records as ordinary documents in
// a dedicated collection inside the target cluster.
package backuphist

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vantaworks/vectoradmin/internal/db"
	"github.com/vantaworks/vectoradmin/internal/domain"
	"github.com/vantaworks/vectoradmin/internal/domain/backup"
	"github.com/vantaworks/vectoradmin/internal/domain/schema"
)

// store is the consumer interface for history records (ISP).
type store interface {
	CreateClass(ctx context.Context, def db.ClassDefinition) error
	GetClass(ctx context.Context, name string) (db.ClassDefinition, error)
	BatchObjects(ctx context.Context, objects []db.Object) (db.BatchReport, error)
	ListObjects(ctx context.Context, q db.ObjectQuery) ([]db.Object, error)
	UpdateObject(ctx context.Context, obj db.Object) error
	DeleteObject(ctx context.Context, class, id string) error
}

// Repo implements usecase/backupsvc.Repository.
type Repo struct {
	store store
	class string
}

// New creates a backup history repository writing to the given collection.
func New(s store, class string) *Repo {
	return &Repo{store: s, class: class}
}

// Collection returns the audit collection name.
func (r *Repo) Collection() string { return r.class }

// EnsureSchema creates the audit collection if it does not exist yet.
// Idempotent.
func (r *Repo) EnsureSchema(ctx context.Context) error {
	_, err := r.store.GetClass(ctx, r.class)
	if err == nil {
		return nil
	}
	if !errors.Is(err, db.ErrClassNotFound) {
		return fmt.Errorf("check history collection: %w", err)
	}

	props := make([]db.ClassProperty, 0, len(backup.HistorySchema()))
	for _, p := range backup.HistorySchema() {
		searchable, filterable := p.Searchable(), p.Filterable()
		props = append(props, db.ClassProperty{
			Name:            p.Name(),
			DataType:        []string{p.DataType().WireToken()},
			Description:     p.Description(),
			IndexSearchable: &searchable,
			IndexFilterable: &filterable,
		})
	}

	err = r.store.CreateClass(ctx, db.ClassDefinition{
		Class:       r.class,
		Description: "Backup operation audit log",
		Vectorizer:  schema.VectorizerNone.ModuleToken(),
		Properties:  props,
	})
	if err != nil && !errors.Is(err, db.ErrClassExists) {
		return fmt.Errorf("create history collection: %w", err)
	}
	return nil
}

// Insert stores one record and returns it carrying the assigned object id.
// Duplicate backup ids are not rejected; lookups resolve to the newest match.
func (r *Repo) Insert(ctx context.Context, rec backup.Record) (backup.Record, error) {
	id := uuid.NewString()
	report, err := r.store.BatchObjects(ctx, []db.Object{objectFromRecord(r.class, id, rec)})
	if err != nil {
		return backup.Record{}, fmt.Errorf("insert history record %s: %w", rec.BackupID(), err)
	}
	if len(report.Failures) > 0 {
		return backup.Record{}, fmt.Errorf("insert history record %s: %s: %w",
			rec.BackupID(), report.Failures[0].Message, domain.ErrInvalidInput)
	}
	return rec.WithObjectID(id), nil
}

// List fetches up to limit records, in storage order.
func (r *Repo) List(ctx context.Context, limit int) ([]backup.Record, error) {
	objects, err := r.store.ListObjects(ctx, db.ObjectQuery{Class: r.class, Limit: limit})
	if err != nil {
		if errors.Is(err, db.ErrClassNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("list history records: %w", err)
	}

	records := make([]backup.Record, 0, len(objects))
	for _, obj := range objects {
		records = append(records, recordFromObject(obj))
	}
	return records, nil
}

// Update rewrites a stored record in place.
func (r *Repo) Update(ctx context.Context, rec backup.Record) error {
	if rec.ObjectID() == "" {
		return fmt.Errorf("record %s has no object id: %w", rec.BackupID(), domain.ErrInvalidInput)
	}
	if err := r.store.UpdateObject(ctx, objectFromRecord(r.class, rec.ObjectID(), rec)); err != nil {
		if errors.Is(err, db.ErrObjectNotFound) {
			return fmt.Errorf("history record %s: %w", rec.BackupID(), domain.ErrNotFound)
		}
		return fmt.Errorf("update history record %s: %w", rec.BackupID(), err)
	}
	return nil
}

// Delete removes a stored record by its object id.
func (r *Repo) Delete(ctx context.Context, objectID string) error {
	if err := r.store.DeleteObject(ctx, r.class, objectID); err != nil {
		if errors.Is(err, db.ErrObjectNotFound) {
			return fmt.Errorf("history record %s: %w", objectID, domain.ErrNotFound)
		}
		return fmt.Errorf("delete history record %s: %w", objectID, err)
	}
	return nil
}
