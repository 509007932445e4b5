package document

import (
	"context"
	"errors"
	"testing"

	"github.com/vantaworks/vectoradmin/internal/db"
	"github.com/vantaworks/vectoradmin/internal/domain"
	"github.com/vantaworks/vectoradmin/internal/domain/record"
	"github.com/vantaworks/vectoradmin/internal/domain/schema"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	getClassFn     func(ctx context.Context, name string) (db.ClassDefinition, error)
	batchObjectsFn func(ctx context.Context, objects []db.Object) (db.BatchReport, error)
	listObjectsFn  func(ctx context.Context, q db.ObjectQuery) ([]db.Object, error)
	getObjectFn    func(ctx context.Context, class, id string) (db.Object, error)
	updateObjectFn func(ctx context.Context, obj db.Object) error
	deleteObjectFn func(ctx context.Context, class, id string) error
}

func (m *mockStore) GetClass(ctx context.Context, name string) (db.ClassDefinition, error) {
	if m.getClassFn != nil {
		return m.getClassFn(ctx, name)
	}
	return db.ClassDefinition{Class: name}, nil
}

func (m *mockStore) BatchObjects(ctx context.Context, objects []db.Object) (db.BatchReport, error) {
	if m.batchObjectsFn != nil {
		return m.batchObjectsFn(ctx, objects)
	}
	return db.BatchReport{Succeeded: len(objects)}, nil
}

func (m *mockStore) ListObjects(ctx context.Context, q db.ObjectQuery) ([]db.Object, error) {
	if m.listObjectsFn != nil {
		return m.listObjectsFn(ctx, q)
	}
	return nil, nil
}

func (m *mockStore) GetObject(ctx context.Context, class, id string) (db.Object, error) {
	if m.getObjectFn != nil {
		return m.getObjectFn(ctx, class, id)
	}
	return db.Object{Class: class, ID: id}, nil
}

func (m *mockStore) UpdateObject(ctx context.Context, obj db.Object) error {
	if m.updateObjectFn != nil {
		return m.updateObjectFn(ctx, obj)
	}
	return nil
}

func (m *mockStore) DeleteObject(ctx context.Context, class, id string) error {
	if m.deleteObjectFn != nil {
		return m.deleteObjectFn(ctx, class, id)
	}
	return nil
}

func TestProperties(t *testing.T) {
	searchable := true
	store := &mockStore{
		getClassFn: func(_ context.Context, name string) (db.ClassDefinition, error) {
			return db.ClassDefinition{
				Class: name,
				Properties: []db.ClassProperty{
					{Name: "title", DataType: []string{"text"}, IndexSearchable: &searchable},
					{Name: "location", DataType: []string{"geoCoordinates"}},
				},
			}, nil
		},
	}
	repo := New(store)

	props, err := repo.Properties(context.Background(), "places")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(props) != 2 {
		t.Fatalf("len = %d, want 2", len(props))
	}
	if props[0].DataType() != schema.Text || !props[0].Searchable() {
		t.Errorf("title = %+v", props[0])
	}
	if props[1].DataType() != schema.GeoCoordinates {
		t.Errorf("location type = %q", props[1].DataType())
	}
}

func TestProperties_NotFound(t *testing.T) {
	store := &mockStore{
		getClassFn: func(_ context.Context, _ string) (db.ClassDefinition, error) {
			return db.ClassDefinition{}, &db.Error{Op: db.OpGetClass, Err: db.ErrClassNotFound}
		},
	}
	repo := New(store)

	if _, err := repo.Properties(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestInsertBatch(t *testing.T) {
	var captured []db.Object
	store := &mockStore{
		batchObjectsFn: func(_ context.Context, objects []db.Object) (db.BatchReport, error) {
			captured = objects
			return db.BatchReport{
				Succeeded: len(objects) - 1,
				Failures:  []db.BatchFailure{{Index: 1, Message: "invalid date"}},
			}, nil
		},
	}
	repo := New(store)

	docs := make([]record.Record, 2)
	for i := range docs {
		docs[i] = record.New()
		docs[i].Set("title", record.NewText("doc"))
	}

	succeeded, failures, err := repo.InsertBatch(context.Background(), "articles", docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if succeeded != 1 {
		t.Errorf("succeeded = %d, want 1", succeeded)
	}
	if len(failures) != 1 || failures[0].Index != 1 || failures[0].Reason != "invalid date" {
		t.Errorf("failures = %+v", failures)
	}
	if len(captured) != 2 || captured[0].Class != "articles" {
		t.Errorf("captured = %+v", captured)
	}
	if captured[0].Properties["title"] != "doc" {
		t.Errorf("properties = %v", captured[0].Properties)
	}
}

func TestSample(t *testing.T) {
	store := &mockStore{
		listObjectsFn: func(_ context.Context, q db.ObjectQuery) ([]db.Object, error) {
			if q.Limit != 100 {
				t.Errorf("limit = %d, want 100", q.Limit)
			}
			return []db.Object{
				{ID: "a", Properties: map[string]any{"title": "one"}, CreationTimeUnix: 1717243200000},
			}, nil
		},
	}
	repo := New(store)

	docs, err := repo.Sample(context.Background(), "articles", 100, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("len = %d, want 1", len(docs))
	}
	if docs[0].ID != "a" || docs[0].Properties["title"] != "one" {
		t.Errorf("doc = %+v", docs[0])
	}
	if docs[0].CreatedAt.Year() != 2024 {
		t.Errorf("CreatedAt = %v", docs[0].CreatedAt)
	}
	if !docs[0].UpdatedAt.IsZero() {
		t.Errorf("UpdatedAt = %v, want zero", docs[0].UpdatedAt)
	}
}

func TestDelete_NotFound(t *testing.T) {
	store := &mockStore{
		deleteObjectFn: func(_ context.Context, _, _ string) error {
			return &db.Error{Op: db.OpDeleteObject, Err: db.ErrObjectNotFound}
		},
	}
	repo := New(store)

	if err := repo.Delete(context.Background(), "articles", "gone"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
