package backuphist

import (
	"context"

	"github.com/vantaworks/vectoradmin/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	createClassFn  func(ctx context.Context, def db.ClassDefinition) error
	getClassFn     func(ctx context.Context, name string) (db.ClassDefinition, error)
	batchObjectsFn func(ctx context.Context, objects []db.Object) (db.BatchReport, error)
	listObjectsFn  func(ctx context.Context, q db.ObjectQuery) ([]db.Object, error)
	updateObjectFn func(ctx context.Context, obj db.Object) error
	deleteObjectFn func(ctx context.Context, class, id string) error
}

func (m *mockStore) CreateClass(ctx context.Context, def db.ClassDefinition) error {
	if m.createClassFn != nil {
		return m.createClassFn(ctx, def)
	}
	return nil
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
