package collection

import (
	"context"
	"testing"

	"github.com/vantaworks/vectoradmin/internal/db"
	"github.com/vantaworks/vectoradmin/internal/domain/schema"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	createClassFn  func(ctx context.Context, def db.ClassDefinition) error
	getClassFn     func(ctx context.Context, name string) (db.ClassDefinition, error)
	listClassesFn  func(ctx context.Context) ([]db.ClassDefinition, error)
	deleteClassFn  func(ctx context.Context, name string) error
	addPropertyFn  func(ctx context.Context, class string, prop db.ClassProperty) error
	countObjectsFn func(ctx context.Context, class string) (int, error)
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

func (m *mockStore) ListClasses(ctx context.Context) ([]db.ClassDefinition, error) {
	if m.listClassesFn != nil {
		return m.listClassesFn(ctx)
	}
	return nil, nil
}

func (m *mockStore) DeleteClass(ctx context.Context, name string) error {
	if m.deleteClassFn != nil {
		return m.deleteClassFn(ctx, name)
	}
	return nil
}

func (m *mockStore) AddProperty(ctx context.Context, class string, prop db.ClassProperty) error {
	if m.addPropertyFn != nil {
		return m.addPropertyFn(ctx, class, prop)
	}
	return nil
}

func (m *mockStore) CountObjects(ctx context.Context, class string) (int, error) {
	if m.countObjectsFn != nil {
		return m.countObjectsFn(ctx, class)
	}
	return 0, nil
}

func makeProp(t *testing.T, name string, dt schema.DataType) schema.PropertyDef {
	t.Helper()
	p, err := schema.MapProperty(name, dt, "")
	if err != nil {
		t.Fatalf("MapProperty(%q, %q): %v", name, dt, err)
	}
	return p
}
