// Package collection adapts the cluster schema API to the domain collection
// model.
package collection

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/vantaworks/vectoradmin/internal/db"
	"github.com/vantaworks/vectoradmin/internal/domain"
	domcol "github.com/vantaworks/vectoradmin/internal/domain/collection"
	"github.com/vantaworks/vectoradmin/internal/domain/schema"
)

// store is the consumer interface for collection schemas (ISP).
type store interface {
	CreateClass(ctx context.Context, def db.ClassDefinition) error
	GetClass(ctx context.Context, name string) (db.ClassDefinition, error)
	ListClasses(ctx context.Context) ([]db.ClassDefinition, error)
	DeleteClass(ctx context.Context, name string) error
	AddProperty(ctx context.Context, class string, prop db.ClassProperty) error
	CountObjects(ctx context.Context, class string) (int, error)
}

// Repo implements usecase/collection.Repository.
type Repo struct {
	store store
}

// New creates a collection repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Create stores a new collection schema.
func (r *Repo) Create(ctx context.Context, col domcol.Collection) error {
	if err := r.store.CreateClass(ctx, classFromDomain(col)); err != nil {
		if errors.Is(err, db.ErrClassExists) {
			return fmt.Errorf("collection %q: %w", col.Name(), domain.ErrAlreadyExists)
		}
		return fmt.Errorf("create class %s: %w", col.Name(), err)
	}
	return nil
}

// Get retrieves one collection with its raw configuration view.
func (r *Repo) Get(ctx context.Context, name string) (domcol.Collection, map[string]any, error) {
	def, err := r.store.GetClass(ctx, name)
	if err != nil {
		if errors.Is(err, db.ErrClassNotFound) {
			return domcol.Collection{}, nil, fmt.Errorf("collection %q: %w", name, domain.ErrNotFound)
		}
		return domcol.Collection{}, nil, fmt.Errorf("get class %s: %w", name, err)
	}
	return classToDomain(def), configMap(def), nil
}

// List returns all collections sorted by name.
func (r *Repo) List(ctx context.Context) ([]domcol.Collection, error) {
	defs, err := r.store.ListClasses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}

	cols := make([]domcol.Collection, 0, len(defs))
	for _, def := range defs {
		cols = append(cols, classToDomain(def))
	}
	sort.Slice(cols, func(i, j int) bool { return cols[i].Name() < cols[j].Name() })
	return cols, nil
}

// Delete removes a collection and all its objects.
func (r *Repo) Delete(ctx context.Context, name string) error {
	if err := r.store.DeleteClass(ctx, name); err != nil {
		if errors.Is(err, db.ErrClassNotFound) {
			return fmt.Errorf("collection %q: %w", name, domain.ErrNotFound)
		}
		return fmt.Errorf("delete class %s: %w", name, err)
	}
	return nil
}

// AddProperty appends one property to an existing collection.
func (r *Repo) AddProperty(ctx context.Context, name string, prop schema.PropertyDef) error {
	if err := r.store.AddProperty(ctx, name, propertyFromDomain(prop)); err != nil {
		if errors.Is(err, db.ErrClassNotFound) {
			return fmt.Errorf("collection %q: %w", name, domain.ErrNotFound)
		}
		return fmt.Errorf("add property %s.%s: %w", name, prop.Name(), err)
	}
	return nil
}

// Count reports how many objects a collection holds.
func (r *Repo) Count(ctx context.Context, name string) (int, error) {
	n, err := r.store.CountObjects(ctx, name)
	if err != nil {
		if errors.Is(err, db.ErrClassNotFound) {
			return 0, fmt.Errorf("collection %q: %w", name, domain.ErrNotFound)
		}
		return 0, fmt.Errorf("count objects %s: %w", name, err)
	}
	return n, nil
}
