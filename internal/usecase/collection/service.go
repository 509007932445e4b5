// Package collection implements collection management: creation with
// vectorizer credential checks, listing, info aggregation and best-effort
// multi-delete.
package collection

import (
	"context"
	"fmt"
	"strings"

	"github.com/vantaworks/vectoradmin/internal/domain"
	domcol "github.com/vantaworks/vectoradmin/internal/domain/collection"
	"github.com/vantaworks/vectoradmin/internal/domain/schema"
)

// PropertyInput is one operator-entered property definition.
type PropertyInput struct {
	Name        string
	Type        schema.DataType
	Description string
}

// Info aggregates everything the operator sees about one collection.
type Info struct {
	Name        string
	ObjectCount int
	Vectorizer  schema.Vectorizer
	Properties  []schema.PropertyDef
	Config      map[string]any
}

// Service handles collection management operations.
type Service struct {
	repo     Repository
	keys     map[schema.Vectorizer]string
	verifier KeyVerifier
}

// New creates a collection service. keys maps vectorizers to their provider
// API keys; verifier can be nil.
func New(repo Repository, keys map[schema.Vectorizer]string, verifier KeyVerifier) *Service {
	if keys == nil {
		keys = map[schema.Vectorizer]string{}
	}
	return &Service{repo: repo, keys: keys, verifier: verifier}
}

// Create validates the vectorizer credential and creates a collection.
// Multimodal vectorizers get the fixed multimodal property set.
func (s *Service) Create(ctx context.Context, name string, vectorizer schema.Vectorizer) (domcol.Collection, error) {
	return s.CreateWithProperties(ctx, name, vectorizer, nil)
}

// CreateWithProperties creates a collection with operator-defined properties.
// All-or-nothing: if any property fails to map, no collection is created.
func (s *Service) CreateWithProperties(ctx context.Context, name string, vectorizer schema.Vectorizer, inputs []PropertyInput) (domcol.Collection, error) {
	if err := s.checkCredential(ctx, vectorizer); err != nil {
		return domcol.Collection{}, err
	}

	props := make([]schema.PropertyDef, 0, len(inputs))
	for _, in := range inputs {
		p, err := schema.MapProperty(in.Name, in.Type, in.Description)
		if err != nil {
			return domcol.Collection{}, fmt.Errorf("map property: %w", err)
		}
		props = append(props, p)
	}

	col, err := domcol.New(name, vectorizer, props)
	if err != nil {
		return domcol.Collection{}, fmt.Errorf("validate collection: %w", err)
	}

	if err := s.repo.Create(ctx, col); err != nil {
		return domcol.Collection{}, fmt.Errorf("create collection: %w", err)
	}
	return col, nil
}

// List returns all collections.
func (s *Service) List(ctx context.Context) ([]domcol.Collection, error) {
	cols, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return cols, nil
}

// Info aggregates object count, schema and configuration for one collection.
func (s *Service) Info(ctx context.Context, name string) (Info, error) {
	col, cfg, err := s.repo.Get(ctx, name)
	if err != nil {
		return Info{}, fmt.Errorf("get collection: %w", err)
	}

	count, err := s.repo.Count(ctx, name)
	if err != nil {
		return Info{}, fmt.Errorf("count objects: %w", err)
	}

	return Info{
		Name:        col.Name(),
		ObjectCount: count,
		Vectorizer:  col.Vectorizer(),
		Properties:  col.Properties(),
		Config:      cfg,
	}, nil
}

// AddProperty maps and appends one property to an existing collection.
func (s *Service) AddProperty(ctx context.Context, name string, input PropertyInput) (schema.PropertyDef, error) {
	p, err := schema.MapProperty(input.Name, input.Type, input.Description)
	if err != nil {
		return schema.PropertyDef{}, fmt.Errorf("map property: %w", err)
	}
	if err := s.repo.AddProperty(ctx, name, p); err != nil {
		return schema.PropertyDef{}, fmt.Errorf("add property: %w", err)
	}
	return p, nil
}

// DeleteMany deletes each named collection, best-effort sequential: one
// failure does not abort the rest. Returns the names actually deleted; the
// error aggregates the per-name failures, nil when all succeeded.
func (s *Service) DeleteMany(ctx context.Context, names []string) ([]string, error) {
	deleted := make([]string, 0, len(names))
	var failures []string

	for _, name := range names {
		if err := s.repo.Delete(ctx, name); err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		deleted = append(deleted, name)
	}

	if len(failures) > 0 {
		return deleted, fmt.Errorf("failed to delete %d of %d collections: %s",
			len(failures), len(names), strings.Join(failures, "; "))
	}
	return deleted, nil
}

func (s *Service) checkCredential(ctx context.Context, vectorizer schema.Vectorizer) error {
	if !vectorizer.IsValid() {
		return fmt.Errorf("vectorizer %q: %w", vectorizer, domain.ErrUnsupportedType)
	}

	required := vectorizer.RequiredCredential()
	if required == "" {
		return nil
	}

	key := s.keys[vectorizer]
	if key == "" {
		return domain.NewMissingCredential(string(vectorizer), required)
	}
	if s.verifier != nil {
		if err := s.verifier.Verify(ctx, vectorizer, key); err != nil {
			return fmt.Errorf("verify %s: %w", required, err)
		}
	}
	return nil
}
