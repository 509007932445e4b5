package collection

import (
	"context"

	domcol "github.com/vantaworks/vectoradmin/internal/domain/collection"
	"github.com/vantaworks/vectoradmin/internal/domain/schema"
)

// Repository defines the storage contract for collections.
type Repository interface {
	Create(ctx context.Context, col domcol.Collection) error
	Get(ctx context.Context, name string) (domcol.Collection, map[string]any, error)
	List(ctx context.Context) ([]domcol.Collection, error)
	Delete(ctx context.Context, name string) error
	AddProperty(ctx context.Context, name string, prop schema.PropertyDef) error
	Count(ctx context.Context, name string) (int, error)
}

// KeyVerifier optionally probes a provider API key before a collection bound
// to that provider is created.
type KeyVerifier interface {
	Verify(ctx context.Context, vectorizer schema.Vectorizer, key string) error
}
