// Package collection models a named schema: a sanitized collection name, a
// vectorizer choice, and the typed properties the collection holds.
package collection

import (
	"fmt"

	"github.com/vantaworks/vectoradmin/internal/domain"
	"github.com/vantaworks/vectoradmin/internal/domain/schema"
)

// Collection is an immutable collection definition.
type Collection struct {
	name        string
	description string
	vectorizer  schema.Vectorizer
	properties  []schema.PropertyDef
}

// New validates and creates a collection definition. The name is sanitized;
// multimodal vectorizers with no explicit properties get the fixed
// multimodal property set.
func New(name string, vectorizer schema.Vectorizer, properties []schema.PropertyDef) (Collection, error) {
	clean, err := schema.SanitizeName(name)
	if err != nil {
		return Collection{}, err
	}
	if !vectorizer.IsValid() {
		return Collection{}, fmt.Errorf("vectorizer %q: %w", vectorizer, domain.ErrUnsupportedType)
	}
	if vectorizer.IsMultimodal() && len(properties) == 0 {
		properties = schema.MultimodalProperties()
	}

	seen := make(map[string]struct{}, len(properties))
	for _, p := range properties {
		if _, dup := seen[p.Name()]; dup {
			return Collection{}, fmt.Errorf("duplicate property %q: %w", p.Name(), domain.ErrInvalidName)
		}
		seen[p.Name()] = struct{}{}
	}

	return Collection{name: clean, vectorizer: vectorizer, properties: properties}, nil
}

// Reconstruct creates a Collection from stored data without validation.
func Reconstruct(name, description string, vectorizer schema.Vectorizer, properties []schema.PropertyDef) Collection {
	return Collection{name: name, description: description, vectorizer: vectorizer, properties: properties}
}

// WithDescription returns a copy carrying a description.
func (c Collection) WithDescription(desc string) Collection {
	out := c
	out.description = desc
	return out
}

// Name returns the sanitized collection name.
func (c Collection) Name() string { return c.name }

// Description returns the optional description.
func (c Collection) Description() string { return c.description }

// Vectorizer returns the embedding backend choice.
func (c Collection) Vectorizer() schema.Vectorizer { return c.vectorizer }

// Properties returns the typed property definitions.
func (c Collection) Properties() []schema.PropertyDef { return c.properties }

// Property looks up a property by name.
func (c Collection) Property(name string) (schema.PropertyDef, bool) {
	for _, p := range c.properties {
		if p.Name() == name {
			return p, true
		}
	}
	return schema.PropertyDef{}, false
}
