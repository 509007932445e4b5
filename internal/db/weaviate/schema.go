package weaviate

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/vantaworks/vectoradmin/internal/db"
)

// CreateClass creates a new class.
func (s *Store) CreateClass(ctx context.Context, def db.ClassDefinition) error {
	return s.do(ctx, db.OpCreateClass, http.MethodPost, "/v1/schema", def, nil, nil)
}

// GetClass fetches one class definition.
func (s *Store) GetClass(ctx context.Context, name string) (db.ClassDefinition, error) {
	var def db.ClassDefinition
	err := s.do(ctx, db.OpGetClass, http.MethodGet, "/v1/schema/"+url.PathEscape(name), nil, &def, db.ErrClassNotFound)
	if err != nil {
		return db.ClassDefinition{}, err
	}
	return def, nil
}

// ListClasses fetches all class definitions.
func (s *Store) ListClasses(ctx context.Context) ([]db.ClassDefinition, error) {
	var payload struct {
		Classes []db.ClassDefinition `json:"classes"`
	}
	if err := s.do(ctx, db.OpListClasses, http.MethodGet, "/v1/schema", nil, &payload, nil); err != nil {
		return nil, err
	}
	return payload.Classes, nil
}

// DeleteClass removes a class and all its objects.
func (s *Store) DeleteClass(ctx context.Context, name string) error {
	return s.do(ctx, db.OpDeleteClass, http.MethodDelete, "/v1/schema/"+url.PathEscape(name), nil, nil, db.ErrClassNotFound)
}

// AddProperty appends one property to an existing class.
func (s *Store) AddProperty(ctx context.Context, class string, prop db.ClassProperty) error {
	return s.do(ctx, db.OpAddProperty, http.MethodPost,
		"/v1/schema/"+url.PathEscape(class)+"/properties", prop, nil, db.ErrClassNotFound)
}

// Tenants lists the tenants of a multi-tenant class. Classes without
// multi-tenancy enabled report an empty list, not an error.
func (s *Store) Tenants(ctx context.Context, class string) ([]db.Tenant, error) {
	var tenants []db.Tenant
	err := s.do(ctx, db.OpTenants, http.MethodGet,
		"/v1/schema/"+url.PathEscape(class)+"/tenants", nil, &tenants, db.ErrClassNotFound)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) && se.code == http.StatusUnprocessableEntity {
			return nil, nil
		}
		return nil, err
	}
	return tenants, nil
}
