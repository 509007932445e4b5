package collection

import (
	"github.com/vantaworks/vectoradmin/internal/db"
	domcol "github.com/vantaworks/vectoradmin/internal/domain/collection"
	"github.com/vantaworks/vectoradmin/internal/domain/schema"
)

// classFromDomain converts a domain collection to a remote class definition.
func classFromDomain(col domcol.Collection) db.ClassDefinition {
	props := make([]db.ClassProperty, 0, len(col.Properties()))
	for _, p := range col.Properties() {
		props = append(props, propertyFromDomain(p))
	}
	return db.ClassDefinition{
		Class:       col.Name(),
		Description: col.Description(),
		Vectorizer:  col.Vectorizer().ModuleToken(),
		Properties:  props,
	}
}

func propertyFromDomain(p schema.PropertyDef) db.ClassProperty {
	searchable := p.Searchable()
	filterable := p.Filterable()
	return db.ClassProperty{
		Name:            p.Name(),
		DataType:        []string{p.DataType().WireToken()},
		Description:     p.Description(),
		IndexSearchable: &searchable,
		IndexFilterable: &filterable,
	}
}

// classToDomain hydrates a domain collection from a remote class definition.
// Unknown vectorizer modules and property types are preserved as-is rather
// than rejected: the cluster may run modules this console does not manage.
func classToDomain(def db.ClassDefinition) domcol.Collection {
	vectorizer, err := schema.VectorizerFromModule(def.Vectorizer)
	if err != nil {
		vectorizer = schema.Vectorizer(def.Vectorizer)
	}

	props := make([]schema.PropertyDef, 0, len(def.Properties))
	for _, p := range def.Properties {
		props = append(props, propertyToDomain(p))
	}
	return domcol.Reconstruct(def.Class, def.Description, vectorizer, props)
}

func propertyToDomain(p db.ClassProperty) schema.PropertyDef {
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
	return schema.Reconstruct(p.Name, dt, p.Description, searchable, filterable)
}

// configMap flattens the remote class definition into a display-oriented
// configuration view.
func configMap(def db.ClassDefinition) map[string]any {
	cfg := map[string]any{
		"vectorizer": def.Vectorizer,
	}
	if def.VectorIndex != "" {
		cfg["vector_index_type"] = def.VectorIndex
	}
	if len(def.ModuleConfig) > 0 {
		cfg["module_config"] = def.ModuleConfig
	}
	return cfg
}
