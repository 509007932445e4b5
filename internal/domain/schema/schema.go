// Package schema maps operator-entered property definitions onto the
// cluster's typed property model: name sanitizing, semantic type mapping and
// vectorizer presets.
package schema

import (
	"fmt"
	"strings"

	"github.com/vantaworks/vectoradmin/internal/domain"
)

// DataType is the semantic type of a property as presented to the operator.
type DataType string

// Supported semantic data types.
const (
	Text           DataType = "TEXT"
	TextArray      DataType = "TEXT_ARRAY"
	Int            DataType = "INT"
	Number         DataType = "NUMBER"
	Bool           DataType = "BOOL"
	Date           DataType = "DATE"
	Blob           DataType = "BLOB"
	UUID           DataType = "UUID"
	GeoCoordinates DataType = "GEO_COORDINATES"
	PhoneNumber    DataType = "PHONE_NUMBER"
)

// wireTokens maps semantic types onto the cluster schema's type tokens.
var wireTokens = map[DataType]string{
	Text:           "text",
	TextArray:      "text[]",
	Int:            "int",
	Number:         "number",
	Bool:           "boolean",
	Date:           "date",
	Blob:           "blob",
	UUID:           "uuid",
	GeoCoordinates: "geoCoordinates",
	PhoneNumber:    "phoneNumber",
}

var tokenTypes = func() map[string]DataType {
	m := make(map[string]DataType, len(wireTokens))
	for dt, tok := range wireTokens {
		m[tok] = dt
	}
	return m
}()

// AvailableDataTypes returns the fixed, ordered list of supported semantic types.
func AvailableDataTypes() []DataType {
	return []DataType{Text, TextArray, Int, Number, Bool, Date, Blob, UUID, GeoCoordinates, PhoneNumber}
}

// IsValid checks if the data type is in the supported enumeration.
func (d DataType) IsValid() bool {
	_, ok := wireTokens[d]
	return ok
}

// WireToken returns the cluster schema type token for the data type.
func (d DataType) WireToken() string { return wireTokens[d] }

// DataTypeFromWire maps a cluster type token back to its semantic type.
func DataTypeFromWire(token string) (DataType, bool) {
	dt, ok := tokenTypes[token]
	return dt, ok
}

// SanitizeName lower-cases a raw name and reduces it to the cluster's naming
// rules: alphanumeric/underscore, starting with a letter or underscore.
// Runs of forbidden characters collapse into a single underscore; a leading
// digit gains an underscore prefix. Idempotent. Fails with ErrInvalidName
// when nothing usable remains.
func SanitizeName(raw string) (string, error) {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(strings.TrimSpace(raw)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}

	name := strings.Trim(b.String(), "_")
	if name == "" {
		return "", fmt.Errorf("name %q: %w", raw, domain.ErrInvalidName)
	}
	if name[0] >= '0' && name[0] <= '9' {
		name = "_" + name
	}
	return name, nil
}

// PropertyDef is an immutable property definition (post-sanitizing).
type PropertyDef struct {
	name        string
	dataType    DataType
	description string
	searchable  bool
	filterable  bool
}

// MapProperty sanitizes the name and maps a semantic type onto a PropertyDef.
// Searchable/filterable flags are derived from the type, not operator-set.
func MapProperty(name string, dt DataType, description string) (PropertyDef, error) {
	clean, err := SanitizeName(name)
	if err != nil {
		return PropertyDef{}, err
	}
	if !dt.IsValid() {
		return PropertyDef{}, fmt.Errorf("property %q: type %q: %w", clean, dt, domain.ErrUnsupportedType)
	}
	return PropertyDef{
		name:        clean,
		dataType:    dt,
		description: description,
		searchable:  dt == Text || dt == TextArray,
		filterable:  dt != Blob,
	}, nil
}

// Reconstruct creates a PropertyDef without validation (schema hydration).
func Reconstruct(name string, dt DataType, description string, searchable, filterable bool) PropertyDef {
	return PropertyDef{name: name, dataType: dt, description: description, searchable: searchable, filterable: filterable}
}

// Name returns the sanitized property name.
func (p PropertyDef) Name() string { return p.name }

// DataType returns the semantic type.
func (p PropertyDef) DataType() DataType { return p.dataType }

// Description returns the optional description.
func (p PropertyDef) Description() string { return p.description }

// Searchable reports whether the property is text-searchable.
func (p PropertyDef) Searchable() bool { return p.searchable }

// Filterable reports whether the property is filterable.
func (p PropertyDef) Filterable() bool { return p.filterable }
