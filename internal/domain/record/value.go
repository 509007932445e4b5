// Package record models typed document values: a tagged union over the
// supported data types, built either directly or by coercing raw upload
// values against a property definition.
package record

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/twpayne/go-geom"

	"github.com/vantaworks/vectoradmin/internal/domain"
	"github.com/vantaworks/vectoradmin/internal/domain/schema"
)

// Value holds one typed property value. The zero Value is invalid.
type Value struct {
	dt    schema.DataType
	str   string
	strs  []string
	i     int64
	f     float64
	b     bool
	t     time.Time
	id    uuid.UUID
	point *geom.Point
	blob  []byte
}

// NewText creates a TEXT value.
func NewText(s string) Value { return Value{dt: schema.Text, str: s} }

// NewTextArray creates a TEXT_ARRAY value.
func NewTextArray(ss []string) Value { return Value{dt: schema.TextArray, strs: ss} }

// NewInt creates an INT value.
func NewInt(i int64) Value { return Value{dt: schema.Int, i: i} }

// NewNumber creates a NUMBER value.
func NewNumber(f float64) Value { return Value{dt: schema.Number, f: f} }

// NewBool creates a BOOL value.
func NewBool(b bool) Value { return Value{dt: schema.Bool, b: b} }

// NewDate creates a DATE value.
func NewDate(t time.Time) Value { return Value{dt: schema.Date, t: t} }

// NewBlob creates a BLOB value from raw bytes.
func NewBlob(data []byte) Value { return Value{dt: schema.Blob, blob: data} }

// NewUUID creates a UUID value.
func NewUUID(id uuid.UUID) Value { return Value{dt: schema.UUID, id: id} }

// NewGeo creates a GEO_COORDINATES value from latitude/longitude degrees.
func NewGeo(lat, lon float64) Value {
	return Value{dt: schema.GeoCoordinates, point: geom.NewPointFlat(geom.XY, []float64{lon, lat})}
}

// NewPhone creates a PHONE_NUMBER value.
func NewPhone(s string) Value { return Value{dt: schema.PhoneNumber, str: s} }

// DataType returns the value's semantic type.
func (v Value) DataType() schema.DataType { return v.dt }

// Text returns the string content of TEXT and PHONE_NUMBER values.
func (v Value) Text() string { return v.str }

// TextArray returns the slice content of TEXT_ARRAY values.
func (v Value) TextArray() []string { return v.strs }

// Int returns the content of INT values.
func (v Value) Int() int64 { return v.i }

// Number returns the content of NUMBER values.
func (v Value) Number() float64 { return v.f }

// Bool returns the content of BOOL values.
func (v Value) Bool() bool { return v.b }

// Date returns the content of DATE values.
func (v Value) Date() time.Time { return v.t }

// UUID returns the content of UUID values.
func (v Value) UUID() uuid.UUID { return v.id }

// Blob returns the raw bytes of BLOB values.
func (v Value) Blob() []byte { return v.blob }

// BlobBase64 returns the base64 transport encoding of BLOB values.
func (v Value) BlobBase64() string { return base64.StdEncoding.EncodeToString(v.blob) }

// Lat returns the latitude of GEO_COORDINATES values.
func (v Value) Lat() float64 { return v.point.Y() }

// Lon returns the longitude of GEO_COORDINATES values.
func (v Value) Lon() float64 { return v.point.X() }

// ToWire converts the value into its remote object representation.
func (v Value) ToWire() any {
	switch v.dt {
	case schema.Text, schema.PhoneNumber:
		return v.str
	case schema.TextArray:
		return v.strs
	case schema.Int:
		return v.i
	case schema.Number:
		return v.f
	case schema.Bool:
		return v.b
	case schema.Date:
		return v.t.UTC().Format(time.RFC3339)
	case schema.Blob:
		return v.BlobBase64()
	case schema.UUID:
		return v.id.String()
	case schema.GeoCoordinates:
		return map[string]any{"latitude": v.Lat(), "longitude": v.Lon()}
	default:
		return nil
	}
}

// Coerce converts a raw upload value (a CSV cell string or a decoded JSON
// value) into a typed Value for the given data type. Fails wrapping
// ErrInvalidInput when the raw value cannot represent the type.
func Coerce(dt schema.DataType, raw any) (Value, error) {
	switch dt {
	case schema.Text:
		s, err := asString(raw)
		if err != nil {
			return Value{}, err
		}
		return NewText(s), nil

	case schema.PhoneNumber:
		s, err := asString(raw)
		if err != nil {
			return Value{}, err
		}
		return NewPhone(s), nil

	case schema.TextArray:
		switch t := raw.(type) {
		case []string:
			return NewTextArray(t), nil
		case []any:
			out := make([]string, 0, len(t))
			for _, e := range t {
				s, err := asString(e)
				if err != nil {
					return Value{}, err
				}
				out = append(out, s)
			}
			return NewTextArray(out), nil
		case string:
			if strings.TrimSpace(t) == "" {
				return NewTextArray(nil), nil
			}
			parts := strings.Split(t, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			return NewTextArray(parts), nil
		default:
			return Value{}, coerceErr(dt, raw)
		}

	case schema.Int:
		switch t := raw.(type) {
		case int:
			return NewInt(int64(t)), nil
		case int64:
			return NewInt(t), nil
		case float64:
			if t != float64(int64(t)) {
				return Value{}, coerceErr(dt, raw)
			}
			return NewInt(int64(t)), nil
		case string:
			i, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
			if err != nil {
				return Value{}, coerceErr(dt, raw)
			}
			return NewInt(i), nil
		default:
			return Value{}, coerceErr(dt, raw)
		}

	case schema.Number:
		switch t := raw.(type) {
		case float64:
			return NewNumber(t), nil
		case int:
			return NewNumber(float64(t)), nil
		case int64:
			return NewNumber(float64(t)), nil
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
			if err != nil {
				return Value{}, coerceErr(dt, raw)
			}
			return NewNumber(f), nil
		default:
			return Value{}, coerceErr(dt, raw)
		}

	case schema.Bool:
		switch t := raw.(type) {
		case bool:
			return NewBool(t), nil
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(strings.ToLower(t)))
			if err != nil {
				return Value{}, coerceErr(dt, raw)
			}
			return NewBool(b), nil
		default:
			return Value{}, coerceErr(dt, raw)
		}

	case schema.Date:
		s, err := asString(raw)
		if err != nil {
			return Value{}, err
		}
		ts, err := parseDate(strings.TrimSpace(s))
		if err != nil {
			return Value{}, coerceErr(dt, raw)
		}
		return NewDate(ts), nil

	case schema.Blob:
		s, err := asString(raw)
		if err != nil {
			return Value{}, err
		}
		data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
		if err != nil {
			return Value{}, coerceErr(dt, raw)
		}
		return NewBlob(data), nil

	case schema.UUID:
		s, err := asString(raw)
		if err != nil {
			return Value{}, err
		}
		id, err := uuid.Parse(strings.TrimSpace(s))
		if err != nil {
			return Value{}, coerceErr(dt, raw)
		}
		return NewUUID(id), nil

	case schema.GeoCoordinates:
		switch t := raw.(type) {
		case map[string]any:
			lat, latErr := asFloat(t["latitude"])
			lon, lonErr := asFloat(t["longitude"])
			if latErr != nil || lonErr != nil {
				return Value{}, coerceErr(dt, raw)
			}
			return NewGeo(lat, lon), nil
		case string:
			lat, lon, ok := splitLatLon(t)
			if !ok {
				return Value{}, coerceErr(dt, raw)
			}
			return NewGeo(lat, lon), nil
		default:
			return Value{}, coerceErr(dt, raw)
		}

	default:
		return Value{}, fmt.Errorf("type %q: %w", dt, domain.ErrUnsupportedType)
	}
}

func asString(raw any) (string, error) {
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("expected string, got %T: %w", raw, domain.ErrInvalidInput)
	}
	return s, nil
}

func asFloat(raw any) (float64, error) {
	switch t := raw.(type) {
	case float64:
		return t, nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(t), 64)
	default:
		return 0, fmt.Errorf("expected number, got %T", raw)
	}
}

func splitLatLon(s string) (lat, lon float64, ok bool) {
	a, b, found := strings.Cut(s, ",")
	if !found {
		return 0, 0, false
	}
	lat, latErr := strconv.ParseFloat(strings.TrimSpace(a), 64)
	lon, lonErr := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if latErr != nil || lonErr != nil {
		return 0, 0, false
	}
	return lat, lon, true
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func coerceErr(dt schema.DataType, raw any) error {
	return fmt.Errorf("cannot coerce %v (%T) to %s: %w", raw, raw, dt, domain.ErrInvalidInput)
}
