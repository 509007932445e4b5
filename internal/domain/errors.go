package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing collection, object or backup record.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists signals a duplicate collection.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidName signals a property or collection name that cannot be sanitized.
	ErrInvalidName = errors.New("invalid name")
	// ErrUnsupportedType signals a semantic type outside the supported enumeration.
	ErrUnsupportedType = errors.New("unsupported data type")
	// ErrMissingCredential signals a vectorizer whose provider key is absent
	// from the active connection.
	ErrMissingCredential = errors.New("missing vectorizer credential")
	// ErrInvalidInput signals malformed upload data.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTransport signals a failed remote cluster call. It is the boundary
	// error: services convert it into structured results, never re-raise it
	// to their callers.
	ErrTransport = errors.New("cluster transport error")
)

// MissingCredentialError wraps ErrMissingCredential with the vectorizer and
// the provider key it requires.
type MissingCredentialError struct {
	Vectorizer string
	Credential string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("%s: %s requires %s", ErrMissingCredential.Error(), e.Vectorizer, e.Credential)
}

func (e *MissingCredentialError) Unwrap() error { return ErrMissingCredential }

// NewMissingCredential creates a missing credential error.
func NewMissingCredential(vectorizer, credential string) error {
	return &MissingCredentialError{Vectorizer: vectorizer, Credential: credential}
}

// ParseError wraps ErrInvalidInput with a human-readable position.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s", ErrInvalidInput.Error(), e.Line, e.Reason)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput.Error(), e.Reason)
}

func (e *ParseError) Unwrap() error { return ErrInvalidInput }

// NewParseError creates a parse error at the given 1-based line (0 = unknown).
func NewParseError(line int, reason string) error {
	return &ParseError{Line: line, Reason: reason}
}
