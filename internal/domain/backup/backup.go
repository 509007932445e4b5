// Package backup models backup audit records: a small state machine that is
// persisted as ordinary documents inside the target cluster.
package backup

import (
	"fmt"
	"time"

	"github.com/vantaworks/vectoradmin/internal/domain"
)

// Provider is a backup storage backend.
type Provider string

// Supported backup providers.
const (
	Filesystem Provider = "filesystem"
	S3         Provider = "s3"
	GCS        Provider = "gcs"
	Azure      Provider = "azure"
)

// Providers returns the fixed, ordered list of supported backends.
func Providers() []Provider {
	return []Provider{Filesystem, S3, GCS, Azure}
}

// IsValid checks if the provider is supported.
func (p Provider) IsValid() bool {
	switch p {
	case Filesystem, S3, GCS, Azure:
		return true
	}
	return false
}

// Status is the lifecycle state of a backup operation.
type Status string

// Backup status values. SUCCESS and FAILED are terminal.
const (
	StatusInProgress Status = "IN_PROGRESS"
	StatusSuccess    Status = "SUCCESS"
	StatusFailed     Status = "FAILED"
)

// IsValid checks if the status is a known lifecycle state.
func (s Status) IsValid() bool {
	switch s {
	case StatusInProgress, StatusSuccess, StatusFailed:
		return true
	}
	return false
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

// Record is one backup audit entry. ObjectID is the remote document id,
// zero until the record has been stored.
type Record struct {
	objectID       string
	backupID       string
	provider       Provider
	status         Status
	collections    []string
	path           string
	sizeBytes      int64
	errorMessage   string
	createdDate    time.Time
	completionTime time.Time
}

// New creates an IN_PROGRESS record for a starting backup operation.
func New(backupID string, provider Provider, collections []string) (Record, error) {
	if backupID == "" {
		return Record{}, fmt.Errorf("backup id is required: %w", domain.ErrInvalidInput)
	}
	if !provider.IsValid() {
		return Record{}, fmt.Errorf("unknown backup provider %q: %w", provider, domain.ErrInvalidInput)
	}
	return Record{
		backupID:    backupID,
		provider:    provider,
		status:      StatusInProgress,
		collections: collections,
		createdDate: time.Now().UTC(),
	}, nil
}

// NewWithStatus creates a record in an explicit lifecycle state, used to
// register backups that ran outside this console. Terminal states carry a
// completion time; path records where the backend stored the backup.
func NewWithStatus(backupID string, provider Provider, collections []string, status Status, path string) (Record, error) {
	rec, err := New(backupID, provider, collections)
	if err != nil {
		return Record{}, err
	}
	if !status.IsValid() {
		return Record{}, fmt.Errorf("unknown backup status %q: %w", status, domain.ErrInvalidInput)
	}
	rec.status = status
	rec.path = path
	if status.IsTerminal() {
		rec.completionTime = rec.createdDate
	}
	return rec, nil
}

// Reconstruct creates a Record from stored data without validation.
func Reconstruct(objectID, backupID string, provider Provider, status Status, collections []string,
	path string, sizeBytes int64, errorMessage string, createdDate, completionTime time.Time) Record {
	return Record{
		objectID:       objectID,
		backupID:       backupID,
		provider:       provider,
		status:         status,
		collections:    collections,
		path:           path,
		sizeBytes:      sizeBytes,
		errorMessage:   errorMessage,
		createdDate:    createdDate,
		completionTime: completionTime,
	}
}

// ObjectID returns the remote document id ("" before the record is stored).
func (r Record) ObjectID() string { return r.objectID }

// BackupID returns the operator-chosen backup identifier.
func (r Record) BackupID() string { return r.backupID }

// Provider returns the storage backend.
func (r Record) Provider() Provider { return r.provider }

// Status returns the lifecycle state.
func (r Record) Status() Status { return r.status }

// Collections returns the collection names included in the backup.
func (r Record) Collections() []string { return r.collections }

// Path returns the backend storage path, if reported.
func (r Record) Path() string { return r.path }

// SizeBytes returns the backup size, if reported.
func (r Record) SizeBytes() int64 { return r.sizeBytes }

// ErrorMessage returns the failure reason for FAILED records.
func (r Record) ErrorMessage() string { return r.errorMessage }

// CreatedDate returns when the backup operation started.
func (r Record) CreatedDate() time.Time { return r.createdDate }

// CompletionTime returns when the record reached a terminal state
// (zero while IN_PROGRESS).
func (r Record) CompletionTime() time.Time { return r.completionTime }

// Complete transitions the record to a terminal state, recording the outcome
// details. Fails when the record is already terminal or the target state is
// not terminal.
func (r Record) Complete(status Status, errorMessage string, sizeBytes int64, path string) (Record, error) {
	if r.status.IsTerminal() {
		return Record{}, fmt.Errorf("backup %q already %s: %w", r.backupID, r.status, domain.ErrInvalidInput)
	}
	if !status.IsTerminal() {
		return Record{}, fmt.Errorf("status %q is not terminal: %w", status, domain.ErrInvalidInput)
	}

	out := r
	out.status = status
	out.errorMessage = errorMessage
	if sizeBytes > 0 {
		out.sizeBytes = sizeBytes
	}
	if path != "" {
		out.path = path
	}
	out.completionTime = time.Now().UTC()
	return out, nil
}

// WithObjectID returns a copy carrying the remote document id assigned on store.
func (r Record) WithObjectID(id string) Record {
	out := r
	out.objectID = id
	return out
}
