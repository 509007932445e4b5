package db

import "errors"

// Sentinel errors for cluster operations.
var (
	ErrClassNotFound  = errors.New("db: class not found")
	ErrClassExists    = errors.New("db: class already exists")
	ErrObjectNotFound = errors.New("db: object not found")
	ErrUnauthorized   = errors.New("db: unauthorized")
	ErrUnavailable    = errors.New("db: cluster unavailable")
)

// Op constants name remote endpoints for error context and metrics labels.
const (
	OpPing          = "ready"
	OpCreateClass   = "schema.create"
	OpGetClass      = "schema.get"
	OpListClasses   = "schema.list"
	OpDeleteClass   = "schema.delete"
	OpAddProperty   = "schema.add_property"
	OpBatchObjects  = "objects.batch"
	OpListObjects   = "objects.list"
	OpGetObject     = "objects.get"
	OpUpdateObject  = "objects.update"
	OpDeleteObject  = "objects.delete"
	OpCountObjects  = "objects.count"
	OpCreateBackup  = "backups.create"
	OpBackupStatus  = "backups.status"
	OpRestore       = "backups.restore"
	OpRestoreStatus = "backups.restore_status"
	OpNodes         = "cluster.nodes"
	OpStatistics    = "cluster.statistics"
	OpMeta          = "meta"
	OpTenants       = "schema.tenants"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
