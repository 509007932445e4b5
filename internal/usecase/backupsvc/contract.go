package backupsvc

import (
	"context"

	dombak "github.com/vantaworks/vectoradmin/internal/domain/backup"
)

// Repository defines the storage contract for backup audit records.
type Repository interface {
	EnsureSchema(ctx context.Context) error
	Insert(ctx context.Context, rec dombak.Record) (dombak.Record, error)
	List(ctx context.Context, limit int) ([]dombak.Record, error)
	Update(ctx context.Context, rec dombak.Record) error
	Delete(ctx context.Context, objectID string) error
	Collection() string
}

// Runner defines the remote backup/restore primitives.
type Runner interface {
	StartBackup(ctx context.Context, id string, provider dombak.Provider, include []string) (dombak.Job, error)
	BackupStatus(ctx context.Context, provider dombak.Provider, id string) (dombak.Job, error)
	StartRestore(ctx context.Context, id string, provider dombak.Provider, include, exclude []string) (dombak.Job, error)
	RestoreStatus(ctx context.Context, provider dombak.Provider, id string) (dombak.Job, error)
}
