// Package backupjob adapts the cluster backup primitives to the backup
// usecase contract.
package backupjob

import (
	"context"
	"errors"
	"fmt"

	"github.com/vantaworks/vectoradmin/internal/db"
	"github.com/vantaworks/vectoradmin/internal/domain"
	dombak "github.com/vantaworks/vectoradmin/internal/domain/backup"
)

// store is the consumer interface for backup jobs (ISP).
type store interface {
	CreateBackup(ctx context.Context, req db.BackupRequest) (db.BackupJob, error)
	BackupStatus(ctx context.Context, backend, id string) (db.BackupJob, error)
	RestoreBackup(ctx context.Context, req db.BackupRequest) (db.BackupJob, error)
	RestoreStatus(ctx context.Context, backend, id string) (db.BackupJob, error)
}

// Repo implements usecase/backupsvc.Runner.
type Repo struct {
	store store
}

// New creates a backup job repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// StartBackup launches a backup of the given collections.
func (r *Repo) StartBackup(ctx context.Context, id string, provider dombak.Provider, include []string) (dombak.Job, error) {
	job, err := r.store.CreateBackup(ctx, db.BackupRequest{Backend: string(provider), ID: id, Include: include})
	if err != nil {
		return dombak.Job{}, fmt.Errorf("start backup %s: %w", id, err)
	}
	return fromDB(provider, job), nil
}

// BackupStatus polls one backup operation.
func (r *Repo) BackupStatus(ctx context.Context, provider dombak.Provider, id string) (dombak.Job, error) {
	job, err := r.store.BackupStatus(ctx, string(provider), id)
	if err != nil {
		if errors.Is(err, db.ErrObjectNotFound) {
			return dombak.Job{}, fmt.Errorf("backup %q: %w", id, domain.ErrNotFound)
		}
		return dombak.Job{}, fmt.Errorf("backup status %s: %w", id, err)
	}
	return fromDB(provider, job), nil
}

// StartRestore launches a restore of a finished backup.
func (r *Repo) StartRestore(ctx context.Context, id string, provider dombak.Provider, include, exclude []string) (dombak.Job, error) {
	job, err := r.store.RestoreBackup(ctx, db.BackupRequest{Backend: string(provider), ID: id, Include: include, Exclude: exclude})
	if err != nil {
		if errors.Is(err, db.ErrObjectNotFound) {
			return dombak.Job{}, fmt.Errorf("backup %q: %w", id, domain.ErrNotFound)
		}
		return dombak.Job{}, fmt.Errorf("start restore %s: %w", id, err)
	}
	return fromDB(provider, job), nil
}

// RestoreStatus polls one restore operation.
func (r *Repo) RestoreStatus(ctx context.Context, provider dombak.Provider, id string) (dombak.Job, error) {
	job, err := r.store.RestoreStatus(ctx, string(provider), id)
	if err != nil {
		if errors.Is(err, db.ErrObjectNotFound) {
			return dombak.Job{}, fmt.Errorf("restore %q: %w", id, domain.ErrNotFound)
		}
		return dombak.Job{}, fmt.Errorf("restore status %s: %w", id, err)
	}
	return fromDB(provider, job), nil
}

func fromDB(provider dombak.Provider, job db.BackupJob) dombak.Job {
	return dombak.Job{
		ID:           job.ID,
		Provider:     provider,
		Path:         job.Path,
		RemoteStatus: job.Status,
		Error:        job.Error,
	}
}
