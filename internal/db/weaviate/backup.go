package weaviate

import (
	"context"
	"net/http"
	"net/url"

	"github.com/vantaworks/vectoradmin/internal/db"
)

type backupBody struct {
	ID      string   `json:"id"`
	Include []string `json:"include,omitempty"`
	Exclude []string `json:"exclude,omitempty"`
}

// CreateBackup starts a backup on the given backend.
func (s *Store) CreateBackup(ctx context.Context, req db.BackupRequest) (db.BackupJob, error) {
	var job db.BackupJob
	err := s.do(ctx, db.OpCreateBackup, http.MethodPost,
		"/v1/backups/"+url.PathEscape(req.Backend),
		backupBody{ID: req.ID, Include: req.Include}, &job, nil)
	if err != nil {
		return db.BackupJob{}, err
	}
	return job, nil
}

// BackupStatus reports the state of a running or finished backup.
func (s *Store) BackupStatus(ctx context.Context, backend, id string) (db.BackupJob, error) {
	var job db.BackupJob
	err := s.do(ctx, db.OpBackupStatus, http.MethodGet,
		"/v1/backups/"+url.PathEscape(backend)+"/"+url.PathEscape(id), nil, &job, db.ErrObjectNotFound)
	if err != nil {
		return db.BackupJob{}, err
	}
	return job, nil
}

// RestoreBackup starts restoring a backup on the given backend.
func (s *Store) RestoreBackup(ctx context.Context, req db.BackupRequest) (db.BackupJob, error) {
	var job db.BackupJob
	err := s.do(ctx, db.OpRestore, http.MethodPost,
		"/v1/backups/"+url.PathEscape(req.Backend)+"/"+url.PathEscape(req.ID)+"/restore",
		backupBody{ID: req.ID, Include: req.Include, Exclude: req.Exclude}, &job, db.ErrObjectNotFound)
	if err != nil {
		return db.BackupJob{}, err
	}
	return job, nil
}

// RestoreStatus reports the state of a running or finished restore.
func (s *Store) RestoreStatus(ctx context.Context, backend, id string) (db.BackupJob, error) {
	var job db.BackupJob
	err := s.do(ctx, db.OpRestoreStatus, http.MethodGet,
		"/v1/backups/"+url.PathEscape(backend)+"/"+url.PathEscape(id)+"/restore", nil, &job, db.ErrObjectNotFound)
	if err != nil {
		return db.BackupJob{}, err
	}
	return job, nil
}
