// Package backupsvc implements the backup history tracker: audit records
// stored inside the target cluster plus thin orchestration of the remote
// backup and restore primitives.
package backupsvc

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/vantaworks/vectoradmin/internal/domain"
	dombak "github.com/vantaworks/vectoradmin/internal/domain/backup"
)

const (
	defaultHistoryLimit = 100
	defaultScanLimit    = 1000
	defaultPollInterval = 2 * time.Second
)

// Service handles backup history tracking and backup/restore orchestration.
type Service struct {
	repo         Repository
	runner       Runner
	scanLimit    int
	pollInterval time.Duration
}

// New creates a backup service. scanLimit bounds the UpdateStatus record
// scan and falls back to 1000 when non-positive.
func New(repo Repository, runner Runner, scanLimit int) *Service {
	if scanLimit <= 0 {
		scanLimit = defaultScanLimit
	}
	return &Service{repo: repo, runner: runner, scanLimit: scanLimit, pollInterval: defaultPollInterval}
}

// WithPollInterval overrides the status poll interval.
func (s *Service) WithPollInterval(d time.Duration) *Service {
	if d > 0 {
		s.pollInterval = d
	}
	return s
}

// Init creates the audit collection if missing. Idempotent; safe to call on
// every startup.
func (s *Service) Init(ctx context.Context) error {
	if err := s.repo.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("init backup history: %w", err)
	}
	return nil
}

// StoreMetadata records a new IN_PROGRESS backup. Duplicate backup ids are
// allowed; lookups resolve to the newest record.
func (s *Service) StoreMetadata(ctx context.Context, backupID string, provider dombak.Provider, collections []string) (dombak.Record, error) {
	rec, err := dombak.New(backupID, provider, collections)
	if err != nil {
		return dombak.Record{}, fmt.Errorf("validate backup record: %w", err)
	}

	stored, err := s.repo.Insert(ctx, rec)
	if err != nil {
		return dombak.Record{}, fmt.Errorf("store backup metadata: %w", err)
	}
	return stored, nil
}

// Register stores an audit record for a backup that ran outside this
// console, e.g. one taken directly against the cluster. Unlike StoreMetadata
// the caller picks the lifecycle state; an empty status means IN_PROGRESS.
func (s *Service) Register(ctx context.Context, backupID string, provider dombak.Provider, collections []string, status dombak.Status, path string) (dombak.Record, error) {
	if status == "" {
		status = dombak.StatusInProgress
	}
	rec, err := dombak.NewWithStatus(backupID, provider, collections, status, path)
	if err != nil {
		return dombak.Record{}, fmt.Errorf("validate backup record: %w", err)
	}

	stored, err := s.repo.Insert(ctx, rec)
	if err != nil {
		return dombak.Record{}, fmt.Errorf("register backup record: %w", err)
	}
	return stored, nil
}

// History returns up to limit records, newest first. The remote store does
// not guarantee ordering, so the sort happens here.
func (s *Service) History(ctx context.Context, limit int) ([]dombak.Record, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	records, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("load backup history: %w", err)
	}

	sortNewestFirst(records)
	return records, nil
}

// UpdateStatus locates the newest record with the given backup id by linear
// scan over the most recent records (bounded by the configured scan limit)
// and transitions it to a terminal state. Fails with a not-found error when
// no record matches; never creates a record.
func (s *Service) UpdateStatus(ctx context.Context, backupID string, status dombak.Status, errorMessage string, sizeBytes int64, path string) (dombak.Record, error) {
	records, err := s.repo.List(ctx, s.scanLimit)
	if err != nil {
		return dombak.Record{}, fmt.Errorf("load backup history: %w", err)
	}
	sortNewestFirst(records)

	var found *dombak.Record
	for i := range records {
		if records[i].BackupID() == backupID {
			found = &records[i]
			break
		}
	}
	if found == nil {
		return dombak.Record{}, fmt.Errorf("backup %q: %w", backupID, domain.ErrNotFound)
	}

	updated, err := found.Complete(status, errorMessage, sizeBytes, path)
	if err != nil {
		return dombak.Record{}, fmt.Errorf("transition backup %s: %w", backupID, err)
	}
	if err := s.repo.Update(ctx, updated); err != nil {
		return dombak.Record{}, fmt.Errorf("persist backup status: %w", err)
	}
	return updated, nil
}

// DeleteRecord removes one audit record by its object id.
func (s *Service) DeleteRecord(ctx context.Context, objectID string) error {
	if err := s.repo.Delete(ctx, objectID); err != nil {
		return fmt.Errorf("delete backup record: %w", err)
	}
	return nil
}

// Run executes a full backup: store an IN_PROGRESS record, invoke the remote
// backup primitive, wait for it to finish and transition the record to its
// terminal state. The returned record carries the final state.
func (s *Service) Run(ctx context.Context, backupID string, provider dombak.Provider, collections []string) (dombak.Record, error) {
	rec, err := s.StoreMetadata(ctx, backupID, provider, collections)
	if err != nil {
		return dombak.Record{}, err
	}

	job, err := s.runner.StartBackup(ctx, backupID, provider, collections)
	if err != nil {
		return s.fail(ctx, rec, err)
	}

	final, err := s.await(ctx, func(ctx context.Context) (dombak.Job, error) {
		return s.runner.BackupStatus(ctx, provider, backupID)
	}, job)
	if err != nil {
		return s.fail(ctx, rec, err)
	}

	status, _ := final.Terminal()
	updated, err := rec.Complete(status, final.Error, 0, final.Path)
	if err != nil {
		return dombak.Record{}, fmt.Errorf("transition backup %s: %w", backupID, err)
	}
	if err := s.repo.Update(ctx, updated); err != nil {
		return dombak.Record{}, fmt.Errorf("persist backup status: %w", err)
	}
	return updated, nil
}

// Restore executes a restore of a finished backup and waits for the remote
// operation to reach a terminal state. include and exclude are mutually
// exclusive collection filters, both optional. Restores are not
// audit-tracked; the final job state is returned directly.
func (s *Service) Restore(ctx context.Context, backupID string, provider dombak.Provider, include, exclude []string) (dombak.Job, error) {
	if len(include) > 0 && len(exclude) > 0 {
		return dombak.Job{}, fmt.Errorf("include and exclude collections are mutually exclusive: %w", domain.ErrInvalidInput)
	}
	job, err := s.runner.StartRestore(ctx, backupID, provider, include, exclude)
	if err != nil {
		return dombak.Job{}, fmt.Errorf("restore %s: %w", backupID, err)
	}

	final, err := s.await(ctx, func(ctx context.Context) (dombak.Job, error) {
		return s.runner.RestoreStatus(ctx, provider, backupID)
	}, job)
	if err != nil {
		return dombak.Job{}, fmt.Errorf("restore %s: %w", backupID, err)
	}
	return final, nil
}

// RestoreStatus reports the current state of a restore operation.
func (s *Service) RestoreStatus(ctx context.Context, backupID string, provider dombak.Provider) (dombak.Job, error) {
	job, err := s.runner.RestoreStatus(ctx, provider, backupID)
	if err != nil {
		return dombak.Job{}, fmt.Errorf("restore status %s: %w", backupID, err)
	}
	return job, nil
}

// await polls a job until it reaches a terminal remote status.
func (s *Service) await(ctx context.Context, poll func(context.Context) (dombak.Job, error), job dombak.Job) (dombak.Job, error) {
	if _, done := job.Terminal(); done {
		return job, nil
	}

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return dombak.Job{}, fmt.Errorf("wait for completion: %w", ctx.Err())
		case <-ticker.C:
			current, err := poll(ctx)
			if err != nil {
				return dombak.Job{}, err
			}
			if _, done := current.Terminal(); done {
				return current, nil
			}
		}
	}
}

// fail transitions a record to FAILED after a remote error. The original
// error wins over any bookkeeping failure.
func (s *Service) fail(ctx context.Context, rec dombak.Record, cause error) (dombak.Record, error) {
	failed, err := rec.Complete(dombak.StatusFailed, cause.Error(), 0, "")
	if err != nil {
		return dombak.Record{}, cause
	}
	if err := s.repo.Update(ctx, failed); err != nil {
		return dombak.Record{}, fmt.Errorf("%w (status update also failed: %v)", cause, err)
	}
	return failed, cause
}

func sortNewestFirst(records []dombak.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedDate().After(records[j].CreatedDate())
	})
}

// FormatCollections renders a record's collection list for display.
func FormatCollections(rec dombak.Record) string {
	if len(rec.Collections()) == 0 {
		return "all"
	}
	return strings.Join(rec.Collections(), ", ")
}
