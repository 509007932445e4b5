package chi

import (
	"context"
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/vantaworks/vectoradmin/internal/db"
	dombak "github.com/vantaworks/vectoradmin/internal/domain/backup"
	"github.com/vantaworks/vectoradmin/internal/domain/batch"
	domcol "github.com/vantaworks/vectoradmin/internal/domain/collection"
	"github.com/vantaworks/vectoradmin/internal/domain/record"
	"github.com/vantaworks/vectoradmin/internal/domain/schema"
	backupuc "github.com/vantaworks/vectoradmin/internal/usecase/backupsvc"
	clusteruc "github.com/vantaworks/vectoradmin/internal/usecase/cluster"
	collectionuc "github.com/vantaworks/vectoradmin/internal/usecase/collection"
	healthuc "github.com/vantaworks/vectoradmin/internal/usecase/health"
	ingestuc "github.com/vantaworks/vectoradmin/internal/usecase/ingest"
)

// --- Mocks ---

type mockColRepo struct {
	createFunc func(ctx context.Context, col domcol.Collection) error
	getFunc    func(ctx context.Context, name string) (domcol.Collection, map[string]any, error)
	listFunc   func(ctx context.Context) ([]domcol.Collection, error)
	deleteFunc func(ctx context.Context, name string) error
	addFunc    func(ctx context.Context, name string, prop schema.PropertyDef) error
	countFunc  func(ctx context.Context, name string) (int, error)
}

func (m *mockColRepo) Create(ctx context.Context, col domcol.Collection) error {
	return m.createFunc(ctx, col)
}

func (m *mockColRepo) Get(ctx context.Context, name string) (domcol.Collection, map[string]any, error) {
	return m.getFunc(ctx, name)
}

func (m *mockColRepo) List(ctx context.Context) ([]domcol.Collection, error) {
	return m.listFunc(ctx)
}

func (m *mockColRepo) Delete(ctx context.Context, name string) error {
	return m.deleteFunc(ctx, name)
}

func (m *mockColRepo) AddProperty(ctx context.Context, name string, prop schema.PropertyDef) error {
	return m.addFunc(ctx, name, prop)
}

func (m *mockColRepo) Count(ctx context.Context, name string) (int, error) {
	return m.countFunc(ctx, name)
}

type mockIngestRepo struct {
	propsFunc  func(ctx context.Context, collection string) ([]schema.PropertyDef, error)
	insertFunc func(ctx context.Context, collection string, docs []record.Record) (int, []batch.Failure, error)
	sampleFunc func(ctx context.Context, collection string, limit, offset int) ([]record.Stored, error)
	getFunc    func(ctx context.Context, collection, id string) (record.Stored, error)
	updateFunc func(ctx context.Context, collection, id string, doc record.Record) error
	deleteFunc func(ctx context.Context, collection, id string) error
}

func (m *mockIngestRepo) Properties(ctx context.Context, collection string) ([]schema.PropertyDef, error) {
	return m.propsFunc(ctx, collection)
}

func (m *mockIngestRepo) InsertBatch(ctx context.Context, collection string, docs []record.Record) (int, []batch.Failure, error) {
	return m.insertFunc(ctx, collection, docs)
}

func (m *mockIngestRepo) Sample(ctx context.Context, collection string, limit, offset int) ([]record.Stored, error) {
	return m.sampleFunc(ctx, collection, limit, offset)
}

func (m *mockIngestRepo) Get(ctx context.Context, collection, id string) (record.Stored, error) {
	return m.getFunc(ctx, collection, id)
}

func (m *mockIngestRepo) Update(ctx context.Context, collection, id string, doc record.Record) error {
	return m.updateFunc(ctx, collection, id, doc)
}

func (m *mockIngestRepo) Delete(ctx context.Context, collection, id string) error {
	return m.deleteFunc(ctx, collection, id)
}

type mockBackupRepo struct {
	records []dombak.Record
}

func (m *mockBackupRepo) EnsureSchema(_ context.Context) error { return nil }

func (m *mockBackupRepo) Insert(_ context.Context, rec dombak.Record) (dombak.Record, error) {
	stored := rec.WithObjectID("obj-1")
	m.records = append(m.records, stored)
	return stored, nil
}

func (m *mockBackupRepo) List(_ context.Context, _ int) ([]dombak.Record, error) {
	return m.records, nil
}

func (m *mockBackupRepo) Update(_ context.Context, rec dombak.Record) error {
	for i := range m.records {
		if m.records[i].ObjectID() == rec.ObjectID() {
			m.records[i] = rec
		}
	}
	return nil
}

func (m *mockBackupRepo) Delete(_ context.Context, _ string) error { return nil }

func (m *mockBackupRepo) Collection() string { return "BackupHistory" }

type mockRunner struct {
	job dombak.Job
	err error
}

func (m *mockRunner) StartBackup(_ context.Context, id string, provider dombak.Provider, _ []string) (dombak.Job, error) {
	if m.err != nil {
		return dombak.Job{}, m.err
	}
	job := m.job
	job.ID = id
	job.Provider = provider
	return job, nil
}

func (m *mockRunner) BackupStatus(_ context.Context, provider dombak.Provider, id string) (dombak.Job, error) {
	return m.StartBackup(context.Background(), id, provider, nil)
}

func (m *mockRunner) StartRestore(_ context.Context, id string, provider dombak.Provider, _, _ []string) (dombak.Job, error) {
	return m.StartBackup(context.Background(), id, provider, nil)
}

func (m *mockRunner) RestoreStatus(_ context.Context, provider dombak.Provider, id string) (dombak.Job, error) {
	return m.StartBackup(context.Background(), id, provider, nil)
}

type mockClusterReader struct {
	nodes   []db.NodeStatus
	stats   db.ClusterStatistics
	meta    db.Meta
	tenants []db.Tenant
	classes []db.ClassDefinition
}

func (m *mockClusterReader) Nodes(_ context.Context, _ bool) ([]db.NodeStatus, error) {
	return m.nodes, nil
}

func (m *mockClusterReader) Statistics(_ context.Context) (db.ClusterStatistics, error) {
	return m.stats, nil
}

func (m *mockClusterReader) Meta(_ context.Context) (db.Meta, error) { return m.meta, nil }

func (m *mockClusterReader) Tenants(_ context.Context, _ string) ([]db.Tenant, error) {
	return m.tenants, nil
}

func (m *mockClusterReader) ListClasses(_ context.Context) ([]db.ClassDefinition, error) {
	return m.classes, nil
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

// --- Helpers ---

type testEnv struct {
	colRepo    *mockColRepo
	ingestRepo *mockIngestRepo
	backupRepo *mockBackupRepo
	runner     *mockRunner
	reader     *mockClusterReader
	pinger     *mockPinger
}

func newTestHandler(t *testing.T, env *testEnv) http.Handler {
	t.Helper()

	cols := collectionuc.New(env.colRepo, nil, nil)
	ingest := ingestuc.New(env.ingestRepo, 2, 10)
	backups := backupuc.New(env.backupRepo, env.runner, 0)
	cluster := clusteruc.New(env.reader, 0)
	health := healthuc.New(env.pinger, env.reader)

	srv := NewServer(cols, ingest, backups, cluster, health, zap.NewNop())
	return srv.Routes(nil)
}

func newTestEnv() *testEnv {
	return &testEnv{
		colRepo:    &mockColRepo{},
		ingestRepo: &mockIngestRepo{},
		backupRepo: &mockBackupRepo{},
		runner:     &mockRunner{},
		reader:     &mockClusterReader{},
		pinger:     &mockPinger{},
	}
}
