package cluster

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vantaworks/vectoradmin/internal/db"
)

// --- Mocks ---

type mockReader struct {
	nodes      []db.NodeStatus
	nodesCalls int
	nodesErr   error
	stats      db.ClusterStatistics
	statsCalls int
	meta       db.Meta
	metaCalls  int
	classes    []db.ClassDefinition
	tenants    []db.Tenant
	tenantsErr error
}

func (m *mockReader) Nodes(_ context.Context, _ bool) ([]db.NodeStatus, error) {
	m.nodesCalls++
	return m.nodes, m.nodesErr
}

func (m *mockReader) Statistics(_ context.Context) (db.ClusterStatistics, error) {
	m.statsCalls++
	return m.stats, nil
}

func (m *mockReader) Meta(_ context.Context) (db.Meta, error) {
	m.metaCalls++
	return m.meta, nil
}

func (m *mockReader) Tenants(_ context.Context, _ string) ([]db.Tenant, error) {
	return m.tenants, m.tenantsErr
}

func (m *mockReader) ListClasses(_ context.Context) ([]db.ClassDefinition, error) {
	return m.classes, nil
}

// --- Tests ---

func TestNodes_CachedWithinTTL(t *testing.T) {
	reader := &mockReader{nodes: []db.NodeStatus{{Name: "node-1", Status: "HEALTHY"}}}
	svc := New(reader, 30*time.Second)

	for range 3 {
		nodes, err := svc.Nodes(context.Background(), false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(nodes) != 1 || nodes[0].Name != "node-1" {
			t.Errorf("nodes = %+v", nodes)
		}
	}

	if reader.nodesCalls != 1 {
		t.Errorf("reader called %d times, want 1", reader.nodesCalls)
	}
}

func TestNodes_VerboseCachedSeparately(t *testing.T) {
	reader := &mockReader{}
	svc := New(reader, 30*time.Second)

	if _, err := svc.Nodes(context.Background(), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Nodes(context.Background(), true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reader.nodesCalls != 2 {
		t.Errorf("reader called %d times, want 2", reader.nodesCalls)
	}
}

func TestNodes_ExpiryRefetches(t *testing.T) {
	reader := &mockReader{}
	svc := New(reader, 10*time.Second)

	current := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return current }

	if _, err := svc.Nodes(context.Background(), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	current = current.Add(11 * time.Second)
	if _, err := svc.Nodes(context.Background(), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reader.nodesCalls != 2 {
		t.Errorf("reader called %d times, want 2", reader.nodesCalls)
	}
}

func TestNodes_ErrorsNotCached(t *testing.T) {
	reader := &mockReader{nodesErr: errors.New("unreachable")}
	svc := New(reader, 30*time.Second)

	if _, err := svc.Nodes(context.Background(), false); err == nil {
		t.Fatal("expected error")
	}
	reader.nodesErr = nil
	if _, err := svc.Nodes(context.Background(), false); err != nil {
		t.Fatalf("unexpected error after recovery: %v", err)
	}

	if reader.nodesCalls != 2 {
		t.Errorf("reader called %d times, want 2", reader.nodesCalls)
	}
}

func TestInvalidate(t *testing.T) {
	reader := &mockReader{}
	svc := New(reader, 30*time.Second)

	if _, err := svc.Meta(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svc.Invalidate()
	if _, err := svc.Meta(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reader.metaCalls != 2 {
		t.Errorf("reader called %d times, want 2", reader.metaCalls)
	}
}

func TestSynchronized(t *testing.T) {
	reader := &mockReader{stats: db.ClusterStatistics{Synchronized: true}}
	svc := New(reader, 30*time.Second)

	sync, err := svc.Synchronized(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sync {
		t.Error("Synchronized() = false, want true")
	}
	if reader.statsCalls != 1 {
		t.Errorf("reader called %d times, want 1", reader.statsCalls)
	}
}

func TestTenants_NotCached(t *testing.T) {
	reader := &mockReader{tenants: []db.Tenant{{Name: "acme"}}}
	svc := New(reader, 30*time.Second)

	tenants, err := svc.Tenants(context.Background(), "Articles")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tenants) != 1 || tenants[0].Name != "acme" {
		t.Errorf("tenants = %+v", tenants)
	}
}
