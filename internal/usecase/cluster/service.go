// Package cluster implements the read-only cluster inspection facade.
// Metadata reads are cached in-process with an explicit TTL so a dashboard
// refreshing every few seconds does not hammer the cluster.
package cluster

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vantaworks/vectoradmin/internal/db"
	"github.com/vantaworks/vectoradmin/internal/metrics"
)

const defaultTTL = 30 * time.Second

type cacheEntry struct {
	value   any
	expires time.Time
}

// Service handles cluster metadata queries.
type Service struct {
	reader Reader
	ttl    time.Duration
	now    func() time.Time

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// New creates a cluster service. ttl falls back to 30s when non-positive.
func New(reader Reader, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Service{
		reader: reader,
		ttl:    ttl,
		now:    time.Now,
		cache:  make(map[string]cacheEntry),
	}
}

// Nodes lists cluster nodes, optionally with per-shard detail.
func (s *Service) Nodes(ctx context.Context, verbose bool) ([]db.NodeStatus, error) {
	key := "nodes"
	if verbose {
		key = "nodes:verbose"
	}
	return cached(s, key, func() ([]db.NodeStatus, error) {
		return s.reader.Nodes(ctx, verbose)
	})
}

// Statistics fetches the consensus-level cluster view.
func (s *Service) Statistics(ctx context.Context) (db.ClusterStatistics, error) {
	return cached(s, "statistics", func() (db.ClusterStatistics, error) {
		return s.reader.Statistics(ctx)
	})
}

// Meta fetches the cluster version and enabled modules.
func (s *Service) Meta(ctx context.Context) (db.Meta, error) {
	return cached(s, "meta", func() (db.Meta, error) {
		return s.reader.Meta(ctx)
	})
}

// SchemaDump fetches all class definitions as the cluster reports them.
func (s *Service) SchemaDump(ctx context.Context) ([]db.ClassDefinition, error) {
	return cached(s, "schema", func() ([]db.ClassDefinition, error) {
		return s.reader.ListClasses(ctx)
	})
}

// Tenants lists the tenants of one class. Not cached: tenant lists are
// per-class and queried on demand.
func (s *Service) Tenants(ctx context.Context, class string) ([]db.Tenant, error) {
	tenants, err := s.reader.Tenants(ctx, class)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	return tenants, nil
}

// Synchronized reports whether all nodes agree on the cluster state.
func (s *Service) Synchronized(ctx context.Context) (bool, error) {
	stats, err := s.Statistics(ctx)
	if err != nil {
		return false, err
	}
	return stats.Synchronized, nil
}

// Invalidate drops all cached metadata.
func (s *Service) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]cacheEntry)
}

// cached serves key from the TTL cache, invoking load on miss or expiry.
// Errors are never cached.
func cached[T any](s *Service, key string, load func() (T, error)) (T, error) {
	s.mu.Lock()
	entry, ok := s.cache[key]
	if ok && s.now().Before(entry.expires) {
		s.mu.Unlock()
		metrics.ClusterCacheTotal.WithLabelValues("hit").Inc()
		return entry.value.(T), nil
	}
	s.mu.Unlock()
	metrics.ClusterCacheTotal.WithLabelValues("miss").Inc()

	value, err := load()
	if err != nil {
		var zero T
		return zero, fmt.Errorf("inspect cluster: %w", err)
	}

	s.mu.Lock()
	s.cache[key] = cacheEntry{value: value, expires: s.now().Add(s.ttl)}
	s.mu.Unlock()
	return value, nil
}
