package weaviate

import (
	"context"
	"net/http"

	"github.com/vantaworks/vectoradmin/internal/db"
)

// Nodes lists cluster nodes. With verbose set, per-shard detail is included
// and the shard/object totals are filled in.
func (s *Store) Nodes(ctx context.Context, verbose bool) ([]db.NodeStatus, error) {
	pth := "/v1/nodes"
	if verbose {
		pth += "?output=verbose"
	}

	var payload struct {
		Nodes []struct {
			db.NodeStatus
			Stats struct {
				ShardCount  int64 `json:"shardCount"`
				ObjectCount int64 `json:"objectCount"`
			} `json:"stats"`
		} `json:"nodes"`
	}
	if err := s.do(ctx, db.OpNodes, http.MethodGet, pth, nil, &payload, nil); err != nil {
		return nil, err
	}

	nodes := make([]db.NodeStatus, 0, len(payload.Nodes))
	for _, n := range payload.Nodes {
		node := n.NodeStatus
		node.ShardCount = n.Stats.ShardCount
		node.ObjectCount = n.Stats.ObjectCount
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// Statistics fetches the consensus-level cluster view.
func (s *Store) Statistics(ctx context.Context) (db.ClusterStatistics, error) {
	var stats db.ClusterStatistics
	if err := s.do(ctx, db.OpStatistics, http.MethodGet, "/v1/cluster/statistics", nil, &stats, nil); err != nil {
		return db.ClusterStatistics{}, err
	}
	return stats, nil
}

// Meta fetches the cluster self-description (version, enabled modules).
func (s *Store) Meta(ctx context.Context) (db.Meta, error) {
	var meta db.Meta
	if err := s.do(ctx, db.OpMeta, http.MethodGet, "/v1/meta", nil, &meta, nil); err != nil {
		return db.Meta{}, err
	}
	return meta, nil
}
