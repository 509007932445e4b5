package cluster

import (
	"context"

	"github.com/vantaworks/vectoradmin/internal/db"
)

// Reader defines the read-only cluster metadata contract. The facade is a
// passthrough over the remote inspection endpoints, so the wire-level types
// are used directly.
type Reader interface {
	Nodes(ctx context.Context, verbose bool) ([]db.NodeStatus, error)
	Statistics(ctx context.Context) (db.ClusterStatistics, error)
	Meta(ctx context.Context) (db.Meta, error)
	Tenants(ctx context.Context, class string) ([]db.Tenant, error)
	ListClasses(ctx context.Context) ([]db.ClassDefinition, error)
}
