package health

import (
	"context"

	"github.com/vantaworks/vectoradmin/internal/db"
)

// ClusterPinger checks cluster reachability.
type ClusterPinger interface {
	Ping(ctx context.Context) error
}

// MetaReader checks that the cluster answers metadata queries.
type MetaReader interface {
	Meta(ctx context.Context) (db.Meta, error)
}
