// Package db defines the storage facade over the target vector database
// cluster. Consumers depend on the narrow sub-interfaces, not on Store.
package db

import "context"

// Store is the main cluster facade combining all sub-interfaces.
//
//nolint:interfacebloat // facade by design -- consumers use narrow sub-interfaces (ISP)
type Store interface {
	Pinger
	SchemaStore
	ObjectStore
	BackupStore
	ClusterStore
	Close()
}

// Pinger checks cluster connectivity and readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ClassProperty is one property in a remote class definition.
type ClassProperty struct {
	Name            string   `json:"name"`
	DataType        []string `json:"dataType"`
	Description     string   `json:"description,omitempty"`
	IndexSearchable *bool    `json:"indexSearchable,omitempty"`
	IndexFilterable *bool    `json:"indexFilterable,omitempty"`
}

// ClassDefinition is a remote collection schema.
type ClassDefinition struct {
	Class        string          `json:"class"`
	Description  string          `json:"description,omitempty"`
	Vectorizer   string          `json:"vectorizer,omitempty"`
	Properties   []ClassProperty `json:"properties,omitempty"`
	ModuleConfig map[string]any  `json:"moduleConfig,omitempty"`
	VectorIndex  string          `json:"vectorIndexType,omitempty"`
}

// SchemaStore provides class (collection) lifecycle operations.
type SchemaStore interface {
	CreateClass(ctx context.Context, def ClassDefinition) error
	GetClass(ctx context.Context, name string) (ClassDefinition, error)
	ListClasses(ctx context.Context) ([]ClassDefinition, error)
	DeleteClass(ctx context.Context, name string) error
	AddProperty(ctx context.Context, class string, prop ClassProperty) error
}

// Object is one stored document.
type Object struct {
	Class              string         `json:"class"`
	ID                 string         `json:"id,omitempty"`
	Properties         map[string]any `json:"properties"`
	Vector             []float32      `json:"vector,omitempty"`
	CreationTimeUnix   int64          `json:"creationTimeUnix,omitempty"`
	LastUpdateTimeUnix int64          `json:"lastUpdateTimeUnix,omitempty"`
}

// BatchFailure is one rejected object in a batch write. Index is the
// object's position within the submitted batch.
type BatchFailure struct {
	Index   int
	Message string
}

// BatchReport is the per-object outcome of one batch write.
type BatchReport struct {
	Succeeded int
	Failures  []BatchFailure
}

// ObjectQuery bounds an object listing.
type ObjectQuery struct {
	Class  string
	Limit  int
	Offset int
}

// ObjectStore provides document read/write operations.
type ObjectStore interface {
	BatchObjects(ctx context.Context, objects []Object) (BatchReport, error)
	ListObjects(ctx context.Context, q ObjectQuery) ([]Object, error)
	GetObject(ctx context.Context, class, id string) (Object, error)
	UpdateObject(ctx context.Context, obj Object) error
	DeleteObject(ctx context.Context, class, id string) error
	CountObjects(ctx context.Context, class string) (int, error)
}

// BackupRequest parametrizes a backup or restore call. Include and Exclude
// filter the affected collections and are mutually exclusive.
type BackupRequest struct {
	Backend string
	ID      string
	Include []string
	Exclude []string
}

// BackupJob is the remote status of a backup or restore operation.
type BackupJob struct {
	ID      string `json:"id"`
	Backend string `json:"backend"`
	Path    string `json:"path"`
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
}

// BackupStore provides backup and restore primitives.
type BackupStore interface {
	CreateBackup(ctx context.Context, req BackupRequest) (BackupJob, error)
	BackupStatus(ctx context.Context, backend, id string) (BackupJob, error)
	RestoreBackup(ctx context.Context, req BackupRequest) (BackupJob, error)
	RestoreStatus(ctx context.Context, backend, id string) (BackupJob, error)
}

// ShardStatus is one shard on one node.
type ShardStatus struct {
	Name           string `json:"name"`
	Class          string `json:"class"`
	ObjectCount    int64  `json:"objectCount"`
	IndexingStatus string `json:"vectorIndexingStatus,omitempty"`
}

// NodeStatus is one cluster node as reported by the nodes endpoint.
type NodeStatus struct {
	Name        string        `json:"name"`
	Status      string        `json:"status"`
	Version     string        `json:"version"`
	GitHash     string        `json:"gitHash,omitempty"`
	ShardCount  int64         `json:"shardCount,omitempty"`
	ObjectCount int64         `json:"objectCount,omitempty"`
	Shards      []ShardStatus `json:"shards,omitempty"`
}

// NodeStatistics is one node's consensus-level state.
type NodeStatistics struct {
	Name       string         `json:"name"`
	Status     string         `json:"status"`
	Ready      bool           `json:"ready"`
	IsVoter    bool           `json:"isVoter"`
	LeaderID   map[string]any `json:"leaderId,omitempty"`
	LeaderAddr map[string]any `json:"leaderAddress,omitempty"`
	DBLoaded   bool           `json:"dbLoaded"`
	Raft       map[string]any `json:"raft,omitempty"`
}

// ClusterStatistics is the consensus-level view of the whole cluster.
type ClusterStatistics struct {
	Statistics   []NodeStatistics `json:"statistics"`
	Synchronized bool             `json:"synchronized"`
}

// Meta is the cluster's self-description.
type Meta struct {
	Hostname string         `json:"hostname"`
	Version  string         `json:"version"`
	Modules  map[string]any `json:"modules"`
}

// Tenant is one tenant of a multi-tenant class.
type Tenant struct {
	Name   string `json:"name"`
	Status string `json:"activityStatus,omitempty"`
}

// ClusterStore provides read-only cluster metadata queries.
type ClusterStore interface {
	Nodes(ctx context.Context, verbose bool) ([]NodeStatus, error)
	Statistics(ctx context.Context) (ClusterStatistics, error)
	Meta(ctx context.Context) (Meta, error)
	Tenants(ctx context.Context, class string) ([]Tenant, error)
}
