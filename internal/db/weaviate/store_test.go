package weaviate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vantaworks/vectoradmin/internal/db"
)

func newTestStore(t *testing.T, handler http.HandlerFunc) *Store {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store, err := NewStore(Config{
		Endpoint: server.URL,
		APIKey:   "cluster-key",
		ExtraHeaders: map[string]string{
			"X-Openai-Api-Key": "sk-test",
		},
	})
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return store
}

func TestPing_ForwardsHeaders(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/.well-known/ready" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer cluster-key" {
			t.Errorf("auth header = %q", r.Header.Get("Authorization"))
		}
		if r.Header.Get("X-Openai-Api-Key") != "sk-test" {
			t.Errorf("provider header = %q", r.Header.Get("X-Openai-Api-Key"))
		}
		w.WriteHeader(http.StatusOK)
	})

	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}
}

func TestPing_Unavailable(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	err := store.Ping(context.Background())
	if !errors.Is(err, db.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestCreateClass_AlreadyExists(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"error": []map[string]any{{"message": `class name "Articles" already exists`}},
		})
	})

	err := store.CreateClass(context.Background(), db.ClassDefinition{Class: "Articles"})
	if !errors.Is(err, db.ErrClassExists) {
		t.Fatalf("expected ErrClassExists, got %v", err)
	}
}

func TestGetClass_NotFound(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := store.GetClass(context.Background(), "Ghost")
	if !errors.Is(err, db.ErrClassNotFound) {
		t.Fatalf("expected ErrClassNotFound, got %v", err)
	}

	var opErr *db.Error
	if !errors.As(err, &opErr) || opErr.Op != db.OpGetClass {
		t.Errorf("expected op %q, got %v", db.OpGetClass, err)
	}
}

func TestGetClass_Unauthorized(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := store.GetClass(context.Background(), "Articles")
	if !errors.Is(err, db.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestGetClass_Decodes(t *testing.T) {
	searchable := true
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/schema/Articles" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(db.ClassDefinition{
			Class:      "Articles",
			Vectorizer: "text2vec-openai",
			Properties: []db.ClassProperty{
				{Name: "title", DataType: []string{"text"}, IndexSearchable: &searchable},
			},
		})
	})

	def, err := store.GetClass(context.Background(), "Articles")
	if err != nil {
		t.Fatalf("GetClass failed: %v", err)
	}
	if def.Class != "Articles" || def.Vectorizer != "text2vec-openai" {
		t.Errorf("def = %+v", def)
	}
	if len(def.Properties) != 1 || def.Properties[0].DataType[0] != "text" {
		t.Errorf("properties = %+v", def.Properties)
	}
}

func TestBatchObjects_PartialFailure(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/batch/objects" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]any{
			{"result": map[string]any{"status": "SUCCESS"}},
			{"result": map[string]any{
				"status": "FAILED",
				"errors": map[string]any{
					"error": []map[string]any{{"message": "invalid date property 'published'"}},
				},
			}},
			{"result": map[string]any{"status": "SUCCESS"}},
		})
	})

	report, err := store.BatchObjects(context.Background(), []db.Object{
		{Class: "Articles"}, {Class: "Articles"}, {Class: "Articles"},
	})
	if err != nil {
		t.Fatalf("BatchObjects failed: %v", err)
	}
	if report.Succeeded != 2 {
		t.Errorf("succeeded = %d, want 2", report.Succeeded)
	}
	if len(report.Failures) != 1 || report.Failures[0].Index != 1 {
		t.Fatalf("failures = %+v", report.Failures)
	}
	if report.Failures[0].Message != "invalid date property 'published'" {
		t.Errorf("message = %q", report.Failures[0].Message)
	}
}

func TestCountObjects(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/graphql" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"Aggregate": map[string]any{
					"Articles": []map[string]any{{"meta": map[string]any{"count": 123}}},
				},
			},
		})
	})

	count, err := store.CountObjects(context.Background(), "Articles")
	if err != nil {
		t.Fatalf("CountObjects failed: %v", err)
	}
	if count != 123 {
		t.Errorf("count = %d, want 123", count)
	}
}

func TestCountObjects_UnknownClass(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"errors": []map[string]any{{"message": `Cannot query field "Ghost" on type "AggregateObjectsObj"`}},
		})
	})

	_, err := store.CountObjects(context.Background(), "Ghost")
	if !errors.Is(err, db.ErrClassNotFound) {
		t.Fatalf("expected ErrClassNotFound, got %v", err)
	}
}

func TestTenants_NotMultiTenant_Empty(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"error": []map[string]any{{"message": "multi-tenancy is not enabled for class Articles"}},
		})
	})

	tenants, err := store.Tenants(context.Background(), "Articles")
	if err != nil {
		t.Fatalf("Tenants failed: %v", err)
	}
	if tenants != nil {
		t.Errorf("tenants = %+v, want nil", tenants)
	}
}

func TestListObjects_SendsQueryParams(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/objects" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("class") != "Articles" || q.Get("limit") != "50" || q.Get("offset") != "100" {
			t.Errorf("query = %q", r.URL.RawQuery)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"objects": []any{}})
	})

	_, err := store.ListObjects(context.Background(), db.ObjectQuery{Class: "Articles", Limit: 50, Offset: 100})
	if err != nil {
		t.Fatalf("ListObjects failed: %v", err)
	}
}

func TestNodes_Verbose_FillsTotals(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "output=verbose" {
			t.Errorf("query = %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"nodes": []map[string]any{{
				"name":    "node-1",
				"status":  "HEALTHY",
				"version": "1.27.0",
				"stats":   map[string]any{"shardCount": 4, "objectCount": 9001},
				"shards": []map[string]any{
					{"name": "shard-a", "class": "Articles", "objectCount": 9001},
				},
			}},
		})
	})

	nodes, err := store.Nodes(context.Background(), true)
	if err != nil {
		t.Fatalf("Nodes failed: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("nodes = %+v", nodes)
	}
	if nodes[0].ShardCount != 4 || nodes[0].ObjectCount != 9001 {
		t.Errorf("totals = %d/%d, want 4/9001", nodes[0].ShardCount, nodes[0].ObjectCount)
	}
	if len(nodes[0].Shards) != 1 || nodes[0].Shards[0].Class != "Articles" {
		t.Errorf("shards = %+v", nodes[0].Shards)
	}
}

func TestBackupStatus_Decodes(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/backups/s3/nightly-1" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(db.BackupJob{
			ID: "nightly-1", Backend: "s3", Path: "s3://bucket/nightly-1", Status: "SUCCESS",
		})
	})

	job, err := store.BackupStatus(context.Background(), "s3", "nightly-1")
	if err != nil {
		t.Fatalf("BackupStatus failed: %v", err)
	}
	if job.Status != "SUCCESS" || job.Path != "s3://bucket/nightly-1" {
		t.Errorf("job = %+v", job)
	}
}

func TestRestoreBackup_SendsExclude(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/backups/s3/nightly-1/restore" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var body struct {
			Include []string `json:"include"`
			Exclude []string `json:"exclude"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(body.Exclude) != 1 || body.Exclude[0] != "Scratch" {
			t.Errorf("exclude = %v, want [Scratch]", body.Exclude)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(db.BackupJob{ID: "nightly-1", Status: "STARTED"})
	})

	job, err := store.RestoreBackup(context.Background(), db.BackupRequest{
		Backend: "s3", ID: "nightly-1", Exclude: []string{"Scratch"},
	})
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if job.Status != "STARTED" {
		t.Errorf("job = %+v", job)
	}
}

func TestNewStore_RejectsBadEndpoint(t *testing.T) {
	if _, err := NewStore(Config{}); err == nil {
		t.Error("expected error for empty endpoint")
	}
	if _, err := NewStore(Config{Endpoint: "ftp://host"}); err == nil {
		t.Error("expected error for non-http scheme")
	}
}
