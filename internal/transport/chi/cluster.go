package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// clusterNodes handles GET /api/v1/cluster/nodes.
func (s *Server) clusterNodes(w http.ResponseWriter, r *http.Request) {
	verbose := r.URL.Query().Get("verbose") == "true"

	nodes, err := s.cluster.Nodes(r.Context(), verbose)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nodes)
}

// clusterStatistics handles GET /api/v1/cluster/statistics.
func (s *Server) clusterStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := s.cluster.Statistics(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// clusterMeta handles GET /api/v1/cluster/meta.
func (s *Server) clusterMeta(w http.ResponseWriter, r *http.Request) {
	meta, err := s.cluster.Meta(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meta)
}

// clusterSchema handles GET /api/v1/cluster/schema: the raw class definitions
// as the cluster reports them.
func (s *Server) clusterSchema(w http.ResponseWriter, r *http.Request) {
	classes, err := s.cluster.SchemaDump(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, classes)
}

// listTenants handles GET /api/v1/collections/{collection}/tenants.
func (s *Server) listTenants(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "collection")

	tenants, err := s.cluster.Tenants(r.Context(), name)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tenants)
}

// invalidateCache handles POST /api/v1/cluster/cache/invalidate.
func (s *Server) invalidateCache(w http.ResponseWriter, _ *http.Request) {
	s.cluster.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}
