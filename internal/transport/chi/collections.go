package chi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vantaworks/vectoradmin/internal/domain/schema"
	collectionuc "github.com/vantaworks/vectoradmin/internal/usecase/collection"
)

// createCollection handles POST /api/v1/collections.
func (s *Server) createCollection(w http.ResponseWriter, r *http.Request) {
	var req createCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "collection name is required")
		return
	}

	inputs := make([]collectionuc.PropertyInput, len(req.Properties))
	for i, p := range req.Properties {
		inputs[i] = collectionuc.PropertyInput{
			Name:        p.Name,
			Type:        schema.DataType(p.Type),
			Description: p.Description,
		}
	}

	col, err := s.collections.CreateWithProperties(r.Context(), req.Name, schema.Vectorizer(req.Vectorizer), inputs)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, collectionToDTO(col))
}

// listCollections handles GET /api/v1/collections.
func (s *Server) listCollections(w http.ResponseWriter, r *http.Request) {
	cols, err := s.collections.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]collectionResponse, len(cols))
	for i, c := range cols {
		items[i] = collectionToDTO(c)
	}
	writeJSON(w, http.StatusOK, items)
}

// getCollection handles GET /api/v1/collections/{collection}: the full info
// view with object count and raw cluster configuration.
func (s *Server) getCollection(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "collection")

	info, err := s.collections.Info(r.Context(), name)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, infoToDTO(info))
}

// deleteCollection handles DELETE /api/v1/collections/{collection}.
func (s *Server) deleteCollection(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "collection")

	if _, err := s.collections.DeleteMany(r.Context(), []string{name}); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// deleteCollections handles POST /api/v1/collections/delete: best-effort
// multi-delete reporting which names actually went away.
func (s *Server) deleteCollections(w http.ResponseWriter, r *http.Request) {
	var req deleteCollectionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Names) == 0 {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "at least one collection name is required")
		return
	}

	deleted, err := s.collections.DeleteMany(r.Context(), req.Names)

	resp := deleteCollectionsResponse{Deleted: deleted}
	status := http.StatusOK
	if err != nil {
		resp.Error = err.Error()
		status = http.StatusMultiStatus
	}
	writeJSON(w, status, resp)
}

// addProperty handles POST /api/v1/collections/{collection}/properties.
func (s *Server) addProperty(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "collection")

	var req propertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	prop, err := s.collections.AddProperty(r.Context(), name, collectionuc.PropertyInput{
		Name:        req.Name,
		Type:        schema.DataType(req.Type),
		Description: req.Description,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, propertyToDTO(prop))
}

// listDataTypes handles GET /api/v1/schema/types.
func (s *Server) listDataTypes(w http.ResponseWriter, _ *http.Request) {
	types := schema.AvailableDataTypes()
	items := make([]string, len(types))
	for i, dt := range types {
		items[i] = string(dt)
	}
	writeJSON(w, http.StatusOK, items)
}

// listVectorizers handles GET /api/v1/schema/vectorizers.
func (s *Server) listVectorizers(w http.ResponseWriter, _ *http.Request) {
	vecs := schema.SupportedVectorizers()
	items := make([]vectorizerResponse, len(vecs))
	for i, v := range vecs {
		items[i] = vectorizerResponse{
			Name:               string(v),
			Module:             v.ModuleToken(),
			RequiredCredential: v.RequiredCredential(),
			Multimodal:         v.IsMultimodal(),
		}
	}
	writeJSON(w, http.StatusOK, items)
}
