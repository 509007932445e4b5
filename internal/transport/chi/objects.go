package chi

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	ingestuc "github.com/vantaworks/vectoradmin/internal/usecase/ingest"
)

// uploadRecords handles POST /api/v1/collections/{collection}/upload. The body
// is the raw file content; the format comes from the "type" query parameter or
// the Content-Type header.
func (s *Server) uploadRecords(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "collection")

	fileType, ok := uploadFileType(r)
	if !ok {
		writeError(w, http.StatusBadRequest, codeValidationFailed,
			`upload format must be "csv" or "json" (type query parameter or Content-Type)`)
		return
	}

	content, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, codeBadRequest, "read upload: "+err.Error())
		return
	}

	raws, err := s.ingest.ValidateFileFormat(content, fileType)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	results, err := s.ingest.BatchUpload(r.Context(), name, raws)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	var resp uploadResponse
	for res := range results {
		resp.Batches = append(resp.Batches, batchResultToDTO(res))
		resp.TotalSucceeded += res.Succeeded()
		resp.TotalFailed += res.Failed()
	}
	writeJSON(w, http.StatusOK, resp)
}

func uploadFileType(r *http.Request) (ingestuc.FileType, bool) {
	switch r.URL.Query().Get("type") {
	case "csv":
		return ingestuc.FileCSV, true
	case "json":
		return ingestuc.FileJSON, true
	case "":
	default:
		return "", false
	}

	ct := r.Header.Get("Content-Type")
	switch {
	case strings.HasPrefix(ct, "text/csv"):
		return ingestuc.FileCSV, true
	case strings.HasPrefix(ct, "application/json"):
		return ingestuc.FileJSON, true
	}
	return "", false
}

// listObjects handles GET /api/v1/collections/{collection}/objects.
func (s *Server) listObjects(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "collection")
	limit := queryInt(r, "limit")
	offset := queryInt(r, "offset")

	docs, err := s.ingest.Objects(r.Context(), name, limit, offset)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]objectResponse, len(docs))
	for i, d := range docs {
		items[i] = objectToDTO(d)
	}
	writeJSON(w, http.StatusOK, items)
}

// getObject handles GET /api/v1/collections/{collection}/objects/{id}.
func (s *Server) getObject(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "collection")
	id := chi.URLParam(r, "id")

	doc, err := s.ingest.Object(r.Context(), name, id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, objectToDTO(doc))
}

// updateObject handles PUT /api/v1/collections/{collection}/objects/{id}.
func (s *Server) updateObject(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "collection")
	id := chi.URLParam(r, "id")

	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := s.ingest.UpdateObject(r.Context(), name, id, raw); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// deleteObject handles DELETE /api/v1/collections/{collection}/objects/{id}.
func (s *Server) deleteObject(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "collection")
	id := chi.URLParam(r, "id")

	if err := s.ingest.DeleteObject(r.Context(), name, id); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func queryInt(r *http.Request, key string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return v
}
