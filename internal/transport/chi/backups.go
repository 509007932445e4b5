package chi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	dombak "github.com/vantaworks/vectoradmin/internal/domain/backup"
)

// backupHistory handles GET /api/v1/backups.
func (s *Server) backupHistory(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit")

	records, err := s.backups.History(r.Context(), limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]backupRecordResponse, len(records))
	for i, rec := range records {
		items[i] = backupToDTO(rec)
	}
	writeJSON(w, http.StatusOK, items)
}

// runBackup handles POST /api/v1/backups: kicks off a backup and waits for
// the remote operation to finish. The response carries the terminal record.
func (s *Server) runBackup(w http.ResponseWriter, r *http.Request) {
	var req runBackupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	rec, err := s.backups.Run(r.Context(), req.BackupID, dombak.Provider(req.Provider), req.Collections)
	if err != nil {
		// A failed remote backup still produced a FAILED audit record.
		if rec.BackupID() != "" {
			writeJSON(w, http.StatusBadGateway, backupToDTO(rec))
			return
		}
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, backupToDTO(rec))
}

// registerBackupRecord handles POST /api/v1/backups/records: stores an audit
// record for a backup taken outside this console, without running anything.
func (s *Server) registerBackupRecord(w http.ResponseWriter, r *http.Request) {
	var req registerBackupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	rec, err := s.backups.Register(r.Context(), req.BackupID,
		dombak.Provider(req.Provider), req.Collections, dombak.Status(req.Status), req.Path)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, backupToDTO(rec))
}

// updateBackupStatus handles PATCH /api/v1/backups/{backupID}: transitions
// the newest audit record with that backup id to a terminal state.
func (s *Server) updateBackupStatus(w http.ResponseWriter, r *http.Request) {
	backupID := chi.URLParam(r, "backupID")

	var req updateBackupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	rec, err := s.backups.UpdateStatus(r.Context(), backupID,
		dombak.Status(req.Status), req.Error, req.SizeBytes, req.Path)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, backupToDTO(rec))
}

// deleteBackupRecord handles DELETE /api/v1/backups/records/{objectID}.
func (s *Server) deleteBackupRecord(w http.ResponseWriter, r *http.Request) {
	objectID := chi.URLParam(r, "objectID")

	if err := s.backups.DeleteRecord(r.Context(), objectID); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// restoreBackup handles POST /api/v1/backups/{backupID}/restore.
func (s *Server) restoreBackup(w http.ResponseWriter, r *http.Request) {
	backupID := chi.URLParam(r, "backupID")

	var req restoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	job, err := s.backups.Restore(r.Context(), backupID,
		dombak.Provider(req.Provider), req.Collections, req.ExcludeCollections)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jobToDTO(job))
}

// restoreStatus handles GET /api/v1/backups/{backupID}/restore.
func (s *Server) restoreStatus(w http.ResponseWriter, r *http.Request) {
	backupID := chi.URLParam(r, "backupID")
	provider := dombak.Provider(r.URL.Query().Get("provider"))

	job, err := s.backups.RestoreStatus(r.Context(), backupID, provider)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jobToDTO(job))
}
