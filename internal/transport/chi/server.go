// Package chi exposes the admin API over HTTP using the chi router.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/vantaworks/vectoradmin/internal/db"
	"github.com/vantaworks/vectoradmin/internal/domain"
	"github.com/vantaworks/vectoradmin/internal/metrics"
	backupuc "github.com/vantaworks/vectoradmin/internal/usecase/backupsvc"
	clusteruc "github.com/vantaworks/vectoradmin/internal/usecase/cluster"
	collectionuc "github.com/vantaworks/vectoradmin/internal/usecase/collection"
	healthuc "github.com/vantaworks/vectoradmin/internal/usecase/health"
	ingestuc "github.com/vantaworks/vectoradmin/internal/usecase/ingest"
)

// maxUploadBytes bounds the accepted upload payload.
const maxUploadBytes = 64 << 20

// Error response codes returned to clients.
const (
	codeBadRequest        = "bad_request"
	codeValidationFailed  = "validation_failed"
	codeNotFound          = "not_found"
	codeAlreadyExists     = "already_exists"
	codeMissingCredential = "missing_credential"
	codeInvalidInput      = "invalid_input"
	codeClusterAuth       = "cluster_unauthorized"
	codeClusterDown       = "cluster_unavailable"
	codeClusterError      = "cluster_error"
	codeInternalError     = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server wires the admin use cases into HTTP handlers.
type Server struct {
	collections   *collectionuc.Service
	ingest        *ingestuc.Service
	backups       *backupuc.Service
	cluster       *clusteruc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates the HTTP API server.
func NewServer(
	collections *collectionuc.Service,
	ingest *ingestuc.Service,
	backups *backupuc.Service,
	cluster *clusteruc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		collections: collections,
		ingest:      ingest,
		backups:     backups,
		cluster:     cluster,
		health:      health,
		logger:      logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, codeAlreadyExists),
		sentinelHandler(domain.ErrInvalidName, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrUnsupportedType, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrMissingCredential, http.StatusUnprocessableEntity, codeMissingCredential),
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, codeInvalidInput),
		sentinelHandler(db.ErrUnauthorized, http.StatusBadGateway, codeClusterAuth),
		sentinelHandler(db.ErrUnavailable, http.StatusServiceUnavailable, codeClusterDown),
		sentinelHandler(domain.ErrTransport, http.StatusBadGateway, codeClusterError),
	}
	return s
}

// Routes builds the router with middleware and all API endpoints mounted.
func (s *Server) Routes(apiKeys []string) http.Handler {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(s.logger))
	r.Use(middleware.RequestID)
	r.Use(wideEventMiddleware(s.logger))
	r.Use(metrics.Middleware())
	r.Use(BearerAuthMiddleware(apiKeys))

	r.Get("/health", s.healthCheck)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/collections", func(r chi.Router) {
			r.Get("/", s.listCollections)
			r.Post("/", s.createCollection)
			r.Post("/delete", s.deleteCollections)
			r.Route("/{collection}", func(r chi.Router) {
				r.Get("/", s.getCollection)
				r.Delete("/", s.deleteCollection)
				r.Post("/properties", s.addProperty)
				r.Post("/upload", s.uploadRecords)
				r.Get("/objects", s.listObjects)
				r.Route("/objects/{id}", func(r chi.Router) {
					r.Get("/", s.getObject)
					r.Put("/", s.updateObject)
					r.Delete("/", s.deleteObject)
				})
				r.Get("/tenants", s.listTenants)
			})
		})

		r.Route("/schema", func(r chi.Router) {
			r.Get("/types", s.listDataTypes)
			r.Get("/vectorizers", s.listVectorizers)
		})

		r.Route("/backups", func(r chi.Router) {
			r.Get("/", s.backupHistory)
			r.Post("/", s.runBackup)
			r.Post("/records", s.registerBackupRecord)
			r.Patch("/{backupID}", s.updateBackupStatus)
			r.Post("/{backupID}/restore", s.restoreBackup)
			r.Get("/{backupID}/restore", s.restoreStatus)
			r.Delete("/records/{objectID}", s.deleteBackupRecord)
		})

		r.Route("/cluster", func(r chi.Router) {
			r.Get("/nodes", s.clusterNodes)
			r.Get("/statistics", s.clusterStatistics)
			r.Get("/meta", s.clusterMeta)
			r.Get("/schema", s.clusterSchema)
			r.Post("/cache/invalidate", s.invalidateCache)
		})
	})

	return r
}

// healthCheck handles GET /health.
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: report.Checks,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without
// exposing internals.
func safeDomainMessage(err error) string {
	var mce *domain.MissingCredentialError
	if errors.As(err, &mce) {
		return mce.Error()
	}
	var pe *domain.ParseError
	if errors.As(err, &pe) {
		return pe.Error()
	}

	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrAlreadyExists,
		domain.ErrInvalidName,
		domain.ErrUnsupportedType,
		domain.ErrMissingCredential,
		domain.ErrInvalidInput,
		domain.ErrTransport,
		db.ErrUnauthorized,
		db.ErrUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
