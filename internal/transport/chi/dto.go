package chi

import (
	"time"

	dombak "github.com/vantaworks/vectoradmin/internal/domain/backup"
	dombatch "github.com/vantaworks/vectoradmin/internal/domain/batch"
	domcol "github.com/vantaworks/vectoradmin/internal/domain/collection"
	"github.com/vantaworks/vectoradmin/internal/domain/record"
	"github.com/vantaworks/vectoradmin/internal/domain/schema"
	collectionuc "github.com/vantaworks/vectoradmin/internal/usecase/collection"
	healthuc "github.com/vantaworks/vectoradmin/internal/usecase/health"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type healthResponse struct {
	Status string                          `json:"status"`
	Checks map[string]healthuc.CheckResult `json:"checks"`
}

type propertyRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

type createCollectionRequest struct {
	Name       string            `json:"name"`
	Vectorizer string            `json:"vectorizer"`
	Properties []propertyRequest `json:"properties,omitempty"`
}

type deleteCollectionsRequest struct {
	Names []string `json:"names"`
}

type deleteCollectionsResponse struct {
	Deleted []string `json:"deleted"`
	Error   string   `json:"error,omitempty"`
}

type propertyResponse struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Searchable  bool   `json:"searchable"`
	Filterable  bool   `json:"filterable"`
}

type collectionResponse struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Vectorizer  string             `json:"vectorizer"`
	Properties  []propertyResponse `json:"properties"`
}

type collectionInfoResponse struct {
	collectionResponse
	ObjectCount int            `json:"object_count"`
	Config      map[string]any `json:"config,omitempty"`
}

type vectorizerResponse struct {
	Name               string `json:"name"`
	Module             string `json:"module"`
	RequiredCredential string `json:"required_credential,omitempty"`
	Multimodal         bool   `json:"multimodal"`
}

type objectResponse struct {
	ID         string         `json:"id"`
	Properties map[string]any `json:"properties"`
	CreatedAt  *time.Time     `json:"created_at,omitempty"`
	UpdatedAt  *time.Time     `json:"updated_at,omitempty"`
}

type batchFailureResponse struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

type batchResultResponse struct {
	Number         int                    `json:"number"`
	Succeeded      int                    `json:"succeeded"`
	Failed         int                    `json:"failed"`
	Message        string                 `json:"message"`
	TransportError string                 `json:"transport_error,omitempty"`
	Failures       []batchFailureResponse `json:"failures,omitempty"`
}

type uploadResponse struct {
	Batches        []batchResultResponse `json:"batches"`
	TotalSucceeded int                   `json:"total_succeeded"`
	TotalFailed    int                   `json:"total_failed"`
}

type backupRecordResponse struct {
	ObjectID    string     `json:"object_id,omitempty"`
	BackupID    string     `json:"backup_id"`
	Provider    string     `json:"provider"`
	Status      string     `json:"status"`
	Collections []string   `json:"collections,omitempty"`
	Path        string     `json:"path,omitempty"`
	SizeBytes   int64      `json:"size_bytes,omitempty"`
	Error       string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type runBackupRequest struct {
	BackupID    string   `json:"backup_id"`
	Provider    string   `json:"provider"`
	Collections []string `json:"collections,omitempty"`
}

type registerBackupRequest struct {
	BackupID    string   `json:"backup_id"`
	Provider    string   `json:"provider"`
	Collections []string `json:"collections,omitempty"`
	Status      string   `json:"status,omitempty"`
	Path        string   `json:"path,omitempty"`
}

type updateBackupRequest struct {
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	SizeBytes int64  `json:"size_bytes,omitempty"`
	Path      string `json:"path,omitempty"`
}

type restoreRequest struct {
	Provider           string   `json:"provider"`
	Collections        []string `json:"collections,omitempty"`
	ExcludeCollections []string `json:"exclude_collections,omitempty"`
}

type backupJobResponse struct {
	ID       string `json:"id"`
	Provider string `json:"provider"`
	Path     string `json:"path,omitempty"`
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
}

func propertyToDTO(p schema.PropertyDef) propertyResponse {
	return propertyResponse{
		Name:        p.Name(),
		Type:        string(p.DataType()),
		Description: p.Description(),
		Searchable:  p.Searchable(),
		Filterable:  p.Filterable(),
	}
}

func collectionToDTO(c domcol.Collection) collectionResponse {
	props := make([]propertyResponse, len(c.Properties()))
	for i, p := range c.Properties() {
		props[i] = propertyToDTO(p)
	}
	return collectionResponse{
		Name:        c.Name(),
		Description: c.Description(),
		Vectorizer:  string(c.Vectorizer()),
		Properties:  props,
	}
}

func infoToDTO(info collectionuc.Info) collectionInfoResponse {
	props := make([]propertyResponse, len(info.Properties))
	for i, p := range info.Properties {
		props[i] = propertyToDTO(p)
	}
	return collectionInfoResponse{
		collectionResponse: collectionResponse{
			Name:       info.Name,
			Vectorizer: string(info.Vectorizer),
			Properties: props,
		},
		ObjectCount: info.ObjectCount,
		Config:      info.Config,
	}
}

func objectToDTO(doc record.Stored) objectResponse {
	resp := objectResponse{ID: doc.ID, Properties: doc.Properties}
	if !doc.CreatedAt.IsZero() {
		t := doc.CreatedAt
		resp.CreatedAt = &t
	}
	if !doc.UpdatedAt.IsZero() {
		t := doc.UpdatedAt
		resp.UpdatedAt = &t
	}
	return resp
}

func batchResultToDTO(res dombatch.Result) batchResultResponse {
	out := batchResultResponse{
		Number:         res.Number(),
		Succeeded:      res.Succeeded(),
		Failed:         res.Failed(),
		Message:        res.Message(),
		TransportError: res.TransportError(),
	}
	for _, f := range res.Failures() {
		out.Failures = append(out.Failures, batchFailureResponse{Index: f.Index, Reason: f.Reason})
	}
	return out
}

func backupToDTO(rec dombak.Record) backupRecordResponse {
	resp := backupRecordResponse{
		ObjectID:    rec.ObjectID(),
		BackupID:    rec.BackupID(),
		Provider:    string(rec.Provider()),
		Status:      string(rec.Status()),
		Collections: rec.Collections(),
		Path:        rec.Path(),
		SizeBytes:   rec.SizeBytes(),
		Error:       rec.ErrorMessage(),
		CreatedAt:   rec.CreatedDate(),
	}
	if !rec.CompletionTime().IsZero() {
		t := rec.CompletionTime()
		resp.CompletedAt = &t
	}
	return resp
}

func jobToDTO(job dombak.Job) backupJobResponse {
	return backupJobResponse{
		ID:       job.ID,
		Provider: string(job.Provider),
		Path:     job.Path,
		Status:   job.RemoteStatus,
		Error:    job.Error,
	}
}
