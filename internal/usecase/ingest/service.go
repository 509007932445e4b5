// Package ingest implements bulk document ingestion: upload parsing,
// schema-aware value coercion and bounded-batch inserts with per-batch
// progress reporting.
package ingest

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/vantaworks/vectoradmin/internal/domain"
	"github.com/vantaworks/vectoradmin/internal/domain/batch"
	"github.com/vantaworks/vectoradmin/internal/domain/record"
	"github.com/vantaworks/vectoradmin/internal/metrics"
)

// FileType is a supported upload encoding.
type FileType string

// Supported upload encodings.
const (
	FileCSV  FileType = "csv"
	FileJSON FileType = "json"
)

// Service handles document ingestion and reads.
type Service struct {
	repo        Repository
	batchSize   int
	sampleLimit int
}

// New creates an ingest service. batchSize and sampleLimit fall back to 100
// when non-positive.
func New(repo Repository, batchSize, sampleLimit int) *Service {
	if batchSize <= 0 {
		batchSize = 100
	}
	if sampleLimit <= 0 {
		sampleLimit = 100
	}
	return &Service{repo: repo, batchSize: batchSize, sampleLimit: sampleLimit}
}

// ValidateFileFormat parses uploaded content into raw records, one name→value
// mapping per record. Column and key order is irrelevant. Malformed input
// fails with a parse error carrying a human-readable position.
func (s *Service) ValidateFileFormat(content []byte, fileType FileType) ([]map[string]any, error) {
	switch fileType {
	case FileCSV:
		return parseCSV(content)
	case FileJSON:
		return parseJSON(content)
	default:
		return nil, fmt.Errorf("file type %q: %w", fileType, domain.ErrUnsupportedType)
	}
}

// BatchUpload partitions records into fixed-size batches and returns a finite
// lazy sequence with exactly one result per batch. Each batch is submitted as
// one remote call; records that fail coercion are reported in their batch's
// result without being submitted, and a transport failure on one batch does
// not abort the remaining batches. Failure detail echoes absolute source
// record indexes. The schema lookup happens eagerly so callers see a missing
// collection before consuming the sequence.
func (s *Service) BatchUpload(ctx context.Context, collection string, raws []map[string]any) (iter.Seq[batch.Result], error) {
	props, err := s.repo.Properties(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}

	size := s.batchSize
	return func(yield func(batch.Result) bool) {
		for start := 0; start < len(raws); start += size {
			end := min(start+size, len(raws))
			number := start/size + 1

			docs := make([]record.Record, 0, end-start)
			absIndex := make([]int, 0, end-start)
			var failures []batch.Failure
			for i := start; i < end; i++ {
				doc, err := record.FromRaw(raws[i], props)
				if err != nil {
					failures = append(failures, batch.Failure{Index: i, Reason: err.Error()})
					continue
				}
				docs = append(docs, doc)
				absIndex = append(absIndex, i)
			}

			var result batch.Result
			switch {
			case len(docs) == 0:
				result = batch.NewPartial(number, 0, failures)
			default:
				succeeded, rejected, err := s.repo.InsertBatch(ctx, collection, docs)
				if err != nil {
					result = batch.NewTransportFailure(number, end-start, failures, err)
					break
				}
				for _, f := range rejected {
					abs := f.Index
					if f.Index >= 0 && f.Index < len(absIndex) {
						abs = absIndex[f.Index]
					}
					failures = append(failures, batch.Failure{Index: abs, Reason: f.Reason})
				}
				if len(failures) == 0 {
					result = batch.NewOK(number, succeeded)
				} else {
					result = batch.NewPartial(number, succeeded, failures)
				}
			}

			metrics.BatchRecordsTotal.WithLabelValues(collection, "ok").Add(float64(result.Succeeded()))
			metrics.BatchRecordsTotal.WithLabelValues(collection, "failed").Add(float64(end - start - result.Succeeded()))

			if !yield(result) {
				return
			}
		}
	}, nil
}

// Objects fetches a bounded page of stored documents for display. limit is
// capped at the configured sample limit; non-positive means the cap.
func (s *Service) Objects(ctx context.Context, collection string, limit, offset int) ([]record.Stored, error) {
	if limit <= 0 || limit > s.sampleLimit {
		limit = s.sampleLimit
	}
	docs, err := s.repo.Sample(ctx, collection, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("fetch objects: %w", err)
	}
	return docs, nil
}

// Object fetches one stored document by id.
func (s *Service) Object(ctx context.Context, collection, id string) (record.Stored, error) {
	doc, err := s.repo.Get(ctx, collection, id)
	if err != nil {
		return record.Stored{}, fmt.Errorf("fetch object: %w", err)
	}
	return doc, nil
}

// UpdateObject coerces raw values against the collection schema and replaces
// one stored document.
func (s *Service) UpdateObject(ctx context.Context, collection, id string, raw map[string]any) error {
	props, err := s.repo.Properties(ctx, collection)
	if err != nil {
		return fmt.Errorf("load schema: %w", err)
	}
	doc, err := record.FromRaw(raw, props)
	if err != nil {
		return fmt.Errorf("coerce record: %w", err)
	}
	if err := s.repo.Update(ctx, collection, id, doc); err != nil {
		return fmt.Errorf("update object: %w", err)
	}
	return nil
}

// DeleteObject removes one stored document.
func (s *Service) DeleteObject(ctx context.Context, collection, id string) error {
	if err := s.repo.Delete(ctx, collection, id); err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

func parseCSV(content []byte) ([]map[string]any, error) {
	r := csv.NewReader(bytes.NewReader(content))
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, domain.NewParseError(0, "empty file")
	}
	if err != nil {
		return nil, csvParseError(err)
	}
	if len(header) == 0 {
		return nil, domain.NewParseError(1, "missing header row")
	}

	var records []map[string]any
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvParseError(err)
		}
		rec := make(map[string]any, len(header))
		for i, col := range header {
			rec[col] = row[i]
		}
		records = append(records, rec)
	}
	return records, nil
}

func csvParseError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return domain.NewParseError(pe.Line, pe.Err.Error())
	}
	return domain.NewParseError(0, err.Error())
}

func parseJSON(content []byte) ([]map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, domain.NewParseError(0, err.Error())
	}

	var items []any
	switch t := payload.(type) {
	case []any:
		items = t
	case map[string]any:
		items = []any{t}
	default:
		return nil, domain.NewParseError(0, fmt.Sprintf("expected an object or an array of objects, got %T", payload))
	}

	records := make([]map[string]any, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, domain.NewParseError(i+1, fmt.Sprintf("element is %T, expected object", item))
		}
		records = append(records, normalizeNumbers(obj))
	}
	return records, nil
}

// normalizeNumbers converts json.Number values into int64 where possible,
// float64 otherwise, so coercion sees concrete numeric types.
func normalizeNumbers(obj map[string]any) map[string]any {
	for k, v := range obj {
		n, ok := v.(json.Number)
		if !ok {
			continue
		}
		if i, err := n.Int64(); err == nil {
			obj[k] = i
			continue
		}
		if f, err := n.Float64(); err == nil {
			obj[k] = f
		}
	}
	return obj
}
