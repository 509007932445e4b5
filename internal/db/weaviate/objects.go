package weaviate

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/vantaworks/vectoradmin/internal/db"
)

// BatchObjects writes a batch of objects in one call and reports the
// per-object outcome.
func (s *Store) BatchObjects(ctx context.Context, objects []db.Object) (db.BatchReport, error) {
	body := struct {
		Objects []db.Object `json:"objects"`
	}{Objects: objects}

	var items []struct {
		Result struct {
			Status string `json:"status"`
			Errors struct {
				Error []struct {
					Message string `json:"message"`
				} `json:"error"`
			} `json:"errors"`
		} `json:"result"`
	}
	if err := s.do(ctx, db.OpBatchObjects, http.MethodPost, "/v1/batch/objects", body, &items, nil); err != nil {
		return db.BatchReport{}, err
	}

	report := db.BatchReport{}
	for i, item := range items {
		if strings.EqualFold(item.Result.Status, "FAILED") {
			msgs := make([]string, 0, len(item.Result.Errors.Error))
			for _, e := range item.Result.Errors.Error {
				msgs = append(msgs, e.Message)
			}
			if len(msgs) == 0 {
				msgs = append(msgs, "rejected by cluster")
			}
			report.Failures = append(report.Failures, db.BatchFailure{Index: i, Message: strings.Join(msgs, "; ")})
			continue
		}
		report.Succeeded++
	}
	return report, nil
}

// ListObjects fetches a bounded page of objects from one class.
func (s *Store) ListObjects(ctx context.Context, q db.ObjectQuery) ([]db.Object, error) {
	params := url.Values{}
	params.Set("class", q.Class)
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		params.Set("offset", strconv.Itoa(q.Offset))
	}

	var payload struct {
		Objects []db.Object `json:"objects"`
	}
	if err := s.do(ctx, db.OpListObjects, http.MethodGet, "/v1/objects?"+params.Encode(), nil, &payload, db.ErrClassNotFound); err != nil {
		return nil, err
	}
	return payload.Objects, nil
}

// GetObject fetches one object by class and id.
func (s *Store) GetObject(ctx context.Context, class, id string) (db.Object, error) {
	var obj db.Object
	err := s.do(ctx, db.OpGetObject, http.MethodGet,
		"/v1/objects/"+url.PathEscape(class)+"/"+url.PathEscape(id), nil, &obj, db.ErrObjectNotFound)
	if err != nil {
		return db.Object{}, err
	}
	return obj, nil
}

// UpdateObject replaces an object's properties.
func (s *Store) UpdateObject(ctx context.Context, obj db.Object) error {
	if obj.ID == "" {
		return &db.Error{Op: db.OpUpdateObject, Err: fmt.Errorf("object id is required")}
	}
	return s.do(ctx, db.OpUpdateObject, http.MethodPut,
		"/v1/objects/"+url.PathEscape(obj.Class)+"/"+url.PathEscape(obj.ID), obj, nil, db.ErrObjectNotFound)
}

// DeleteObject removes one object by class and id.
func (s *Store) DeleteObject(ctx context.Context, class, id string) error {
	return s.do(ctx, db.OpDeleteObject, http.MethodDelete,
		"/v1/objects/"+url.PathEscape(class)+"/"+url.PathEscape(id), nil, nil, db.ErrObjectNotFound)
}

// CountObjects reports how many objects a class holds, via an aggregation
// query (the object listing endpoint does not expose totals).
func (s *Store) CountObjects(ctx context.Context, class string) (int, error) {
	body := struct {
		Query string `json:"query"`
	}{Query: fmt.Sprintf("{ Aggregate { %s { meta { count } } } }", class)}

	var payload struct {
		Data map[string]map[string][]struct {
			Meta struct {
				Count int `json:"count"`
			} `json:"meta"`
		} `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := s.do(ctx, db.OpCountObjects, http.MethodPost, "/v1/graphql", body, &payload, nil); err != nil {
		return 0, err
	}
	if len(payload.Errors) > 0 {
		msg := payload.Errors[0].Message
		if strings.Contains(msg, "Cannot query field") {
			return 0, &db.Error{Op: db.OpCountObjects, Err: db.ErrClassNotFound}
		}
		return 0, &db.Error{Op: db.OpCountObjects, Err: fmt.Errorf("aggregation failed: %s", msg)}
	}

	rows, ok := payload.Data["Aggregate"][class]
	if !ok || len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Meta.Count, nil
}
