package backuphist

import (
	"time"

	"github.com/vantaworks/vectoradmin/internal/db"
	"github.com/vantaworks/vectoradmin/internal/domain/backup"
	"github.com/vantaworks/vectoradmin/internal/domain/record"
)

// objectFromRecord converts a backup record to a remote object.
func objectFromRecord(class, id string, rec backup.Record) db.Object {
	doc := record.New()
	doc.Set(backup.PropBackupID, record.NewText(rec.BackupID()))
	doc.Set(backup.PropProvider, record.NewText(string(rec.Provider())))
	doc.Set(backup.PropStatus, record.NewText(string(rec.Status())))
	doc.Set(backup.PropCreatedDate, record.NewDate(rec.CreatedDate()))
	doc.Set(backup.PropCollections, record.NewTextArray(rec.Collections()))
	doc.Set(backup.PropPath, record.NewText(rec.Path()))
	doc.Set(backup.PropSizeBytes, record.NewInt(rec.SizeBytes()))
	doc.Set(backup.PropErrorMessage, record.NewText(rec.ErrorMessage()))
	if !rec.CompletionTime().IsZero() {
		doc.Set(backup.PropCompletionTime, record.NewDate(rec.CompletionTime()))
	}

	return db.Object{Class: class, ID: id, Properties: doc.ToWire()}
}

// recordFromObject hydrates a backup record from a stored object. Missing or
// malformed fields degrade to zero values so a single bad record cannot
// break history listing.
func recordFromObject(obj db.Object) backup.Record {
	props := obj.Properties
	return backup.Reconstruct(
		obj.ID,
		asString(props[backup.PropBackupID]),
		backup.Provider(asString(props[backup.PropProvider])),
		backup.Status(asString(props[backup.PropStatus])),
		asStrings(props[backup.PropCollections]),
		asString(props[backup.PropPath]),
		asInt64(props[backup.PropSizeBytes]),
		asString(props[backup.PropErrorMessage]),
		asTime(props[backup.PropCreatedDate]),
		asTime(props[backup.PropCompletionTime]),
	)
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asStrings(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func asInt64(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case float64:
		return int64(t)
	case int:
		return int64(t)
	default:
		return 0
	}
}

func asTime(v any) time.Time {
	s, ok := v.(string)
	if !ok {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return ts
}
