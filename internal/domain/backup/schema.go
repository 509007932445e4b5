package backup

import "github.com/vantaworks/vectoradmin/internal/domain/schema"

// History property names. Stored records must remain readable across
// versions, so these are a stable contract.
const (
	PropBackupID       = "backup_id"
	PropProvider       = "provider"
	PropStatus         = "status"
	PropCreatedDate    = "created_date"
	PropCollections    = "collections"
	PropPath           = "path"
	PropSizeBytes      = "size_bytes"
	PropErrorMessage   = "error_message"
	PropCompletionTime = "completion_time"
)

// HistorySchema returns the property definitions of the audit collection.
func HistorySchema() []schema.PropertyDef {
	return []schema.PropertyDef{
		schema.Reconstruct(PropBackupID, schema.Text, "Operator-chosen backup identifier", true, true),
		schema.Reconstruct(PropProvider, schema.Text, "Backup storage backend", true, true),
		schema.Reconstruct(PropStatus, schema.Text, "Backup lifecycle state", true, true),
		schema.Reconstruct(PropCreatedDate, schema.Date, "When the backup started", false, true),
		schema.Reconstruct(PropCollections, schema.TextArray, "Collections included in the backup", true, true),
		schema.Reconstruct(PropPath, schema.Text, "Backend storage path", true, true),
		schema.Reconstruct(PropSizeBytes, schema.Int, "Backup size in bytes", false, true),
		schema.Reconstruct(PropErrorMessage, schema.Text, "Failure reason for FAILED backups", true, true),
		schema.Reconstruct(PropCompletionTime, schema.Date, "When the backup reached a terminal state", false, true),
	}
}
