package record

import "time"

// Stored is a persisted document as read back from the cluster: the assigned
// id, the raw property map, and the server-side timestamps.
type Stored struct {
	ID         string
	Properties map[string]any
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
