package backup

import "strings"

// Job is the remote state of one backup or restore operation as reported by
// the cluster. RemoteStatus is the cluster's own status token.
type Job struct {
	ID           string
	Provider     Provider
	Path         string
	RemoteStatus string
	Error        string
}

// Terminal maps the remote status onto the audit state machine. ok is false
// while the operation is still running.
func (j Job) Terminal() (Status, bool) {
	switch {
	case strings.EqualFold(j.RemoteStatus, "SUCCESS"):
		return StatusSuccess, true
	case strings.EqualFold(j.RemoteStatus, "FAILED"):
		return StatusFailed, true
	default:
		return StatusInProgress, false
	}
}
