// Package batch models per-batch ingestion outcomes: one Result per
// submitted batch, carrying partial-failure detail keyed by absolute
// source record index.
package batch

import (
	"fmt"
	"strings"
)

// Failure is one rejected record inside a batch. Index is the absolute
// position in the upload source, so callers can correlate with source rows.
type Failure struct {
	Index  int
	Reason string
}

// Result is the outcome of submitting one batch.
type Result struct {
	number       int
	succeeded    int
	failed       int
	failures     []Failure
	transportErr string
}

// NewOK creates a fully successful batch result.
func NewOK(number, succeeded int) Result {
	return Result{number: number, succeeded: succeeded}
}

// NewPartial creates a batch result with per-record rejections.
func NewPartial(number, succeeded int, failures []Failure) Result {
	return Result{number: number, succeeded: succeeded, failed: len(failures), failures: failures}
}

// NewTransportFailure creates a result for a batch whose submission failed as
// a whole: every one of the batch's size records counts as failed, so the
// succeeded+failed totals still add up across batches. failures carries any
// records already rejected before submission.
func NewTransportFailure(number, size int, failures []Failure, err error) Result {
	return Result{
		number:       number,
		failed:       size,
		failures:     failures,
		transportErr: fmt.Sprintf("%d records not submitted: %v", size-len(failures), err),
	}
}

// Number returns the 1-based batch number.
func (r Result) Number() int { return r.number }

// Succeeded returns how many records in the batch were inserted.
func (r Result) Succeeded() int { return r.succeeded }

// Failed returns how many records in the batch were not inserted, including
// every record of a transport-failed batch.
func (r Result) Failed() int { return r.failed }

// Failures returns the per-record rejection detail.
func (r Result) Failures() []Failure { return r.failures }

// Success reports whether every record in the batch was inserted.
func (r Result) Success() bool { return r.transportErr == "" && len(r.failures) == 0 }

// TransportError returns the whole-batch submission failure, "" if none.
func (r Result) TransportError() string { return r.transportErr }

// Message formats a human-readable one-line summary of the batch outcome.
func (r Result) Message() string {
	if r.transportErr != "" {
		return fmt.Sprintf("batch %d failed: %s", r.number, r.transportErr)
	}
	if len(r.failures) == 0 {
		return fmt.Sprintf("batch %d: inserted %d records", r.number, r.succeeded)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "batch %d: inserted %d records, %d failed:", r.number, r.succeeded, len(r.failures))
	for i, f := range r.failures {
		if i > 0 {
			b.WriteByte(';')
		}
		fmt.Fprintf(&b, " record %d: %s", f.Index, f.Reason)
	}
	return b.String()
}
