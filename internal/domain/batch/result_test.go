package batch

import (
	"errors"
	"strings"
	"testing"
)

func TestNewOK(t *testing.T) {
	r := NewOK(2, 100)
	if !r.Success() {
		t.Error("Success() = false")
	}
	if r.Number() != 2 || r.Succeeded() != 100 || r.Failed() != 0 {
		t.Errorf("result = (%d, %d, %d)", r.Number(), r.Succeeded(), r.Failed())
	}
	if got := r.Message(); got != "batch 2: inserted 100 records" {
		t.Errorf("Message() = %q", got)
	}
}

func TestNewPartial(t *testing.T) {
	failures := []Failure{
		{Index: 105, Reason: "invalid date value"},
		{Index: 110, Reason: "unknown property"},
	}
	r := NewPartial(2, 98, failures)

	if r.Success() {
		t.Error("Success() = true for partial failure")
	}
	if r.Succeeded() != 98 || r.Failed() != 2 {
		t.Errorf("counts = (%d, %d)", r.Succeeded(), r.Failed())
	}

	msg := r.Message()
	for _, want := range []string{"batch 2", "inserted 98", "2 failed", "record 105: invalid date value", "record 110: unknown property"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Message() = %q, missing %q", msg, want)
		}
	}
}

func TestNewTransportFailure(t *testing.T) {
	r := NewTransportFailure(3, 50, nil, errors.New("connection refused"))

	if r.Success() {
		t.Error("Success() = true for transport failure")
	}
	if r.Succeeded() != 0 {
		t.Errorf("Succeeded() = %d, want 0", r.Succeeded())
	}
	if r.Failed() != 50 {
		t.Errorf("Failed() = %d, want the whole batch (50)", r.Failed())
	}
	if r.TransportError() == "" {
		t.Error("TransportError() empty")
	}

	msg := r.Message()
	for _, want := range []string{"batch 3 failed", "50 records not submitted", "connection refused"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Message() = %q, missing %q", msg, want)
		}
	}
}

func TestNewTransportFailure_KeepsRejectionDetail(t *testing.T) {
	failures := []Failure{{Index: 7, Reason: "invalid date value"}}
	r := NewTransportFailure(1, 10, failures, errors.New("connection refused"))

	if r.Failed() != 10 {
		t.Errorf("Failed() = %d, want 10", r.Failed())
	}
	if len(r.Failures()) != 1 || r.Failures()[0].Index != 7 {
		t.Errorf("Failures() = %+v, want the pre-submission rejection kept", r.Failures())
	}
	// Only the 9 submitted records count as "not submitted" in the message.
	if !strings.Contains(r.Message(), "9 records not submitted") {
		t.Errorf("Message() = %q", r.Message())
	}
}
