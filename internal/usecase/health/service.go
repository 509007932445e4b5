// Package health reports whether the admin API can reach its cluster.
package health

import "context"

// Status is the aggregated health of the service.
type Status string

const (
	Healthy  Status = "ok"
	Degraded Status = "degraded"
)

// CheckResult is the outcome of a single component check.
type CheckResult string

const (
	CheckOK    CheckResult = "ok"
	CheckError CheckResult = "error"
)

// Report carries the aggregate status plus the per-component outcomes that
// produced it.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service probes cluster connectivity on demand.
type Service struct {
	pinger ClusterPinger
	meta   MetaReader
}

// New returns a health service. meta may be nil, in which case only the
// readiness probe runs.
func New(pinger ClusterPinger, meta MetaReader) *Service {
	return &Service{pinger: pinger, meta: meta}
}

// Check runs every configured probe and degrades the aggregate status if any
// of them fails.
func (s *Service) Check(ctx context.Context) Report {
	rep := Report{Status: Healthy, Checks: make(map[string]CheckResult)}

	rep.record("cluster", s.pinger.Ping(ctx))
	if s.meta != nil {
		_, err := s.meta.Meta(ctx)
		rep.record("meta", err)
	}
	return rep
}

func (r *Report) record(name string, err error) {
	if err != nil {
		r.Checks[name] = CheckError
		r.Status = Degraded
		return
	}
	r.Checks[name] = CheckOK
}
