package probe

import (
	"context"
	"errors"
	"math/rand"
	"time"

	api "github.com/ghostinator/netdog/lib-netdog"
)

// DummyProbe is a Prober implementation that always reports the status in the target address.
// This is only for testing the watchdog itself.
type DummyProbe struct {
	target api.Target
	random bool
	status api.Status
}

func NewDummyProbe(t api.Target) (DummyProbe, error) {
	s := DummyProbe{target: t}

	switch t.Address {
	case "healthy":
		s.status = api.StatusHealthy
	case "degrade":
		s.status = api.StatusDegrade
	case "failure":
		s.status = api.StatusFailure
	case "aborted":
		s.status = api.StatusAborted
	case "unknown":
		s.status = api.StatusUnknown
	case "random":
		s.random = true
	default:
		return DummyProbe{}, errors.New("dummy address must be healthy, degrade, failure, aborted, unknown, or random")
	}

	return s, nil
}

func (s DummyProbe) Status() api.Status {
	if !s.random {
		return s.status
	}

	return []api.Status{
		api.StatusHealthy,
		api.StatusDegrade,
		api.StatusFailure,
		api.StatusUnknown,
	}[rand.Intn(4)]
}

func (s DummyProbe) Target() api.Target {
	return s.target
}

func (s DummyProbe) Probe(ctx context.Context, r Reporter) {
	stime := time.Now()

	rec := api.Record{
		Time:    stime,
		Status:  s.Status(),
		Target:  s.target,
		Latency: time.Duration(rand.Intn(10000)) * time.Microsecond,
	}

	r.Report(s.target, timeoutOr(ctx, rec))
}
