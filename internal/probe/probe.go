package probe

import (
	"context"
	"errors"

	api "github.com/ghostinator/netdog/lib-netdog"
)

var (
	ErrUnsupportedKind = errors.New("unsupported probe kind")
)

// Prober is the interface to check one connectivity target.
type Prober interface {
	// Target returns the target.
	// This value should not change during lifetime of the instance.
	Target() api.Target

	// Probe checks the target is dead or alive, and report the result to the Reporter.
	Probe(context.Context, Reporter)
}

// Reporter is the interface to receive the results of the checks.
type Reporter interface {
	// Report reports a Record.
	//
	// `source` in argument is the target of the prober that did the check.
	Report(source api.Target, r api.Record)
}

// NewFromTarget creates a new Prober for the target.
func NewFromTarget(t api.Target) (Prober, error) {
	switch t.Kind {
	case "ping":
		return NewPingProbe(t)
	case "dns":
		return NewResolveProbe(t)
	case "dummy":
		return NewDummyProbe(t)
	default:
		return nil, ErrUnsupportedKind
	}
}

// New creates a new Prober from a target string like "ping:8.8.8.8#Google DNS".
func New(target string) (Prober, error) {
	t, err := api.ParseTarget(target)
	if err != nil {
		return nil, err
	}

	return NewFromTarget(t)
}

func timeoutOr(ctx context.Context, r api.Record) api.Record {
	switch ctx.Err() {
	case context.Canceled:
		r.Status = api.StatusAborted
		r.Message = "probe aborted"
	case context.DeadlineExceeded:
		r.Status = api.StatusFailure
		r.Message = "probe timed out"
	default:
	}
	return r
}
