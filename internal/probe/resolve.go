package probe

import (
	"context"
	"errors"
	"net"
	"os"
	"strings"
	"time"

	api "github.com/ghostinator/netdog/lib-netdog"
)

func resolveTimeout() time.Duration {
	d, err := time.ParseDuration(os.Getenv("NETDOG_PROBE_TIMEOUT"))
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// ResolveProbe is a Prober implementation that checks the system's name resolution path works.
//
// It uses the system resolver on purpose, because the watchdog wants to know
// whether this host can resolve names, not whether some specific DNS server is alive.
type ResolveProbe struct {
	target   api.Target
	resolver *net.Resolver
}

func NewResolveProbe(t api.Target) (ResolveProbe, error) {
	return ResolveProbe{
		target:   t,
		resolver: net.DefaultResolver,
	}, nil
}

func (s ResolveProbe) Target() api.Target {
	return s.target
}

func dnsErrorToMessage(err *net.DNSError) string {
	msg := err.Error()
	if err.IsNotFound {
		msg = "lookup " + err.Name + ": not found"
	}
	if err.Server != "" {
		msg += " on " + err.Server
	}
	return msg
}

func (s ResolveProbe) Probe(ctx context.Context, r Reporter) {
	ctx, cancel := context.WithTimeout(ctx, resolveTimeout())
	defer cancel()

	st := time.Now()
	addrs, err := s.resolver.LookupHost(ctx, s.target.Address)
	d := time.Since(st)

	rec := api.Record{
		Time:    st,
		Target:  s.target,
		Status:  api.StatusHealthy,
		Message: "ip=" + strings.Join(addrs, ","),
		Latency: d,
	}

	if err != nil {
		rec.Status = api.StatusFailure
		rec.Message = err.Error()

		dnsErr := &net.DNSError{}
		if errors.As(err, &dnsErr) {
			rec.Message = dnsErrorToMessage(dnsErr)
		}
	}

	r.Report(s.target, timeoutOr(ctx, rec))
}
