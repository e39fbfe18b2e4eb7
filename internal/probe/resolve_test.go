package probe

import (
	"context"
	"net"
	"testing"
	"time"

	api "github.com/ghostinator/netdog/lib-netdog"
)

func TestResolveTimeout(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", 10 * time.Second},
		{"5s", 5 * time.Second},
		{"-1s", 10 * time.Second},
		{"soon", 10 * time.Second},
	}

	for _, tt := range tests {
		t.Run("value="+tt.value, func(t *testing.T) {
			t.Setenv("NETDOG_PROBE_TIMEOUT", tt.value)

			if d := resolveTimeout(); d != tt.want {
				t.Errorf("expected %s but got %s", tt.want, d)
			}
		})
	}
}

func TestDNSErrorToMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *net.DNSError
		want string
	}{
		{
			"not_found",
			&net.DNSError{Err: "no such host", Name: "www.example.com", IsNotFound: true},
			"lookup www.example.com: not found",
		},
		{
			"not_found_with_server",
			&net.DNSError{Err: "no such host", Name: "www.example.com", Server: "192.0.2.53:53", IsNotFound: true},
			"lookup www.example.com: not found on 192.0.2.53:53",
		},
		{
			"timeout",
			&net.DNSError{Err: "i/o timeout", Name: "www.example.com", IsTimeout: true},
			"lookup www.example.com: i/o timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if msg := dnsErrorToMessage(tt.err); msg != tt.want {
				t.Errorf("expected %q but got %q", tt.want, msg)
			}
		})
	}
}

type singleReporter struct {
	rec *api.Record
}

func (r *singleReporter) Report(source api.Target, rec api.Record) {
	r.rec = &rec
}

func TestResolveProbe_localhost(t *testing.T) {
	p, err := NewResolveProbe(api.Target{Kind: "dns", Address: "localhost"})
	if err != nil {
		t.Fatalf("failed to create probe: %s", err)
	}

	var rep singleReporter
	p.Probe(context.Background(), &rep)

	if rep.rec == nil {
		t.Fatal("no record reported")
	}
	if rep.rec.Status != api.StatusHealthy {
		t.Errorf("expected HEALTHY but got %s: %s", rep.rec.Status, rep.rec.Message)
	}
}
