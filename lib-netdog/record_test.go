package netdog_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ghostinator/netdog/lib-netdog"
	"github.com/google/go-cmp/cmp"
)

func TestRecord(t *testing.T) {
	tokyo := time.FixedZone("UTC+9", +9*60*60)

	tests := []struct {
		String string
		Record netdog.Record
	}{
		{
			String: `{"time":"2021-01-02T15:04:05.000+09:00", "status":"HEALTHY", "latency":123.456, "target":"ping:example.com#Example", "message":"all packets came back", "packets_recv":3, "packets_sent":3, "rtt_avg":12.345}`,
			Record: netdog.Record{
				Time:    time.Date(2021, 1, 2, 15, 4, 5, 0, tokyo),
				Status:  netdog.StatusHealthy,
				Latency: 123456 * time.Microsecond,
				Target:  netdog.Target{Kind: "ping", Address: "example.com", Name: "Example"},
				Message: "all packets came back",
				Extra: map[string]any{
					"packets_recv": float64(3),
					"packets_sent": float64(3),
					"rtt_avg":      12.345,
				},
			},
		},
		{
			String: `{"time":"2021-01-02T15:04:05.000Z", "status":"FAILURE", "latency":10000.000, "target":"dns:www.google.com"}`,
			Record: netdog.Record{
				Time:    time.Date(2021, 1, 2, 15, 4, 5, 0, time.UTC),
				Status:  netdog.StatusFailure,
				Latency: 10 * time.Second,
				Target:  netdog.Target{Kind: "dns", Address: "www.google.com"},
			},
		},
		{
			String: `{"time":"2021-01-02T15:04:06.123+09:00", "status":"ABORTED", "latency":0.000, "target":"netdog:watchdog", "message":"shutting down"}`,
			Record: netdog.Record{
				Time:    time.Date(2021, 1, 2, 15, 4, 6, 123000000, tokyo),
				Status:  netdog.StatusAborted,
				Latency: 0,
				Target:  netdog.Target{Kind: "netdog", Address: "watchdog"},
				Message: "shutting down",
			},
		},
	}

	for _, tt := range tests {
		r, err := netdog.ParseRecord(tt.String)
		if err != nil {
			t.Errorf("failed to parse %#v: %s", tt.String, err)
			continue
		}

		if diff := cmp.Diff(tt.Record, r); diff != "" {
			t.Errorf("unexpected parsed record of %#v\n%s", tt.String, diff)
		}

		if s := r.String(); s != tt.String {
			t.Errorf("unexpected string\nexpected: %s\n but got: %s", tt.String, s)
		}
	}
}

func TestParseRecord_error(t *testing.T) {
	tests := []struct {
		String string
		Error  error
	}{
		{`this is not a record`, netdog.ErrInvalidRecord},
		{`{"status":"HEALTHY", "latency":1.234, "target":"ping:example.com"}`, netdog.ErrInvalidRecord},
		{`{"time":"2021-01-02T15:04:05Z", "status":"HEALTHY", "latency":1.234}`, netdog.ErrEmptyTarget},
		{`{"time":"2021-01-02T15:04:05Z", "status":"HEALTHY", "latency":1.234, "target":"no-kind"}`, netdog.ErrInvalidRecord},
	}

	for _, tt := range tests {
		_, err := netdog.ParseRecord(tt.String)
		if !errors.Is(err, tt.Error) {
			t.Errorf("%s: expected error %q but got %q", tt.String, tt.Error, err)
		}
	}
}

func TestRecord_extraIsSeparatedFromReservedKeys(t *testing.T) {
	r, err := netdog.ParseRecord(`{"time":"2021-01-02T15:04:05Z", "status":"DEGRADE", "latency":2.5, "target":"ping:example.com", "message":"hello", "adapter":"eth0", "loss":33.3}`)
	if err != nil {
		t.Fatalf("failed to parse record: %s", err)
	}

	if r.Message != "hello" {
		t.Errorf("expected message %q but got %q", "hello", r.Message)
	}

	want := map[string]any{"adapter": "eth0", "loss": 33.3}
	if diff := cmp.Diff(want, r.Extra); diff != "" {
		t.Errorf("unexpected extra values\n%s", diff)
	}
}

func TestRecord_ReadableExtra(t *testing.T) {
	r := netdog.Record{
		Time:    time.Date(2021, 1, 2, 15, 4, 5, 0, time.UTC),
		Status:  netdog.StatusHealthy,
		Target:  netdog.Target{Kind: "ping", Address: "example.com"},
		Message: "hello",
		Extra: map[string]any{
			"rtt_avg": 1.25,
			"adapter": "eth0",
			"ips":     []string{"127.0.0.1", "127.0.0.2"},
		},
	}

	want := []netdog.ExtraPair{
		{"adapter", "eth0"},
		{"ips", `["127.0.0.1","127.0.0.2"]`},
		{"rtt_avg", "1.25"},
	}

	if diff := cmp.Diff(want, r.ReadableExtra()); diff != "" {
		t.Errorf("unexpected readable extra\n%s", diff)
	}

	message := strings.Join([]string{
		"hello",
		"adapter: eth0",
		`ips: ["127.0.0.1","127.0.0.2"]`,
		"rtt_avg: 1.25",
	}, "\n")

	if m := r.ReadableMessage(); m != message {
		t.Errorf("unexpected readable message\nexpected:\n%s\nbut got:\n%s", message, m)
	}
}
