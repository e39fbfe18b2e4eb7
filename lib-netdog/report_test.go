package netdog_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/ghostinator/netdog/lib-netdog"
	"github.com/google/go-cmp/cmp"
)

func TestReport(t *testing.T) {
	report := netdog.Report{
		Status: netdog.WatchStatus{
			State:               "DEGRADED",
			Adapter:             "eth0",
			Message:             "connectivity degraded for 15s (3 checks)",
			StartedAt:           time.Date(2021, 1, 2, 15, 0, 0, 0, time.UTC),
			UpdatedAt:           time.Date(2021, 1, 2, 15, 4, 15, 0, time.UTC),
			LastSuccess:         time.Date(2021, 1, 2, 15, 4, 0, 0, time.UTC),
			FailingSince:        time.Date(2021, 1, 2, 15, 4, 5, 0, time.UTC),
			ConsecutiveFailures: 3,
			TotalTicks:          51,
			TotalResets:         1,
		},
		ProbeHistory: map[string]netdog.ProbeHistory{
			"ping:8.8.8.8#Google DNS": {
				Target: netdog.Target{Kind: "ping", Address: "8.8.8.8", Name: "Google DNS"},
				Status: netdog.StatusFailure,
				History: []netdog.Record{
					{
						Time:    time.Date(2021, 1, 2, 15, 4, 5, 0, time.UTC),
						Status:  netdog.StatusFailure,
						Latency: 10 * time.Second,
						Target:  netdog.Target{Kind: "ping", Address: "8.8.8.8", Name: "Google DNS"},
						Message: "all packets have dropped",
					},
				},
				Updated: time.Date(2021, 1, 2, 15, 4, 5, 0, time.UTC),
			},
			"dns:www.google.com": {
				Target: netdog.Target{Kind: "dns", Address: "www.google.com"},
				Status: netdog.StatusHealthy,
				History: []netdog.Record{
					{
						Time:    time.Date(2021, 1, 2, 15, 4, 5, 0, time.UTC),
						Status:  netdog.StatusHealthy,
						Latency: 12 * time.Millisecond,
						Target:  netdog.Target{Kind: "dns", Address: "www.google.com"},
						Message: "ip=142.250.196.132",
					},
				},
				Updated: time.Date(2021, 1, 2, 15, 4, 5, 0, time.UTC),
			},
		},
		CurrentWindow: &netdog.FailureWindow{
			ID:        "80ee8659-6a5f-4b97-b5bd-88b0b604522d",
			Adapter:   "eth0",
			Message:   "ping failed",
			StartedAt: time.Date(2021, 1, 2, 15, 4, 5, 0, time.UTC),
			Failures:  3,
			Resets:    1,
		},
		WindowHistory: []netdog.FailureWindow{
			{
				ID:         "1bbd1d52-9b0b-4be1-864f-ae5bc2e0ff8f",
				Adapter:    "eth0",
				Message:    "dns failed",
				StartedAt:  time.Date(2021, 1, 2, 15, 1, 0, 0, time.UTC),
				ResolvedAt: time.Date(2021, 1, 2, 15, 2, 0, 0, time.UTC),
				Failures:   12,
				Resets:     2,
			},
		},
		ReportedAt: time.Date(2021, 1, 2, 15, 4, 20, 0, time.UTC),
	}

	data, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("failed to marshal report: %s", err)
	}

	var parsed netdog.Report
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("failed to unmarshal report: %s", err)
	}

	if diff := cmp.Diff(report, parsed); diff != "" {
		t.Errorf("report was changed by marshal and unmarshal\n%s", diff)
	}

	targets := parsed.Targets()
	if len(targets) != 2 {
		t.Fatalf("expected 2 targets but got %d", len(targets))
	}
	if targets[0].String() != "dns:www.google.com" || targets[1].String() != "ping:8.8.8.8#Google DNS" {
		t.Errorf("unexpected targets order: %v", targets)
	}
}
