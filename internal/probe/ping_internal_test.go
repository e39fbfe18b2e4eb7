package probe

import (
	"context"
	"testing"
	"time"

	"github.com/macrat/go-parallel-pinger"

	api "github.com/ghostinator/netdog/lib-netdog"
)

func TestPingSettings(t *testing.T) {
	tests := []struct {
		name       string
		packets    string
		period     string
		privileged string
		count      int
		interval   time.Duration
		timeout    time.Duration
	}{
		{"default", "", "", "", 3, time.Second / 3, 6 * time.Second},
		{"custom", "10", "2s", "", 10, 200 * time.Millisecond, 7 * time.Second},
		{"too_many_packets", "1000", "", "", 100, 10 * time.Millisecond, 6 * time.Second},
		{"too_long_period", "1", "1h", "", 1, 30 * time.Minute, 30*time.Minute + 5*time.Second},
		{"broken_values", "banana", "later", "", 3, time.Second / 3, 6 * time.Second},
		{"negative", "-1", "-5s", "", 3, time.Second / 3, 6 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NETDOG_PING_PACKETS", tt.packets)
			t.Setenv("NETDOG_PING_PERIOD", tt.period)
			t.Setenv("NETDOG_PING_PRIVILEGED", tt.privileged)

			count, interval, timeout, _ := pingSettings()

			if count != tt.count {
				t.Errorf("expected %d packets but got %d", tt.count, count)
			}
			if interval != tt.interval {
				t.Errorf("expected interval %s but got %s", tt.interval, interval)
			}
			if timeout != tt.timeout {
				t.Errorf("expected timeout %s but got %s", tt.timeout, timeout)
			}
		})
	}
}

func TestPingSettings_privileged(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"", "nil"},
		{"maybe", "nil"},
		{"1", "true"},
		{"YES", "true"},
		{"on", "true"},
		{"0", "false"},
		{"false", "false"},
		{"Off", "false"},
	}

	for _, tt := range tests {
		t.Run("value="+tt.value, func(t *testing.T) {
			t.Setenv("NETDOG_PING_PRIVILEGED", tt.value)

			_, _, _, privileged := pingSettings()

			got := "nil"
			if privileged != nil {
				if *privileged {
					got = "true"
				} else {
					got = "false"
				}
			}
			if got != tt.want {
				t.Errorf("expected %s but got %s", tt.want, got)
			}
		})
	}
}

func TestPingResultToRecord(t *testing.T) {
	target := api.Target{Kind: "ping", Address: "192.0.2.1"}
	stime := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		name    string
		result  pinger.Result
		status  api.Status
		message string
	}{
		{
			"all_received",
			pinger.Result{Sent: 3, Recv: 3, Loss: 0},
			api.StatusHealthy,
			"all packets came back",
		},
		{
			"some_dropped",
			pinger.Result{Sent: 3, Recv: 1, Loss: 2},
			api.StatusDegrade,
			"some packets have dropped",
		},
		{
			"all_dropped",
			pinger.Result{Sent: 3, Recv: 0, Loss: 3},
			api.StatusFailure,
			"all packets have dropped",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := pingResultToRecord(context.Background(), target, stime, tt.result)

			if rec.Status != tt.status {
				t.Errorf("expected status %s but got %s", tt.status, rec.Status)
			}
			if rec.Message != tt.message {
				t.Errorf("expected message %q but got %q", tt.message, rec.Message)
			}
			if rec.Extra["packets_sent"] != tt.result.Sent {
				t.Errorf("unexpected packets_sent: %v", rec.Extra["packets_sent"])
			}
		})
	}
}

func TestPingResultToRecord_aborted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := pingResultToRecord(ctx, api.Target{Kind: "ping", Address: "192.0.2.1"}, time.Now(), pinger.Result{Sent: 1, Recv: 1})

	if rec.Status != api.StatusAborted {
		t.Errorf("expected ABORTED but got %s", rec.Status)
	}
}
