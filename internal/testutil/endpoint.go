package testutil

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ghostinator/netdog/internal/endpoint"
	"github.com/ghostinator/netdog/internal/store"
	api "github.com/ghostinator/netdog/lib-netdog"
)

func StartTestServer(t testing.TB) *httptest.Server {
	t.Helper()

	s := NewStoreWithLog(t)
	FillWatchStatus(s)

	srv := httptest.NewServer(endpoint.New(s))
	t.Cleanup(srv.Close)
	return srv
}

// FillWatchStatus stores a plausible watchdog status and window history.
func FillWatchStatus(s *store.Store) {
	now := time.Now()

	s.SetWatchStatus(api.WatchStatus{
		State:               "HEALTHY",
		Adapter:             "eth0",
		Message:             "connectivity is fine (ping 3/3 ok)",
		StartedAt:           now.Add(-time.Hour),
		UpdatedAt:           now,
		LastSuccess:         now,
		LastReset:           now.Add(-20 * time.Minute),
		ConsecutiveFailures: 0,
		TotalTicks:          720,
		TotalResets:         1,
	})

	s.AddWindow(api.FailureWindow{
		ID:         "3a4407ac-0000-4000-8000-000000000001",
		Adapter:    "eth0",
		Message:    "ping 0/3 failed",
		StartedAt:  now.Add(-25 * time.Minute),
		ResolvedAt: now.Add(-20 * time.Minute),
		Failures:   5,
		Resets:     1,
	})
}
