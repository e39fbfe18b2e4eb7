package testutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ghostinator/netdog/internal/store"
	api "github.com/ghostinator/netdog/lib-netdog"
)

func NewStoreWithConsole(t testing.TB, w io.Writer) *store.Store {
	t.Helper()

	s, err := store.New("test", filepath.Join(t.TempDir(), "netdog.log"), w)
	if err != nil {
		t.Fatalf("failed to create store: %s", err)
	}
	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func NewStore(t testing.TB) *store.Store {
	t.Helper()

	return NewStoreWithConsole(t, io.Discard)
}

// NewStoreWithLog creates a Store that restored its history from a log file
// with a few records per target in the last hour.
func NewStoreWithLog(t testing.TB) *store.Store {
	t.Helper()

	fpath := filepath.Join(t.TempDir(), "netdog.log")

	f, err := os.Create(fpath)
	if err != nil {
		t.Fatalf("failed to prepare test log file: %s", err)
	}
	for _, r := range testRecords() {
		fmt.Fprintln(f, r)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to write test log file: %s", err)
	}

	s, err := store.New("test", fpath, io.Discard)
	if err != nil {
		t.Fatalf("failed to create store: %s", err)
	}
	t.Cleanup(func() {
		s.Close()
	})

	if err := s.Restore(); err != nil {
		t.Fatalf("failed to restore store: %s", err)
	}

	s.ActivateTarget(api.Target{Kind: "dummy", Address: "no-record-yet"})

	return s
}

func testRecords() []api.Record {
	base := time.Now().Add(-30 * time.Minute).Truncate(time.Second)

	gateway := api.Target{Kind: "ping", Address: "192.0.2.1", Name: "Default Gateway"}
	cloudflare := api.Target{Kind: "ping", Address: "1.1.1.1", Name: "Cloudflare DNS"}
	resolve := api.Target{Kind: "dns", Address: "www.example.com"}

	return []api.Record{
		{Time: base, Status: api.StatusHealthy, Latency: 12 * time.Millisecond, Target: gateway, Message: "3/3 packets received"},
		{Time: base, Status: api.StatusHealthy, Latency: 20 * time.Millisecond, Target: cloudflare, Message: "3/3 packets received"},
		{Time: base, Status: api.StatusHealthy, Latency: 35 * time.Millisecond, Target: resolve, Message: "resolved 2 addresses"},
		{Time: base.Add(5 * time.Minute), Status: api.StatusFailure, Latency: 5 * time.Second, Target: gateway, Message: "0/3 packets received", Extra: map[string]any{"packets_sent": 3}},
		{Time: base.Add(5 * time.Minute), Status: api.StatusHealthy, Latency: 21 * time.Millisecond, Target: cloudflare, Message: "3/3 packets received"},
		{Time: base.Add(5 * time.Minute), Status: api.StatusFailure, Latency: 5 * time.Second, Target: resolve, Message: "lookup timed out"},
		{Time: base.Add(10 * time.Minute), Status: api.StatusHealthy, Latency: 13 * time.Millisecond, Target: gateway, Message: "3/3 packets received"},
		{Time: base.Add(10 * time.Minute), Status: api.StatusDegrade, Latency: 800 * time.Millisecond, Target: cloudflare, Message: "2/3 packets received"},
		{Time: base.Add(10 * time.Minute), Status: api.StatusHealthy, Latency: 33 * time.Millisecond, Target: resolve, Message: "resolved 2 addresses"},
	}
}
