package testutil

import (
	"sort"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	api "github.com/ghostinator/netdog/lib-netdog"
)

// DummyReporter collects records instead of writing them anywhere.
type DummyReporter struct {
	sync.Mutex

	Sources []api.Target
	Records []api.Record
}

func (r *DummyReporter) Report(source api.Target, rec api.Record) {
	r.Lock()
	defer r.Unlock()

	r.Sources = append(r.Sources, source)
	r.Records = append(r.Records, rec)
}

// Statuses returns the reported statuses per target string.
// If a target reported more than once, the last status wins.
func (r *DummyReporter) Statuses() map[string]api.Status {
	r.Lock()
	defer r.Unlock()

	result := make(map[string]api.Status)
	for _, rec := range r.Records {
		result[rec.Target.String()] = rec.Status
	}
	return result
}

func (r *DummyReporter) AssertStatuses(t *testing.T, expects map[string]api.Status) {
	t.Helper()

	if diff := cmp.Diff(expects, r.Statuses()); diff != "" {
		t.Errorf("unexpected statuses:\n%s", diff)
	}
}

// Targets returns the reported target strings in dictionary order, without duplication.
func (r *DummyReporter) Targets() []string {
	r.Lock()
	defer r.Unlock()

	seen := make(map[string]bool)
	var result []string
	for _, rec := range r.Records {
		k := rec.Target.String()
		if !seen[k] {
			seen[k] = true
			result = append(result, k)
		}
	}
	sort.Strings(result)
	return result
}
