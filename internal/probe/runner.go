package probe

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	api "github.com/ghostinator/netdog/lib-netdog"
)

// Summary is the aggregated outcome of one round of connectivity checks.
type Summary struct {
	// Time is the time the round started.
	Time time.Time

	// Records is the result of each probe in this round.
	Records []api.Record
}

// kindSucceeded reports whether the record proves its kind of connectivity works.
// A ping that lost some packets still proves the network path is alive,
// but a name lookup has to fully succeed to prove name resolution.
func kindSucceeded(r api.Record) bool {
	if r.Target.Kind == "dns" {
		return r.Status == api.StatusHealthy
	}
	return r.Status == api.StatusHealthy || r.Status == api.StatusDegrade
}

// Healthy reports whether this round proved working connectivity.
//
// Every probe kind in the round has to show at least one success.
// With the default target set this means at least one ping target replied
// and at least one name was resolved; if all targets of either kind failed,
// the round is unhealthy even if the other kind is fine, because partial
// connectivity is not working connectivity.
func (s Summary) Healthy() bool {
	succeeded := make(map[string]bool)
	for _, r := range s.Records {
		succeeded[r.Target.Kind] = succeeded[r.Target.Kind] || kindSucceeded(r)
	}

	if len(succeeded) == 0 {
		return false
	}

	for _, ok := range succeeded {
		if !ok {
			return false
		}
	}
	return true
}

// Message makes a short human readable summary like "ping 2/3 ok, dns 1/1 ok".
// The kinds are sorted by name so that the output is deterministic.
func (s Summary) Message() string {
	total := make(map[string]int)
	success := make(map[string]int)

	for _, r := range s.Records {
		total[r.Target.Kind]++
		if kindSucceeded(r) {
			success[r.Target.Kind]++
		}
	}

	kinds := make([]string, 0, len(total))
	for k := range total {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	ss := make([]string, len(kinds))
	for i, k := range kinds {
		ss[i] = fmt.Sprintf("%s %d/%d ok", k, success[k], total[k])
	}
	return strings.Join(ss, ", ")
}

// FailureMessage returns the message of the first failed probe in this round,
// prefixed by its target, or an empty string if every probe succeeded.
func (s Summary) FailureMessage() string {
	for _, r := range s.Records {
		if !kindSucceeded(r) {
			return r.Target.String() + ": " + r.Message
		}
	}
	return ""
}

// Runner executes a fixed set of probers as a single round.
type Runner struct {
	probers []Prober
}

func NewRunner(probers []Prober) Runner {
	return Runner{probers: probers}
}

// Targets returns the targets of the all probers.
func (r Runner) Targets() []api.Target {
	ts := make([]api.Target, len(r.probers))
	for i, p := range r.probers {
		ts[i] = p.Target()
	}
	return ts
}

// Run executes the all probes in parallel, reports each result to the
// Reporter as it arrives, and returns a Summary after the last probe has
// finished or timed out. The probes never depend on each other, so a dead
// target does not hide the results of the live ones.
func (r Runner) Run(ctx context.Context, rep Reporter) Summary {
	stime := now()

	c := &collectReporter{upstream: rep}

	var wg sync.WaitGroup
	for _, p := range r.probers {
		wg.Add(1)
		go func(p Prober) {
			defer wg.Done()
			p.Probe(ctx, c)
		}(p)
	}
	wg.Wait()

	return Summary{
		Time:    stime,
		Records: c.records,
	}
}

// collectReporter keeps a copy of every reported record while forwarding
// them to the upstream Reporter.
type collectReporter struct {
	sync.Mutex

	upstream Reporter
	records  []api.Record
}

func (c *collectReporter) Report(source api.Target, rec api.Record) {
	c.Lock()
	c.records = append(c.records, rec)
	c.Unlock()

	if c.upstream != nil {
		c.upstream.Report(source, rec)
	}
}

// now is for tests.
var now = time.Now
