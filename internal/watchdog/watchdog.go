package watchdog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ghostinator/netdog/internal/adapter"
	"github.com/ghostinator/netdog/internal/probe"
	"github.com/ghostinator/netdog/internal/schedule"
	api "github.com/ghostinator/netdog/lib-netdog"
	"github.com/google/uuid"
)

// now is for tests.
var now = time.Now

// readIOStat is for tests.
var readIOStat = adapter.ReadIOStat

// Store is the interface for the part of the log store that the watchdog
// feeds.
type Store interface {
	probe.Reporter

	// SetWatchStatus replaces the current watchdog status.
	SetWatchStatus(api.WatchStatus)

	// SetCurrentWindow replaces the currently open failure window.
	// nil means the connectivity is fine.
	SetCurrentWindow(*api.FailureWindow)

	// AddWindow appends a resolved failure window to the history.
	AddWindow(api.FailureWindow)
}

// Watchdog is the control loop that checks the connectivity of one network
// adapter on a schedule, and resets the adapter when the checks kept
// failing past the threshold.
//
// The loop runs one round at a time: the next round never starts before
// the previous round's probes joined and its reset decision resolved.
type Watchdog struct {
	Finder   adapter.Finder
	Resetter adapter.Resetter
	Runner   probe.Runner
	Schedule schedule.Schedule
	Store    Store

	// Hook is executed after every reset attempt. The zero value disables it.
	Hook ResetHook

	tracker *Tracker
	status  api.WatchStatus
}

func New(finder adapter.Finder, resetter adapter.Resetter, runner probe.Runner, sched schedule.Schedule, threshold time.Duration, store Store) *Watchdog {
	return &Watchdog{
		Finder:   finder,
		Resetter: resetter,
		Runner:   runner,
		Schedule: sched,
		Store:    store,
		tracker:  NewTracker(threshold),
		status: api.WatchStatus{
			State:     StateHealthy.String(),
			StartedAt: now(),
		},
	}
}

// Serve runs the watchdog until the context is canceled.
// It implements the suture.Service interface.
func (w *Watchdog) Serve(ctx context.Context) error {
	if w.Schedule.NeedKickWhenStart() {
		w.Tick(ctx)
	}

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		timer.Reset(time.Until(w.Schedule.Next(now())))

		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
			w.Tick(ctx)
		}
	}
}

// Tick runs a single check round: find the adapter, probe, track the
// failures, maybe reset the adapter, and store the status.
//
// Every error inside a round is absorbed into the status and the log; the
// loop keeps running through transient failures by design.
func (w *Watchdog) Tick(ctx context.Context) {
	stime := now()

	w.status.TotalTicks++

	ad, err := w.Finder.Find()
	if err != nil {
		w.skipRound(stime, err)
		return
	}
	w.status.Adapter = ad.Name

	summary := w.Runner.Run(ctx, w.Store)
	healthy := summary.Healthy()

	decision := w.tracker.Observe(summary.Time, healthy, ad.Name, summary.FailureMessage())
	if decision.Resolved != nil {
		w.Store.AddWindow(*decision.Resolved)
	}

	if decision.NeedReset {
		w.remediate(ctx, ad)
	}

	if healthy {
		w.status.LastSuccess = summary.Time
	}

	w.finishRound(stime, ad, summary)
}

// skipRound handles a round without a usable adapter. The tracker is left
// untouched: an absent adapter proves nothing about the connectivity, and
// resetting nothing helps nothing.
func (w *Watchdog) skipRound(stime time.Time, err error) {
	message := err.Error()
	if errors.Is(err, adapter.ErrAdapterNotFound) {
		message = "adapter not found: no interface matches " + w.Finder.Pattern()
	}

	w.Store.Report(watchdogTarget, api.Record{
		Time:    stime,
		Status:  api.StatusUnknown,
		Latency: now().Sub(stime),
		Target:  watchdogTarget,
		Message: message,
	})

	w.status.Adapter = ""
	w.status.State = w.tracker.State().String()
	w.status.Message = message
	w.status.UpdatedAt = now()
	w.Store.SetWatchStatus(w.status)
	w.Store.SetCurrentWindow(w.tracker.Window())
}

func (w *Watchdog) remediate(ctx context.Context, ad adapter.Adapter) {
	resetID := uuid.NewString()
	rtime := now()

	w.tracker.ResetAttempted()
	w.status.TotalResets++
	w.status.LastReset = rtime

	// The reset commands can take a while, so the transient state is made
	// visible on the status page before they run. finishRound overwrites it
	// once the round settles.
	w.status.State = StateRemediating.String()
	w.status.Message = "resetting adapter " + ad.Name
	w.status.UpdatedAt = rtime
	w.Store.SetWatchStatus(w.status)

	err := w.Resetter.Reset(ctx, ad)

	rec := api.Record{
		Time:    rtime,
		Target:  resetTarget,
		Latency: now().Sub(rtime),
		Extra: map[string]any{
			"reset_id": resetID,
			"adapter":  ad.Name,
		},
	}

	if err == nil {
		if resolved := w.tracker.ResetSucceeded(rtime); resolved != nil {
			w.Store.AddWindow(*resolved)
		}
		rec.Status = api.StatusHealthy
		rec.Message = "adapter has been reset"
	} else {
		w.tracker.ResetFailed(err.Error())
		rec.Status = api.StatusFailure
		rec.Message = err.Error()
	}

	w.Store.Report(resetTarget, rec)

	w.Hook.Trigger(ctx, w.Store, rec)
}

func (w *Watchdog) finishRound(stime time.Time, ad adapter.Adapter, summary probe.Summary) {
	state := w.tracker.State()
	window := w.tracker.Window()

	w.status.State = state.String()
	w.status.UpdatedAt = now()

	if window != nil {
		w.status.FailingSince = window.StartedAt
		w.status.ConsecutiveFailures = window.Failures
		w.status.Message = "connectivity has been failing for " + humanizeDuration(stime.Sub(window.StartedAt)) + " (" + summary.Message() + ")"
		if window.Message != "" {
			w.status.Message += "; last error: " + window.Message
		}
	} else {
		w.status.FailingSince = time.Time{}
		w.status.ConsecutiveFailures = 0
		w.status.Message = "connectivity is fine (" + summary.Message() + ")"
	}

	rec := api.Record{
		Time:    stime,
		Target:  watchdogTarget,
		Latency: now().Sub(stime),
		Message: w.status.Message,
		Extra: map[string]any{
			"adapter":      ad.Name,
			"total_resets": w.status.TotalResets,
		},
	}
	if window == nil {
		rec.Status = api.StatusHealthy
	} else {
		rec.Status = api.StatusFailure
	}

	if stat, err := readIOStat(ad.Name); err == nil {
		rec.Extra["bytes_sent"] = stat.BytesSent
		rec.Extra["bytes_recv"] = stat.BytesRecv
		rec.Extra["packets_sent"] = stat.PacketsSent
		rec.Extra["packets_recv"] = stat.PacketsRecv
	}

	w.Store.Report(watchdogTarget, rec)

	w.Store.SetWatchStatus(w.status)
	w.Store.SetCurrentWindow(window)
}

// humanizeDuration makes a duration like "25 seconds" or "2 minutes".
func humanizeDuration(d time.Duration) string {
	t := time.Now()
	return strings.TrimSpace(humanize.RelTime(t.Add(-d), t, "", ""))
}

var (
	watchdogTarget = api.Target{Kind: "netdog", Address: "watchdog"}
	resetTarget    = api.Target{Kind: "netdog", Address: "reset"}
)
