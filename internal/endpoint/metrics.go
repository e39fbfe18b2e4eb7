package endpoint

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	api "github.com/ghostinator/netdog/lib-netdog"
)

var (
	probeStatusDesc = prometheus.NewDesc(
		"netdog_probe_status",
		"The latest status of the probe target.",
		[]string{"target", "status"},
		nil,
	)
	probeLatencyDesc = prometheus.NewDesc(
		"netdog_probe_latency_seconds",
		"The duration in seconds that the latest check of the target took.",
		[]string{"target"},
		nil,
	)
	watchdogStateDesc = prometheus.NewDesc(
		"netdog_watchdog_state",
		"The current state of the watchdog.",
		[]string{"state"},
		nil,
	)
	consecutiveFailuresDesc = prometheus.NewDesc(
		"netdog_consecutive_failures",
		"How many connectivity checks failed in a row.",
		nil,
		nil,
	)
	checksTotalDesc = prometheus.NewDesc(
		"netdog_checks_total",
		"The number of connectivity checks since the server started.",
		nil,
		nil,
	)
	resetsTotalDesc = prometheus.NewDesc(
		"netdog_resets_total",
		"The number of adapter resets attempted since the server started.",
		nil,
		nil,
	)
	failureWindowOpenDesc = prometheus.NewDesc(
		"netdog_failure_window_open",
		"Whether a failure window is currently open.",
		nil,
		nil,
	)
	logHealthyDesc = prometheus.NewDesc(
		"netdog_log_healthy",
		"Whether the log writer is working without errors.",
		nil,
		nil,
	)
)

var watchdogStates = []string{"HEALTHY", "DEGRADED", "REMEDIATING"}

var probeStatuses = []api.Status{
	api.StatusHealthy,
	api.StatusDegrade,
	api.StatusFailure,
	api.StatusUnknown,
	api.StatusAborted,
}

// storeCollector exposes the current store contents as Prometheus metrics.
//
// It reads the store on every scrape rather than keeping its own counters,
// so the values always agree with the other status endpoints.
type storeCollector struct {
	store Store
}

func (c storeCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- probeStatusDesc
	ch <- probeLatencyDesc
	ch <- watchdogStateDesc
	ch <- consecutiveFailuresDesc
	ch <- checksTotalDesc
	ch <- resetsTotalDesc
	ch <- failureWindowOpenDesc
	ch <- logHealthyDesc
}

func (c storeCollector) Collect(ch chan<- prometheus.Metric) {
	for _, hs := range c.store.ProbeHistory() {
		if len(hs.History) == 0 {
			continue
		}
		last := hs.History[len(hs.History)-1]
		target := hs.Target.String()

		for _, status := range probeStatuses {
			value := 0.0
			if last.Status == status {
				value = 1.0
			}
			ch <- prometheus.NewMetricWithTimestamp(last.Time, prometheus.MustNewConstMetric(
				probeStatusDesc, prometheus.GaugeValue, value, target, status.String(),
			))
		}
		ch <- prometheus.NewMetricWithTimestamp(last.Time, prometheus.MustNewConstMetric(
			probeLatencyDesc, prometheus.GaugeValue, last.Latency.Seconds(), target,
		))
	}

	report := c.store.MakeReport(1)

	for _, state := range watchdogStates {
		value := 0.0
		if report.Status.State == state {
			value = 1.0
		}
		ch <- prometheus.MustNewConstMetric(watchdogStateDesc, prometheus.GaugeValue, value, state)
	}

	ch <- prometheus.MustNewConstMetric(consecutiveFailuresDesc, prometheus.GaugeValue, float64(report.Status.ConsecutiveFailures))
	ch <- prometheus.MustNewConstMetric(checksTotalDesc, prometheus.CounterValue, float64(report.Status.TotalTicks))
	ch <- prometheus.MustNewConstMetric(resetsTotalDesc, prometheus.CounterValue, float64(report.Status.TotalResets))

	open := 0.0
	if report.CurrentWindow != nil {
		open = 1.0
	}
	ch <- prometheus.MustNewConstMetric(failureWindowOpenDesc, prometheus.GaugeValue, open)

	healthy := 0.0
	if ok, _ := c.store.Errors(); ok {
		healthy = 1.0
	}
	ch <- prometheus.MustNewConstMetric(logHealthyDesc, prometheus.GaugeValue, healthy)
}

// MetricsEndpoint implements Prometheus metrics endpoint.
func MetricsEndpoint(s Store) http.Handler {
	reg := prometheus.NewRegistry()
	reg.MustRegister(storeCollector{store: s})

	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
