package endpoint

import (
	"time"

	api "github.com/ghostinator/netdog/lib-netdog"
)

// Store is the interface for the data source of the endpoints.
type Store interface {
	// Name returns the Netdog instance name.
	Name() string

	// Targets returns the target strings of the watched probes.
	Targets() []string

	// ProbeHistory returns the recent records per target.
	ProbeHistory() []api.ProbeHistory

	// WatchStatus returns the current status of the watchdog.
	WatchStatus() api.WatchStatus

	// MakeReport creates the report document for exporting.
	MakeReport(probeHistoryLength int) api.Report

	// ReportInternalError reports a Netdog internal error.
	ReportInternalError(scope, message string)

	// Errors returns the store status and the recent write errors.
	Errors() (healthy bool, messages []string)

	// OpenLog opens a LogScanner for the period.
	OpenLog(since, until time.Time) (api.LogScanner, error)
}
