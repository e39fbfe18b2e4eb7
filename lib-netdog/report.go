package netdog

import (
	"encoding/json"
	"sort"
	"time"
)

// Report is a report from Netdog server.
type Report struct {
	// Status is the current status of the watchdog.
	Status WatchStatus

	// ProbeHistory is the map of ProbeHistory.
	// The key is target string, and the value is struct ProbeHistory.
	ProbeHistory map[string]ProbeHistory

	// CurrentWindow is the currently open failure window, or nil if the connectivity is fine.
	CurrentWindow *FailureWindow

	// WindowHistory is the list of FailureWindow that already resolved.
	WindowHistory []FailureWindow

	// ReportedAt is the time the report created in server.
	ReportedAt time.Time
}

type jsonReport struct {
	Status        WatchStatus     `json:"status"`
	ProbeHistory  []ProbeHistory  `json:"probe_history"`
	CurrentWindow *FailureWindow  `json:"current_window,omitempty"`
	WindowHistory []FailureWindow `json:"window_history"`
	ReportedAt    string          `json:"reported_at"`
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (r *Report) UnmarshalJSON(data []byte) error {
	var jr jsonReport

	if err := json.Unmarshal(data, &jr); err != nil {
		return err
	}

	reportedAt, err := ParseTime(jr.ReportedAt)
	if err != nil {
		return err
	}

	probeHistory := make(map[string]ProbeHistory)
	for _, x := range jr.ProbeHistory {
		probeHistory[x.Target.String()] = x
	}

	*r = Report{
		Status:        jr.Status,
		ProbeHistory:  probeHistory,
		CurrentWindow: jr.CurrentWindow,
		WindowHistory: jr.WindowHistory,
		ReportedAt:    reportedAt,
	}

	return nil
}

// MarshalJSON implements the json.Marshaler interface.
//
// The probe history is sorted by the target string so that the output is deterministic.
func (r Report) MarshalJSON() ([]byte, error) {
	probeHistory := make([]ProbeHistory, 0, len(r.ProbeHistory))
	for _, x := range r.ProbeHistory {
		probeHistory = append(probeHistory, x)
	}
	sort.Slice(probeHistory, func(i, j int) bool {
		return probeHistory[i].Target.String() < probeHistory[j].Target.String()
	})

	windowHistory := r.WindowHistory
	if windowHistory == nil {
		windowHistory = []FailureWindow{}
	}

	return json.Marshal(jsonReport{
		Status:        r.Status,
		ProbeHistory:  probeHistory,
		CurrentWindow: r.CurrentWindow,
		WindowHistory: windowHistory,
		ReportedAt:    r.ReportedAt.Format(RecordTimeFormat),
	})
}

// Targets returns the all targets in this report, ordered by the target string.
func (r Report) Targets() []Target {
	ts := make([]Target, 0, len(r.ProbeHistory))
	for _, x := range r.ProbeHistory {
		ts = append(ts, x.Target)
	}
	sort.Slice(ts, func(i, j int) bool {
		return ts[i].String() < ts[j].String()
	})
	return ts
}
