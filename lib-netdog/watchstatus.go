package netdog

import (
	"encoding/json"
	"time"
)

// WatchStatus is the current status of the connectivity watchdog.
type WatchStatus struct {
	// State is the watchdog state, one of "HEALTHY", "DEGRADED", or "REMEDIATING".
	State string

	// Adapter is the name of the currently watched network adapter.
	// This is empty if no adapter matched the watch pattern in the last check.
	Adapter string

	// Message is a human readable summary of the current state.
	Message string

	// StartedAt is the time the watchdog started.
	StartedAt time.Time

	// UpdatedAt is the time of the last finished check.
	UpdatedAt time.Time

	// LastSuccess is the time of the last check that the connectivity was fine.
	LastSuccess time.Time

	// LastReset is the time of the last attempted adapter reset.
	LastReset time.Time

	// FailingSince is the time of the first failed check of the current failure window.
	// This is zero while the connectivity is fine.
	FailingSince time.Time

	// ConsecutiveFailures is how many checks failed in a row.
	ConsecutiveFailures int

	// TotalTicks is how many checks this watchdog has finished since it started.
	TotalTicks int

	// TotalResets is how many adapter resets this watchdog attempted since it started.
	TotalResets int
}

type jsonWatchStatus struct {
	State               string `json:"state"`
	Adapter             string `json:"adapter,omitempty"`
	Message             string `json:"message,omitempty"`
	StartedAt           string `json:"started_at,omitempty"`
	UpdatedAt           string `json:"updated_at,omitempty"`
	LastSuccess         string `json:"last_success,omitempty"`
	LastReset           string `json:"last_reset,omitempty"`
	FailingSince        string `json:"failing_since,omitempty"`
	ConsecutiveFailures int    `json:"consecutive_failures"`
	TotalTicks          int    `json:"total_ticks"`
	TotalResets         int    `json:"total_resets"`
}

func formatTimeOrEmpty(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(RecordTimeFormat)
}

func parseTimeOrZero(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return ParseTime(s)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *WatchStatus) UnmarshalJSON(data []byte) error {
	var js jsonWatchStatus

	if err := json.Unmarshal(data, &js); err != nil {
		return err
	}

	ws := WatchStatus{
		State:               js.State,
		Adapter:             js.Adapter,
		Message:             js.Message,
		ConsecutiveFailures: js.ConsecutiveFailures,
		TotalTicks:          js.TotalTicks,
		TotalResets:         js.TotalResets,
	}

	var err error
	if ws.StartedAt, err = parseTimeOrZero(js.StartedAt); err != nil {
		return err
	}
	if ws.UpdatedAt, err = parseTimeOrZero(js.UpdatedAt); err != nil {
		return err
	}
	if ws.LastSuccess, err = parseTimeOrZero(js.LastSuccess); err != nil {
		return err
	}
	if ws.LastReset, err = parseTimeOrZero(js.LastReset); err != nil {
		return err
	}
	if ws.FailingSince, err = parseTimeOrZero(js.FailingSince); err != nil {
		return err
	}

	*s = ws
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (s WatchStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonWatchStatus{
		State:               s.State,
		Adapter:             s.Adapter,
		Message:             s.Message,
		StartedAt:           formatTimeOrEmpty(s.StartedAt),
		UpdatedAt:           formatTimeOrEmpty(s.UpdatedAt),
		LastSuccess:         formatTimeOrEmpty(s.LastSuccess),
		LastReset:           formatTimeOrEmpty(s.LastReset),
		FailingSince:        formatTimeOrEmpty(s.FailingSince),
		ConsecutiveFailures: s.ConsecutiveFailures,
		TotalTicks:          s.TotalTicks,
		TotalResets:         s.TotalResets,
	})
}
