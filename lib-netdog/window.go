package netdog

import (
	"encoding/json"
	"time"
)

// FailureWindow is a period that the connectivity checks kept failing.
//
// A window opens at the first failed check after a healthy one,
// and closes when a check succeeds again.
type FailureWindow struct {
	// ID is a unique ID of this window.
	ID string

	// Adapter is the name of the network adapter that was watched when the window opened.
	Adapter string

	// Message is the cause of the latest failed check in this window.
	Message string

	// StartedAt is the time of the first failed check.
	StartedAt time.Time

	// ResolvedAt is the time of the check that closed this window.
	// This is zero if the window is still open.
	ResolvedAt time.Time

	// Failures is how many checks failed in a row during this window.
	Failures int

	// Resets is how many adapter resets were attempted during this window.
	Resets int
}

type jsonFailureWindow struct {
	ID         string `json:"id"`
	Adapter    string `json:"adapter,omitempty"`
	Message    string `json:"message,omitempty"`
	StartedAt  string `json:"started_at"`
	ResolvedAt string `json:"resolved_at,omitempty"`
	Failures   int    `json:"failures"`
	Resets     int    `json:"resets"`
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (w *FailureWindow) UnmarshalJSON(data []byte) error {
	var jw jsonFailureWindow

	if err := json.Unmarshal(data, &jw); err != nil {
		return err
	}

	startedAt, err := ParseTime(jw.StartedAt)
	if err != nil {
		return err
	}

	var resolvedAt time.Time
	if jw.ResolvedAt != "" {
		resolvedAt, err = ParseTime(jw.ResolvedAt)
		if err != nil {
			return err
		}
	}

	*w = FailureWindow{
		ID:         jw.ID,
		Adapter:    jw.Adapter,
		Message:    jw.Message,
		StartedAt:  startedAt,
		ResolvedAt: resolvedAt,
		Failures:   jw.Failures,
		Resets:     jw.Resets,
	}

	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (w FailureWindow) MarshalJSON() ([]byte, error) {
	var resolvedAt string
	if !w.ResolvedAt.IsZero() {
		resolvedAt = w.ResolvedAt.Format(RecordTimeFormat)
	}

	return json.Marshal(jsonFailureWindow{
		ID:         w.ID,
		Adapter:    w.Adapter,
		Message:    w.Message,
		StartedAt:  w.StartedAt.Format(RecordTimeFormat),
		ResolvedAt: resolvedAt,
		Failures:   w.Failures,
		Resets:     w.Resets,
	})
}
