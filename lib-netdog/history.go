package netdog

import (
	"encoding/json"
	"time"
)

// ProbeHistory is the status history data of a single target.
type ProbeHistory struct {
	Target Target

	// Status is the latest status of the target.
	Status Status

	History []Record

	// Updated is the same as Time of the latest History record.
	Updated time.Time
}

type jsonProbeHistory struct {
	Target  string   `json:"target"`
	Status  Status   `json:"status"`
	History []Record `json:"history"`
	Updated string   `json:"updated,omitempty"`
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (ph *ProbeHistory) UnmarshalJSON(data []byte) error {
	var jh jsonProbeHistory

	if err := json.Unmarshal(data, &jh); err != nil {
		return err
	}

	target, err := ParseTarget(jh.Target)
	if err != nil {
		return err
	}

	var updated time.Time
	if jh.Updated != "" {
		updated, err = ParseTime(jh.Updated)
		if err != nil {
			return err
		}
	}

	*ph = ProbeHistory{
		Target:  target,
		Status:  jh.Status,
		History: jh.History,
		Updated: updated,
	}

	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (ph ProbeHistory) MarshalJSON() ([]byte, error) {
	var updated string
	if !ph.Updated.IsZero() {
		updated = ph.Updated.Format(RecordTimeFormat)
	}

	return json.Marshal(jsonProbeHistory{
		Target:  ph.Target.String(),
		Status:  ph.Status,
		History: ph.History,
		Updated: updated,
	})
}
