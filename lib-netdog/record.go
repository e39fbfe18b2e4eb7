package netdog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"
)

// RecordTimeFormat is the time format for the log records.
const RecordTimeFormat = "2006-01-02T15:04:05.000Z07:00"

var reservedRecordKeys = []string{"time", "status", "latency", "target", "message"}

// Record is a record in Netdog log.
//
// A record is encoded to a JSON object in a single line.
// The "time", "status", "latency", "target", and "message" keys are reserved by Record itself,
// and the all other keys are stored to the Extra field.
type Record struct {
	// Time is the time the check started.
	Time time.Time

	// Status is the result of the check.
	Status Status

	// Latency is how long the check took.
	Latency time.Duration

	// Target is the checked target.
	Target Target

	// Message is the reason of the status, or extra information about the check.
	Message string

	// Extra is the extra values of the check, for example the ping statistics.
	Extra map[string]any
}

// ParseRecord is parse string as a Record row in the log.
func ParseRecord(s string) (Record, error) {
	var r Record
	err := r.UnmarshalJSON([]byte(s))
	return r, err
}

func isReservedRecordKey(key string) bool {
	for _, k := range reservedRecordKeys {
		if k == key {
			return true
		}
	}
	return false
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRecord, err)
	}

	var rec Record

	if s, ok := raw["time"].(string); ok {
		var err error
		if rec.Time, err = ParseTime(s); err != nil {
			return fmt.Errorf("%w: time: %s", ErrInvalidRecord, err)
		}
	} else {
		return fmt.Errorf("%w: time: missing", ErrInvalidRecord)
	}

	if s, ok := raw["status"].(string); ok {
		rec.Status = ParseStatus(s)
	}

	if f, ok := raw["latency"].(float64); ok {
		rec.Latency = time.Duration(f * float64(time.Millisecond))
	}

	if s, ok := raw["target"].(string); ok && s != "" {
		var err error
		if rec.Target, err = ParseTarget(s); err != nil {
			return fmt.Errorf("%w: target: %s", ErrInvalidRecord, err)
		}
	} else {
		return ErrEmptyTarget
	}

	if s, ok := raw["message"].(string); ok {
		rec.Message = s
	}

	for k, v := range raw {
		if isReservedRecordKey(k) {
			continue
		}
		if rec.Extra == nil {
			rec.Extra = make(map[string]any)
		}
		rec.Extra[k] = v
	}

	*r = rec
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
//
// The reserved keys are always written in the fixed order,
// and the extra values follow them in alphabetical order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(`{"time":"`)
	buf.WriteString(r.Time.Format(RecordTimeFormat))
	buf.WriteString(`", "status":"`)
	buf.WriteString(r.Status.String())
	buf.WriteString(`", "latency":`)
	buf.WriteString(strconv.FormatFloat(float64(r.Latency.Microseconds())/1000, 'f', 3, 64))

	buf.WriteString(`, "target":`)
	if err := writeJSONValue(&buf, r.Target.String()); err != nil {
		return nil, err
	}

	if r.Message != "" {
		buf.WriteString(`, "message":`)
		if err := writeJSONValue(&buf, r.Message); err != nil {
			return nil, err
		}
	}

	keys := make([]string, 0, len(r.Extra))
	for k := range r.Extra {
		if !isReservedRecordKey(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		buf.WriteString(`, `)
		if err := writeJSONValue(&buf, k); err != nil {
			return nil, err
		}
		buf.WriteString(`:`)
		if err := writeJSONValue(&buf, r.Extra[k]); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func writeJSONValue(buf *bytes.Buffer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		b, err = json.Marshal(fmt.Sprintf("%v", v))
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidRecord, err)
		}
	}
	buf.Write(b)
	return nil
}

// String is make Record a string for one row in the log.
func (r Record) String() string {
	b, err := r.MarshalJSON()
	if err != nil {
		return `{"status":"UNKNOWN", "message":` + strconv.Quote(err.Error()) + `}`
	}
	return string(b)
}

// ExtraPair is a key-value pair in the Extra field of Record.
type ExtraPair struct {
	Key   string
	Value string
}

// ReadableExtra returns the Extra values as a list of human readable key-value pairs, ordered by the keys.
//
// The string values are used as is, and the other values are encoded as JSON.
func (r Record) ReadableExtra() []ExtraPair {
	if len(r.Extra) == 0 {
		return nil
	}

	keys := make([]string, 0, len(r.Extra))
	for k := range r.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]ExtraPair, len(keys))
	for i, k := range keys {
		var value string
		if s, ok := r.Extra[k].(string); ok {
			value = s
		} else if b, err := json.Marshal(r.Extra[k]); err == nil {
			value = string(b)
		} else {
			value = fmt.Sprintf("%v", r.Extra[k])
		}
		pairs[i] = ExtraPair{Key: k, Value: value}
	}
	return pairs
}

// ReadableMessage returns the message with the extra values, as a multi line string.
func (r Record) ReadableMessage() string {
	extra := r.ReadableExtra()
	if len(extra) == 0 {
		return r.Message
	}

	var buf bytes.Buffer
	buf.WriteString(r.Message)
	for _, e := range extra {
		buf.WriteByte('\n')
		buf.WriteString(e.Key)
		buf.WriteString(": ")
		buf.WriteString(e.Value)
	}
	return buf.String()
}
