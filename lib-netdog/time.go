package netdog

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	timeformats = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05Z0700",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05Z07:00",
		"2006-01-02 15:04:05",
		"2006-01-02",
		"20060102T150405Z0700",
	}

	ErrInvalidTime = errors.New("invalid time format")
)

// ParseTime parses time string in Netdog way.
// This function supports RFC3339 and some looser formats that is handy for the since/until query of the log endpoints.
func ParseTime(s string) (time.Time, error) {
	x := strings.ToUpper(strings.TrimSpace(s))
	for _, f := range timeformats {
		t, err := time.Parse(f, x)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
}
