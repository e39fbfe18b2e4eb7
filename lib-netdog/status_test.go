package netdog_test

import (
	"testing"

	"github.com/ghostinator/netdog/lib-netdog"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		String string
		Status netdog.Status
	}{
		{"HEALTHY", netdog.StatusHealthy},
		{"DEGRADE", netdog.StatusDegrade},
		{"FAILURE", netdog.StatusFailure},
		{"ABORTED", netdog.StatusAborted},
		{"UNKNOWN", netdog.StatusUnknown},
	}

	for _, tt := range tests {
		if s := netdog.ParseStatus(tt.String); s != tt.Status {
			t.Errorf("expected %d but got %d when parse %s", tt.Status, s, tt.String)
		}

		if s := tt.Status.String(); s != tt.String {
			t.Errorf("expected %s but got %s", tt.String, s)
		}

		if b, err := tt.Status.MarshalText(); err != nil {
			t.Errorf("failed to marshal %s: %s", tt.String, err)
		} else if string(b) != tt.String {
			t.Errorf("expected %s but got %s", tt.String, string(b))
		}

		var s netdog.Status
		if err := s.UnmarshalText([]byte(tt.String)); err != nil {
			t.Errorf("failed to unmarshal %s: %s", tt.String, err)
		} else if s != tt.Status {
			t.Errorf("expected %d but got %d when unmarshal %s", tt.Status, s, tt.String)
		}
	}
}

func TestParseStatus_unsupported(t *testing.T) {
	tests := []string{"healthy", "ok", "", "HEALTHY "}

	for _, tt := range tests {
		if s := netdog.ParseStatus(tt); s != netdog.StatusUnknown {
			t.Errorf("expected UNKNOWN but got %s when parse %q", s, tt)
		}
	}
}
