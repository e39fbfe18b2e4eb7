package schedule_test

import (
	"testing"
	"time"

	"github.com/ghostinator/netdog/internal/schedule"
)

func TestParseCron(t *testing.T) {
	tests := []struct {
		Name   string
		Input  string
		Output string
		Error  string
	}{
		{"4values", "1 2 3 4", "1 2 3 4 ?", ""},
		{"5values", "1 2 3 4 5", "1 2 3 4 5", ""},
		{"spaces", "1  2 \t3 4", "1 2 3 4 ?", ""},
		{"3values", "1 2 3", "", "expected 4 to 5 fields, found 3: [1 2 3]"},
		{"@yearly", "@yearly", "0 0 1 1 ?", ""},
		{"@annually", "@annually", "0 0 1 1 ?", ""},
		{"@monthly", "@monthly", "0 0 1 * ?", ""},
		{"@weekly", "@weekly", "0 0 * * 0", ""},
		{"@daily", "@daily", "0 0 * * ?", ""},
		{"@hourly", "@hourly", "0 * * * ?", ""},
	}

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			s, err := schedule.ParseCron(tt.Input)
			if err != nil && err.Error() != tt.Error {
				t.Fatalf("unexpected error: expected %#v but got %#v", tt.Error, err.Error())
			}
			if err == nil && tt.Error != "" {
				t.Fatalf("expected error %#v but got nil", tt.Error)
			}

			if s.String() != tt.Output {
				t.Errorf("expected %#v but got %#v", tt.Output, s.String())
			}
		})
	}
}

func TestParseInterval(t *testing.T) {
	tests := []struct {
		Name   string
		Input  string
		Output string
		Error  bool
	}{
		{"valid", "5s", "5s", false},
		{"minute", "1m", "1m0s", false},
		{"invalid", "invalid", "", true},
		{"zero", "0s", "", true},
		{"negative", "-5s", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			s, err := schedule.ParseInterval(tt.Input)
			if (err != nil) != tt.Error {
				t.Fatalf("unexpected error: %v", err)
			}
			if err == nil && s.String() != tt.Output {
				t.Errorf("expected %#v but got %#v", tt.Output, s.String())
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		Name   string
		Input  string
		Output string
		Error  bool
	}{
		{"interval", "30s", "30s", false},
		{"cron", "0 0 * * ?", "0 0 * * ?", false},
		{"daily", "@daily", "0 0 * * ?", false},
		{"invalid", "invalid", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			s, err := schedule.Parse(tt.Input)
			if (err != nil) != tt.Error {
				t.Fatalf("unexpected error: %v", err)
			}
			if err == nil && s.String() != tt.Output {
				t.Errorf("expected %#v but got %#v", tt.Output, s.String())
			}
		})
	}
}

func TestIntervalSchedule_Next(t *testing.T) {
	s, err := schedule.ParseInterval("5s")
	if err != nil {
		t.Fatalf("failed to parse interval: %s", err)
	}

	if !s.NeedKickWhenStart() {
		t.Error("IntervalSchedule should need kick when start")
	}

	base := time.Date(2021, 1, 2, 15, 4, 5, 0, time.UTC)
	want := time.Date(2021, 1, 2, 15, 4, 10, 0, time.UTC)
	if next := s.Next(base); !next.Equal(want) {
		t.Errorf("expected %s but got %s", want, next)
	}
}

func TestCronSchedule_NeedKickWhenStart(t *testing.T) {
	s, _ := schedule.ParseCron("0 0 * * ?")
	if s.NeedKickWhenStart() {
		t.Error("CronSchedule should not need kick when start")
	}
}

func TestDefaultSchedule(t *testing.T) {
	if schedule.DefaultSchedule.String() != "5s" {
		t.Errorf("unexpected default schedule: %s", schedule.DefaultSchedule.String())
	}
}
