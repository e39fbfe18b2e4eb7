package schedule

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

var (
	DefaultSchedule = Schedule(IntervalSchedule{5 * time.Second})
)

// Schedule is the timing generator of the connectivity checks.
type Schedule interface {
	cron.Schedule
	fmt.Stringer

	// NeedKickWhenStart returns true if the check should be started immediately, without waiting the first timing.
	NeedKickWhenStart() bool
}

// Parse parses an interval duration like "30s", or a cron expression like "*/5 * * * *".
func Parse(spec string) (Schedule, error) {
	if s, err := ParseInterval(spec); err == nil {
		return s, nil
	}

	return ParseCron(spec)
}

type IntervalSchedule struct {
	Interval time.Duration
}

func ParseInterval(spec string) (IntervalSchedule, error) {
	d, err := time.ParseDuration(spec)
	if err != nil {
		return IntervalSchedule{}, err
	}
	if d <= 0 {
		return IntervalSchedule{}, fmt.Errorf("invalid interval: %q: it should be longer than 0s", spec)
	}
	return IntervalSchedule{d}, nil
}

func (s IntervalSchedule) Next(t time.Time) time.Time {
	return t.Add(s.Interval)
}

func (s IntervalSchedule) String() string {
	return s.Interval.String()
}

func (s IntervalSchedule) NeedKickWhenStart() bool {
	return true
}

type CronSchedule struct {
	spec     string
	schedule cron.Schedule
}

func ParseCron(spec string) (CronSchedule, error) {
	switch spec {
	case "@yearly", "@annually":
		spec = "0 0 1 1 ?"
	case "@monthly":
		spec = "0 0 1 * ?"
	case "@weekly":
		spec = "0 0 * * 0"
	case "@daily":
		spec = "0 0 * * ?"
	case "@hourly":
		spec = "0 * * * ?"
	default:
		delimiter := regexp.MustCompile("[ \t]+")

		ss := delimiter.Split(strings.TrimSpace(spec), -1)
		if len(ss) == 4 {
			ss = append(ss, "?")
		}
		spec = strings.Join(ss, " ")
	}

	if s, err := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.DowOptional).Parse(spec); err != nil {
		return CronSchedule{}, err
	} else {
		return CronSchedule{
			spec:     spec,
			schedule: s,
		}, nil
	}
}

func (s CronSchedule) Next(t time.Time) time.Time {
	return s.schedule.Next(t)
}

func (s CronSchedule) String() string {
	return s.spec
}

func (s CronSchedule) NeedKickWhenStart() bool {
	return false
}
