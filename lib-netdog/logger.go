package netdog

import (
	"io"
	"os"
	"time"

	"github.com/ghostinator/netdog/internal/nderr"
)

// Logger writes Records in the Netdog log format.
//
// On-reset hook commands print records in this format to stdout to get
// them stored into the Netdog log.
type Logger struct {
	writer io.Writer
	target Target
}

// NewLoggerWithWriter makes new Logger with a io.Writer
func NewLoggerWithWriter(w io.Writer, target Target) Logger {
	return Logger{
		writer: w,
		target: target,
	}
}

// NewLogger makes new Logger
//
// This is the shorthand to `netdog.NewLoggerWithWriter(os.Stdout, target)`.
func NewLogger(target Target) Logger {
	return NewLoggerWithWriter(os.Stdout, target)
}

// Print prints a Record
func (l Logger) Print(r Record) error {
	if r.Target == (Target{}) {
		if l.target == (Target{}) {
			return ErrEmptyTarget
		}
		r.Target = l.target
	}

	if r.Time.IsZero() {
		r.Time = time.Now()
	}

	if r.Latency < 0 {
		r.Latency = 0
	}

	_, err := l.writer.Write([]byte(r.String() + "\n"))
	if err != nil {
		return nderr.New(ErrIO, err, "failed to write log")
	}
	return nil
}

// Healthy prints Healthy status record.
//
// Seealso StatusHealthy.
func (l Logger) Healthy(message string, extra map[string]interface{}) error {
	return l.Print(Record{
		Status:  StatusHealthy,
		Message: message,
		Extra:   extra,
	})
}

// Aborted prints Aborted status record.
//
// Seealso StatusAborted.
func (l Logger) Aborted(message string, extra map[string]interface{}) error {
	return l.Print(Record{
		Status:  StatusAborted,
		Message: message,
		Extra:   extra,
	})
}

// Unknown prints Unknown status record.
//
// Seealso StatusUnknown.
func (l Logger) Unknown(message string, extra map[string]interface{}) error {
	return l.Print(Record{
		Status:  StatusUnknown,
		Message: message,
		Extra:   extra,
	})
}

// Degrade prints Degrade status record.
//
// Seealso StatusDegrade.
func (l Logger) Degrade(message string, extra map[string]interface{}) error {
	return l.Print(Record{
		Status:  StatusDegrade,
		Message: message,
		Extra:   extra,
	})
}

// Failure prints Failure status record.
//
// Seealso StatusFailure.
func (l Logger) Failure(message string, extra map[string]interface{}) error {
	return l.Print(Record{
		Status:  StatusFailure,
		Message: message,
		Extra:   extra,
	})
}

// WithTarget makes new Logger with new target
func (l Logger) WithTarget(target Target) Logger {
	return Logger{
		writer: l.writer,
		target: target,
	}
}

// StartTimer makes new Logger that records the time between this call and
// the Print call as the latency of the record.
func (l Logger) StartTimer() TimerLogger {
	return TimerLogger{
		logger: l,
		stime:  time.Now(),
	}
}

// TimerLogger is a Logger that measures the latency by itself.
type TimerLogger struct {
	logger Logger
	stime  time.Time
}

// Print prints a Record with the measured time and latency.
func (l TimerLogger) Print(r Record) error {
	r.Time = l.stime
	r.Latency = time.Since(l.stime)
	return l.logger.Print(r)
}
