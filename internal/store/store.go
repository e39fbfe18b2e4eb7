package store

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	api "github.com/ghostinator/netdog/lib-netdog"
)

const (
	PROBE_HISTORY_LEN  = 60
	WINDOW_HISTORY_LEN = 20
)

// LogRestoreBytes is how much is read from the tail of an existing log
// file on startup to rebuild the in-memory history.
var LogRestoreBytes int64 = 10 * 1024 * 1024

// Store is the log handler of Netdog, and also its in-memory database.
//
// Every record goes to the console and, when a log path is set, to a JSONL
// log file. The file path can contain date specifiers so the log rotates
// by itself; see Pattern.
type Store struct {
	name string
	path Pattern

	Console io.Writer

	historyLock   sync.RWMutex
	probeHistory  probeHistoryMap
	currentWindow *api.FailureWindow
	windowHistory []api.FailureWindow
	watchStatus   api.WatchStatus

	writeCh       chan<- api.Record
	writerStopped chan struct{}
	errorsLock    sync.RWMutex
	errors        []string
	healthy       bool
}

// New creates a new Store. The path may be empty, in which case the
// records only go to the console.
func New(name, path string, console io.Writer) (*Store, error) {
	ch := make(chan api.Record, 32)

	store := &Store{
		name:          name,
		path:          ParsePattern(path),
		Console:       console,
		probeHistory:  make(probeHistoryMap),
		writeCh:       ch,
		writerStopped: make(chan struct{}),
		healthy:       true,
	}

	if !store.path.IsEmpty() {
		if f, err := os.OpenFile(store.path.Build(time.Now()), os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644); err != nil {
			close(ch)
			return nil, err
		} else {
			f.Close()
		}
	}

	go store.writer(ch, store.writerStopped)

	return store, nil
}

// Name returns the instance name.
func (s *Store) Name() string {
	return s.name
}

// Path returns the log file path pattern.
func (s *Store) Path() string {
	return s.path.String()
}

// ReportInternalError reports an error of Netdog itself.
func (s *Store) ReportInternalError(scope, message string) {
	t := api.Target{Kind: "netdog", Address: scope}

	s.Report(t, api.Record{
		Time:    time.Now(),
		Status:  api.StatusFailure,
		Target:  t,
		Message: message,
	})
}

// handleError reports an error of writing the log.
// The error goes to the console here, and to the /healthz page via Errors.
func (s *Store) handleError(err error, exportableErrorMessage string) {
	if err != nil {
		s.addError(exportableErrorMessage)
		fmt.Fprintln(s.Console, api.Record{
			Time:    time.Now(),
			Status:  api.StatusFailure,
			Target:  api.Target{Kind: "netdog", Address: "log"},
			Message: err.Error(),
		})
	}
}

func (s *Store) writer(ch <-chan api.Record, stopped chan struct{}) {
	for r := range ch {
		msg := r.String() + "\n"

		io.WriteString(s.Console, msg)

		if s.path.IsEmpty() {
			continue
		}

		s.setHealthy()

		f, err := os.OpenFile(s.path.Build(r.Time), os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
		if err != nil {
			s.handleError(err, "failed to open log file")
			continue
		}

		_, err = io.WriteString(f, msg)
		s.handleError(err, "failed to write log file")

		err = f.Close()
		s.handleError(err, "failed to close log file")
	}

	close(stopped)
}

func (s *Store) Close() error {
	close(s.writeCh)
	<-s.writerStopped
	return nil
}

// Report reports a Record to this Store.
//
// The record goes to the log, and the records of probe targets also go to
// the in-memory history. Records under the "netdog" kind are Netdog's own
// events, logged but kept out of the probe history.
func (s *Store) Report(source api.Target, r api.Record) {
	r.Message = strings.Trim(r.Message, "\r\n")

	s.writeCh <- r

	if r.Target.Kind != "netdog" {
		s.historyLock.Lock()
		defer s.historyLock.Unlock()

		s.probeHistory.Append(r)
	}
}

// ActivateTarget prepares an empty history for the target, so that it
// shows up in the report before its first record arrives.
func (s *Store) ActivateTarget(t api.Target) {
	s.historyLock.Lock()
	defer s.historyLock.Unlock()

	k := t.String()
	if _, ok := s.probeHistory[k]; !ok {
		s.probeHistory[k] = &probeHistory{Target: t}
	}
}

// ProbeHistory returns the recent records of every target.
func (s *Store) ProbeHistory() []api.ProbeHistory {
	s.historyLock.RLock()
	defer s.historyLock.RUnlock()

	result := make([]api.ProbeHistory, 0, len(s.probeHistory))
	for _, x := range s.probeHistory {
		result = append(result, x.MakeReport(PROBE_HISTORY_LEN))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Target.String() < result[j].Target.String()
	})

	return result
}

// Targets returns the target strings in dictionary order.
func (s *Store) Targets() []string {
	s.historyLock.RLock()
	defer s.historyLock.RUnlock()

	result := make([]string, 0, len(s.probeHistory))
	for k := range s.probeHistory {
		result = append(result, k)
	}

	sort.Strings(result)

	return result
}

// SetWatchStatus replaces the watchdog status.
func (s *Store) SetWatchStatus(status api.WatchStatus) {
	s.historyLock.Lock()
	defer s.historyLock.Unlock()

	s.watchStatus = status
}

// WatchStatus returns the current watchdog status.
func (s *Store) WatchStatus() api.WatchStatus {
	s.historyLock.RLock()
	defer s.historyLock.RUnlock()

	return s.watchStatus
}

// SetCurrentWindow replaces the currently open failure window.
func (s *Store) SetCurrentWindow(w *api.FailureWindow) {
	s.historyLock.Lock()
	defer s.historyLock.Unlock()

	s.currentWindow = w
}

// CurrentWindow returns a copy of the currently open failure window, or nil.
func (s *Store) CurrentWindow() *api.FailureWindow {
	s.historyLock.RLock()
	defer s.historyLock.RUnlock()

	if s.currentWindow == nil {
		return nil
	}
	w := *s.currentWindow
	return &w
}

// AddWindow appends a resolved failure window to the history.
func (s *Store) AddWindow(w api.FailureWindow) {
	s.historyLock.Lock()
	defer s.historyLock.Unlock()

	s.windowHistory = append(s.windowHistory, w)
	if len(s.windowHistory) > WINDOW_HISTORY_LEN {
		s.windowHistory = s.windowHistory[len(s.windowHistory)-WINDOW_HISTORY_LEN:]
	}
}

// WindowHistory returns the resolved failure windows, oldest first.
func (s *Store) WindowHistory() []api.FailureWindow {
	s.historyLock.RLock()
	defer s.historyLock.RUnlock()

	result := make([]api.FailureWindow, len(s.windowHistory))
	copy(result, s.windowHistory)
	return result
}

// Restore rebuilds the in-memory history from the tail of the current log
// file, so that a restart does not blank the status page.
func (s *Store) Restore() error {
	if s.path.IsEmpty() {
		return nil
	}

	s.historyLock.Lock()
	defer s.historyLock.Unlock()

	f, err := os.OpenFile(s.path.Build(time.Now()), os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	tail := false
	if ret, err := f.Seek(-LogRestoreBytes, io.SeekEnd); err != nil || ret <= 0 {
		f.Seek(0, io.SeekStart)
	} else {
		tail = true
	}

	s.probeHistory = make(probeHistoryMap)

	reader := bufio.NewReader(f)
	if tail {
		// Drop the cut line at the seek position.
		reader.ReadBytes('\n')
	}
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			break
		}

		var r api.Record
		if err = r.UnmarshalJSON(line); err != nil {
			continue
		}

		if r.Target.Kind != "netdog" {
			s.probeHistory.Append(r)
		}
	}

	return nil
}

// OpenLog opens a LogScanner for the period.
func (s *Store) OpenLog(since, until time.Time) (api.LogScanner, error) {
	if s.path.IsEmpty() {
		return newInMemoryScanner(s, since, until), nil
	}

	return newFileScannerSet(s.path.ListBetween(since, until), since, until)
}

// setHealthy resets the healthy status of this store.
func (s *Store) setHealthy() {
	s.errorsLock.Lock()
	defer s.errorsLock.Unlock()

	s.healthy = true
}

// addError adds an error message for Errors, and sets the healthy status
// to false.
func (s *Store) addError(message string) {
	s.errorsLock.Lock()
	defer s.errorsLock.Unlock()

	s.healthy = false
	s.errors = append(
		s.errors,
		fmt.Sprintf("%s\t%s", time.Now().Format(time.RFC3339), message),
	)

	if len(s.errors) > 10 {
		s.errors = s.errors[1:]
	}
}

// Errors returns the store status and the recent write errors.
func (s *Store) Errors() (healthy bool, messages []string) {
	s.errorsLock.RLock()
	defer s.errorsLock.RUnlock()

	return s.healthy, s.errors
}

// MakeReport creates the report document for the endpoint, with at most
// probeHistoryLength records per target.
func (s *Store) MakeReport(probeHistoryLength int) api.Report {
	s.historyLock.RLock()
	defer s.historyLock.RUnlock()

	report := api.Report{
		Status:        s.watchStatus,
		ProbeHistory:  make(map[string]api.ProbeHistory),
		WindowHistory: make([]api.FailureWindow, len(s.windowHistory)),
		ReportedAt:    time.Now(),
	}

	copy(report.WindowHistory, s.windowHistory)

	if s.currentWindow != nil {
		w := *s.currentWindow
		report.CurrentWindow = &w
	}

	for k, v := range s.probeHistory {
		report.ProbeHistory[k] = v.MakeReport(probeHistoryLength)
	}

	return report
}
