package endpoint

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ghostinator/netdog/internal/logconv"
	api "github.com/ghostinator/netdog/lib-netdog"
	"github.com/goccy/go-json"
)

type logOptions struct {
	Since, Until time.Time
	Limit        uint64
	Targets      []string
}

func newLogOptionsByRequest(r *http.Request, defaultPeriod time.Duration) (opts logOptions, err error) {
	var invalidQueries []string

	qs := r.URL.Query()

	if since := qs.Get("since"); since != "" {
		opts.Since, err = api.ParseTime(since)
		if err != nil {
			invalidQueries = append(invalidQueries, "since")
		}
	}

	if until := qs.Get("until"); until != "" {
		opts.Until, err = api.ParseTime(until)
		if err != nil {
			invalidQueries = append(invalidQueries, "until")
		}
	}

	if l := qs.Get("limit"); l != "" {
		opts.Limit, err = strconv.ParseUint(l, 10, 64)
		if err != nil {
			invalidQueries = append(invalidQueries, "limit")
		}
	}

	opts.Targets = qs["target"]

	if opts.Until.IsZero() {
		opts.Until = time.Now()
	}
	if opts.Since.IsZero() {
		opts.Since = opts.Until.Add(-defaultPeriod)
	}

	if len(invalidQueries) > 0 {
		return opts, fmt.Errorf("invalid query format: %s", strings.Join(invalidQueries, ", "))
	}

	return opts, nil
}

// filterScanner is a LogScanner that passes only the records of the wanted
// targets, at most Limit of them.
type filterScanner struct {
	Scanner api.LogScanner
	Targets []string
	Limit   uint64
	count   uint64
}

func (f *filterScanner) Close() error {
	return f.Scanner.Close()
}

func (f *filterScanner) wantTarget(target string) bool {
	if len(f.Targets) == 0 {
		return true
	}
	for _, t := range f.Targets {
		if target == t {
			return true
		}
	}
	return false
}

func (f *filterScanner) Scan() bool {
	if f.Limit != 0 && f.count >= f.Limit {
		return false
	}
	for f.Scanner.Scan() {
		if f.wantTarget(f.Scanner.Record().Target.String()) {
			f.count++
			return true
		}
	}
	return false
}

func (f *filterScanner) Record() api.Record {
	return f.Scanner.Record()
}

func newLogScanner(s Store, scope string, r *http.Request) (scanner api.LogScanner, statusCode int, err error) {
	opts, err := newLogOptionsByRequest(r, 7*24*time.Hour)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}

	raw, err := s.OpenLog(opts.Since, opts.Until)
	if err != nil {
		handleError(s, scope, fmt.Errorf("failed to open log: %w", err))
		return nil, http.StatusInternalServerError, fmt.Errorf("internal server error")
	}

	return &filterScanner{
		Scanner: raw,
		Targets: opts.Targets,
		Limit:   opts.Limit,
	}, http.StatusOK, nil
}

func LogTSVEndpoint(s Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scanner, code, err := newLogScanner(s, "log.tsv", r)
		if err != nil {
			w.WriteHeader(code)
			fmt.Fprintln(w, err)
			return
		}
		defer scanner.Close()

		w.Header().Set("Content-Type", "text/tab-separated-values; charset=UTF-8")

		handleError(s, "log.tsv", logconv.ToTSV(newFlushWriter(w), scanner))
	}
}

func LogCSVEndpoint(s Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scanner, code, err := newLogScanner(s, "log.csv", r)
		if err != nil {
			w.WriteHeader(code)
			fmt.Fprintln(w, err)
			return
		}
		defer scanner.Close()

		w.Header().Set("Content-Type", "text/csv; charset=UTF-8")

		handleError(s, "log.csv", logconv.ToCSV(newFlushWriter(w), scanner))
	}
}

func LogJSONEndpoint(s Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scanner, code, err := newLogScanner(s, "log.json", r)
		if err != nil {
			w.WriteHeader(code)
			fmt.Fprintln(w, err)
			return
		}
		defer scanner.Close()

		w.Header().Set("Content-Type", "application/json; charset=UTF-8")

		handleError(s, "log.json", writeLogAsJSON(newFlushWriter(w), scanner))
	}
}

func writeLogAsJSON(w io.Writer, scanner api.LogScanner) error {
	if _, err := io.WriteString(w, "[\n"); err != nil {
		return err
	}

	first := true
	for scanner.Scan() {
		if !first {
			if _, err := io.WriteString(w, ",\n"); err != nil {
				return err
			}
		}
		first = false

		raw, err := json.Marshal(scanner.Record())
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, "  "+string(raw)); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "\n]\n")
	return err
}
