package endpoint

import (
	"net/http"

	"github.com/NYTimes/gziphandler"
)

// New creates the handler for the status endpoints.
func New(s Store) http.Handler {
	m := http.NewServeMux()

	m.Handle("/status", http.RedirectHandler("/status.html", http.StatusMovedPermanently))
	m.HandleFunc("/status.txt", StatusTextEndpoint(s))
	m.HandleFunc("/status.html", StatusHTMLEndpoint(s))
	m.HandleFunc("/status.json", StatusJSONEndpoint(s))

	m.Handle("/log", http.RedirectHandler("/log.tsv", http.StatusMovedPermanently))
	m.HandleFunc("/log.tsv", LogTSVEndpoint(s))
	m.HandleFunc("/log.csv", LogCSVEndpoint(s))
	m.HandleFunc("/log.json", LogJSONEndpoint(s))

	m.Handle("/targets", http.RedirectHandler("/targets.txt", http.StatusMovedPermanently))
	m.HandleFunc("/targets.txt", TargetsTextEndpoint(s))
	m.HandleFunc("/targets.json", TargetsJSONEndpoint(s))

	m.Handle("/metrics", MetricsEndpoint(s))
	m.HandleFunc("/healthz", HealthzEndpoint(s))

	m.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			http.Redirect(w, r, "/status.html", http.StatusFound)
		} else {
			http.NotFound(w, r)
		}
	})

	return gziphandler.GzipHandler(m)
}

func handleError(s Store, scope string, err error) {
	if err != nil {
		s.ReportInternalError("endpoint:"+scope, err.Error())
	}
}
