package endpoint

import (
	_ "embed"
	"fmt"
	"html/template"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	api "github.com/ghostinator/netdog/lib-netdog"
)

//go:embed templates/base.html
var baseHTMLTemplateStr string

var baseHTMLTemplate = template.Must(template.New("base.html").Funcs(templateFuncs).Parse(baseHTMLTemplateStr))

func loadHTMLTemplate(s string) *template.Template {
	return template.Must(
		template.Must(baseHTMLTemplate.Clone()).Parse(s),
	)
}

var (
	templateFuncs = map[string]interface{}{
		"sort_history": func(hm map[string]api.ProbeHistory) []api.ProbeHistory {
			hs := make([]api.ProbeHistory, 0, len(hm))
			for _, h := range hm {
				hs = append(hs, h)
			}
			sort.Slice(hs, func(i, j int) bool {
				return hs[i].Target.String() < hs[j].Target.String()
			})
			return hs
		},
		"invert_windows": func(xs []api.FailureWindow) []api.FailureWindow {
			rs := make([]api.FailureWindow, len(xs))
			for i, x := range xs {
				rs[len(xs)-i-1] = x
			}
			return rs
		},
		"pad_records": func(length int, rs []api.Record) []struct{} {
			if len(rs) >= length {
				return []struct{}{}
			}
			return make([]struct{}, length-len(rs))
		},
		"is_unknown": func(s api.Status) bool {
			return s == api.StatusUnknown
		},
		"is_aborted": func(s api.Status) bool {
			return s == api.StatusAborted
		},
		"is_failure": func(s api.Status) bool {
			return s == api.StatusFailure
		},
		"is_degrade": func(s api.Status) bool {
			return s == api.StatusDegrade
		},
		"is_healthy": func(s api.Status) bool {
			return s == api.StatusHealthy
		},
		"to_lower": func(s fmt.Stringer) string {
			return strings.ToLower(s.String())
		},
		"state_class": func(s string) string {
			return strings.ToLower(s)
		},
		"time2str": func(t time.Time) string {
			return t.Format(time.RFC3339)
		},
		"time2str_or_never": func(t time.Time) string {
			if t.IsZero() {
				return "never"
			}
			return t.Format(time.RFC3339)
		},
		"rel_time": func(t, base time.Time) string {
			if t.IsZero() {
				return "never"
			}
			return humanize.RelTime(t, base, "ago", "later")
		},
		"latency2str": func(d time.Duration) string {
			return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000)
		},
	}
)
