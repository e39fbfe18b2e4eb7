package logconv

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	api "github.com/ghostinator/netdog/lib-netdog"
)

var tsvEscaper = strings.NewReplacer("\t", `\t`, "\n", `\n`, "\r", `\r`, `\`, `\\`)

func ToTSV(w io.Writer, s api.LogScanner) error {
	for s.Scan() {
		r := s.Record()

		var extra []byte
		if len(r.Extra) > 0 {
			extra, _ = json.Marshal(r.Extra)
		}

		_, err := fmt.Fprintf(
			w,
			"%s\t%s\t%.3f\t%s\t%s\t%s\n",
			r.Time.Format(time.RFC3339),
			r.Status,
			float64(r.Latency.Microseconds())/1000,
			tsvEscaper.Replace(r.Target.String()),
			tsvEscaper.Replace(r.Message),
			extra,
		)
		if err != nil {
			return err
		}
	}

	return nil
}
