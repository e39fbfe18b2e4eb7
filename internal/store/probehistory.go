package store

import (
	api "github.com/ghostinator/netdog/lib-netdog"
)

// probeHistory is the recent records of a single target.
type probeHistory struct {
	Target  api.Target
	Records []api.Record
}

// append adds a record, keeping the records in time order and the history
// within the length limit.
func (ph *probeHistory) append(r api.Record) {
	i := len(ph.Records)
	for i > 0 && ph.Records[i-1].Time.After(r.Time) {
		i--
	}

	ph.Records = append(ph.Records, api.Record{})
	copy(ph.Records[i+1:], ph.Records[i:])
	ph.Records[i] = r

	if len(ph.Records) > PROBE_HISTORY_LEN {
		ph.Records = ph.Records[len(ph.Records)-PROBE_HISTORY_LEN:]
	}
}

// MakeReport converts to the document type, with at most length records.
func (ph probeHistory) MakeReport(length int) api.ProbeHistory {
	l := len(ph.Records) - length
	if l < 0 {
		l = 0
	}

	r := api.ProbeHistory{
		Target:  ph.Target,
		History: ph.Records[l:],
	}

	if len(ph.Records) > 0 {
		latest := ph.Records[len(ph.Records)-1]
		r.Status = latest.Status
		r.Updated = latest.Time
	}

	return r
}

type probeHistoryMap map[string]*probeHistory

func (hs probeHistoryMap) Append(r api.Record) {
	k := r.Target.String()

	if h, ok := hs[k]; ok {
		h.append(r)
	} else {
		hs[k] = &probeHistory{
			Target:  r.Target,
			Records: []api.Record{r},
		}
	}
}
