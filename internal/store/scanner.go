package store

import (
	"errors"
	"os"
	"sort"
	"time"

	api "github.com/ghostinator/netdog/lib-netdog"
)

// fileScannerSet reads records of a period from multiple log files, in
// time order even when the files overlap.
type fileScannerSet struct {
	scanners []api.LogScanner
	scanned  bool
	earliest int
}

func newFileScannerSet(paths []string, since, until time.Time) (*fileScannerSet, error) {
	var ss fileScannerSet
	min := time.Unix(1<<60-1, 0)

	for _, p := range paths {
		f, err := os.Open(p)
		if errors.Is(err, os.ErrNotExist) {
			continue
		} else if err != nil {
			ss.Close()
			return nil, err
		}

		s := api.NewLogScannerWithPeriod(f, since, until)
		if !s.Scan() {
			s.Close()
			continue
		}
		if t := s.Record().Time; t.Before(min) {
			ss.earliest = len(ss.scanners)
			min = t
		}
		ss.scanners = append(ss.scanners, s)
	}

	return &ss, nil
}

func (r *fileScannerSet) Close() error {
	var err error
	for _, s := range r.scanners {
		if e := s.Close(); e != nil {
			err = e
		}
	}
	return err
}

func (r *fileScannerSet) updateEarliest() {
	min := time.Unix(1<<60-1, 0)
	for i, s := range r.scanners {
		if t := s.Record().Time; t.Before(min) {
			r.earliest = i
			min = t
		}
	}
}

func (r *fileScannerSet) Scan() bool {
	if !r.scanned {
		r.scanned = true
		return len(r.scanners) > 0
	}

	if len(r.scanners) == 0 {
		return false
	}

	if r.scanners[r.earliest].Scan() {
		r.updateEarliest()
		return true
	}

	r.scanners[r.earliest].Close()
	r.scanners = append(r.scanners[:r.earliest], r.scanners[r.earliest+1:]...)
	r.updateEarliest()
	return len(r.scanners) > 0
}

func (r *fileScannerSet) Record() api.Record {
	return r.scanners[r.earliest].Record()
}

// inMemoryScanner is a LogScanner over the in-memory history, used when
// the store has no log file.
type inMemoryScanner struct {
	records []api.Record
	index   int
}

func newInMemoryScanner(s *Store, since, until time.Time) *inMemoryScanner {
	r := &inMemoryScanner{index: -1}
	for _, xs := range s.ProbeHistory() {
		for _, x := range xs.History {
			if !x.Time.Before(since) && x.Time.Before(until) {
				r.records = append(r.records, x)
			}
		}
	}
	sort.Slice(r.records, func(i, j int) bool {
		if !r.records[i].Time.Equal(r.records[j].Time) {
			return r.records[i].Time.Before(r.records[j].Time)
		}
		return r.records[i].Target.String() < r.records[j].Target.String()
	})
	return r
}

func (r *inMemoryScanner) Close() error {
	return nil
}

func (r *inMemoryScanner) Scan() bool {
	if r.index+1 >= len(r.records) {
		return false
	}
	r.index++
	return true
}

func (r *inMemoryScanner) Record() api.Record {
	return r.records[r.index]
}
