package adapter

import (
	"errors"

	gnet "github.com/shirou/gopsutil/v4/net"
)

var ErrNoIOStat = errors.New("no I/O counters for the adapter")

// ioCounters is for tests.
var ioCounters = gnet.IOCounters

// IOStat is a snapshot of the transfer counters of one adapter.
// The values are cumulative since the OS booted, not per check.
type IOStat struct {
	BytesSent   uint64
	BytesRecv   uint64
	PacketsSent uint64
	PacketsRecv uint64
}

// ReadIOStat reads the current transfer counters of the named adapter.
func ReadIOStat(name string) (IOStat, error) {
	counters, err := ioCounters(true)
	if err != nil {
		return IOStat{}, err
	}

	for _, c := range counters {
		if c.Name == name {
			return IOStat{
				BytesSent:   c.BytesSent,
				BytesRecv:   c.BytesRecv,
				PacketsSent: c.PacketsSent,
				PacketsRecv: c.PacketsRecv,
			}, nil
		}
	}

	return IOStat{}, ErrNoIOStat
}
