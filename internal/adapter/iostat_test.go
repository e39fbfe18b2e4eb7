package adapter

import (
	"errors"
	"testing"

	gnet "github.com/shirou/gopsutil/v4/net"
)

func TestReadIOStat(t *testing.T) {
	original := ioCounters
	ioCounters = func(pernic bool) ([]gnet.IOCountersStat, error) {
		if !pernic {
			t.Errorf("the counters should be queried per NIC")
		}
		return []gnet.IOCountersStat{
			{Name: "lo", BytesSent: 1, BytesRecv: 2},
			{Name: "eth0", BytesSent: 100, BytesRecv: 200, PacketsSent: 10, PacketsRecv: 20},
		}, nil
	}
	t.Cleanup(func() {
		ioCounters = original
	})

	stat, err := ReadIOStat("eth0")
	if err != nil {
		t.Fatalf("failed to read I/O counters: %s", err)
	}
	if stat.BytesSent != 100 || stat.BytesRecv != 200 || stat.PacketsSent != 10 || stat.PacketsRecv != 20 {
		t.Errorf("unexpected counters: %+v", stat)
	}

	if _, err := ReadIOStat("eth1"); !errors.Is(err, ErrNoIOStat) {
		t.Errorf("expected ErrNoIOStat but got %v", err)
	}
}
