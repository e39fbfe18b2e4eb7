package adapter

import (
	"errors"
	"net"
	"strings"

	"github.com/gobwas/glob"
)

var (
	// ErrAdapterNotFound means no network adapter matched the watch pattern.
	// This is a per-check condition, not a fatal one; the adapter can appear later.
	ErrAdapterNotFound = errors.New("no adapter matched the pattern")

	ErrInvalidPattern = errors.New("invalid adapter pattern")
)

// interfaces is for tests.
var interfaces = net.Interfaces

// Adapter is a snapshot of an OS network interface.
type Adapter struct {
	// Name is the OS name of the interface, like "eth0" or "Ethernet 2".
	Name string

	// Index is the OS index of the interface.
	Index int

	// HardwareAddr is the MAC address, or empty for interfaces without one.
	HardwareAddr string
}

// Finder selects the network adapter to watch.
//
// Find is called at the start of every check so that an adapter that
// disappears or comes back between checks is noticed.
type Finder interface {
	// Find returns the adapter to watch, or ErrAdapterNotFound.
	Find() (Adapter, error)

	// Pattern returns the pattern this finder matches against, for display.
	Pattern() string
}

// SystemFinder is a Finder that enumerates the OS network interfaces and
// picks the first administratively-up, non-loopback one whose name matches
// a glob pattern. The match is case-insensitive, and the enumeration order
// is the OS order, so the pick is deterministic.
type SystemFinder struct {
	pattern string
	matcher glob.Glob
}

func NewFinder(pattern string) (SystemFinder, error) {
	g, err := glob.Compile(strings.ToLower(pattern))
	if err != nil {
		return SystemFinder{}, errors.Join(ErrInvalidPattern, err)
	}

	return SystemFinder{
		pattern: pattern,
		matcher: g,
	}, nil
}

func (f SystemFinder) Pattern() string {
	return f.pattern
}

func (f SystemFinder) Find() (Adapter, error) {
	ifs, err := interfaces()
	if err != nil {
		return Adapter{}, err
	}

	for _, x := range ifs {
		if x.Flags&net.FlagUp == 0 || x.Flags&net.FlagLoopback != 0 {
			continue
		}
		if x.Name == "" || !f.matcher.Match(strings.ToLower(x.Name)) {
			continue
		}

		return Adapter{
			Name:         x.Name,
			Index:        x.Index,
			HardwareAddr: x.HardwareAddr.String(),
		}, nil
	}

	return Adapter{}, ErrAdapterNotFound
}
