package adapter

import (
	"github.com/jackpal/gateway"
)

// discoverGateway is for tests.
var discoverGateway = gateway.DiscoverGateway

// DefaultGateway returns the IPv4 address of the default gateway of this
// host, like "192.168.1.1".
//
// Discovery reads the OS routing table, so it reflects the routes at call
// time. The result is used to build the default watch target set; callers
// that need it fresh should call again rather than cache it.
func DefaultGateway() (string, error) {
	ip, err := discoverGateway()
	if err != nil {
		return "", err
	}
	return ip.String(), nil
}
