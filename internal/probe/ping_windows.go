//go:build windows
// +build windows

package probe

import (
	"context"
)

func (p *simplePinger) startPingers(ctx context.Context) error {
	// Windows can use the privileged mode without administrator rights.
	p.v4.SetPrivileged(true)
	p.v6.SetPrivileged(true)

	if err := p.v4.Start(ctx); err != nil {
		return err
	}
	return p.v6.Start(ctx)
}
