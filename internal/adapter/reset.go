package adapter

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/ghostinator/netdog/internal/textdecode"
)

func resetTimeout() time.Duration {
	d, err := time.ParseDuration(os.Getenv("NETDOG_RESET_TIMEOUT"))
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// Resetter is the remediation actuator: it kicks a network adapter by
// disabling and re-enabling it.
type Resetter interface {
	// Reset disables the adapter and enables it again.
	//
	// Resetting an adapter that is already down, or already up, is not an
	// error; the OS primitives used here are no-ops in that case.
	Reset(ctx context.Context, a Adapter) error
}

// runCommand is for tests.
var runCommand = func(ctx context.Context, name string, args ...string) (output string, err error) {
	cmd := exec.CommandContext(ctx, name, args...)

	buf := &bytes.Buffer{}
	cmd.Stdout = buf
	cmd.Stderr = buf

	err = cmd.Run()

	output, e := textdecode.Bytes(buf.Bytes())
	if err == nil {
		err = e
	}

	return strings.TrimSpace(output), err
}

// SystemResetter is a Resetter that uses the network management command of
// the OS. The exact command depends on the platform; see resetCommands.
type SystemResetter struct{}

func NewResetter() SystemResetter {
	return SystemResetter{}
}

func (r SystemResetter) Reset(ctx context.Context, a Adapter) error {
	ctx, cancel := context.WithTimeout(ctx, resetTimeout())
	defer cancel()

	for _, cmdline := range resetCommands(a.Name) {
		output, err := runCommand(ctx, cmdline[0], cmdline[1:]...)
		if err != nil {
			if output != "" {
				return fmt.Errorf("%s: %w: %s", strings.Join(cmdline, " "), err, output)
			}
			return fmt.Errorf("%s: %w", strings.Join(cmdline, " "), err)
		}
	}

	return nil
}
