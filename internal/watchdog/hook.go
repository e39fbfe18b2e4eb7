package watchdog

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"time"

	api "github.com/ghostinator/netdog/lib-netdog"
)

// runHookCommand is for tests.
var runHookCommand = func(ctx context.Context, name string, env []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name)
	cmd.Env = append(os.Environ(), env...)

	buf := &bytes.Buffer{}
	cmd.Stdout = buf

	err := cmd.Run()
	return buf.Bytes(), err
}

// ResetHook runs an external command after every adapter reset attempt, so
// that operators can notify someone or collect extra diagnostics while the
// network is known to be broken.
//
// The reset detail is passed to the command in NETDOG_* environment
// variables. Every line the command prints to stdout that parses as a
// Netdog log record is stored into the log; the lib-netdog Logger writes
// lines in that format. Anything else on stdout is ignored.
type ResetHook struct {
	Command string
}

// Trigger runs the hook command for one reset attempt.
// Hook failures are absorbed into the log like every other error in a
// check round.
func (h ResetHook) Trigger(ctx context.Context, store Store, reset api.Record) {
	if h.Command == "" {
		return
	}

	// A stuck hook command must not stall the check loop.
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	env := []string{
		"NETDOG_ADAPTER=" + stringExtra(reset.Extra, "adapter"),
		"NETDOG_RESET_ID=" + stringExtra(reset.Extra, "reset_id"),
		"NETDOG_RESET_STATUS=" + reset.Status.String(),
		"NETDOG_RESET_MESSAGE=" + reset.Message,
	}

	stime := now()
	output, err := runHookCommand(ctx, h.Command, env)
	if err != nil {
		store.Report(hookTarget, api.Record{
			Time:    stime,
			Status:  api.StatusFailure,
			Latency: now().Sub(stime),
			Target:  hookTarget,
			Message: h.Command + ": " + err.Error(),
		})
		return
	}

	s := api.NewLogScanner(io.NopCloser(bytes.NewReader(output)))
	defer s.Close()
	for s.Scan() {
		r := s.Record()
		if r.Target == (api.Target{}) {
			r.Target = hookTarget
		}
		store.Report(hookTarget, r)
	}
}

func stringExtra(extra map[string]any, key string) string {
	s, _ := extra[key].(string)
	return s
}

var hookTarget = api.Target{Kind: "netdog", Address: "hook"}
