package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/ghostinator/netdog/internal/probe"
	"github.com/ghostinator/netdog/internal/store"
)

// RunOneshot checks the connectivity once and exits.
//
// This mode is a diagnostic: it runs a single probe round and never touches
// the adapter, so it is safe to run next to a serving watchdog.
func (cmd *NetdogCommand) RunOneshot(ctx context.Context, s *store.Store) (exitCode int) {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := probe.NewRunner(cmd.Probers)
	for _, t := range runner.Targets() {
		s.ActivateTarget(t)
	}

	summary := runner.Run(ctx, s)

	if summary.Healthy() {
		return 0
	}
	return 1
}
