package main

import (
	"errors"
	"fmt"

	"github.com/ghostinator/netdog/internal/adapter"
	"github.com/ghostinator/netdog/internal/nderr"
	"github.com/ghostinator/netdog/internal/probe"
)

var ErrInvalidTargets = errors.New("invalid targets")

// discoverGateway is for tests.
var discoverGateway = adapter.DefaultGateway

// DefaultTargets returns the built-in target set that is used when no
// target is given on the command line.
//
// It is the default gateway plus well known public anycast addresses, and
// a couple of names that the OS itself uses for connectivity checks. The
// gateway target is dropped with a warning when the gateway can not be
// discovered, because the rest of the set still proves connectivity.
func DefaultTargets() (targets []string, warnings []string) {
	if gw, err := discoverGateway(); err == nil {
		targets = append(targets, "ping:"+gw+"#Default Gateway")
	} else {
		warnings = append(warnings, fmt.Sprintf("warning: failed to discover the default gateway, so the gateway target is disabled: %s", err))
	}

	targets = append(targets,
		"ping:1.1.1.1#Cloudflare DNS",
		"ping:8.8.8.8#Google DNS",
		"dns:www.google.com",
		"dns:www.msftconnecttest.com",
	)

	return targets, warnings
}

// ParseTargets makes the Probers for the target strings.
func ParseTargets(targets []string) ([]probe.Prober, error) {
	probers := make([]probe.Prober, 0, len(targets))

	errs := &nderr.ListBuilder{What: ErrInvalidTargets}

	for _, t := range targets {
		p, err := probe.New(t)
		if err != nil {
			errs.Pushf("%s: %s", t, err)
			continue
		}
		probers = append(probers, p)
	}

	if err := errs.Build(); err != nil {
		return nil, err
	}

	return probers, nil
}
