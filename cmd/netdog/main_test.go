package main

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"
)

func TestNetdogCommand_ParseArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"explicit_target", []string{"netdog", "dummy:healthy"}, 0},
		{"full_options", []string{"netdog", "-a", "eth*", "-t", "1m", "-i", "10s", "dummy:healthy"}, 0},
		{"cron_interval", []string{"netdog", "-i", "*/5 * * * *", "dummy:healthy"}, 0},
		{"broken_interval", []string{"netdog", "-i", "often", "dummy:healthy"}, 2},
		{"negative_threshold", []string{"netdog", "-t", "-5s", "dummy:healthy"}, 2},
		{"broken_adapter_pattern", []string{"netdog", "-a", "[", "dummy:healthy"}, 2},
		{"cert_without_key", []string{"netdog", "-c", "cert.pem", "dummy:healthy"}, 2},
		{"unsupported_target", []string{"netdog", "no-such-kind:hello"}, 2},
		{"unknown_flag", []string{"netdog", "--no-such-flag"}, 2},
		{"help", []string{"netdog", "-h"}, 0},
		{"version", []string{"netdog", "-v"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &NetdogCommand{OutStream: io.Discard, ErrStream: io.Discard}

			if code := cmd.ParseArgs(tt.args); code != tt.code {
				t.Errorf("expected exit code %d but got %d", tt.code, code)
			}
		})
	}
}

func TestNetdogCommand_ParseArgs_values(t *testing.T) {
	cmd := &NetdogCommand{OutStream: io.Discard, ErrStream: io.Discard}

	code := cmd.ParseArgs([]string{"netdog", "-a", "Ethernet*", "-t", "2m", "-i", "30s", "-p", "8080", "-f", "-", "-r", "/usr/local/bin/notify", "dummy:healthy", "dummy:failure#b"})
	if code != 0 {
		t.Fatalf("unexpected exit code %d", code)
	}

	if cmd.AdapterPattern != "Ethernet*" {
		t.Errorf("unexpected adapter pattern: %s", cmd.AdapterPattern)
	}
	if cmd.FailThreshold != 2*time.Minute {
		t.Errorf("unexpected fail threshold: %s", cmd.FailThreshold)
	}
	if cmd.Schedule.String() != "30s" {
		t.Errorf("unexpected schedule: %s", cmd.Schedule)
	}
	if cmd.ListenPort != 8080 {
		t.Errorf("unexpected port: %d", cmd.ListenPort)
	}
	if cmd.StorePath != "" {
		t.Errorf("expected empty store path but got %q", cmd.StorePath)
	}
	if cmd.OnResetCommand != "/usr/local/bin/notify" {
		t.Errorf("unexpected on-reset command: %q", cmd.OnResetCommand)
	}
	if len(cmd.Probers) != 2 {
		t.Errorf("expected 2 probers but got %d", len(cmd.Probers))
	}
}

func TestNetdogCommand_ParseArgs_defaults(t *testing.T) {
	cmd := &NetdogCommand{OutStream: io.Discard, ErrStream: io.Discard}

	if code := cmd.ParseArgs([]string{"netdog", "dummy:healthy"}); code != 0 {
		t.Fatalf("unexpected exit code %d", code)
	}

	if cmd.AdapterPattern != "*" {
		t.Errorf("unexpected adapter pattern: %s", cmd.AdapterPattern)
	}
	if cmd.FailThreshold != 30*time.Second {
		t.Errorf("unexpected fail threshold: %s", cmd.FailThreshold)
	}
	if cmd.Schedule.String() != "5s" {
		t.Errorf("unexpected schedule: %s", cmd.Schedule)
	}
	if cmd.ListenPort != 9600 {
		t.Errorf("unexpected port: %d", cmd.ListenPort)
	}
	if cmd.StorePath != "netdog_%Y%m%d.log" {
		t.Errorf("unexpected store path: %s", cmd.StorePath)
	}
}

func TestNetdogCommand_ParseArgs_oneshotWarnings(t *testing.T) {
	var buf bytes.Buffer
	cmd := &NetdogCommand{OutStream: io.Discard, ErrStream: &buf}

	if code := cmd.ParseArgs([]string{"netdog", "-1", "-p", "8080", "-r", "notify", "dummy:healthy"}); code != 0 {
		t.Fatalf("unexpected exit code %d", code)
	}

	if !strings.Contains(buf.String(), "port option will ignored") {
		t.Errorf("expected warning about the port option but got: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "on-reset option will ignored") {
		t.Errorf("expected warning about the on-reset option but got: %s", buf.String())
	}
}

func TestNetdogCommand_PrintVersion(t *testing.T) {
	var buf bytes.Buffer
	cmd := &NetdogCommand{OutStream: &buf, ErrStream: io.Discard}

	cmd.PrintVersion()

	if !strings.HasPrefix(buf.String(), "Netdog version ") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestNetdogCommand_PrintUsage(t *testing.T) {
	var short, long bytes.Buffer

	(&NetdogCommand{OutStream: io.Discard, ErrStream: &short}).PrintUsage(false)
	(&NetdogCommand{OutStream: io.Discard, ErrStream: &long}).PrintUsage(true)

	if !strings.Contains(short.String(), "Usage: netdog") {
		t.Errorf("expected usage line in the short help:\n%s", short.String())
	}
	if strings.Contains(short.String(), "--fail-threshold") {
		t.Errorf("expected no option details in the short help:\n%s", short.String())
	}
	if !strings.Contains(long.String(), "--fail-threshold") {
		t.Errorf("expected option details in the long help:\n%s", long.String())
	}
}
