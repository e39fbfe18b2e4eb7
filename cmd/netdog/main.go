package main

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"text/template"
	"time"

	"github.com/spf13/pflag"

	"github.com/ghostinator/netdog/internal/adapter"
	"github.com/ghostinator/netdog/internal/meta"
	"github.com/ghostinator/netdog/internal/probe"
	"github.com/ghostinator/netdog/internal/schedule"
	"github.com/ghostinator/netdog/internal/store"
)

type NetdogCommand struct {
	OutStream io.Writer
	ErrStream io.Writer

	AdapterPattern string
	FailThreshold  time.Duration
	IntervalSpec   string
	OnResetCommand string
	ListenPort     int
	StorePath      string
	InstanceName   string
	OneshotMode    bool
	UserInfo       string
	CertPath       string
	KeyPath        string
	ShowVersion    bool
	ShowHelp       bool

	Schedule schedule.Schedule
	Finder   adapter.Finder
	Probers  []probe.Prober
}

var defaultNetdogCommand = &NetdogCommand{
	OutStream: os.Stdout,
	ErrStream: os.Stderr,
}

//go:embed help.txt
var helpText string

func (cmd *NetdogCommand) PrintUsage(detail bool) {
	tmpl := template.Must(template.New("help.txt").Parse(helpText))
	tmpl.Execute(cmd.ErrStream, map[string]interface{}{
		"Version": meta.Version,
		"Short":   !detail,
	})
}

func (cmd *NetdogCommand) ParseArgs(args []string) (exitCode int) {
	flags := pflag.NewFlagSet("netdog", pflag.ContinueOnError)

	flags.StringVarP(&cmd.AdapterPattern, "adapter", "a", "*", "Pattern of the network adapter name to watch")
	flags.DurationVarP(&cmd.FailThreshold, "fail-threshold", "t", 30*time.Second, "How long the connectivity has to keep failing before the adapter is reset")
	flags.StringVarP(&cmd.IntervalSpec, "interval", "i", "5s", "Interval of the connectivity checks, in a duration or a cron expression")
	flags.StringVarP(&cmd.OnResetCommand, "on-reset", "r", "", "Command to run after every adapter reset attempt")
	flags.IntVarP(&cmd.ListenPort, "port", "p", 9600, "HTTP listen port, or 0 to disable the status page")
	flags.StringVarP(&cmd.StorePath, "log-file", "f", "netdog_%Y%m%d.log", "Path to log file")
	flags.StringVarP(&cmd.InstanceName, "name", "n", "", "Instance name")
	flags.BoolVarP(&cmd.OneshotMode, "oneshot", "1", false, "Check the connectivity only once and exit without resetting anything")
	flags.StringVarP(&cmd.UserInfo, "user", "u", "", "Username and password for HTTP endpoint")
	flags.StringVarP(&cmd.CertPath, "ssl-cert", "c", "", "HTTPS certificate file")
	flags.StringVarP(&cmd.KeyPath, "ssl-key", "k", "", "HTTPS key file")
	flags.BoolVarP(&cmd.ShowVersion, "version", "v", false, "Show version")
	flags.BoolVarP(&cmd.ShowHelp, "help", "h", false, "Show help message")

	if err := flags.Parse(args[1:]); err != nil {
		fmt.Fprintln(cmd.ErrStream, err)
		fmt.Fprintf(cmd.ErrStream, "\nPlease see `%s -h` for more information.\n", args[0])
		return 2
	}

	if cmd.ShowVersion || cmd.ShowHelp {
		return 0
	}

	if cmd.FailThreshold <= 0 {
		fmt.Fprintln(cmd.ErrStream, "invalid argument: the fail threshold should be longer than 0s.")
		return 2
	}

	var err error
	cmd.Schedule, err = schedule.Parse(cmd.IntervalSpec)
	if err != nil {
		fmt.Fprintf(cmd.ErrStream, "invalid argument: the interval is invalid: %s\n", cmd.IntervalSpec)
		return 2
	}

	cmd.Finder, err = adapter.NewFinder(cmd.AdapterPattern)
	if err != nil {
		fmt.Fprintf(cmd.ErrStream, "invalid argument: the adapter pattern is invalid: %s\n", cmd.AdapterPattern)
		return 2
	}

	if cmd.OneshotMode {
		if flags.Changed("on-reset") {
			fmt.Fprintln(cmd.ErrStream, "warning: on-reset option will ignored in the oneshot mode.")
		}
		if flags.Changed("port") {
			fmt.Fprintln(cmd.ErrStream, "warning: port option will ignored in the oneshot mode.")
		}
		if flags.Changed("user") {
			fmt.Fprintln(cmd.ErrStream, "warning: user option will ignored in the oneshot mode.")
		}
		if flags.Changed("ssl-cert") || flags.Changed("ssl-key") {
			fmt.Fprintln(cmd.ErrStream, "warning: ssl cert and key options will ignored in the oneshot mode.")
		}
	} else {
		if cmd.CertPath != "" && cmd.KeyPath == "" || cmd.CertPath == "" && cmd.KeyPath != "" {
			fmt.Fprintln(cmd.ErrStream, "invalid argument: the both of -c and -k option is required if you want to use HTTPS.")
			return 2
		}
	}

	if cmd.StorePath == "-" {
		cmd.StorePath = ""
	}

	targets := flags.Args()
	if len(targets) == 0 {
		var warnings []string
		targets, warnings = DefaultTargets()
		for _, w := range warnings {
			fmt.Fprintln(cmd.ErrStream, w)
		}
	}

	cmd.Probers, err = ParseTargets(targets)
	if err != nil {
		fmt.Fprintln(cmd.ErrStream, err.Error())
		fmt.Fprintf(cmd.ErrStream, "\nPlease see `%s -h` for more information.\n", args[0])
		return 2
	}

	return 0
}

func (cmd *NetdogCommand) PrintVersion() {
	fmt.Fprintf(cmd.OutStream, "Netdog version %s (%s)\n", meta.Version, meta.Commit)
}

func (cmd *NetdogCommand) Run(args []string) (exitCode int) {
	if code := cmd.ParseArgs(args); code != 0 {
		return code
	}

	if cmd.ShowVersion {
		cmd.PrintVersion()
		return 0
	}

	if cmd.ShowHelp {
		cmd.PrintUsage(true)
		return 0
	}

	s, err := store.New(cmd.InstanceName, cmd.StorePath, cmd.OutStream)
	if err != nil {
		fmt.Fprintf(cmd.ErrStream, "error: failed to open log file: %s\n", err)
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cmd.OneshotMode {
		exitCode = cmd.RunOneshot(ctx, s)
	} else {
		exitCode = cmd.RunServer(ctx, s)
	}

	s.Close()

	healthy, _ := s.Errors()
	if exitCode == 0 && !healthy {
		return 1
	}

	return exitCode
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "oneshot":
			os.Args[1] = "-1"
			os.Exit(defaultNetdogCommand.Run(os.Args))
		case "conv", "convert":
			os.Exit(defaultConvCommand.Run(os.Args))
		}
	}

	os.Exit(defaultNetdogCommand.Run(os.Args))
}
