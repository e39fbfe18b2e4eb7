package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/ghostinator/netdog/internal/adapter"
	"github.com/ghostinator/netdog/internal/endpoint"
	"github.com/ghostinator/netdog/internal/meta"
	"github.com/ghostinator/netdog/internal/probe"
	"github.com/ghostinator/netdog/internal/store"
	"github.com/ghostinator/netdog/internal/watchdog"
	api "github.com/ghostinator/netdog/lib-netdog"
)

func (cmd *NetdogCommand) reportStartLog(s *store.Store, protocol, listen string) {
	var targets []string
	for _, p := range cmd.Probers {
		targets = append(targets, p.Target().String())
	}

	t := api.Target{Kind: "netdog", Address: "server"}

	extra := map[string]interface{}{
		"adapter":        cmd.AdapterPattern,
		"fail_threshold": cmd.FailThreshold.String(),
		"interval":       cmd.Schedule.String(),
		"targets":        targets,
		"version":        fmt.Sprintf("%s (%s)", meta.Version, meta.Commit),
	}
	if listen != "" {
		extra["url"] = fmt.Sprintf("%s://%s", protocol, listen)
	}

	s.Report(t, api.Record{
		Time:    time.Now(),
		Status:  api.StatusHealthy,
		Target:  t,
		Message: "start Netdog server",
		Extra:   extra,
	})
}

// httpService runs the status endpoint as a suture.Service.
type httpService struct {
	server            *http.Server
	certPath, keyPath string
	reportError       func(message string)
}

func (h httpService) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		if err := h.server.Shutdown(context.Background()); err != nil {
			h.reportError(err.Error())
		}
	}()

	var err error
	if h.certPath != "" {
		err = h.server.ListenAndServeTLS(h.certPath, h.keyPath)
	} else {
		err = h.server.ListenAndServe()
	}
	if errors.Is(err, http.ErrServerClosed) {
		return ctx.Err()
	}
	return err
}

func (cmd *NetdogCommand) RunServer(ctx context.Context, s *store.Store) (exitCode int) {
	protocol := "http"
	if cmd.CertPath != "" {
		protocol = "https"
		if _, err := os.Stat(cmd.CertPath); os.IsNotExist(err) {
			fmt.Fprintf(cmd.ErrStream, "error: certificate file does not exist: %s\n", cmd.CertPath)
			return 2
		}
		if _, err := os.Stat(cmd.KeyPath); os.IsNotExist(err) {
			fmt.Fprintf(cmd.ErrStream, "error: key file does not exist: %s\n", cmd.KeyPath)
			return 2
		}
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := s.Restore(); err != nil {
		fmt.Fprintf(cmd.ErrStream, "error: failed to read log file: %s\n", err)
		return 1
	}

	runner := probe.NewRunner(cmd.Probers)
	for _, t := range runner.Targets() {
		s.ActivateTarget(t)
	}

	dog := watchdog.New(cmd.Finder, adapter.NewResetter(), runner, cmd.Schedule, cmd.FailThreshold, s)
	dog.Hook = watchdog.ResetHook{Command: cmd.OnResetCommand}

	sup := suture.New("netdog", suture.Spec{
		EventHook: func(e suture.Event) {
			s.ReportInternalError("supervisor", e.String())
		},
	})
	sup.Add(dog)

	var listen string
	if cmd.ListenPort > 0 {
		listen = fmt.Sprintf("0.0.0.0:%d", cmd.ListenPort)
		sup.Add(httpService{
			server: &http.Server{
				Addr:    listen,
				Handler: endpoint.WithBasicAuth(endpoint.New(s), cmd.UserInfo),
			},
			certPath: cmd.CertPath,
			keyPath:  cmd.KeyPath,
			reportError: func(message string) {
				s.ReportInternalError("endpoint", message)
			},
		})
	}

	cmd.reportStartLog(s, protocol, listen)

	err := sup.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		s.ReportInternalError("server", err.Error())
		return 1
	}

	return 0
}
