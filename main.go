package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/atomicstack/marcos/internal/app"
	"github.com/atomicstack/marcos/internal/config"
	"github.com/atomicstack/marcos/internal/logging"
	"github.com/atomicstack/marcos/internal/logging/events"
	"github.com/atomicstack/marcos/internal/theme"
	"golang.org/x/term"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stderr, app.Run))
}

// execute runs the root command and maps failures to exit codes: 1 for an
// unusable start path or a runtime error, 2 for bad configuration.
func execute(args []string, stderr io.Writer, run func(app.Config) error) int {
	var runErr error
	cmd := config.NewCommand(func(cfg config.Config) error {
		runErr = start(cfg, run)
		return nil
	})
	cmd.SetArgs(args)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 2
	}
	defer logging.Close()

	var startErr *app.StartPathError
	switch {
	case runErr == nil:
		return 0
	case errors.As(runErr, &startErr):
		logging.Error(runErr)
		fmt.Fprintln(stderr, app.InvalidStartPathMessage)
		return 1
	default:
		logging.Error(runErr)
		fmt.Fprintf(stderr, "Error: %v\n", runErr)
		return 1
	}
}

func start(cfg config.Config, run func(app.Config) error) error {
	if err := logging.Configure(cfg.Logging.FilePath, cfg.Logging.Level); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	logging.SetTraceEnabled(cfg.Logging.Trace)
	traceStartup(cfg)
	ensureConfigDir()
	return run(cfg.App)
}

// ensureConfigDir seeds the config directory with an empty theme file on
// first run. Failures are logged and do not stop startup.
func ensureConfigDir() {
	path := filepath.Join(config.ConfigDir(), theme.FileName)
	created, err := theme.EnsureFile(path)
	if err != nil {
		logging.Warnf("cannot create %s: %v", path, err)
		return
	}
	if created {
		logging.Infof("created %s", path)
	}
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["log-file"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

type ttyDetails struct {
	Detected *ttyProbe  `json:"detected,omitempty"`
	Probes   []ttyProbe `json:"probes"`
}

type ttyProbe struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails reports which standard descriptors are terminals and the
// size of the first one that answers.
func collectTTYDetails() ttyDetails {
	var details ttyDetails
	for _, f := range []*os.File{os.Stdin, os.Stdout, os.Stderr} {
		probe := probeTTY(f)
		details.Probes = append(details.Probes, probe)
		if details.Detected == nil && probe.IsTerminal && probe.Error == "" {
			detected := probe
			details.Detected = &detected
		}
	}
	return details
}

func probeTTY(f *os.File) ttyProbe {
	probe := ttyProbe{Name: ttyName(f)}
	fd := int(f.Fd())
	if fd < 0 || !term.IsTerminal(fd) {
		return probe
	}
	probe.IsTerminal = true
	w, h, err := term.GetSize(fd)
	if err != nil {
		probe.Error = err.Error()
		return probe
	}
	probe.Width, probe.Height = w, h
	return probe
}

func ttyName(f *os.File) string {
	switch f {
	case os.Stdin:
		return "stdin"
	case os.Stdout:
		return "stdout"
	case os.Stderr:
		return "stderr"
	}
	return f.Name()
}
