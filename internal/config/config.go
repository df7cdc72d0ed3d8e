package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/marcos/internal/app"
	"github.com/atomicstack/marcos/internal/logging"
	"github.com/atomicstack/marcos/internal/theme"
	"github.com/atomicstack/marcos/internal/userpath"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Level    string
	Trace    bool
}

const (
	envPrefix      = "MARCOS"
	configFileName = "config.toml"

	keyConfig        = "config"
	keyLogFile       = "log-file"
	keyLogLevel      = "log-level"
	keyTrace         = "trace"
	keyWatch         = "watch"
	keyWatchInterval = "watch-interval"
	keyIgnore        = "ignore"
	keyTheme         = "theme"
	keyFooter        = "footer"
	keyPreviewLines  = "preview-lines"

	defaultPreviewLines  = 200
	defaultWatchInterval = 300 * time.Millisecond
)

var recordedKeys = []string{
	keyConfig, keyLogFile, keyLogLevel, keyTrace, keyWatch, keyWatchInterval,
	keyIgnore, keyTheme, keyFooter, keyPreviewLines,
}

// NewCommand returns the root command. run receives the resolved
// configuration once flags, environment and config file are merged.
func NewCommand(run func(Config) error) *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:           "marcos [PATH]",
		Short:         "Browse directories in Miller columns",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("bind flags: %w", err)
			}
			cfg, err := resolve(v, args)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	flags := cmd.Flags()
	flags.String(keyConfig, "", "path to a config file (default "+filepath.Join(ConfigDir(), configFileName)+")")
	flags.String(keyLogFile, "", "path to the log file (logging is disabled when empty)")
	flags.String(keyLogLevel, logging.DefaultLevel, "log level: trace, debug, info, warn, error")
	flags.Bool(keyTrace, false, "enable verbose JSON trace logging")
	flags.Bool(keyWatch, false, "refresh tabs when their directories change on disk")
	flags.Duration(keyWatchInterval, defaultWatchInterval, "quiet period before a change refreshes tabs")
	flags.StringSlice(keyIgnore, nil, "glob patterns of entry names to hide")
	flags.String(keyTheme, "", "path to a style.toml theme (default "+filepath.Join(ConfigDir(), theme.FileName)+")")
	flags.Bool(keyFooter, false, "show the key hint row")
	flags.Int(keyPreviewLines, defaultPreviewLines, "maximum file lines read for the preview pane")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return cmd
}

// ConfigDir returns the directory searched for config.toml and style.toml.
func ConfigDir() string {
	return userpath.ConfigDir()
}

func resolve(v *viper.Viper, args []string) (Config, error) {
	if err := readConfigFile(v); err != nil {
		return Config{}, err
	}

	previewLines := v.GetInt(keyPreviewLines)
	if previewLines < 0 {
		return Config{}, fmt.Errorf("preview-lines must be >= 0 (got %d)", previewLines)
	}
	interval := v.GetDuration(keyWatchInterval)
	if interval <= 0 {
		return Config{}, fmt.Errorf("watch-interval must be > 0 (got %s)", interval)
	}

	startPath := "."
	if len(args) > 0 {
		startPath = args[0]
	}
	themePath := userpath.ExpandUser(strings.TrimSpace(v.GetString(keyTheme)))
	if themePath == "" {
		themePath = filepath.Join(ConfigDir(), theme.FileName)
	}

	cfg := Config{
		App: app.Config{
			StartPath:     startPath,
			Watch:         v.GetBool(keyWatch),
			WatchInterval: interval,
			Ignore:        splitList(v.GetStringSlice(keyIgnore)),
			ThemePath:     themePath,
			ShowFooter:    v.GetBool(keyFooter),
			PreviewLines:  previewLines,
		},
		Logging: Logging{
			FilePath: userpath.ExpandUser(v.GetString(keyLogFile)),
			Level:    v.GetString(keyLogLevel),
			Trace:    v.GetBool(keyTrace),
		},
		Flags: make(map[string]string, len(recordedKeys)),
		Args:  append([]string(nil), args...),
	}
	for _, key := range recordedKeys {
		cfg.Flags[key] = v.GetString(key)
	}
	cfg.Flags[keyIgnore] = strings.Join(cfg.App.Ignore, ",")
	cfg.Flags[keyPreviewLines] = strconv.Itoa(previewLines)
	return cfg, nil
}

// readConfigFile merges an explicit --config file, which must exist, or the
// default config.toml when present.
func readConfigFile(v *viper.Viper) error {
	path := userpath.ExpandUser(strings.TrimSpace(v.GetString(keyConfig)))
	explicit := path != ""
	if !explicit {
		path = filepath.Join(ConfigDir(), configFileName)
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// splitList accepts comma- or space-separated values from flags, env and file.
func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.FieldsFunc(value, func(r rune) bool {
			return r == ',' || r == ' '
		}) {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
