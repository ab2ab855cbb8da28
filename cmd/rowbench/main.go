// Command rowbench drives the row store: interactively, from scripts, or by
// comparing state snapshots.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

const (
	appName    = "rowbench"
	appVersion = "0.1.0"
)

var (
	logLevel string
	rootCmd  = &cobra.Command{
		Use:           appName,
		Short:         "Row store benchmark driver",
		Long:          `rowbench creates, appends, updates, selects, swaps and deletes large row sets.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel)
		},
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, appVersion)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "Log level (debug, info, warn, error)")
	rootCmd.AddCommand(versionCmd, runCmd, diffCmd, tuiCmd)
}

// level is the parsed --log-level, set before any subcommand runs.
var level slog.Level

// setupLogging installs a tint handler on stderr as the default slog logger.
func setupLogging(name string) error {
	if err := level.UnmarshalText([]byte(strings.ToUpper(name))); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", name, err)
	}
	slog.SetDefault(slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000", // Like time.TimeOnly plus milliseconds.
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	})))
	return nil
}

// fileLogger logs to path without colour; the terminal belongs to the TUI.
func fileLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	l := slog.New(tint.NewHandler(f, &tint.Options{Level: level, NoColor: true}))
	return l, func() { f.Close() }, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var d *diffError
		if !errors.As(err, &d) {
			fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		}
		os.Exit(1)
	}
}
