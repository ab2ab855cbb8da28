package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"rowbench/internal/rowstore"
	"rowbench/internal/script"
	"rowbench/internal/trace"

	"github.com/spf13/cobra"
)

var (
	runSeed   uint64
	runFormat string
	runCmd    = &cobra.Command{
		Use:   "run [flags] SCRIPT|-",
		Short: "Apply an operation script and print the resulting snapshot",
		Long: `Reads a script (YAML "steps:" document or one "op args..." per line),
applies it to a fresh store and writes the canonical JSON snapshot to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := script.ParseFormat(runFormat)
			if err != nil {
				return err
			}
			in, closeIn, err := openInput(args[0])
			if err != nil {
				return err
			}
			defer closeIn()
			return runScript(cmd.Context(), in, format, cmd.Flags().Changed("seed"), runSeed, cmd.OutOrStdout())
		},
	}
)

func init() {
	runCmd.Flags().Uint64Var(&runSeed, "seed", 0, "Seed for reproducible labels (random when unset)")
	runCmd.Flags().StringVarP(&runFormat, "format", "f", "auto", "Script format: auto, yaml or lines")
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

// newStore builds a store logging to log, seeded when requested, wrapped in
// tracing.
func newStore(ctx context.Context, log *slog.Logger, seeded bool, seed uint64) (*trace.Store, func(), error) {
	opts := []rowstore.Option{rowstore.WithLogger(log)}
	if seeded {
		opts = append(opts, rowstore.WithSeed(seed))
	}
	tp, err := trace.Setup(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("tracing: %w", err)
	}
	shutdown := func() {
		if err := tp.Shutdown(context.WithoutCancel(ctx)); err != nil {
			log.Warn("trace shutdown", "err", err)
		}
	}
	return trace.NewStore(ctx, tp.Tracer(), rowstore.New(opts...)), shutdown, nil
}

func runScript(ctx context.Context, in io.Reader, format script.Format, seeded bool, seed uint64, out io.Writer) error {
	sc, err := script.Parse(in, format)
	if err != nil {
		return err
	}
	store, shutdown, err := newStore(ctx, slog.Default(), seeded, seed)
	if err != nil {
		return err
	}
	defer shutdown()

	slog.Debug("applying script", "steps", len(sc.Steps))
	if err := sc.Apply(store); err != nil {
		return err
	}
	return store.Snapshot().Encode(out)
}
