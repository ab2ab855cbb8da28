package main

import (
	"errors"
	"fmt"

	"rowbench/internal/snapshot"

	"github.com/spf13/cobra"
)

// diffError signals differing snapshots; the patch is already printed.
type diffError struct{ ops int }

func (e *diffError) Error() string { return fmt.Sprintf("snapshots differ in %d operations", e.ops) }

var diffCmd = &cobra.Command{
	Use:   "diff A.json B.json",
	Short: "Compare two snapshots and print the JSON patch from A to B",
	Long:  `Exits 0 when the snapshots hold the same state and 1 when they differ.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch, err := snapshot.CompareFiles(args[0], args[1])
		if errors.Is(err, snapshot.ErrNoChanges) {
			fmt.Fprintln(cmd.OutOrStdout(), "identical")
			return nil
		}
		if err != nil {
			return err
		}
		if err := snapshot.WritePatch(cmd.OutOrStdout(), patch); err != nil {
			return err
		}
		return &diffError{ops: len(patch)}
	},
}
