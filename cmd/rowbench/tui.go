package main

import (
	"rowbench/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	tuiSeed    uint64
	tuiLogFile string
	tuiCmd     = &cobra.Command{
		Use:   "tui",
		Short: "Drive the row store interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, closeLog, err := fileLogger(tuiLogFile)
			if err != nil {
				return err
			}
			defer closeLog()

			store, shutdown, err := newStore(cmd.Context(), log, cmd.Flags().Changed("seed"), tuiSeed)
			if err != nil {
				return err
			}
			defer shutdown()

			model := ui.NewAppModel(store, log).AsTeaModel()
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}
)

func init() {
	tuiCmd.Flags().Uint64Var(&tuiSeed, "seed", 0, "Seed for reproducible labels (random when unset)")
	tuiCmd.Flags().StringVar(&tuiLogFile, "log-file", "", "Write logs to this file (discarded when unset)")
}
