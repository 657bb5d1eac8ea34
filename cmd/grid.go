// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var gridPollInterval time.Duration

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Interactive motor array TUI",
	Long: `Open an interactive view of the 8x12 motor array.

The motor status and opto line status are polled continuously. Move the
cursor with the arrow keys (or hjkl) and:

  enter  run the motor under the cursor
  p      run the motor under the cursor together with the next column
  s      stop every motor
  ?      toggle help
  q      quit`,
	Args: cobra.NoArgs,
	RunE: runGrid,
}

func init() {
	gridCmd.Flags().DurationVar(&gridPollInterval, "poll", time.Second, "Status poll interval")
	rootCmd.AddCommand(gridCmd)
}

func runGrid(cmd *cobra.Command, args []string) error {
	if gridPollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive")
	}

	s, info, err := OpenSession()
	if err != nil {
		return err
	}
	defer s.Finish()

	m := newGridModel(s, info, gridPollInterval)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %v", err)
	}
	return nil
}
