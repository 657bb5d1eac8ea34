// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Thermoquad/vmc96/pkg/k1"
	"github.com/Thermoquad/vmc96/pkg/vmc96"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset every controller on the board",
	Long: `Broadcast a global reset to the board.

The broadcast reply is not validated; whatever the board sends back is
printed as hex.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *vmc96.Session) error {
			data, err := s.GlobalReset()
			if err != nil {
				return err
			}
			fmt.Printf("Global reset reply (%d): %s\n", len(data), k1.FormatHex(data))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
