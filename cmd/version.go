// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Thermoquad/vmc96/pkg/vmc96"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Read firmware versions from every controller",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) error {
	return withSession(func(s *vmc96.Session) error {
		for id := uint8(0); id < vmc96.RelayCount; id++ {
			v, err := s.RelayVersion(id)
			if err != nil {
				return err
			}
			fmt.Printf("RELAY %d Version: %s\n", id, v)
		}

		v, err := s.MotorVersion()
		if err != nil {
			return err
		}
		fmt.Printf("MOTOR Version: %s\n", v)
		return nil
	})
}
