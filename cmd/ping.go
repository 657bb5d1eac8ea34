// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Thermoquad/vmc96/pkg/k1"
	"github.com/Thermoquad/vmc96/pkg/vmc96"
)

var pingCmd = &cobra.Command{
	Use:   "ping [relay0|relay1|motor|all]",
	Short: "Ping the board's controllers",
	Long: `Send a simple ping to one or all of the board's controllers.

Each reply is validated (source, length and checksum) and the round trip
time is printed. Without an argument every controller is pinged.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"relay0", "relay1", "motor", "all"},
	RunE:      runPing,
}

func init() {
	rootCmd.AddCommand(pingCmd)
}

func runPing(cmd *cobra.Command, args []string) error {
	target := "all"
	if len(args) == 1 {
		target = args[0]
	}

	var controllers []vmc96.Controller
	if target == "all" {
		controllers = []vmc96.Controller{vmc96.Relay0, vmc96.Relay1, vmc96.MotorArray}
	} else {
		c, err := parseController(target)
		if err != nil {
			return err
		}
		if c == vmc96.Broadcast {
			return fmt.Errorf("the broadcast address cannot be pinged")
		}
		controllers = []vmc96.Controller{c}
	}

	return withSession(func(s *vmc96.Session) error {
		for _, c := range controllers {
			start := time.Now()
			if err := pingController(s, c); err != nil {
				return err
			}
			fmt.Printf("%s: pong (%s)\n", c, time.Since(start).Round(time.Millisecond))
		}
		return nil
	})
}

func pingController(s *vmc96.Session, c vmc96.Controller) error {
	switch c {
	case vmc96.Relay0:
		return s.RelayPing(0)
	case vmc96.Relay1:
		return s.RelayPing(1)
	case vmc96.MotorArray:
		return s.MotorPing()
	}
	_, err := s.Exchange(byte(c), k1.CmdPing, nil)
	return err
}
