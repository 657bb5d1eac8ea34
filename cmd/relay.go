// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Thermoquad/vmc96/pkg/vmc96"
)

var relayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Control the general purpose relays",
	Long: `Control the board's two relay controllers.

Examples:
  vmc96ctl relay set 0 on
  vmc96ctl relay set 1 off
  vmc96ctl relay ping 1
  vmc96ctl relay reset 0`,
}

var relaySetCmd = &cobra.Command{
	Use:   "set <id> <on|off>",
	Short: "Switch a relay on or off",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseRelayID(args[0])
		if err != nil {
			return err
		}
		on, err := parseOnOff(args[1])
		if err != nil {
			return err
		}
		return withSession(func(s *vmc96.Session) error {
			if err := s.RelaySet(id, on); err != nil {
				return err
			}
			fmt.Printf("RELAY %d: %s\n", id, onOffString(on))
			return nil
		})
	},
}

var relayResetCmd = &cobra.Command{
	Use:   "reset <id>",
	Short: "Reset a relay controller",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseRelayID(args[0])
		if err != nil {
			return err
		}
		return withSession(func(s *vmc96.Session) error {
			if err := s.RelayReset(id); err != nil {
				return err
			}
			fmt.Printf("RELAY %d: reset\n", id)
			return nil
		})
	},
}

var relayPingCmd = &cobra.Command{
	Use:   "ping <id>",
	Short: "Ping a relay controller",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseRelayID(args[0])
		if err != nil {
			return err
		}
		return withSession(func(s *vmc96.Session) error {
			if err := s.RelayPing(id); err != nil {
				return err
			}
			fmt.Printf("RELAY %d: pong\n", id)
			return nil
		})
	},
}

func init() {
	relayCmd.AddCommand(relaySetCmd, relayResetCmd, relayPingCmd)
	rootCmd.AddCommand(relayCmd)
}

func onOffString(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
