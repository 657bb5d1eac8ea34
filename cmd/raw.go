// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Thermoquad/vmc96/pkg/k1"
	"github.com/Thermoquad/vmc96/pkg/vmc96"
)

var rawCmd = &cobra.Command{
	Use:   "raw <controller> <command> [byte...]",
	Short: "Send an arbitrary command and print the reply",
	Long: `Send one K1 command and print the validated reply data.

The controller is relay0, relay1, motor, broadcast or a numeric address.
The command and data bytes are decimal or 0x-prefixed hex.

Examples:
  vmc96ctl raw relay0 0x02
  vmc96ctl raw motor 0x13 0x36
  vmc96ctl raw 0x27 0x11 0x01`,
	Args: cobra.MinimumNArgs(2),
	RunE: runRaw,
}

func init() {
	rootCmd.AddCommand(rawCmd)
}

func runRaw(cmd *cobra.Command, args []string) error {
	controller, command, data, err := parseRawArgs(args)
	if err != nil {
		return err
	}

	return withSession(func(s *vmc96.Session) error {
		// Oversized data is reported by the exchange with its error code
		if frame, err := k1.EncodeMessage(k1.Message{Controller: byte(controller), Command: command, Data: data}); err == nil {
			fmt.Println(k1.FormatFrame("COMMAND", frame))
		}
		reply, err := s.Exchange(byte(controller), command, data)
		if err != nil {
			return err
		}
		fmt.Printf("Reply (%d): %s\n", len(reply), k1.FormatHex(reply))
		return nil
	})
}

func parseRawArgs(args []string) (vmc96.Controller, byte, []byte, error) {
	if len(args) < 2 {
		return 0, 0, nil, fmt.Errorf("need a controller and a command")
	}
	controller, err := parseController(args[0])
	if err != nil {
		return 0, 0, nil, err
	}
	command, err := parseByte(args[1])
	if err != nil {
		return 0, 0, nil, err
	}
	data := make([]byte, 0, len(args)-2)
	for _, a := range args[2:] {
		b, err := parseByte(a)
		if err != nil {
			return 0, 0, nil, err
		}
		data = append(data, b)
	}
	return controller, command, data, nil
}
