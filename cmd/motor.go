// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Thermoquad/vmc96/pkg/vmc96"
)

var motorCmd = &cobra.Command{
	Use:   "motor",
	Short: "Drive the 8x12 motor array",
	Long: `Drive the vending motors. Rows are 0-7 and columns are 0-11.

Examples:
  vmc96ctl motor run 2 5
  vmc96ctl motor pair 2 5 6
  vmc96ctl motor status
  vmc96ctl motor stop
  vmc96ctl motor opto`,
}

var motorRunCmd = &cobra.Command{
	Use:   "run <row> <col>",
	Short: "Run a single motor",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := parseInts(args)
		if err != nil {
			return err
		}
		return withSession(func(s *vmc96.Session) error {
			if err := s.MotorRun(n[0], n[1]); err != nil {
				return err
			}
			fmt.Printf("MOTOR %s: running\n", vmc96.Coord{Row: n[0], Col: n[1]})
			return nil
		})
	},
}

var motorPairCmd = &cobra.Command{
	Use:   "pair <row> <col1> <col2>",
	Short: "Run two motors in the same row together",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := parseInts(args)
		if err != nil {
			return err
		}
		return withSession(func(s *vmc96.Session) error {
			if err := s.MotorPairRun(n[0], n[1], n[2]); err != nil {
				return err
			}
			fmt.Printf("MOTOR %s + %s: running\n",
				vmc96.Coord{Row: n[0], Col: n[1]}, vmc96.Coord{Row: n[0], Col: n[2]})
			return nil
		})
	},
}

var motorStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show motor current and active motors",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *vmc96.Session) error {
			st, err := s.MotorStatus()
			if err != nil {
				return err
			}
			fmt.Println(formatMotorStatus(st))
			return nil
		})
	},
}

var motorStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop every motor",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *vmc96.Session) error {
			if err := s.MotorStopAll(); err != nil {
				return err
			}
			fmt.Println("MOTOR: all stopped")
			return nil
		})
	},
}

var motorOptoCmd = &cobra.Command{
	Use:   "opto",
	Short: "Read the opto line status word",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *vmc96.Session) error {
			v, err := s.MotorOptoLineStatus()
			if err != nil {
				return err
			}
			fmt.Printf("Opto Line Status: 0x%08X\n", v)
			return nil
		})
	},
}

var motorResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the motor array controller",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *vmc96.Session) error {
			if err := s.MotorReset(); err != nil {
				return err
			}
			fmt.Println("MOTOR: reset")
			return nil
		})
	},
}

func init() {
	motorCmd.AddCommand(motorRunCmd, motorPairCmd, motorStatusCmd,
		motorStopCmd, motorOptoCmd, motorResetCmd)
	rootCmd.AddCommand(motorCmd)
}

// formatMotorStatus renders a status reply on one line
func formatMotorStatus(st vmc96.MotorStatus) string {
	if len(st.Active) == 0 {
		return fmt.Sprintf("Current: %d mA, Active: none", st.CurrentMA)
	}
	active := make([]string, len(st.Active))
	for i, c := range st.Active {
		active[i] = c.String()
	}
	return fmt.Sprintf("Current: %d mA, Active: %s", st.CurrentMA, strings.Join(active, " "))
}
