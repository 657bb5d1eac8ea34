// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Thermoquad/vmc96/pkg/vmc96"
)

var (
	linkTestCount      int
	linkTestInterval   time.Duration
	linkTestController string
)

var linkTestCmd = &cobra.Command{
	Use:   "link_test",
	Short: "Test the link by repeatedly pinging a controller",
	Long: `Ping one controller repeatedly and print exchange statistics.

Every reply is fully validated, so checksum, length and source errors on
the link show up in the summary.

Exit codes:
  0 - Every ping answered
  1 - At least one ping failed
  2 - Connection error`,
	Args: cobra.NoArgs,
	RunE: runLinkTest,
}

func init() {
	rootCmd.AddCommand(linkTestCmd)
	linkTestCmd.Flags().IntVarP(&linkTestCount, "count", "n", 100, "Number of pings")
	linkTestCmd.Flags().DurationVar(&linkTestInterval, "interval", 0, "Pause between pings")
	linkTestCmd.Flags().StringVar(&linkTestController, "controller", "motor", "Controller to ping (relay0, relay1, motor)")
}

func runLinkTest(cmd *cobra.Command, args []string) error {
	if linkTestCount <= 0 {
		return fmt.Errorf("count must be positive")
	}
	c, err := parseController(linkTestController)
	if err != nil {
		return err
	}
	if c == vmc96.Broadcast {
		return fmt.Errorf("the broadcast address cannot be pinged")
	}

	s, info, err := OpenSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}
	defer s.Finish()

	fmt.Printf("VMC96 - Link Test\n")
	fmt.Printf("Connection: %s\n", info)
	fmt.Printf("Target: %s, %d pings\n\n", c, linkTestCount)

	failed := 0
	for i := 0; i < linkTestCount; i++ {
		if err := pingController(s, c); err != nil {
			failed++
			fmt.Printf("ping %d: %v\n", i+1, err)
		}
		if linkTestInterval > 0 {
			time.Sleep(linkTestInterval)
		}
	}

	stats := s.Statistics()
	fmt.Print("\n" + stats.String())

	if failed > 0 {
		s.Finish()
		os.Exit(1)
	}
	return nil
}
