// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Thermoquad/vmc96/pkg/vmc96"
)

var discoveryProbe bool

var discoveryCmd = &cobra.Command{
	Use:   "discovery",
	Short: "List attached boards and probe their controllers",
	Long: `List the USB serial ports that match the board's vendor/product id.

With --probe, the selected board is opened and each controller is pinged
and asked for its firmware version.

Examples:
  vmc96ctl discovery
  vmc96ctl discovery --probe --interface 2

Exit codes:
  0 - At least one board found (and every controller answered with --probe)
  1 - No board found, or a controller did not answer
  2 - Connection error`,
	Args: cobra.NoArgs,
	RunE: runDiscovery,
}

func init() {
	rootCmd.AddCommand(discoveryCmd)
	discoveryCmd.Flags().BoolVar(&discoveryProbe, "probe", false, "Ping every controller on the selected board")
}

func runDiscovery(cmd *cobra.Command, args []string) error {
	if cfg.Transport.URL == "" && cfg.Transport.Port == "" {
		devices, err := vmc96.FindDevices(cfg.Transport.VendorID, cfg.Transport.ProductID)
		if err != nil {
			return err
		}

		fmt.Printf("USB devices %04X:%04X:\n", cfg.Transport.VendorID, cfg.Transport.ProductID)
		if len(devices) == 0 {
			fmt.Println("  (none)")
			os.Exit(1)
		}
		for i, d := range devices {
			fmt.Printf("  %d: %s\n", i+1, formatDevice(d))
		}
	}

	if !discoveryProbe {
		return nil
	}

	s, info, err := OpenSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}
	defer s.Finish()

	fmt.Printf("\nProbing %s\n", info)
	failed := 0
	for _, c := range []vmc96.Controller{vmc96.Relay0, vmc96.Relay1, vmc96.MotorArray} {
		if err := pingController(s, c); err != nil {
			fmt.Printf("  %-12s no answer: %v\n", c, err)
			failed++
			continue
		}
		version, err := controllerVersion(s, c)
		if err != nil {
			fmt.Printf("  %-12s pong, version failed: %v\n", c, err)
			failed++
			continue
		}
		fmt.Printf("  %-12s %s\n", c, version)
	}

	if failed > 0 {
		s.Finish()
		os.Exit(1)
	}
	return nil
}

func controllerVersion(s *vmc96.Session, c vmc96.Controller) (string, error) {
	switch c {
	case vmc96.Relay0:
		return s.RelayVersion(0)
	case vmc96.Relay1:
		return s.RelayVersion(1)
	default:
		return s.MotorVersion()
	}
}

// formatDevice renders one enumerated port with whatever details it has
func formatDevice(d vmc96.Device) string {
	parts := []string{d.Name}
	if d.Product != "" {
		parts = append(parts, d.Product)
	}
	if d.SerialNumber != "" {
		parts = append(parts, "serial "+d.SerialNumber)
	}
	return strings.Join(parts, ", ")
}
