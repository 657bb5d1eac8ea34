// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Thermoquad/vmc96/pkg/vmc96"
)

var (
	configFile string

	// Loaded in PersistentPreRunE
	cfg    *Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "vmc96ctl",
	Short: "VMC96 vending machine controller tool",
	Long: `vmc96ctl - talk to a VMC96 vending machine controller board.

Provides commands to ping the on-board controllers, read their firmware
versions, switch the general purpose relays and drive the 8x12 motor array.

Connection modes:
  USB serial: located by vendor/product id 0CE5:0023, or --port /dev/ttyUSB0
  WebSocket:  --url ws://host/path [--username user]

Settings can also come from a YAML file (--config) or VMC96_* environment
variables, e.g. VMC96_TRANSPORT_PORT=/dev/ttyUSB0.

For WebSocket authentication, the password is read from the VMC96_PASSWORD
environment variable, or prompted interactively if not set.`,
	Version:       "1.0.0",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = LoadConfig(configFile, cmd.Root().PersistentFlags())
		if err != nil {
			return err
		}
		logger, err = NewLogger(cfg.Logging)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Sync()
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()

	flags.StringVarP(&configFile, "config", "c", "", "Config file (YAML)")

	// Serial connection flags
	flags.StringP("port", "p", "", "Serial port device (default: find by USB id)")
	flags.Int("interface", 0, "USB interface to use when several match (0 = any)")

	// WebSocket connection flags
	flags.StringP("url", "u", "", "WebSocket bridge URL (ws:// or wss://)")
	flags.String("username", "", "Username for HTTP Basic auth")
	flags.Bool("no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")

	flags.Duration("response-delay", vmc96.DefaultResponseDelay, "Wait between request and response")
	flags.String("log-level", "warn", "Log level (debug, info, warn, error)")
	flags.String("log-format", "console", "Log format (console, json)")
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		code := vmc96.CodeOf(err)
		if code == vmc96.CodeUnknown {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s (Cod: %d)\n", vmc96.ErrorString(code), int(code))
			if logger != nil {
				logger.Debug("command failed", zap.Error(err))
			}
		}
	}
	return err
}
