// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad
//
// vmc96ctl - VMC96 vending machine controller tool

package main

import (
	"os"

	"github.com/Thermoquad/vmc96/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
