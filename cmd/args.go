// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Thermoquad/vmc96/pkg/vmc96"
)

// parseController accepts a controller name or an address (e.g. 0x30)
func parseController(s string) (vmc96.Controller, error) {
	switch strings.ToLower(s) {
	case "relay0", "r0":
		return vmc96.Relay0, nil
	case "relay1", "r1":
		return vmc96.Relay1, nil
	case "motor", "motors", "m":
		return vmc96.MotorArray, nil
	case "broadcast", "global", "all":
		return vmc96.Broadcast, nil
	}

	b, err := parseByte(s)
	if err != nil {
		return 0, fmt.Errorf("unknown controller %q (use relay0, relay1, motor, broadcast or an address)", s)
	}
	return vmc96.Controller(b), nil
}

// parseByte parses a decimal or 0x-prefixed hex byte
func parseByte(s string) (byte, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid byte %q", s)
	}
	return byte(v), nil
}

// parseRelayID parses a relay id; range checking is left to the driver
func parseRelayID(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid relay id %q", s)
	}
	return uint8(v), nil
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "1", "true":
		return true, nil
	case "off", "0", "false":
		return false, nil
	}
	return false, fmt.Errorf("invalid relay state %q (use on or off)", s)
}

// parseInts parses motor coordinates; range checking is left to the driver
func parseInts(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", a)
		}
		out[i] = v
	}
	return out, nil
}
