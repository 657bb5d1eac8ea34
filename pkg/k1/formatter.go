// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package k1

import (
	"fmt"
	"strings"
)

// FormatControllerName returns the human-readable name for a controller address
func FormatControllerName(controller byte) string {
	switch controller {
	case AddrBroadcast:
		return "BROADCAST"
	case AddrRelay0:
		return "RELAY_0"
	case AddrRelay1:
		return "RELAY_1"
	case AddrMotorArray:
		return "MOTOR_ARRAY"
	default:
		return "UNKNOWN"
	}
}

// FormatCommandName returns the human-readable name for a command.
// Command codes overlap between controllers, so the target is required.
func FormatCommandName(controller, command byte) string {
	switch command {
	case CmdPing:
		return "PING"
	case CmdGlobalReset:
		if controller == AddrBroadcast {
			return "GLOBAL_RESET"
		}
	case CmdVersion:
		return "VERSION"
	case CmdReset:
		return "RESET"
	}

	switch controller {
	case AddrMotorArray:
		switch command {
		case CmdMotorStatus:
			return "MOTOR_STATUS"
		case CmdMotorStopAll:
			return "MOTOR_STOP_ALL"
		case CmdMotorRun:
			return "MOTOR_RUN"
		case CmdOptoLineStatus:
			return "OPTO_LINE_STATUS"
		}
	case AddrRelay0, AddrRelay1:
		if command == CmdRelaySet {
			return "RELAY_SET"
		}
	}

	return "UNKNOWN"
}

// FormatHex formats bytes as space separated upper-case hex pairs
func FormatHex(data []byte) string {
	var sb strings.Builder
	for i, b := range data {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", b)
	}
	return sb.String()
}

// FormatFrame formats a raw frame as a one-line summary.
// Frames too short to carry a header are shown as a plain hex dump.
func FormatFrame(direction string, raw []byte) string {
	if len(raw) < HeaderLen {
		return fmt.Sprintf("%s (%d): %s", direction, len(raw), FormatHex(raw))
	}

	controller := raw[1]
	command := raw[3]
	return fmt.Sprintf("%s %s/%s (0x%02X) len=%d: %s",
		direction,
		FormatControllerName(controller),
		FormatCommandName(controller, command),
		command,
		len(raw),
		FormatHex(raw))
}
