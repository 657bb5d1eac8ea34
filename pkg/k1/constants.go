// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package k1 implements the K1 frame codec spoken by the VMC96 vending
// machine controller board.
//
// A K1 frame is laid out as
//
//	STX | controller | length | command | data[0..n] | checksum
//
// where length counts every byte of the frame (n + 5) and checksum is the
// XOR of all preceding bytes. There is no byte stuffing; framing relies on
// the length byte alone.
package k1

// Framing
const (
	STX = 0x35

	MaxFrameLen = 255
	MaxDataLen  = 250

	// HeaderLen covers STX, controller, length and command.
	HeaderLen = 4
	// Overhead is the header plus the trailing checksum.
	Overhead = HeaderLen + 1
)

// Acknowledgement sentinels. Defined by the firmware, not enforced here.
const (
	PositiveAck = 0x00
	NegativeAck = 0xFF
)

// Controller addresses
const (
	AddrBroadcast  = 0x00
	AddrRelayBase  = 0x26
	AddrRelay0     = 0x26
	AddrRelay1     = 0x27
	AddrMotorArray = 0x30
)

// Commands understood by every controller
const (
	CmdPing        = 0x00
	CmdGlobalReset = 0x01
	CmdVersion     = 0x02
	CmdReset       = 0x05
)

// Motor array commands
const (
	CmdMotorStatus    = 0x10
	CmdMotorStopAll   = 0x12
	CmdMotorRun       = 0x13
	CmdOptoLineStatus = 0x15
)

// Relay commands
const (
	CmdRelaySet = 0x11
)
