// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package vmc96

import (
	"bytes"
	"fmt"

	"github.com/Thermoquad/vmc96/pkg/k1"
)

// Controller is the address of an on-board controller
type Controller byte

// Controllers on the board
const (
	Broadcast  Controller = k1.AddrBroadcast
	Relay0     Controller = k1.AddrRelay0
	Relay1     Controller = k1.AddrRelay1
	MotorArray Controller = k1.AddrMotorArray
)

// RelayCount is the number of general purpose relay controllers
const RelayCount = 2

// RelayController returns the address of relay controller id
func RelayController(id uint8) (Controller, error) {
	if id >= RelayCount {
		return 0, errorf(ErrInvalidRelay, "relay", "relay %d does not exist (0-%d)", id, RelayCount-1)
	}
	return Controller(k1.AddrRelayBase + id), nil
}

// String returns the controller's name
func (c Controller) String() string {
	switch c {
	case Relay0:
		return "relay 0"
	case Relay1:
		return "relay 1"
	case MotorArray:
		return "motor array"
	case Broadcast:
		return "broadcast"
	default:
		return fmt.Sprintf("controller 0x%02X", byte(c))
	}
}

func (s *Session) send(c Controller, command byte, data ...byte) ([]byte, error) {
	return s.Exchange(byte(c), command, data)
}

func (s *Session) ping(c Controller) error {
	_, err := s.send(c, k1.CmdPing)
	return err
}

func (s *Session) reset(c Controller) error {
	_, err := s.send(c, k1.CmdReset)
	return err
}

func (s *Session) version(c Controller) (string, error) {
	data, err := s.send(c, k1.CmdVersion)
	if err != nil {
		return "", err
	}
	return parseVersion(data), nil
}

// parseVersion skips the echoed command byte and stops at the first NUL
func parseVersion(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	v := data[1:]
	if i := bytes.IndexByte(v, 0); i >= 0 {
		v = v[:i]
	}
	return string(v)
}
