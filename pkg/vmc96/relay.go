// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package vmc96

import "github.com/Thermoquad/vmc96/pkg/k1"

// RelayPing checks that relay controller id answers
func (s *Session) RelayPing(id uint8) error {
	c, err := RelayController(id)
	if err != nil {
		return err
	}
	return s.ping(c)
}

// RelayVersion returns the firmware version string of relay controller id
func (s *Session) RelayVersion(id uint8) (string, error) {
	c, err := RelayController(id)
	if err != nil {
		return "", err
	}
	return s.version(c)
}

// RelayReset resets relay controller id
func (s *Session) RelayReset(id uint8) error {
	c, err := RelayController(id)
	if err != nil {
		return err
	}
	return s.reset(c)
}

// RelaySet switches relay id on or off
func (s *Session) RelaySet(id uint8, on bool) error {
	c, err := RelayController(id)
	if err != nil {
		return err
	}
	var state byte
	if on {
		state = 1
	}
	_, err = s.send(c, k1.CmdRelaySet, state)
	return err
}
