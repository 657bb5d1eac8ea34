// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package vmc96

import "github.com/Thermoquad/vmc96/pkg/k1"

// GlobalReset resets every controller on the board. The reply is not
// validated and is returned as received.
func (s *Session) GlobalReset() ([]byte, error) {
	data, err := s.send(Broadcast, k1.CmdGlobalReset, 0xFF)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}
