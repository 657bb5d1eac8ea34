// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package k1

import "errors"

// Codec errors
var (
	ErrDataTooLong     = errors.New("k1: message data too long")
	ErrMalformed       = errors.New("k1: response does not start with STX")
	ErrInvalidSource   = errors.New("k1: response from unexpected controller")
	ErrInvalidLength   = errors.New("k1: invalid response length")
	ErrInvalidChecksum = errors.New("k1: response checksum mismatch")
)

// Message is a logical K1 message addressed to one controller
type Message struct {
	Controller byte
	Command    byte
	Data       []byte
}

// FrameLen returns the number of bytes the message occupies on the wire
func (m Message) FrameLen() int {
	return len(m.Data) + Overhead
}

// IsBroadcast returns true if the message targets the global broadcast address
func (m Message) IsBroadcast() bool {
	return m.Controller == AddrBroadcast
}
