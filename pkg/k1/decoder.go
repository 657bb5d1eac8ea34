// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package k1

import "fmt"

// Decoder parses K1 responses into a reusable data buffer.
// The zero value is ready to use. A Decoder is not safe for concurrent use.
type Decoder struct {
	data [MaxFrameLen]byte
}

// NewDecoder creates a new K1 response decoder
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode parses a raw response to a request sent to controller and returns
// the response data. For addressed controllers the data starts with the
// echoed command byte. Replies to the broadcast address are not validated
// and are returned whole.
//
// The returned slice is only valid until the next call to Decode.
func (d *Decoder) Decode(raw []byte, controller byte) ([]byte, error) {
	if len(raw) > MaxFrameLen {
		raw = raw[:MaxFrameLen]
	}

	if controller == AddrBroadcast {
		if len(raw) == 0 {
			return nil, fmt.Errorf("%w: empty broadcast reply", ErrInvalidLength)
		}
		n := copy(d.data[:], raw)
		return d.data[:n], nil
	}

	r := len(raw)
	if r < Overhead {
		return nil, fmt.Errorf("%w: got %d bytes (min %d)", ErrInvalidLength, r, Overhead)
	}
	if raw[0] != STX {
		return nil, fmt.Errorf("%w: got 0x%02X", ErrMalformed, raw[0])
	}
	if raw[1] != controller {
		return nil, fmt.Errorf("%w: expected 0x%02X, got 0x%02X", ErrInvalidSource, controller, raw[1])
	}
	if int(raw[2]) != r {
		return nil, fmt.Errorf("%w: length byte %d, received %d", ErrInvalidLength, raw[2], r)
	}
	if sum := Checksum(raw[:r-1]); raw[r-1] != sum {
		return nil, fmt.Errorf("%w: expected 0x%02X, got 0x%02X", ErrInvalidChecksum, sum, raw[r-1])
	}

	// Negative acks (raw[3] == NegativeAck) are not rejected here;
	// raw[3] echoes the command for version and status replies.
	n := copy(d.data[:], raw[HeaderLen-1:r-1])
	return d.data[:n], nil
}

// DecodeFrame is the allocating form of Decoder.Decode
func DecodeFrame(raw []byte, controller byte) ([]byte, error) {
	var d Decoder
	data, err := d.Decode(raw, controller)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}
