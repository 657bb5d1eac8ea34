// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package k1

import "fmt"

// Encoder builds K1 frames in a reusable scratch buffer.
// The zero value is ready to use. An Encoder is not safe for concurrent use.
type Encoder struct {
	raw [MaxFrameLen]byte
}

// NewEncoder creates a new K1 frame encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Encode serializes m into the encoder's buffer and returns the frame.
// The returned slice is only valid until the next call to Encode.
func (e *Encoder) Encode(m Message) ([]byte, error) {
	if len(m.Data) > MaxDataLen {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrDataTooLong, len(m.Data), MaxDataLen)
	}

	n := m.FrameLen()
	e.raw[0] = STX
	e.raw[1] = m.Controller
	e.raw[2] = byte(n)
	e.raw[3] = m.Command
	copy(e.raw[HeaderLen:], m.Data)
	e.raw[n-1] = Checksum(e.raw[:n-1])

	return e.raw[:n], nil
}

// EncodeMessage returns a freshly allocated wire frame for m.
func EncodeMessage(m Message) ([]byte, error) {
	var e Encoder
	frame, err := e.Encode(m)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(frame))
	copy(out, frame)
	return out, nil
}
