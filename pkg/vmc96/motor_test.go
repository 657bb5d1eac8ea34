// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package vmc96

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thermoquad/vmc96/pkg/k1"
)

func TestEncodeMotor(t *testing.T) {
	assert.Equal(t, byte(0x11), EncodeMotor(0, 0))
	assert.Equal(t, byte(0x22), EncodeMotor(1, 1))
	assert.Equal(t, byte(0x36), EncodeMotor(2, 5))
	assert.Equal(t, byte(0x8C), EncodeMotor(7, 11))
}

func TestMotorCoordinateRoundTrip(t *testing.T) {
	for row := 0; row < MotorRows; row++ {
		for col := 0; col < MotorColumns; col++ {
			c := DecodeMotor(EncodeMotor(row, col))
			require.Equal(t, Coord{Row: row, Col: col}, c)
			require.True(t, c.Valid())
		}
	}
}

func TestDecodeMotor_ZeroNibble(t *testing.T) {
	c := DecodeMotor(0x00)
	assert.Equal(t, Coord{Row: -1, Col: -1}, c)
	assert.False(t, c.Valid())
}

func TestCurrentMA(t *testing.T) {
	assert.EqualValues(t, 0, CurrentMA(0))
	assert.EqualValues(t, 250, CurrentMA(128))
	assert.EqualValues(t, 500, CurrentMA(255))

	prev := CurrentMA(0)
	for raw := 1; raw <= 255; raw++ {
		cur := CurrentMA(byte(raw))
		require.GreaterOrEqual(t, cur, prev)
		require.LessOrEqual(t, cur, uint16(MaxMotorCurrentMA))
		prev = cur
	}
}

func TestMotorRun(t *testing.T) {
	s, tr := newTestSession(t)
	tr.queue(reply(t, k1.AddrMotorArray, k1.CmdMotorRun, k1.PositiveAck))

	require.NoError(t, s.MotorRun(2, 5))
	assert.Equal(t, []byte{0x35, 0x30, 0x06, 0x13, 0x36, 0x26}, tr.written[0])
}

func TestMotorRun_InvalidCoordinates(t *testing.T) {
	tests := []struct {
		name string
		row  int
		col  int
	}{
		{"row 8", 8, 0},
		{"col 12", 0, 12},
		{"both", 9, 15},
		{"negative row", -1, 0},
		{"negative col", 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, tr := newTestSession(t)

			err := s.MotorRun(tt.row, tt.col)
			assert.Equal(t, ErrInvalidMotorCoordinates, CodeOf(err))
			assert.Zero(t, tr.ioCalls())
			assert.Empty(t, tr.written)
		})
	}
}

func TestMotorPairRun(t *testing.T) {
	s, tr := newTestSession(t)
	tr.queue(reply(t, k1.AddrMotorArray, k1.CmdMotorRun, k1.PositiveAck))

	require.NoError(t, s.MotorPairRun(0, 3, 4))

	frame := tr.written[0]
	require.Len(t, frame, 7)
	assert.Equal(t, byte(0x07), frame[2])
	assert.Equal(t, byte(k1.CmdMotorRun), frame[3])
	assert.Equal(t, []byte{0x14, 0x15}, frame[4:6])
	assert.Zero(t, k1.Checksum(frame))
}

func TestMotorPairRun_InvalidCoordinates(t *testing.T) {
	s, tr := newTestSession(t)

	assert.Equal(t, ErrInvalidMotorCoordinates, CodeOf(s.MotorPairRun(0, 0, 12)))
	assert.Equal(t, ErrInvalidMotorCoordinates, CodeOf(s.MotorPairRun(0, 12, 0)))
	assert.Equal(t, ErrInvalidMotorCoordinates, CodeOf(s.MotorPairRun(8, 0, 1)))
	assert.Zero(t, tr.ioCalls())
}

func TestMotorStatus(t *testing.T) {
	s, tr := newTestSession(t)
	tr.queue([]byte{0x35, 0x30, 0x08, 0x10, 0x80, 0x11, 0x22, 0xAE})

	status, err := s.MotorStatus()
	require.NoError(t, err)
	assert.EqualValues(t, 250, status.CurrentMA)
	assert.Equal(t, []Coord{{0, 0}, {1, 1}}, status.Active)
	assert.Equal(t, []byte{0x35, 0x30, 0x05, 0x10, 0x10}, tr.written[0])
}

func TestMotorStatus_Idle(t *testing.T) {
	s, tr := newTestSession(t)
	tr.queue(reply(t, k1.AddrMotorArray, k1.CmdMotorStatus, 0x00))

	status, err := s.MotorStatus()
	require.NoError(t, err)
	assert.Zero(t, status.CurrentMA)
	assert.Empty(t, status.Active)
}

func TestMotorStatus_NoCurrentByte(t *testing.T) {
	s, tr := newTestSession(t)
	tr.queue(reply(t, k1.AddrMotorArray, k1.CmdMotorStatus))

	status, err := s.MotorStatus()
	require.NoError(t, err)
	assert.Equal(t, MotorStatus{}, status)
}

func TestMotorStatus_WrongEchoedCommand(t *testing.T) {
	s, tr := newTestSession(t)
	tr.queue(reply(t, k1.AddrMotorArray, k1.CmdMotorRun, 0x80))

	status, err := s.MotorStatus()
	assert.Equal(t, ErrResponseInvalidSource, CodeOf(err))
	assert.Equal(t, MotorStatus{}, status)
}

func TestMotorStopAll(t *testing.T) {
	s, tr := newTestSession(t)
	tr.queue(reply(t, k1.AddrMotorArray, k1.CmdMotorStopAll))

	require.NoError(t, s.MotorStopAll())
	assert.Equal(t, byte(k1.CmdMotorStopAll), tr.written[0][3])
}

func TestMotorPingVersionReset(t *testing.T) {
	s, tr := newTestSession(t)
	tr.queue(
		reply(t, k1.AddrMotorArray, k1.CmdPing),
		reply(t, k1.AddrMotorArray, k1.CmdVersion, 'M', '2', 0),
		reply(t, k1.AddrMotorArray, k1.CmdReset),
	)

	require.NoError(t, s.MotorPing())
	version, err := s.MotorVersion()
	require.NoError(t, err)
	assert.Equal(t, "M2", version)
	require.NoError(t, s.MotorReset())

	require.Len(t, tr.written, 3)
	assert.Equal(t, byte(k1.CmdPing), tr.written[0][3])
	assert.Equal(t, byte(k1.CmdVersion), tr.written[1][3])
	assert.Equal(t, byte(k1.CmdReset), tr.written[2][3])
}

func TestMotorOptoLineStatus(t *testing.T) {
	s, tr := newTestSession(t)
	tr.queue(reply(t, k1.AddrMotorArray, k1.CmdOptoLineStatus, 0x78, 0x56, 0x34, 0x12))

	word, err := s.MotorOptoLineStatus()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), word)
}

func TestParseOptoLineStatus_WrongLength(t *testing.T) {
	assert.Zero(t, parseOptoLineStatus([]byte{k1.CmdOptoLineStatus, 0x01, 0x02}))
	assert.Zero(t, parseOptoLineStatus([]byte{k1.CmdOptoLineStatus, 1, 2, 3, 4, 5}))
}
