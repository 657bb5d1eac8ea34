// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package vmc96

import (
	"encoding/binary"
	"fmt"

	"github.com/Thermoquad/vmc96/pkg/k1"
)

// Motor array geometry
const (
	MotorRows    = 8
	MotorColumns = 12
)

// MaxMotorCurrentMA is the full scale of the motor current reading
const MaxMotorCurrentMA = 500

// Coord is a motor position in the array, zero based
type Coord struct {
	Row int
	Col int
}

// Valid reports whether c lies inside the motor array
func (c Coord) Valid() bool {
	return c.Row >= 0 && c.Row < MotorRows && c.Col >= 0 && c.Col < MotorColumns
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// EncodeMotor returns the wire id of a motor: 1-based row in the high
// nibble, 1-based column in the low nibble.
func EncodeMotor(row, col int) byte {
	return byte((row+1)<<4 | (col + 1))
}

// DecodeMotor is the inverse of EncodeMotor
func DecodeMotor(id byte) Coord {
	return Coord{
		Row: int(id>>4) - 1,
		Col: int(id&0x0F) - 1,
	}
}

// CurrentMA converts a raw current reading to milliamps
func CurrentMA(raw byte) uint16 {
	ma := uint32(raw) * MaxMotorCurrentMA / 255
	if ma > MaxMotorCurrentMA {
		ma = MaxMotorCurrentMA
	}
	return uint16(ma)
}

// MotorStatus is the motor array's drive current and running motors
type MotorStatus struct {
	CurrentMA uint16
	Active    []Coord
}

// MotorPing checks that the motor array controller answers
func (s *Session) MotorPing() error {
	return s.ping(MotorArray)
}

// MotorVersion returns the motor array firmware version string
func (s *Session) MotorVersion() (string, error) {
	return s.version(MotorArray)
}

// MotorReset resets the motor array controller
func (s *Session) MotorReset() error {
	return s.reset(MotorArray)
}

// MotorStatus reads the drive current and the list of running motors
func (s *Session) MotorStatus() (MotorStatus, error) {
	data, err := s.send(MotorArray, k1.CmdMotorStatus)
	if err != nil {
		return MotorStatus{}, err
	}
	return parseMotorStatus(data)
}

func parseMotorStatus(data []byte) (MotorStatus, error) {
	var status MotorStatus

	// Replies without a current byte report an idle array
	if len(data) < 2 {
		return status, nil
	}
	if data[0] != k1.CmdMotorStatus {
		return MotorStatus{}, errorf(ErrResponseInvalidSource, "motor status",
			"echoed command 0x%02X, expected 0x%02X", data[0], k1.CmdMotorStatus)
	}

	status.CurrentMA = CurrentMA(data[1])
	if len(data) > 2 {
		status.Active = make([]Coord, 0, len(data)-2)
		for _, id := range data[2:] {
			status.Active = append(status.Active, DecodeMotor(id))
		}
	}
	return status, nil
}

// MotorStopAll stops every running motor
func (s *Session) MotorStopAll() error {
	_, err := s.send(MotorArray, k1.CmdMotorStopAll)
	return err
}

// MotorRun starts the motor at row, col
func (s *Session) MotorRun(row, col int) error {
	c := Coord{Row: row, Col: col}
	if !c.Valid() {
		return errorf(ErrInvalidMotorCoordinates, "motor run", "%s outside %dx%d array", c, MotorRows, MotorColumns)
	}
	_, err := s.send(MotorArray, k1.CmdMotorRun, EncodeMotor(row, col))
	return err
}

// MotorPairRun starts two motors on the same row together
func (s *Session) MotorPairRun(row, col1, col2 int) error {
	for _, c := range []Coord{{row, col1}, {row, col2}} {
		if !c.Valid() {
			return errorf(ErrInvalidMotorCoordinates, "motor pair run", "%s outside %dx%d array", c, MotorRows, MotorColumns)
		}
	}
	_, err := s.send(MotorArray, k1.CmdMotorRun, EncodeMotor(row, col1), EncodeMotor(row, col2))
	return err
}

// MotorOptoLineStatus reads the photo-interrupter status word
func (s *Session) MotorOptoLineStatus() (uint32, error) {
	data, err := s.send(MotorArray, k1.CmdOptoLineStatus)
	if err != nil {
		return 0, err
	}
	return parseOptoLineStatus(data), nil
}

// parseOptoLineStatus returns 0 unless the reply carries exactly four
// status bytes after the echoed command
func parseOptoLineStatus(data []byte) uint32 {
	if len(data) != 5 {
		return 0
	}
	return binary.LittleEndian.Uint32(data[1:5])
}
