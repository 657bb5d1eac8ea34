// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package vmc96

import (
	"errors"
	"fmt"

	"github.com/Thermoquad/vmc96/pkg/k1"
)

// Code is a stable numeric VMC96 status code. Codes are append-only.
type Code int

// Status codes
const (
	Success Code = iota
	ErrOutOfMemory

	// Transport initialization
	ErrTransportInit
	ErrSetInterface
	ErrOpenDevice
	ErrResetDevice
	ErrSetBaudRate
	ErrSetLineProps
	ErrSetFlowControl

	// Transport I/O
	ErrWriteData
	ErrReadData
	ErrPurgeBuffers

	// Protocol
	ErrResponseInvalidChecksum
	ErrResponseNegativeAck // reserved, never raised
	ErrResponseMalformed
	ErrResponseInvalidSource
	ErrResponseInvalidLength

	// Semantic
	ErrInvalidMotorCoordinates
	ErrMessageTooLong
	ErrInvalidRelay
)

// CodeUnknown is reported by CodeOf for errors that did not originate here
const CodeUnknown Code = -1

var descriptions = map[Code]string{
	Success:                    "Success.",
	ErrOutOfMemory:             "Out of memory.",
	ErrTransportInit:           "Can not initialize libftdi.",
	ErrSetInterface:            "libftdi can not de inteface.",
	ErrOpenDevice:              "libftdi can not open USB device (not found or permission denied).",
	ErrResetDevice:             "libftdi can not reset USB.",
	ErrSetBaudRate:             "libftdi can not set baud rate.",
	ErrSetLineProps:            "libftdi can not set line properties",
	ErrSetFlowControl:          "libftdi can not set line in no flow mode.",
	ErrWriteData:               "libftdi can not write data to device.",
	ErrReadData:                "libftdi can not read data from device.",
	ErrPurgeBuffers:            "libftdi can not purge rx/tx buffers.",
	ErrResponseInvalidChecksum: "Response invalid checksum.",
	ErrResponseNegativeAck:     "Response negative acknowledgement.",
	ErrResponseMalformed:       "Response malformed.",
	ErrResponseInvalidSource:   "Invalid response source.",
	ErrResponseInvalidLength:   "Invalid response length.",
	ErrInvalidMotorCoordinates: "Invalid motor coordinates.",
	ErrMessageTooLong:          "Message data too long.",
	ErrInvalidRelay:            "Invalid relay id.",
}

// ErrorString returns the fixed English description of a status code
func ErrorString(c Code) string {
	if s, ok := descriptions[c]; ok {
		return s
	}
	return "Unknown error."
}

// Error implements the error interface so codes can be used as sentinels
// with errors.Is.
func (c Code) Error() string {
	return ErrorString(c)
}

// String returns the code's description
func (c Code) String() string {
	return ErrorString(c)
}

// Error is a failed VMC96 operation
type Error struct {
	Code Code
	Op   string
	Err  error
}

func (e *Error) Error() string {
	msg := ErrorString(e.Code)
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += " (" + e.Err.Error() + ")"
	}
	return "vmc96: " + msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the same status code
func (e *Error) Is(target error) bool {
	switch t := target.(type) {
	case Code:
		return e.Code == t
	case *Error:
		return e.Code == t.Code
	}
	return false
}

// CodeOf returns the status code carried by err
func CodeOf(err error) Code {
	if err == nil {
		return Success
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var c Code
	if errors.As(err, &c) {
		return c
	}
	return CodeUnknown
}

func newError(code Code, op string, err error) *Error {
	return &Error{Code: code, Op: op, Err: err}
}

func errorf(code Code, op, format string, args ...interface{}) *Error {
	return &Error{Code: code, Op: op, Err: fmt.Errorf(format, args...)}
}

// protocolCode maps a codec failure to its status code
func protocolCode(err error) Code {
	switch {
	case errors.Is(err, k1.ErrMalformed):
		return ErrResponseMalformed
	case errors.Is(err, k1.ErrInvalidSource):
		return ErrResponseInvalidSource
	case errors.Is(err, k1.ErrInvalidLength):
		return ErrResponseInvalidLength
	case errors.Is(err, k1.ErrInvalidChecksum):
		return ErrResponseInvalidChecksum
	case errors.Is(err, k1.ErrDataTooLong):
		return ErrMessageTooLong
	}
	return CodeUnknown
}
