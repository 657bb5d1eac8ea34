// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package vmc96

import "time"

// Device identity and fixed line parameters of the VMC96 USB serial link
const (
	VendorID  = 0x0CE5
	ProductID = 0x0023

	BaudRate = 19200
	DataBits = 8
)

// DefaultResponseDelay is how long the engine waits between writing a
// request and reading its response.
const DefaultResponseDelay = 20 * time.Millisecond

// Transport is the byte link to the board.
//
// Open must leave the link configured for 19200 baud, 8 data bits, one stop
// bit, no parity and no flow control. Failures from Open are returned as
// *Error carrying the code of the step that failed. Read returns whatever
// has arrived, which may be nothing.
type Transport interface {
	Open() error
	Close() error
	Purge() error
	Write(p []byte) (int, error)
	Sleep(d time.Duration)
	Read(p []byte) (int, error)
}
