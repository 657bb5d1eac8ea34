// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package vmc96

import (
	"fmt"
	"strings"
	"time"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// Hooks replaced in tests
var (
	openPort  = serial.Open
	listPorts = enumerator.GetDetailedPortsList
)

// SerialConfig holds serial transport configuration
type SerialConfig struct {
	// Device path (e.g. "/dev/ttyUSB0"). Empty selects the device by
	// VendorID/ProductID.
	Port string

	VendorID  uint16
	ProductID uint16

	// Interface selects among matching USB serial interfaces: 0 is any,
	// 1..n picks the n-th match.
	Interface int

	// ReadTimeout bounds the single read after the response delay
	ReadTimeout time.Duration
}

// DefaultSerialConfig returns the configuration for a VMC96 board
func DefaultSerialConfig() SerialConfig {
	return SerialConfig{
		VendorID:    VendorID,
		ProductID:   ProductID,
		ReadTimeout: 5 * time.Millisecond,
	}
}

// SerialTransport talks to the board through a USB serial adapter
type SerialTransport struct {
	cfg  SerialConfig
	port serial.Port
	name string
}

// NewSerialTransport creates an unopened serial transport
func NewSerialTransport(cfg SerialConfig) *SerialTransport {
	return &SerialTransport{cfg: cfg}
}

// Name returns the device path in use, once opened
func (s *SerialTransport) Name() string {
	return s.name
}

// Open locates and configures the serial device
func (s *SerialTransport) Open() error {
	const op = "open"

	name := s.cfg.Port
	if name == "" {
		var err error
		name, err = s.findDevice()
		if err != nil {
			return err
		}
	}

	port, err := openPort(name, &serial.Mode{})
	if err != nil {
		return errorf(ErrOpenDevice, op, "%s: %w", name, err)
	}

	if err := s.configure(port); err != nil {
		port.Close()
		return err
	}

	s.port = port
	s.name = name
	return nil
}

// Device is a USB serial port that matched a vendor/product id
type Device struct {
	Name         string
	VID          string
	PID          string
	SerialNumber string
	Product      string
}

// FindDevices lists the USB serial ports with the given vendor and product
// id, in enumeration order.
func FindDevices(vendorID, productID uint16) ([]Device, error) {
	ports, err := listPorts()
	if err != nil {
		return nil, newError(ErrTransportInit, "find devices", err)
	}

	vid := fmt.Sprintf("%04x", vendorID)
	pid := fmt.Sprintf("%04x", productID)

	var devices []Device
	for _, p := range ports {
		if p.IsUSB && strings.EqualFold(p.VID, vid) && strings.EqualFold(p.PID, pid) {
			devices = append(devices, Device{
				Name:         p.Name,
				VID:          p.VID,
				PID:          p.PID,
				SerialNumber: p.SerialNumber,
				Product:      p.Product,
			})
		}
	}
	return devices, nil
}

// findDevice returns the port name of the requested matching USB interface
func (s *SerialTransport) findDevice() (string, error) {
	const op = "open"

	devices, err := FindDevices(s.cfg.VendorID, s.cfg.ProductID)
	if err != nil {
		return "", err
	}

	if len(devices) == 0 {
		return "", errorf(ErrOpenDevice, op, "no USB device %04x:%04x", s.cfg.VendorID, s.cfg.ProductID)
	}
	if s.cfg.Interface < 0 || s.cfg.Interface > len(devices) {
		return "", errorf(ErrSetInterface, op, "interface %d requested, %d available", s.cfg.Interface, len(devices))
	}
	if s.cfg.Interface == 0 {
		return devices[0].Name, nil
	}
	return devices[s.cfg.Interface-1].Name, nil
}

func (s *SerialTransport) configure(port serial.Port) error {
	const op = "open"

	if err := port.ResetInputBuffer(); err != nil {
		return newError(ErrResetDevice, op, err)
	}
	if err := port.ResetOutputBuffer(); err != nil {
		return newError(ErrResetDevice, op, err)
	}

	if err := port.SetMode(&serial.Mode{BaudRate: BaudRate}); err != nil {
		return newError(ErrSetBaudRate, op, err)
	}

	mode := &serial.Mode{
		BaudRate: BaudRate,
		DataBits: DataBits,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	if err := port.SetMode(mode); err != nil {
		return newError(ErrSetLineProps, op, err)
	}
	if err := port.SetReadTimeout(s.cfg.ReadTimeout); err != nil {
		return newError(ErrSetLineProps, op, err)
	}

	// No handshake: hold the modem control lines asserted
	if err := port.SetRTS(true); err != nil {
		return newError(ErrSetFlowControl, op, err)
	}
	if err := port.SetDTR(true); err != nil {
		return newError(ErrSetFlowControl, op, err)
	}

	return nil
}

// Close closes the serial port. Closing an unopened transport is a no-op.
func (s *SerialTransport) Close() error {
	if s.port == nil {
		return nil
	}
	err := s.port.Close()
	s.port = nil
	return err
}

// Purge discards anything pending in the rx and tx buffers
func (s *SerialTransport) Purge() error {
	if s.port == nil {
		return fmt.Errorf("serial port not open")
	}
	if err := s.port.ResetInputBuffer(); err != nil {
		return err
	}
	return s.port.ResetOutputBuffer()
}

func (s *SerialTransport) Write(p []byte) (int, error) {
	if s.port == nil {
		return 0, fmt.Errorf("serial port not open")
	}
	return s.port.Write(p)
}

// Sleep blocks for d
func (s *SerialTransport) Sleep(d time.Duration) {
	time.Sleep(d)
}

func (s *SerialTransport) Read(p []byte) (int, error) {
	if s.port == nil {
		return 0, fmt.Errorf("serial port not open")
	}
	return s.port.Read(p)
}
