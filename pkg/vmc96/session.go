// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package vmc96 is a host-side driver for the VMC96 vending machine
// controller board.
//
// A Session owns the transport to the board and performs strictly
// serialized request/response exchanges with its relay controllers, the
// motor array controller and the global broadcast address.
package vmc96

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Thermoquad/vmc96/pkg/k1"
)

// Session is an open connection to a VMC96 board.
// Exchanges are serialized; a session is not meant to be shared between
// independent callers.
type Session struct {
	mu sync.Mutex

	transport     Transport
	encoder       k1.Encoder
	decoder       k1.Decoder
	rx            [k1.MaxFrameLen]byte
	responseDelay time.Duration
	logger        *zap.Logger
	stats         *Statistics
	finished      bool
}

// Option configures a Session
type Option func(*Session)

// WithLogger sets the logger used for frame dumps
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithResponseDelay overrides the wait between request and response.
// Non-positive values keep the default.
func WithResponseDelay(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.responseDelay = d
		}
	}
}

// Initialize opens t and returns a session that owns it. On failure the
// transport is closed and the open error is returned.
func Initialize(t Transport, opts ...Option) (*Session, error) {
	s := &Session{
		transport:     t,
		responseDelay: DefaultResponseDelay,
		logger:        zap.NewNop(),
		stats:         NewStatistics(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := t.Open(); err != nil {
		t.Close()
		if CodeOf(err) == CodeUnknown {
			err = newError(ErrTransportInit, "open", err)
		}
		s.logger.Debug("transport open failed", zap.Error(err))
		return nil, err
	}

	return s, nil
}

// OpenSerial initializes a session over a USB serial transport
func OpenSerial(cfg SerialConfig, opts ...Option) (*Session, error) {
	return Initialize(NewSerialTransport(cfg), opts...)
}

// Finish releases the transport. Calling it more than once is safe.
func (s *Session) Finish() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished {
		return nil
	}
	s.finished = true
	return s.transport.Close()
}

// Statistics returns a snapshot of the session's exchange statistics
func (s *Session) Statistics() Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := *s.stats
	snapshot.CalculateRates()
	return snapshot
}

// ResetStatistics clears the session's exchange statistics
func (s *Session) ResetStatistics() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.Reset()
}

// Exchange sends one command to a controller and returns the response data.
// For addressed controllers the data starts with the echoed command byte;
// broadcast replies are returned raw.
//
// The returned slice is only valid until the next exchange on the session.
func (s *Session) Exchange(controller, command byte, data []byte) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp, sent, received, err := s.exchange(controller, command, data)
	s.stats.Update(sent, received, err)
	if err != nil {
		s.logger.Debug("exchange failed",
			zap.String("controller", k1.FormatControllerName(controller)),
			zap.String("command", k1.FormatCommandName(controller, command)),
			zap.Int("code", int(CodeOf(err))),
			zap.Error(err))
		return nil, err
	}
	return resp, nil
}

func (s *Session) exchange(controller, command byte, data []byte) ([]byte, int, int, error) {
	const op = "exchange"

	if s.finished {
		return nil, 0, 0, errorf(ErrWriteData, op, "session finished")
	}

	frame, err := s.encoder.Encode(k1.Message{Controller: controller, Command: command, Data: data})
	if err != nil {
		return nil, 0, 0, newError(protocolCode(err), op, err)
	}

	s.logger.Debug("command",
		zap.String("frame", k1.FormatHex(frame)),
		zap.String("controller", k1.FormatControllerName(controller)),
		zap.String("command", k1.FormatCommandName(controller, command)))

	if err := s.transport.Purge(); err != nil {
		return nil, 0, 0, newError(ErrPurgeBuffers, op, err)
	}

	n, err := s.transport.Write(frame)
	if err != nil {
		return nil, n, 0, newError(ErrWriteData, op, err)
	}
	if n != len(frame) {
		return nil, n, 0, errorf(ErrWriteData, op, "short write: %d of %d bytes", n, len(frame))
	}

	s.transport.Sleep(s.responseDelay)

	r, err := s.transport.Read(s.rx[:])
	if err != nil {
		return nil, n, r, newError(ErrReadData, op, err)
	}
	if r < 0 || r > len(s.rx) {
		return nil, n, 0, errorf(ErrReadData, op, "read returned %d bytes", r)
	}
	raw := s.rx[:r]

	s.logger.Debug("response", zap.String("frame", k1.FormatHex(raw)), zap.Int("length", r))

	resp, err := s.decoder.Decode(raw, controller)
	if err != nil {
		return nil, n, r, newError(protocolCode(err), op, err)
	}
	return resp, n, r, nil
}
