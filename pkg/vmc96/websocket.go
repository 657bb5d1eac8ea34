// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package vmc96

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ErrConnectionClosed is returned when the bridge connection has gone away
var ErrConnectionClosed = errors.New("websocket connection closed")

// WebSocketConfig holds configuration for a serial-over-WebSocket bridge
type WebSocketConfig struct {
	URL           string
	Username      string
	Password      string
	SkipSSLVerify bool
	DialTimeout   time.Duration
}

// WebSocketTransport talks to a board attached to a remote bridge that
// relays binary WebSocket messages to and from the serial line.
type WebSocketTransport struct {
	cfg  WebSocketConfig
	conn *websocket.Conn

	mu      sync.Mutex
	pending []byte
	readErr error
	done    chan struct{}
}

// NewWebSocketTransport creates an unconnected bridge transport
func NewWebSocketTransport(cfg WebSocketConfig) *WebSocketTransport {
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = 15 * time.Second
	}
	return &WebSocketTransport{cfg: cfg}
}

// Open dials the bridge and starts collecting inbound bytes
func (w *WebSocketTransport) Open() error {
	const op = "open"

	u, err := url.Parse(w.cfg.URL)
	if err != nil {
		return errorf(ErrTransportInit, op, "invalid URL: %w", err)
	}
	switch u.Scheme {
	case "ws", "wss":
	default:
		return errorf(ErrTransportInit, op, "unsupported URL scheme: %s (use ws:// or wss://)", u.Scheme)
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}
	if u.Scheme == "wss" {
		dialer.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: w.cfg.SkipSSLVerify,
		}
	}

	headers := http.Header{}
	if w.cfg.Username != "" && w.cfg.Password != "" {
		credentials := base64.StdEncoding.EncodeToString([]byte(w.cfg.Username + ":" + w.cfg.Password))
		headers.Set("Authorization", "Basic "+credentials)
	}

	ctx, cancel := context.WithTimeout(context.Background(), w.cfg.DialTimeout)
	defer cancel()

	conn, resp, err := dialer.DialContext(ctx, w.cfg.URL, headers)
	if err != nil {
		if resp != nil {
			return errorf(ErrOpenDevice, op, "HTTP %d: %w", resp.StatusCode, err)
		}
		return newError(ErrOpenDevice, op, err)
	}

	w.conn = conn
	w.done = make(chan struct{})
	go w.readLoop(conn, w.done)
	return nil
}

func (w *WebSocketTransport) readLoop(conn *websocket.Conn, done chan struct{}) {
	defer close(done)
	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			w.mu.Lock()
			w.readErr = err
			w.mu.Unlock()
			return
		}

		// Only binary messages carry serial bytes
		if messageType != websocket.BinaryMessage {
			continue
		}

		w.mu.Lock()
		w.pending = append(w.pending, data...)
		w.mu.Unlock()
	}
}

// Close closes the bridge connection and waits for the reader to exit
func (w *WebSocketTransport) Close() error {
	if w.conn == nil {
		return nil
	}
	err := w.conn.Close()
	<-w.done
	w.conn = nil
	return err
}

// Purge drops any inbound bytes that have not been read yet
func (w *WebSocketTransport) Purge() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.readErr != nil {
		return fmt.Errorf("%w: %v", ErrConnectionClosed, w.readErr)
	}
	w.pending = w.pending[:0]
	return nil
}

func (w *WebSocketTransport) Write(p []byte) (int, error) {
	if w.conn == nil {
		return 0, ErrConnectionClosed
	}
	if err := w.conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Sleep blocks for d
func (w *WebSocketTransport) Sleep(d time.Duration) {
	time.Sleep(d)
}

// Read returns the bytes received so far without blocking
func (w *WebSocketTransport) Read(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.pending) == 0 && w.readErr != nil {
		return 0, fmt.Errorf("%w: %v", ErrConnectionClosed, w.readErr)
	}

	n := copy(p, w.pending)
	w.pending = w.pending[n:]
	return n, nil
}
