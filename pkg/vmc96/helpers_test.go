// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package vmc96

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Thermoquad/vmc96/pkg/k1"
)

// scriptedTransport is an in-memory Transport that replays queued replies
// and records every call.
type scriptedTransport struct {
	replies [][]byte
	written [][]byte
	calls   []string
	slept   []time.Duration

	openErr  error
	purgeErr error
	writeErr error
	readErr  error
	shortBy  int
	closed   int
}

func (t *scriptedTransport) queue(replies ...[]byte) {
	t.replies = append(t.replies, replies...)
}

func (t *scriptedTransport) Open() error {
	t.calls = append(t.calls, "open")
	return t.openErr
}

func (t *scriptedTransport) Close() error {
	t.calls = append(t.calls, "close")
	t.closed++
	return nil
}

func (t *scriptedTransport) Purge() error {
	t.calls = append(t.calls, "purge")
	return t.purgeErr
}

func (t *scriptedTransport) Write(p []byte) (int, error) {
	t.calls = append(t.calls, "write")
	if t.writeErr != nil {
		return 0, t.writeErr
	}
	t.written = append(t.written, append([]byte(nil), p...))
	return len(p) - t.shortBy, nil
}

func (t *scriptedTransport) Sleep(d time.Duration) {
	t.calls = append(t.calls, "sleep")
	t.slept = append(t.slept, d)
}

func (t *scriptedTransport) Read(p []byte) (int, error) {
	t.calls = append(t.calls, "read")
	if t.readErr != nil {
		return 0, t.readErr
	}
	if len(t.replies) == 0 {
		return 0, nil
	}
	reply := t.replies[0]
	t.replies = t.replies[1:]
	return copy(p, reply), nil
}

// ioCalls counts purge, write and read calls
func (t *scriptedTransport) ioCalls() int {
	n := 0
	for _, c := range t.calls {
		if c == "purge" || c == "write" || c == "read" {
			n++
		}
	}
	return n
}

var errBoom = errors.New("boom")

// reply builds a valid response frame from controller with the given data,
// the first byte being the echoed command
func reply(t *testing.T, controller byte, command byte, data ...byte) []byte {
	t.Helper()
	frame, err := k1.EncodeMessage(k1.Message{Controller: controller, Command: command, Data: data})
	require.NoError(t, err)
	return frame
}

func newTestSession(t *testing.T) (*Session, *scriptedTransport) {
	t.Helper()
	tr := &scriptedTransport{}
	s, err := Initialize(tr)
	require.NoError(t, err)
	t.Cleanup(func() { s.Finish() })
	return s, tr
}
