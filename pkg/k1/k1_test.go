// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package k1

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// ============================================================
// Checksum Tests
// ============================================================

func TestChecksum_Empty(t *testing.T) {
	if sum := Checksum(nil); sum != 0 {
		t.Errorf("checksum of empty data should be 0, got 0x%02X", sum)
	}
}

func TestChecksum_KnownValues(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected byte
	}{
		{"relay 0 ping", []byte{0x35, 0x26, 0x05, 0x00}, 0x16},
		{"relay 1 version", []byte{0x35, 0x27, 0x05, 0x02}, 0x15},
		{"motor run", []byte{0x35, 0x30, 0x06, 0x13, 0x36}, 0x26},
		{"global reset", []byte{0x35, 0x00, 0x06, 0x01, 0xFF}, 0xCD},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if sum := Checksum(tt.data); sum != tt.expected {
				t.Errorf("checksum mismatch: expected 0x%02X, got 0x%02X", tt.expected, sum)
			}
		})
	}
}

// ============================================================
// Encoder Tests
// ============================================================

func TestEncode_LiteralFrames(t *testing.T) {
	tests := []struct {
		name     string
		msg      Message
		expected []byte
	}{
		{
			name:     "relay 0 ping",
			msg:      Message{Controller: AddrRelay0, Command: CmdPing},
			expected: []byte{0x35, 0x26, 0x05, 0x00, 0x16},
		},
		{
			name:     "relay 1 version",
			msg:      Message{Controller: AddrRelay1, Command: CmdVersion},
			expected: []byte{0x35, 0x27, 0x05, 0x02, 0x15},
		},
		{
			name:     "motor run row 2 col 5",
			msg:      Message{Controller: AddrMotorArray, Command: CmdMotorRun, Data: []byte{0x36}},
			expected: []byte{0x35, 0x30, 0x06, 0x13, 0x36, 0x26},
		},
		{
			name:     "global reset",
			msg:      Message{Controller: AddrBroadcast, Command: CmdGlobalReset, Data: []byte{0xFF}},
			expected: []byte{0x35, 0x00, 0x06, 0x01, 0xFF, 0xCD},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := EncodeMessage(tt.msg)
			if err != nil {
				t.Fatalf("encode failed: %v", err)
			}
			if !bytes.Equal(frame, tt.expected) {
				t.Errorf("frame mismatch:\n got  %s\n want %s", FormatHex(frame), FormatHex(tt.expected))
			}
		})
	}
}

func TestEncode_STXInPayloadNotEscaped(t *testing.T) {
	frame, err := EncodeMessage(Message{Controller: AddrMotorArray, Command: CmdMotorRun, Data: []byte{STX, STX}})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if len(frame) != 7 {
		t.Fatalf("expected 7 byte frame, got %d", len(frame))
	}
	if frame[4] != STX || frame[5] != STX {
		t.Errorf("payload should be copied verbatim, got %s", FormatHex(frame))
	}
}

func TestEncode_MaxData(t *testing.T) {
	data := bytes.Repeat([]byte{0xA5}, MaxDataLen)
	frame, err := EncodeMessage(Message{Controller: AddrMotorArray, Command: CmdPing, Data: data})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if len(frame) != MaxFrameLen || frame[2] != MaxFrameLen {
		t.Errorf("expected %d byte frame, got len=%d length byte=%d", MaxFrameLen, len(frame), frame[2])
	}
}

func TestEncode_DataTooLong(t *testing.T) {
	data := make([]byte, MaxDataLen+1)
	_, err := EncodeMessage(Message{Controller: AddrMotorArray, Command: CmdPing, Data: data})
	if !errors.Is(err, ErrDataTooLong) {
		t.Errorf("expected ErrDataTooLong, got %v", err)
	}
}

func TestEncoder_ReusesBuffer(t *testing.T) {
	e := NewEncoder()
	first, err := e.Encode(Message{Controller: AddrRelay0, Command: CmdPing})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	second, err := e.Encode(Message{Controller: AddrRelay1, Command: CmdVersion})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if &first[0] != &second[0] {
		t.Error("encoder should reuse its scratch buffer")
	}
	if second[1] != AddrRelay1 {
		t.Errorf("expected controller 0x27, got 0x%02X", second[1])
	}
}

// ============================================================
// Decoder Tests
// ============================================================

func TestDecode_VersionReply(t *testing.T) {
	raw := []byte{0x35, 0x27, 0x0A, 0x02, 'v', '1', '.', '2', 0x00, 0x41}
	data, err := DecodeFrame(raw, AddrRelay1)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	expected := []byte{0x02, 'v', '1', '.', '2', 0x00}
	if !bytes.Equal(data, expected) {
		t.Errorf("data mismatch: got %s, want %s", FormatHex(data), FormatHex(expected))
	}
}

func TestDecode_MotorStatusReply(t *testing.T) {
	raw := []byte{0x35, 0x30, 0x08, 0x10, 0x80, 0x11, 0x22, 0xAE}
	data, err := DecodeFrame(raw, AddrMotorArray)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !bytes.Equal(data, []byte{0x10, 0x80, 0x11, 0x22}) {
		t.Errorf("unexpected data %s", FormatHex(data))
	}
}

func TestDecode_NegativeAckPassesThrough(t *testing.T) {
	raw := []byte{0x35, 0x30, 0x05, NegativeAck, 0}
	raw[4] = Checksum(raw[:4])
	data, err := DecodeFrame(raw, AddrMotorArray)
	if err != nil {
		t.Fatalf("negative ack should not be rejected by the codec: %v", err)
	}
	if len(data) != 1 || data[0] != NegativeAck {
		t.Errorf("expected [FF], got %s", FormatHex(data))
	}
}

func TestDecode_Errors(t *testing.T) {
	valid := []byte{0x35, 0x30, 0x08, 0x10, 0x80, 0x11, 0x22, 0xAE}

	withByte := func(i int, b byte) []byte {
		raw := append([]byte(nil), valid...)
		raw[i] = b
		return raw
	}

	tests := []struct {
		name       string
		raw        []byte
		controller byte
		expected   error
	}{
		{"empty", nil, AddrMotorArray, ErrInvalidLength},
		{"too short", valid[:4], AddrRelay0, ErrInvalidLength},
		{"bad STX", withByte(0, 0x36), AddrMotorArray, ErrMalformed},
		{"wrong source", valid, AddrRelay0, ErrInvalidSource},
		{"length byte mismatch", withByte(2, 0x09), AddrMotorArray, ErrInvalidLength},
		{"truncated read", valid[:7], AddrMotorArray, ErrInvalidLength},
		{"bad checksum", withByte(7, 0xAF), AddrMotorArray, ErrInvalidChecksum},
		{"tampered payload", withByte(4, 0x81), AddrMotorArray, ErrInvalidChecksum},
		{"empty broadcast", []byte{}, AddrBroadcast, ErrInvalidLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeFrame(tt.raw, tt.controller)
			if !errors.Is(err, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, err)
			}
		})
	}
}

func TestDecode_ValidationOrder(t *testing.T) {
	// Bad STX and bad source together: STX is checked first
	raw := []byte{0x00, 0x99, 0x05, 0x00, 0x00}
	if _, err := DecodeFrame(raw, AddrRelay0); !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed first, got %v", err)
	}

	// Bad source and bad length together: source is checked first
	raw = []byte{0x35, 0x99, 0x09, 0x00, 0x00}
	if _, err := DecodeFrame(raw, AddrRelay0); !errors.Is(err, ErrInvalidSource) {
		t.Errorf("expected ErrInvalidSource first, got %v", err)
	}
}

func TestDecode_BroadcastIsOpaque(t *testing.T) {
	// Garbage that would fail every structural check for an addressed controller
	raw := []byte{0x00, 0x01, 0x02}
	data, err := DecodeFrame(raw, AddrBroadcast)
	if err != nil {
		t.Fatalf("broadcast replies should not be validated: %v", err)
	}
	if !bytes.Equal(data, raw) {
		t.Errorf("expected opaque copy, got %s", FormatHex(data))
	}
}

func TestDecoder_ResultIsCopy(t *testing.T) {
	raw := []byte{0x35, 0x26, 0x05, 0x00, 0x16}
	d := NewDecoder()
	data, err := d.Decode(raw, AddrRelay0)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	raw[3] = 0x7F
	if data[0] != 0x00 {
		t.Error("decoded data should not alias the raw buffer")
	}
}

// ============================================================
// Formatter Tests
// ============================================================

func TestFormatHex(t *testing.T) {
	if got := FormatHex([]byte{0x35, 0x26, 0x05, 0x00, 0x16}); got != "35 26 05 00 16" {
		t.Errorf("unexpected hex: %q", got)
	}
	if got := FormatHex(nil); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestFormatCommandName(t *testing.T) {
	tests := []struct {
		controller byte
		command    byte
		expected   string
	}{
		{AddrRelay0, CmdPing, "PING"},
		{AddrRelay1, CmdRelaySet, "RELAY_SET"},
		{AddrMotorArray, CmdRelaySet, "UNKNOWN"},
		{AddrMotorArray, CmdMotorRun, "MOTOR_RUN"},
		{AddrMotorArray, CmdOptoLineStatus, "OPTO_LINE_STATUS"},
		{AddrBroadcast, CmdGlobalReset, "GLOBAL_RESET"},
		{AddrRelay0, CmdGlobalReset, "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := FormatCommandName(tt.controller, tt.command); got != tt.expected {
			t.Errorf("FormatCommandName(0x%02X, 0x%02X) = %s, want %s", tt.controller, tt.command, got, tt.expected)
		}
	}
}

func TestFormatFrame(t *testing.T) {
	line := FormatFrame("COMMAND", []byte{0x35, 0x30, 0x06, 0x13, 0x36, 0x26})
	for _, want := range []string{"COMMAND", "MOTOR_ARRAY/MOTOR_RUN", "len=6", "35 30 06 13 36 26"} {
		if !strings.Contains(line, want) {
			t.Errorf("expected %q in %q", want, line)
		}
	}

	short := FormatFrame("RETURN", []byte{0x35})
	if short != "RETURN (1): 35" {
		t.Errorf("unexpected short frame format: %q", short)
	}
}
