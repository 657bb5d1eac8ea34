// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/Thermoquad/vmc96/pkg/vmc96"
)

// GetPassword retrieves password from environment or prompts user
func GetPassword() (string, error) {
	// First check environment variable
	if pw := os.Getenv("VMC96_PASSWORD"); pw != "" {
		return pw, nil
	}

	// Prompt user for password (hide input)
	fmt.Fprint(os.Stderr, "Password: ")

	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		// Fallback to regular input if terminal functions fail
		reader := bufio.NewReader(os.Stdin)
		password, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read password: %v", err)
		}
		fmt.Fprintln(os.Stderr) // newline after password
		return strings.TrimSpace(password), nil
	}

	fmt.Fprintln(os.Stderr) // newline after password
	return string(passwordBytes), nil
}

// NewTransport builds either a WebSocket or a serial transport from the config
func NewTransport(c *Config) (vmc96.Transport, string, error) {
	if c.Transport.URL != "" {
		password := ""
		if c.Transport.Username != "" {
			var err error
			password, err = GetPassword()
			if err != nil {
				return nil, "", err
			}
		}

		tr := vmc96.NewWebSocketTransport(vmc96.WebSocketConfig{
			URL:           c.Transport.URL,
			Username:      c.Transport.Username,
			Password:      password,
			SkipSSLVerify: c.Transport.NoSSLVerify,
		})
		return tr, fmt.Sprintf("WebSocket: %s", c.Transport.URL), nil
	}

	serialCfg := c.SerialConfig()
	tr := vmc96.NewSerialTransport(serialCfg)
	if serialCfg.Port != "" {
		return tr, fmt.Sprintf("Serial: %s @ %d baud", serialCfg.Port, vmc96.BaudRate), nil
	}
	return tr, fmt.Sprintf("USB: %04X:%04X @ %d baud", serialCfg.VendorID, serialCfg.ProductID, vmc96.BaudRate), nil
}

// OpenSession opens a session to the board described by the loaded config
func OpenSession() (*vmc96.Session, string, error) {
	tr, info, err := NewTransport(cfg)
	if err != nil {
		return nil, "", err
	}

	s, err := vmc96.Initialize(tr,
		vmc96.WithLogger(logger),
		vmc96.WithResponseDelay(cfg.Protocol.ResponseDelay))
	if err != nil {
		return nil, "", err
	}

	if st, ok := tr.(*vmc96.SerialTransport); ok && st.Name() != "" {
		info = fmt.Sprintf("Serial: %s @ %d baud", st.Name(), vmc96.BaudRate)
	}
	return s, info, nil
}

// withSession opens a session, runs fn and always finishes the session
func withSession(fn func(s *vmc96.Session) error) error {
	s, _, err := OpenSession()
	if err != nil {
		return err
	}
	defer s.Finish()
	return fn(s)
}
