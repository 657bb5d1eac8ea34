// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Thermoquad/vmc96/pkg/vmc96"
)

// TransportConfig selects and configures the link to the board
type TransportConfig struct {
	Port        string        `mapstructure:"port"`
	Interface   int           `mapstructure:"interface"`
	VendorID    uint16        `mapstructure:"vendorId"`
	ProductID   uint16        `mapstructure:"productId"`
	ReadTimeout time.Duration `mapstructure:"readTimeout"`

	URL         string `mapstructure:"url"`
	Username    string `mapstructure:"username"`
	NoSSLVerify bool   `mapstructure:"noSslVerify"`
}

// ProtocolConfig holds K1 exchange timing
type ProtocolConfig struct {
	ResponseDelay time.Duration `mapstructure:"responseDelay"`
}

// LoggingConfig holds log level and output format
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Config is the complete vmc96ctl configuration
type Config struct {
	Transport TransportConfig `mapstructure:"transport"`
	Protocol  ProtocolConfig  `mapstructure:"protocol"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// flag name -> config key
var flagKeys = map[string]string{
	"port":           "transport.port",
	"interface":      "transport.interface",
	"url":            "transport.url",
	"username":       "transport.username",
	"no-ssl-verify":  "transport.noSslVerify",
	"response-delay": "protocol.responseDelay",
	"log-level":      "logging.level",
	"log-format":     "logging.format",
}

// LoadConfig merges defaults, an optional YAML file, VMC96_* environment
// variables and command line flags, in increasing order of precedence.
func LoadConfig(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("VMC96")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	serial := vmc96.DefaultSerialConfig()

	v.SetDefault("transport.port", "")
	v.SetDefault("transport.interface", 0)
	v.SetDefault("transport.vendorId", serial.VendorID)
	v.SetDefault("transport.productId", serial.ProductID)
	v.SetDefault("transport.readTimeout", serial.ReadTimeout)
	v.SetDefault("transport.url", "")
	v.SetDefault("transport.username", "")
	v.SetDefault("transport.noSslVerify", false)

	v.SetDefault("protocol.responseDelay", vmc96.DefaultResponseDelay)

	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")
}

func (c *Config) validate() error {
	if c.Transport.Port != "" && c.Transport.URL != "" {
		return errors.New("--port and --url are mutually exclusive")
	}
	if c.Transport.Interface < 0 {
		return fmt.Errorf("invalid interface %d", c.Transport.Interface)
	}
	if c.Protocol.ResponseDelay <= 0 {
		return fmt.Errorf("response delay must be positive, got %s", c.Protocol.ResponseDelay)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("unsupported log format: %s (use console or json)", c.Logging.Format)
	}
	return nil
}

// SerialConfig returns the serial transport configuration
func (c *Config) SerialConfig() vmc96.SerialConfig {
	return vmc96.SerialConfig{
		Port:        c.Transport.Port,
		VendorID:    c.Transport.VendorID,
		ProductID:   c.Transport.ProductID,
		Interface:   c.Transport.Interface,
		ReadTimeout: c.Transport.ReadTimeout,
	}
}
