// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config defines the scan settings.
type Config struct {
	// Port is the serial device to scan, e.g. "/dev/ttyUSB0" or "COM3".
	Port string `mapstructure:"port"`

	// BaudRates are tried in order for every address.
	BaudRates []int `mapstructure:"baud_rates"`

	// StartAddr and EndAddr bound the address sweep, both inclusive.
	StartAddr int `mapstructure:"start_addr"`
	EndAddr   int `mapstructure:"end_addr"`

	// Timeout bounds each read poll while draining a reply.
	Timeout time.Duration `mapstructure:"timeout"`

	// First stops the scan at the first device found.
	First bool `mapstructure:"first"`

	// ListPorts lists serial devices and exits instead of scanning.
	ListPorts bool `mapstructure:"list_ports"`

	Log LogConfig `mapstructure:"log"`
}

// LogConfig defines logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level"` // debug, info, warn, error
	File  string `mapstructure:"file"`  // log file path, empty or "-" for stdout
}

// Load reads configuration from command line flags and an optional config
// file. Flags win over the file, the file wins over defaults.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults: the standard candidate speeds, fastest first, and the full
	// range of regular slave addresses.
	v.SetDefault("baud_rates", []int{115200, 57600, 38400, 19200, 9600})
	v.SetDefault("start_addr", 1)
	v.SetDefault("end_addr", 247)
	v.SetDefault("timeout", 100*time.Millisecond)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	pflag.StringP("config", "c", "", "Configuration file path.")
	pflag.StringP("port", "p", "", "Serial port device name.")
	pflag.IntSliceP("baud_rates", "b", v.GetIntSlice("baud_rates"), "Baud rates to try, in order.")
	pflag.IntP("start_addr", "s", v.GetInt("start_addr"), "First slave address to probe.")
	pflag.IntP("end_addr", "e", v.GetInt("end_addr"), "Last slave address to probe.")
	pflag.DurationP("timeout", "W", v.GetDuration("timeout"), "Per-poll read timeout.")
	pflag.BoolP("first", "1", false, "Stop at the first device found.")
	pflag.Bool("list_ports", false, "List serial ports and exit.")
	pflag.StringP("log.level", "v", v.GetString("log.level"), "Log verbosity level (debug, info, warn, error).")
	pflag.StringP("log.file", "L", v.GetString("log.file"), "Log file name ('-' for logging to STDOUT only).")
	pflag.Parse()

	if err := v.BindPFlags(pflag.CommandLine); err != nil {
		return nil, fmt.Errorf("failed to bind pflags: %w", err)
	}

	configFile := v.GetString("config")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.modbus-scan")
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine, everything can come from flags.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects settings the scanner cannot act on. This is the only error
// a user ever sees: once a scan runs, every per-attempt failure folds into
// "no device found".
func (c *Config) Validate() error {
	if !c.ListPorts && c.Port == "" {
		return fmt.Errorf("no serial port given")
	}
	if c.StartAddr < 0 || c.StartAddr > 255 {
		return fmt.Errorf("start address %d out of range 0-255", c.StartAddr)
	}
	if c.EndAddr < 0 || c.EndAddr > 255 {
		return fmt.Errorf("end address %d out of range 0-255", c.EndAddr)
	}
	for _, baudRate := range c.BaudRates {
		if baudRate <= 0 {
			return fmt.Errorf("invalid baud rate: %d", baudRate)
		}
	}
	if len(c.BaudRates) == 0 {
		return fmt.Errorf("no baud rates given")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	return nil
}
