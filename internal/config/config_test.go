// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package config

import (
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	valid := Config{
		Port:      "/dev/ttyUSB0",
		BaudRates: []int{9600},
		StartAddr: 1,
		EndAddr:   247,
		Timeout:   100 * time.Millisecond,
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"Valid", func(c *Config) {}, false},
		{"ListPortsWithoutPort", func(c *Config) { c.Port = ""; c.ListPorts = true }, false},
		{"MissingPort", func(c *Config) { c.Port = "" }, true},
		{"StartAddrTooHigh", func(c *Config) { c.StartAddr = 256 }, true},
		{"EndAddrNegative", func(c *Config) { c.EndAddr = -1 }, true},
		{"ZeroBaudRate", func(c *Config) { c.BaudRates = []int{9600, 0} }, true},
		{"NoBaudRates", func(c *Config) { c.BaudRates = nil }, true},
		{"ZeroTimeout", func(c *Config) { c.Timeout = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
