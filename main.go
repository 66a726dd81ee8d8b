// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Roma-Blog/modbus-scan/internal/config"
	"github.com/Roma-Blog/modbus-scan/scan"
	"github.com/Roma-Blog/modbus-scan/transport/serial"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	setupLogger(cfg.Log)

	if cfg.ListPorts {
		listPorts()
		return
	}

	slog.Info("Starting Modbus RTU scan...",
		"port", cfg.Port,
		"baud_rates", cfg.BaudRates,
		"start", cfg.StartAddr,
		"end", cfg.EndAddr,
	)

	scanner := scan.New(cfg.Port, cfg.Timeout)
	progress := func(status string) {
		slog.Info(status)
	}

	var matches []scan.Match
	if cfg.First {
		for _, baudRate := range cfg.BaudRates {
			slog.Info("Trying baud rate", "baud", baudRate)
			if m, found := scanner.FirstMatch(baudRate, byte(cfg.StartAddr), byte(cfg.EndAddr), progress); found {
				matches = append(matches, *m)
				break
			}
		}
	} else {
		matches = scanner.SweepAll(cfg.BaudRates, byte(cfg.StartAddr), byte(cfg.EndAddr), progress)
	}

	if len(matches) == 0 {
		slog.Info("No devices found")
		return
	}

	for _, m := range matches {
		fmt.Printf("address=%d baud=%d response=%s\n", m.Address, m.BaudRate, m.ResponseHex())
	}
	slog.Info("Scan complete", "devices_found", len(matches))
}

func listPorts() {
	ports, err := serial.Ports()
	if err != nil {
		slog.Error("Failed to list serial ports", "err", err)
		os.Exit(1)
	}
	if len(ports) == 0 {
		fmt.Println("No serial ports found")
		return
	}
	for _, port := range ports {
		fmt.Println(port)
	}
}

func setupLogger(cfg config.LogConfig) {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}
	switch cfg.Level {
	case "debug":
		opts.Level = slog.LevelDebug
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	}

	var handler slog.Handler
	if cfg.File != "" && cfg.File != "-" {
		f, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Printf("Failed to open log file, falling back to stdout: %v\n", err)
			handler = slog.NewTextHandler(os.Stdout, opts)
		} else {
			handler = slog.NewTextHandler(f, opts)
		}
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
