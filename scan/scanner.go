// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

// Package scan discovers Modbus RTU devices on a serial bus by probing every
// address/baud-rate combination with a fixed diagnostic request and keeping
// the replies that survive RTU frame validation. RTU carries no length prefix
// or handshake, so detection rests entirely on timing discipline: a settling
// delay after the request, then reading until the line goes quiet.
package scan

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Roma-Blog/modbus-scan/modbus/rtu"
	"github.com/Roma-Blog/modbus-scan/transport/serial"
)

const (
	// settleDelay gives the addressed device time to begin transmitting
	// before the first read. Shortening it risks missing slow devices.
	settleDelay = 200 * time.Millisecond

	// pollDelay separates reads while bytes keep arriving, so a frame that
	// trickles in is not cut off mid-transmission.
	pollDelay = 10 * time.Millisecond

	readChunkSize = 256
)

// Match is one discovered device. Response holds the verbatim reply bytes and
// is never mutated after capture.
type Match struct {
	Address  byte
	BaudRate int
	Response []byte
}

// ResponseHex renders the reply as space-separated two-digit uppercase hex,
// e.g. "0A 11 02 DE AD 80 E0".
func (m *Match) ResponseHex() string {
	parts := make([]string, len(m.Response))
	for i, b := range m.Response {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(parts, " ")
}

// ProgressFunc receives a human-readable status line before each attempt.
// It is best-effort only: a nil func disables reporting and a panicking one
// never disturbs the sweep.
type ProgressFunc func(status string)

// Scanner probes one serial port for Modbus RTU devices. The port name and
// read timeout are fixed at construction; every probe attempt opens and
// closes its own serial session, so no handle outlives a single attempt.
//
// A Scanner is not safe for concurrent use: probes own the port exclusively
// and run strictly one after another.
type Scanner struct {
	device  string
	timeout time.Duration

	dial serial.DialFunc

	settle time.Duration
	poll   time.Duration
}

// New creates a Scanner for the named port. timeout bounds each read poll
// while draining a reply.
func New(device string, timeout time.Duration) *Scanner {
	return &Scanner{
		device:  device,
		timeout: timeout,
		dial:    serial.Dial,
		settle:  settleDelay,
		poll:    pollDelay,
	}
}

// Probe runs a single attempt against one address at one baud rate. It
// returns nil when no device answered, the port could not be opened, or the
// reply failed validation; those cases are deliberately indistinguishable.
func (s *Scanner) Probe(address byte, baudRate int) *Match {
	port, err := s.dial(s.device, baudRate, s.timeout)
	if err != nil {
		slog.Debug("probe: open failed", "device", s.device, "baud", baudRate, "err", err)
		return nil
	}
	defer port.Close()

	// Stale bytes from a previous attempt or unrelated bus chatter must not
	// leak into this attempt's reply.
	port.ResetInputBuffer()
	port.ResetOutputBuffer()

	request := rtu.EncodeProbe(address)
	if _, err := port.Write(request); err != nil {
		slog.Debug("probe: write failed", "device", s.device, "baud", baudRate, "err", err)
		return nil
	}
	port.Drain()

	slog.Debug("probe: sent", "address", address, "baud", baudRate, "request", hex.EncodeToString(request))
	time.Sleep(s.settle)

	response := s.drain(port)
	if !rtu.VerifyProbeResponse(response, address) {
		return nil
	}

	slog.Debug("probe: matched", "address", address, "baud", baudRate, "response", hex.EncodeToString(response))
	return &Match{Address: address, BaudRate: baudRate, Response: response}
}

// drain reads until the line goes quiet. Inter-frame silence is RTU's framing
// rule, so a poll that yields nothing marks the end of the reply.
func (s *Scanner) drain(port serial.Port) []byte {
	var response []byte
	buf := make([]byte, readChunkSize)
	for {
		n, err := port.ReadPending(buf)
		if err != nil || n == 0 {
			return response
		}
		response = append(response, buf[:n]...)
		time.Sleep(s.poll)
	}
}

// SweepAddresses probes every address from start to end inclusive at one baud
// rate. It reports each address to progress before the attempt, keeps going
// through the whole range even after a match, and returns the matches in
// ascending address order. A start greater than end yields no results.
func (s *Scanner) SweepAddresses(baudRate int, start, end byte, progress ProgressFunc) []Match {
	var matches []Match
	for address := int(start); address <= int(end); address++ {
		report(progress, fmt.Sprintf("Trying address %d...", address))

		if m := s.Probe(byte(address), baudRate); m != nil {
			matches = append(matches, *m)
		}
	}
	return matches
}

// SweepAll probes the full cross-product: baud rates in the given order, and
// within each, addresses ascending from start to end inclusive. Results come
// back in iteration order.
func (s *Scanner) SweepAll(baudRates []int, start, end byte, progress ProgressFunc) []Match {
	var matches []Match
	for _, baudRate := range baudRates {
		report(progress, fmt.Sprintf("Trying baud rate %d...", baudRate))

		for address := int(start); address <= int(end); address++ {
			report(progress, fmt.Sprintf("  Address %d/%d...", address, end))

			if m := s.Probe(byte(address), baudRate); m != nil {
				matches = append(matches, *m)
			}
		}
	}
	return matches
}

// FirstMatch probes addresses ascending at one baud rate and stops at the
// first device found. The second return value reports whether one was.
func (s *Scanner) FirstMatch(baudRate int, start, end byte, progress ProgressFunc) (*Match, bool) {
	for address := int(start); address <= int(end); address++ {
		report(progress, fmt.Sprintf("Trying address %d...", address))

		if m := s.Probe(byte(address), baudRate); m != nil {
			return m, true
		}
	}
	return nil, false
}

// QuickScan constructs a Scanner and runs SweepAll in one call.
func QuickScan(device string, baudRates []int, start, end byte, timeout time.Duration, progress ProgressFunc) []Match {
	return New(device, timeout).SweepAll(baudRates, start, end, progress)
}

// report invokes the progress sink, swallowing a panic from it. Reporting is
// a side channel and must never interrupt a sweep.
func report(progress ProgressFunc, status string) {
	if progress == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			slog.Debug("progress sink failed", "err", r)
		}
	}()
	progress(status)
}
