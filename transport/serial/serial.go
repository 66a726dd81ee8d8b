// Copyright (c) 2014 Quoc-Viet Nguyen. All rights reserved.
// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package serial

import (
	"fmt"
	"io"
	"time"

	bugst "go.bug.st/serial"
)

// Port is one open probe session on a serial line. A session lives for a
// single probe attempt: open, clear, write, drain, read, close.
type Port interface {
	io.WriteCloser

	// ResetInputBuffer discards bytes already received but not read.
	ResetInputBuffer() error
	// ResetOutputBuffer discards bytes written but not yet transmitted.
	ResetOutputBuffer() error
	// Drain blocks until the output buffer has been transmitted.
	Drain() error
	// ReadPending reads bytes queued on the line into p. It returns n == 0
	// once the line has stayed quiet for the port's read timeout, which the
	// scanner treats as end of frame.
	ReadPending(p []byte) (int, error)
}

// DialFunc opens a named port at a baud rate with a read timeout. The scanner
// takes one so tests can substitute a scripted transport.
type DialFunc func(device string, baudRate int, timeout time.Duration) (Port, error)

// Dial opens a real serial port, 8N1 at the requested speed.
func Dial(device string, baudRate int, timeout time.Duration) (Port, error) {
	mode := &bugst.Mode{
		BaudRate: baudRate,
	}
	p, err := bugst.Open(device, mode)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", device, err)
	}
	if err := p.SetReadTimeout(timeout); err != nil {
		p.Close()
		return nil, fmt.Errorf("could not set read timeout on %s: %w", device, err)
	}
	return &port{p: p}, nil
}

// Ports lists the serial devices present on the host.
func Ports() ([]string, error) {
	return bugst.GetPortsList()
}

// port adapts a go.bug.st/serial port to the Port interface.
type port struct {
	p bugst.Port
}

func (s *port) Write(p []byte) (int, error) { return s.p.Write(p) }
func (s *port) ResetInputBuffer() error     { return s.p.ResetInputBuffer() }
func (s *port) ResetOutputBuffer() error    { return s.p.ResetOutputBuffer() }
func (s *port) Drain() error                { return s.p.Drain() }
func (s *port) Close() error                { return s.p.Close() }

// ReadPending relies on the read timeout set at open: Read returns n == 0
// without an error when nothing arrives in time.
func (s *port) ReadPending(p []byte) (int, error) {
	return s.p.Read(p)
}
