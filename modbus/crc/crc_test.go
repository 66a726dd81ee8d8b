// Copyright (c) 2014 Quoc-Viet Nguyen. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package crc

import (
	"testing"
)

func TestCRC(t *testing.T) {
	var crc CRC
	crc.Reset()
	crc.PushBytes([]byte{0x02, 0x07})

	if crc.Value() != 0x1241 {
		t.Fatalf("crc expected %v, actual %v", 0x1241, crc.Value())
	}
}

func TestCRCEmpty(t *testing.T) {
	var crc CRC
	crc.Reset()

	if crc.Value() != 0xFFFF {
		t.Fatalf("crc over no input expected %v, actual %v", 0xFFFF, crc.Value())
	}
	if Checksum(nil) != 0xFFFF {
		t.Fatalf("Checksum(nil) expected %v, actual %v", 0xFFFF, Checksum(nil))
	}
}

func TestCRCDeterministic(t *testing.T) {
	data := []byte{0x01, 0x11, 0x00, 0x00, 0x00, 0x00}

	first := Checksum(data)
	for i := 0; i < 10; i++ {
		if got := Checksum(data); got != first {
			t.Fatalf("checksum not reproducible: run %d got %#04x, want %#04x", i, got, first)
		}
	}
	if first != 0xC9FD {
		t.Fatalf("checksum expected %#04x, actual %#04x", 0xC9FD, first)
	}
}

func TestCRCIncremental(t *testing.T) {
	var crc CRC
	crc.Reset().PushByte(0x02).PushByte(0x07)

	if got := crc.Value(); got != Checksum([]byte{0x02, 0x07}) {
		t.Fatalf("byte-wise push diverged from one-shot: %#04x", got)
	}
}
