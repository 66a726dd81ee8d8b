// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package rtu

const (
	// ProbeSize is the fixed length of a probe request ADU:
	// [SlaveID, Func, 0x00, 0x00, 0x00, 0x00, CRC(2)]
	ProbeSize = 8

	// MinResponseSize is the smallest reply accepted as a frame:
	// address, function, at least one payload byte and the CRC.
	MinResponseSize = 7
)

// FuncCodeReadDeviceIdentification is the only function code the scanner
// speaks. The reply payload is kept opaque.
const FuncCodeReadDeviceIdentification = 0x11
