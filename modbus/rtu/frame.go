// Copyright (c) 2014 Quoc-Viet Nguyen. All rights reserved.
// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package rtu

import (
	"github.com/Roma-Blog/modbus-scan/modbus/crc"
)

// EncodeProbe builds the diagnostic request ADU for a slave address:
//
//	Slave Address   : 1 byte
//	Function (0x11) : 1 byte
//	Sub-fields      : 4 zero bytes
//	CRC             : 2 bytes, low byte first
//
// The frame is always exactly ProbeSize bytes and valid for any address.
func EncodeProbe(slaveID byte) []byte {
	raw := make([]byte, ProbeSize)

	raw[0] = slaveID
	raw[1] = FuncCodeReadDeviceIdentification
	// raw[2:6] stay zero: the probe carries no sub-request

	// Append crc
	var crc crc.CRC
	crc.Reset().PushBytes(raw[0 : ProbeSize-2])
	checksum := crc.Value()

	raw[ProbeSize-1] = byte(checksum >> 8)
	raw[ProbeSize-2] = byte(checksum)
	return raw
}

// VerifyProbeResponse reports whether raw is a well-formed reply to the probe
// sent to slaveID. Rules are applied in order and short-circuit: minimum
// length, address and function echo, then CRC over everything but the trailing
// two bytes. A frame failing any rule is indistinguishable from a silent
// device as far as the scanner is concerned.
func VerifyProbeResponse(raw []byte, slaveID byte) bool {
	length := len(raw)
	if length < MinResponseSize {
		return false
	}
	if raw[0] != slaveID || raw[1] != FuncCodeReadDeviceIdentification {
		return false
	}

	var crc crc.CRC
	crc.Reset().PushBytes(raw[0 : length-2])
	checksum := uint16(raw[length-1])<<8 | uint16(raw[length-2])
	return checksum == crc.Value()
}
