// handshake.go - Handshake request/response codec.
// Copyright (C) 2026  tug-dev contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package wire

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// ProtocolVersion is the current tolliver wire protocol version.
	ProtocolVersion uint16 = 0

	// APIKeySize is the fixed length of the handshake's api-key field.
	APIKeySize = 32

	versionSize  = 2 // bytes, big-endian
	codeSize     = 1 // byte
	requestSize  = versionSize + APIKeySize
	responseSize = codeSize + versionSize
)

// HandshakeCode is the single-byte result code a server sends back in a
// HandshakeResponse. Values outside the named set are preserved verbatim:
// IsKnown reports false for them, and the HandshakeCode value itself is
// the exact byte the server sent.
type HandshakeCode uint8

const (
	HandshakeSuccess             HandshakeCode = 0
	HandshakeGeneralError        HandshakeCode = 1
	HandshakeIncompatibleVersion HandshakeCode = 2
	HandshakeUnauthorised        HandshakeCode = 3
)

// IsKnown reports whether c is one of the codes named above.
func (c HandshakeCode) IsKnown() bool {
	switch c {
	case HandshakeSuccess, HandshakeGeneralError, HandshakeIncompatibleVersion, HandshakeUnauthorised:
		return true
	default:
		return false
	}
}

func (c HandshakeCode) String() string {
	switch c {
	case HandshakeSuccess:
		return "success"
	case HandshakeGeneralError:
		return "general error"
	case HandshakeIncompatibleVersion:
		return "incompatible version"
	case HandshakeUnauthorised:
		return "unauthorised"
	default:
		return fmt.Sprintf("unknown handshake code %d", uint8(c))
	}
}

// EncodeHandshakeRequest lays out the client preamble: version (2 bytes,
// big-endian) followed by exactly APIKeySize bytes of api-key.
func EncodeHandshakeRequest(version uint16, apiKey [APIKeySize]byte) []byte {
	buf := make([]byte, requestSize)
	binary.BigEndian.PutUint16(buf[:versionSize], version)
	copy(buf[versionSize:], apiKey[:])
	return buf
}

// DecodeHandshakeRequest reads the 2-byte version and the 32-byte api-key
// from r.
func DecodeHandshakeRequest(r io.Reader) (version uint16, apiKey [APIKeySize]byte, err error) {
	var buf [requestSize]byte
	if _, err = io.ReadFull(r, buf[:]); err != nil {
		return 0, apiKey, err
	}
	version = binary.BigEndian.Uint16(buf[:versionSize])
	copy(apiKey[:], buf[versionSize:])
	return version, apiKey, nil
}

// EncodeHandshakeResponse lays out the server response: a 1-byte code
// followed by the server's 2-byte big-endian protocol version.
func EncodeHandshakeResponse(code HandshakeCode, version uint16) []byte {
	buf := make([]byte, responseSize)
	buf[0] = byte(code)
	binary.BigEndian.PutUint16(buf[codeSize:], version)
	return buf
}

// DecodeHandshakeResponse reads the 1-byte code and 2-byte big-endian
// version from r.
func DecodeHandshakeResponse(r io.Reader) (code HandshakeCode, version uint16, err error) {
	var buf [responseSize]byte
	if _, err = io.ReadFull(r, buf[:]); err != nil {
		return 0, 0, err
	}
	code = HandshakeCode(buf[0])
	version = binary.BigEndian.Uint16(buf[codeSize:])
	return code, version, nil
}
