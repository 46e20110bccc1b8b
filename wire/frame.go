// frame.go - Length-prefixed frame codec.
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
	"errors"
	"io"
)

// SchemaID identifies the payload schema a frame's body was encoded with.
// It is opaque to this package; applications assign their own meaning.
type SchemaID = uint64

// BodyLength is the wire type of a frame's body length.
type BodyLength = uint16

const (
	schemaIDSize    = 8 // bytes, big-endian SchemaID
	bodyLengthSize  = 2 // bytes, big-endian BodyLength
	frameHeaderSize = schemaIDSize + bodyLengthSize

	// MaxBodySize is the largest body EncodeFrame will accept.
	MaxBodySize = 1<<16 - 1
)

// ErrBodyTooLarge is returned by EncodeFrame when the body does not fit in
// the BodyLength field (65,535 bytes).
var ErrBodyTooLarge = errors.New("wire: body exceeds maximum frame size")

// EncodeFrame lays out a frame as schema-id (8 bytes, big-endian) followed
// by body-length (2 bytes, big-endian) followed by body. It fails with
// ErrBodyTooLarge if len(body) does not fit in a BodyLength.
func EncodeFrame(schemaID SchemaID, body []byte) ([]byte, error) {
	if len(body) > MaxBodySize {
		return nil, ErrBodyTooLarge
	}
	buf := make([]byte, frameHeaderSize+len(body))
	binary.BigEndian.PutUint64(buf[0:schemaIDSize], schemaID)
	binary.BigEndian.PutUint16(buf[schemaIDSize:frameHeaderSize], uint16(len(body)))
	copy(buf[frameHeaderSize:], body)
	return buf, nil
}

// DecodeFrame reads exactly one frame from r: the fixed header, then
// exactly body-length body bytes. A short read at any point is returned
// verbatim (typically io.ErrUnexpectedEOF or io.EOF from io.ReadFull).
func DecodeFrame(r io.Reader) (schemaID SchemaID, body []byte, err error) {
	var hdr [frameHeaderSize]byte
	if _, err = io.ReadFull(r, hdr[:]); err != nil {
		return 0, nil, err
	}
	schemaID = binary.BigEndian.Uint64(hdr[0:schemaIDSize])
	bodyLen := binary.BigEndian.Uint16(hdr[schemaIDSize:frameHeaderSize])

	body = make([]byte, bodyLen)
	if bodyLen > 0 {
		if _, err = io.ReadFull(r, body); err != nil {
			return 0, nil, err
		}
	}
	return schemaID, body, nil
}
