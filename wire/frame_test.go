// frame_test.go - Tests for the frame codec.
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

package wire_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tug-dev/tolliver-go/wire"
)

func TestEncodeDecodeFrameRoundTrip(t *testing.T) {
	cases := []struct {
		name     string
		schemaID wire.SchemaID
		body     []byte
	}{
		{"empty body", 0, []byte{}},
		{"small body", 7, []byte{0, 8, 0xFF, 0x2A}},
		{"max schema id", ^uint64(0), []byte("Red/Large")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			encoded, err := wire.EncodeFrame(tc.schemaID, tc.body)
			require.NoError(t, err)

			schemaID, body, err := wire.DecodeFrame(bytes.NewReader(encoded))
			require.NoError(t, err)
			require.Equal(t, tc.schemaID, schemaID)
			require.Equal(t, tc.body, body)
		})
	}
}

func TestEncodeFrameBodyTooLarge(t *testing.T) {
	_, err := wire.EncodeFrame(0, make([]byte, wire.MaxBodySize))
	require.NoError(t, err)

	_, err = wire.EncodeFrame(0, make([]byte, wire.MaxBodySize+1))
	require.True(t, errors.Is(err, wire.ErrBodyTooLarge))
}

func TestEncodeFrameMaxSize(t *testing.T) {
	body := make([]byte, wire.MaxBodySize)
	encoded, err := wire.EncodeFrame(0, body)
	require.NoError(t, err)
	require.Len(t, encoded, 8+2+wire.MaxBodySize)
}

func TestDecodeFrameShortRead(t *testing.T) {
	_, _, err := wire.DecodeFrame(bytes.NewReader([]byte{0, 0, 0}))
	require.Error(t, err)
}

func TestDecodeFrameTruncatedBody(t *testing.T) {
	encoded, err := wire.EncodeFrame(1, []byte("hello"))
	require.NoError(t, err)

	_, _, err = wire.DecodeFrame(bytes.NewReader(encoded[:len(encoded)-2]))
	require.Error(t, err)
}

func TestMultipleFramesOnOneStream(t *testing.T) {
	var buf bytes.Buffer
	bodies := [][]byte{[]byte("Red/Large"), []byte("Blue/Medium"), []byte("Red/Large")}
	for _, b := range bodies {
		f, err := wire.EncodeFrame(0, b)
		require.NoError(t, err)
		buf.Write(f)
	}

	for _, want := range bodies {
		_, got, err := wire.DecodeFrame(&buf)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}
