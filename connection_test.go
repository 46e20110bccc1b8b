// connection_test.go - Tests for Connection drain, send and close semantics.
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

package tolliver

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tug-dev/tolliver-go/outbox"
	"github.com/tug-dev/tolliver-go/wire"
)

func openTestOutbox(t *testing.T) *outbox.Outbox {
	t.Helper()
	ob, err := outbox.Open(filepath.Join(t.TempDir(), "tolliver.db"), outbox.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { ob.Close() })
	return ob
}

// Scenario D (spec.md §8): three unreliable sends with schema-id 0 and
// distinct bodies arrive at the peer in the exact order they were sent.
func TestUnreliableSendPreservesOrder(t *testing.T) {
	client, server := newPipe("192.0.2.10:1", "192.0.2.20:2")

	cConn, err := New(client, openTestOutbox(t), Options{})
	require.NoError(t, err)
	defer cConn.Close()

	sConn, err := New(server, openTestOutbox(t), Options{})
	require.NoError(t, err)
	defer sConn.Close()

	bodies := [][]byte{[]byte("Red/Large"), []byte("Blue/Medium"), []byte("Red/Large")}

	done := make(chan error, 1)
	go func() {
		for _, b := range bodies {
			if err := cConn.UnreliableSend(0, b); err != nil {
				done <- err
				return
			}
		}
		done <- nil
	}()

	for _, want := range bodies {
		schemaID, body, err := sConn.Read()
		require.NoError(t, err)
		require.EqualValues(t, 0, schemaID)
		require.Equal(t, want, body)
	}
	require.NoError(t, <-done)
}

// Scenario E (spec.md §8): a record appended to the outbox before a crash
// is replayed verbatim, in order, to whatever Connection is constructed
// next — regardless of which peer it was originally targeted at — and
// deleted from the outbox once delivered.
func TestDrainReplaysPendingRecordsOnConstruction(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "tolliver.db")

	ob1, err := outbox.Open(dbPath, outbox.Options{})
	require.NoError(t, err)
	body := []byte{0x00, 0x08, 0xFF, 0x2A}
	frame, err := wire.EncodeFrame(0, body)
	require.NoError(t, err)
	_, err = ob1.Append("192.0.2.0:443", frame)
	require.NoError(t, err)
	require.NoError(t, ob1.Close())

	ob2, err := outbox.Open(dbPath, outbox.Options{})
	require.NoError(t, err)

	client, server := newPipe("192.0.2.1:443", "192.0.2.1:9")

	recv := make(chan []byte, 1)
	go func() {
		_, b, err := wire.DecodeFrame(server)
		require.NoError(t, err)
		recv <- b
	}()

	conn, err := New(client, ob2, Options{})
	require.NoError(t, err)
	defer conn.Close()

	require.Equal(t, body, <-recv)

	records, err := ob2.Enumerate()
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestDurableSendDeletesRecordAfterDelivery(t *testing.T) {
	ob := openTestOutbox(t)
	client, server := newPipe("192.0.2.30:1", "192.0.2.40:2")

	conn, err := New(client, ob, Options{})
	require.NoError(t, err)
	defer conn.Close()

	recv := make(chan []byte, 1)
	go func() {
		_, b, err := wire.DecodeFrame(server)
		require.NoError(t, err)
		recv <- b
	}()

	require.NoError(t, conn.DurableSend(1, []byte("ack-me")))
	require.Equal(t, []byte("ack-me"), <-recv)

	records, err := ob.Enumerate()
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestCloseIsIdempotentAndBlocksFurtherUse(t *testing.T) {
	ob := openTestOutbox(t)
	client, _ := newPipe("192.0.2.50:1", "192.0.2.60:2")

	conn, err := New(client, ob, Options{})
	require.NoError(t, err)

	require.NoError(t, conn.Close())
	require.NoError(t, conn.Close())

	_, _, err = conn.Read()
	require.ErrorIs(t, err, ErrClosed)
	require.ErrorIs(t, conn.UnreliableSend(0, nil), ErrClosed)
	require.ErrorIs(t, conn.DurableSend(0, nil), ErrClosed)
}
