// client.go - Connect dials a peer and runs the client handshake.
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
	"fmt"
	"net"
	"time"

	"github.com/tug-dev/tolliver-go/outbox"
	"github.com/tug-dev/tolliver-go/wire"
)

// DefaultDBPath is the outbox file tolliver opens when a caller does not
// pick one: a single file named "tolliver.db" in the working directory,
// per the protocol's external interface (SPEC_FULL.md §6). It is
// intentionally process-wide and not parameterized by peer address — see
// SPEC_FULL.md §9's "Fixed storage path" decision.
const DefaultDBPath = "tolliver.db"

// handshakeTimeout bounds only the handshake itself; once a Connection is
// returned, its deadline is cleared and reads/writes block indefinitely,
// per SPEC_FULL.md §5.
const handshakeTimeout = 30 * time.Second

// Connect dials address over TCP, runs the client side of the handshake
// with apiKey, and on success opens the outbox at dbPath (DefaultDBPath
// if empty), draining it onto the new stream before returning.
//
// A non-success handshake response surfaces as *HandshakeError; any
// other failure (dial, I/O, outbox) surfaces verbatim.
func Connect(address string, apiKey [wire.APIKeySize]byte, dbPath string, opts Options) (*Connection, error) {
	if dbPath == "" {
		dbPath = DefaultDBPath
	}
	lg := opts.logger()

	conn, err := net.DialTimeout("tcp", address, handshakeTimeout)
	if err != nil {
		return nil, fmt.Errorf("tolliver: dial %s: %w", address, err)
	}

	if err := conn.SetDeadline(time.Now().Add(handshakeTimeout)); err != nil {
		conn.Close()
		return nil, err
	}
	if err := clientHandshake(conn, apiKey); err != nil {
		lg.Errorf("handshake with %s failed: %v", address, err)
		conn.Close()
		return nil, err
	}
	if err := conn.SetDeadline(time.Time{}); err != nil {
		conn.Close()
		return nil, err
	}
	lg.Debugf("handshake completed with %s", conn.RemoteAddr())

	ob, err := outbox.Open(dbPath, outbox.Options{Logger: lg, Metrics: opts.Metrics})
	if err != nil {
		conn.Close()
		return nil, err
	}

	c, err := New(conn, ob, opts)
	if err != nil {
		conn.Close()
		ob.Close()
		return nil, err
	}
	return c, nil
}
