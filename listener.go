// listener.go - Listener accepts inbound streams and yields handshaked Connections.
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
	"net"

	"github.com/charmbracelet/log"

	"github.com/tug-dev/tolliver-go/internal/authkey"
	"github.com/tug-dev/tolliver-go/outbox"
	"github.com/tug-dev/tolliver-go/wire"
)

// DefaultListenAddress is what BindDefault (the library variant) uses: an
// OS-chosen port on all interfaces. The application default,
// "0.0.0.0:8080", is config.DefaultListenAddress (SPEC_FULL.md §6).
const DefaultListenAddress = "0.0.0.0:0"

// Listener accepts inbound byte streams, runs the server side of the
// handshake on each, and yields ready Connections one at a time through
// Accept. Rejected or failed handshakes are logged and skipped; Accept
// only returns an error when the underlying accept itself is fatal.
type Listener struct {
	ln     net.Listener
	key    *authkey.Key
	dbPath string
	log    *log.Logger
	opts   Options
}

// Bind binds address and returns a Listener authenticating peers against
// apiKey. Every accepted Connection opens its own outbox handle at
// dbPath (DefaultDBPath if empty); see SPEC_FULL.md §9 on why that path
// is not parameterized per-peer.
func Bind(address string, apiKey [wire.APIKeySize]byte, dbPath string, opts Options) (*Listener, error) {
	if dbPath == "" {
		dbPath = DefaultDBPath
	}
	ln, err := net.Listen("tcp", address)
	if err != nil {
		return nil, err
	}
	return &Listener{
		ln:     ln,
		key:    authkey.New(apiKey),
		dbPath: dbPath,
		log:    opts.logger(),
		opts:   opts,
	}, nil
}

// BindDefault binds DefaultListenAddress ("0.0.0.0:0"): an OS-chosen port
// on all interfaces, queryable afterward via LocalAddr.
func BindDefault(apiKey [wire.APIKeySize]byte, dbPath string, opts Options) (*Listener, error) {
	return Bind(DefaultListenAddress, apiKey, dbPath, opts)
}

// LocalAddr reports the concrete address the Listener is bound to.
func (l *Listener) LocalAddr() net.Addr {
	return l.ln.Addr()
}

// Accept blocks until the next peer completes the handshake successfully
// and returns it as a ready Connection. Internally it loops: accept one
// TCP stream, run the server handshake, and on rejection or handshake
// failure log and move on to the next inbound stream, without returning
// to the caller. It only returns an error when the underlying
// net.Listener.Accept fails (the listener itself is dead).
func (l *Listener) Accept() (*Connection, error) {
	for {
		conn, err := l.ln.Accept()
		if err != nil {
			return nil, err
		}

		result, hsErr := serverHandshake(conn, l.key)
		switch result {
		case handshakeReady:
			l.opts.Metrics.IncHandshakeAccepts()
		case handshakeRejected:
			l.opts.Metrics.IncHandshakeRejects()
			l.log.Warnf("rejected handshake from %s: %v", conn.RemoteAddr(), hsErr)
			conn.Close()
			continue
		case handshakeFailed:
			l.opts.Metrics.IncHandshakeRejects()
			l.log.Debugf("handshake with %s failed: %v", conn.RemoteAddr(), hsErr)
			conn.Close()
			continue
		}

		// Every accepted peer gets its own Outbox value, but outbox.Open
		// shares one underlying *bolt.DB per path across all of them, so
		// concurrent Connections under Serve are not serialized on this
		// open.
		ob, err := outbox.Open(l.dbPath, outbox.Options{Logger: l.log, Metrics: l.opts.Metrics})
		if err != nil {
			l.log.Errorf("failed to open outbox for %s: %v", conn.RemoteAddr(), err)
			conn.Close()
			continue
		}

		c, err := New(conn, ob, l.opts)
		if err != nil {
			l.log.Errorf("drain failed for %s: %v", conn.RemoteAddr(), err)
			conn.Close()
			ob.Close()
			continue
		}
		return c, nil
	}
}

// Serve is sugar over Accept: it loops Accept and runs handler in its own
// goroutine per Connection — the direct Go expression of "one thread per
// Connection" (SPEC_FULL.md §4.5/§5). It returns only when Accept returns
// a fatal error.
func (l *Listener) Serve(handler func(*Connection)) error {
	for {
		c, err := l.Accept()
		if err != nil {
			return err
		}
		go handler(c)
	}
}

// Close releases the accepting socket. Connections already yielded by
// Accept are unaffected.
func (l *Listener) Close() error {
	return l.ln.Close()
}
