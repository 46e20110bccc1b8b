// stream_test.go - Test helpers for addressed net.Pipe streams.
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

import "net"

// pipeAddr is a fixed net.Addr for wrapping net.Pipe halves, which report
// their real RemoteAddr as a generic "pipe" address; tests that exercise
// peer-addressed behavior (DurableSend's outbox target) want a realistic,
// distinguishable string instead.
type pipeAddr string

func (a pipeAddr) Network() string { return "pipe" }
func (a pipeAddr) String() string  { return string(a) }

// addressedPipe wraps one half of a net.Pipe() pair with a caller-chosen
// RemoteAddr, so it satisfies Stream.
type addressedPipe struct {
	net.Conn
	remote net.Addr
}

func (p *addressedPipe) RemoteAddr() net.Addr { return p.remote }

func newPipe(clientAddr, serverAddr string) (client, server Stream) {
	c, s := net.Pipe()
	return &addressedPipe{Conn: c, remote: pipeAddr(serverAddr)},
		&addressedPipe{Conn: s, remote: pipeAddr(clientAddr)}
}
