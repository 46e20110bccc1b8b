// doc.go - Package tolliver overview.
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

// Package tolliver is a synchronous, blocking messaging library over a
// length-prefixed framing on top of ordinary byte streams (TCP).
//
// A server binds a Listener and calls Accept (or Serve) to obtain ready
// Connections, one per authenticated peer; a client dials one with
// Connect. Both sides run the same fixed-size handshake before a
// Connection exists, and both sides can read frames, send frames with no
// persistence guarantee (UnreliableSend), or send frames durably across
// process restarts via an on-disk outbox (DurableSend).
//
// The wire codec and handshake live in the wire subpackage; outbox
// persistence lives in the outbox subpackage; this package composes them
// into Connection and Listener.
package tolliver
