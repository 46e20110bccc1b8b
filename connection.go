// connection.go - Connection drains the outbox and moves frames.
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
	"io"
	"net"

	"github.com/charmbracelet/log"

	"github.com/tug-dev/tolliver-go/internal/worker"
	"github.com/tug-dev/tolliver-go/metrics"
	"github.com/tug-dev/tolliver-go/outbox"
	"github.com/tug-dev/tolliver-go/wire"
)

// Stream is what a Connection needs from the underlying byte stream: a
// net.Conn satisfies this trivially, but anything that can report its
// peer's address works (useful for tests over net.Pipe wrapped with a
// fixed address, or for a future non-TCP transport).
type Stream interface {
	io.Reader
	io.Writer
	io.Closer
	RemoteAddr() net.Addr
}

// Options configures a Connection (and, via Listener, every Connection it
// accepts). The zero value is valid: it logs to log.Default() and skips
// metrics.
type Options struct {
	Logger  *log.Logger
	Metrics *metrics.Metrics
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}

// Connection owns exactly one stream and one outbox handle. It is
// single-owner: exactly one goroutine may call Read/UnreliableSend/
// DurableSend at a time, and concurrent calls across goroutines need
// external synchronization, per SPEC_FULL.md §5.
//
// Its lifecycle is Draining -> Ready -> Closed. New does not return until
// Draining has finished (either the outbox was empty or every pending
// record was replayed and deleted), so by the time a caller holds a
// *Connection it is always Ready or it does not exist.
type Connection struct {
	worker.Worker

	stream Stream
	outbox *outbox.Outbox
	log    *log.Logger
	m      *metrics.Metrics
}

// New drains ob onto stream (writing every pre-existing record in
// ascending id order, then deleting it) before returning a ready
// Connection. Any I/O error during the drain is returned and the
// Connection is not constructed; the caller still owns stream and ob and
// may retry.
func New(stream Stream, ob *outbox.Outbox, opts Options) (*Connection, error) {
	c := &Connection{
		stream: stream,
		outbox: ob,
		log:    opts.logger(),
		m:      opts.Metrics,
	}
	if err := c.drain(); err != nil {
		return nil, err
	}
	return c, nil
}

// drain replays every outbox record accumulated from prior runs, in
// ascending id order, deleting each as its write succeeds.
func (c *Connection) drain() error {
	records, err := c.outbox.Enumerate()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}
	c.log.Debugf("draining %d pending outbox record(s)", len(records))
	for _, r := range records {
		if _, err := c.stream.Write(r.Frame); err != nil {
			return err
		}
		if err := c.outbox.Delete(r.ID); err != nil {
			c.log.Errorf("drain: failed to delete replayed record %d: %v", r.ID, err)
			return err
		}
	}
	c.m.AddOutboxDrained(len(records))
	return nil
}

// Read blocks for exactly one frame and returns its schema id and body.
func (c *Connection) Read() (schemaID wire.SchemaID, body []byte, err error) {
	if c.IsHalted() {
		return 0, nil, ErrClosed
	}
	return wire.DecodeFrame(c.stream)
}

// UnreliableSend encodes one frame and writes it to the stream with no
// persistence: if the write fails, the frame is gone.
func (c *Connection) UnreliableSend(schemaID wire.SchemaID, body []byte) error {
	if c.IsHalted() {
		return ErrClosed
	}
	frame, err := wire.EncodeFrame(schemaID, body)
	if err != nil {
		return err
	}
	if _, err := c.stream.Write(frame); err != nil {
		return err
	}
	c.m.IncUnreliableSends()
	return nil
}

// DurableSend encodes one frame, appends it to the outbox, writes it to
// the stream, and deletes the outbox record once the write succeeds. It
// returns only after the delete (or, if the delete itself fails after a
// successful write, after logging that an orphan record will be resent
// on the next drain — SPEC_FULL.md §4.3's documented at-least-once
// trade-off).
func (c *Connection) DurableSend(schemaID wire.SchemaID, body []byte) error {
	if c.IsHalted() {
		return ErrClosed
	}
	frame, err := wire.EncodeFrame(schemaID, body)
	if err != nil {
		return err
	}

	peer := c.stream.RemoteAddr().String()
	id, err := c.outbox.Append(peer, frame)
	if err != nil {
		return err
	}

	if _, err := c.stream.Write(frame); err != nil {
		return err
	}

	if err := c.outbox.Delete(id); err != nil {
		c.log.Errorf("durable-send: record %d delivered but delete failed, it will resend on next drain: %v", id, err)
		return nil
	}
	c.m.IncDurableSends()
	return nil
}

// Close releases the stream and the outbox handle. It is idempotent.
func (c *Connection) Close() error {
	if c.IsHalted() {
		return nil
	}
	c.Halt()

	streamErr := c.stream.Close()
	outboxErr := c.outbox.Close()
	switch {
	case streamErr != nil && outboxErr != nil:
		return fmt.Errorf("tolliver: close: stream: %w (outbox: %v)", streamErr, outboxErr)
	case streamErr != nil:
		return streamErr
	case outboxErr != nil:
		return outboxErr
	default:
		return nil
	}
}
