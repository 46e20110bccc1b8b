// handshake.go - Client and server handshake state machines.
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

	"github.com/tug-dev/tolliver-go/internal/authkey"
	"github.com/tug-dev/tolliver-go/wire"
)

// HandshakeError is returned by Connect when the server completed the
// handshake but reported a non-success code, including unknown codes the
// peer's caller should be able to see verbatim.
type HandshakeError struct {
	Code wire.HandshakeCode
	// PeerVersion is the server's protocol version, meaningful when Code
	// is HandshakeIncompatibleVersion.
	PeerVersion uint16
}

func (e *HandshakeError) Error() string {
	if e.Code == wire.HandshakeIncompatibleVersion {
		return fmt.Sprintf("tolliver: handshake failed: %s (client is %d, server is %d)",
			e.Code, wire.ProtocolVersion, e.PeerVersion)
	}
	return fmt.Sprintf("tolliver: handshake failed: %s", e.Code)
}

// clientHandshake runs the client side of the handshake described in
// SPEC_FULL.md §4.2: send the request, read the response, and either
// return cleanly (code == Success) or report a *HandshakeError.
func clientHandshake(rw io.ReadWriter, apiKey [wire.APIKeySize]byte) error {
	if _, err := rw.Write(wire.EncodeHandshakeRequest(wire.ProtocolVersion, apiKey)); err != nil {
		return err
	}
	code, peerVersion, err := wire.DecodeHandshakeResponse(rw)
	if err != nil {
		return err
	}
	if code == wire.HandshakeSuccess {
		return nil
	}
	return &HandshakeError{Code: code, PeerVersion: peerVersion}
}

// serverHandshakeResult is the terminal state the server-side state
// machine reached: {AwaitVersion -> AwaitKey -> SendResponse} ending in
// one of Ready, Rejected or Failed (spec.md §4.2).
type serverHandshakeResult int

const (
	handshakeReady serverHandshakeResult = iota
	handshakeRejected
	handshakeFailed
)

// serverHandshake runs the server side of the handshake. It never returns
// a "fatal" error for a rejected peer — Rejected is signalled through the
// result, not err, so a caller looping Accept can tell "try the next
// connection" (Rejected, Failed) apart from "the listener itself died"
// (which serverHandshake never reports).
func serverHandshake(rw io.ReadWriter, key *authkey.Key) (serverHandshakeResult, error) {
	// AwaitVersion, AwaitKey: the request is a single fixed-size read: a
	// stream that groups connect+handshake into one syscall nonetheless
	// inspects version before key, exactly as spec.md describes.
	version, presentedKey, err := wire.DecodeHandshakeRequest(rw)
	if err != nil {
		return handshakeFailed, err
	}

	if version != wire.ProtocolVersion {
		_, werr := rw.Write(wire.EncodeHandshakeResponse(wire.HandshakeIncompatibleVersion, wire.ProtocolVersion))
		return handshakeRejected, werr
	}

	if !key.Equal(presentedKey) {
		_, werr := rw.Write(wire.EncodeHandshakeResponse(wire.HandshakeUnauthorised, wire.ProtocolVersion))
		return handshakeRejected, werr
	}

	// SendResponse -> Ready. A failure here is treated like any other
	// I/O error: an unknown prefix may already be on the wire, so the
	// stream must be torn down rather than retried.
	if _, err := rw.Write(wire.EncodeHandshakeResponse(wire.HandshakeSuccess, wire.ProtocolVersion)); err != nil {
		return handshakeFailed, err
	}
	return handshakeReady, nil
}
