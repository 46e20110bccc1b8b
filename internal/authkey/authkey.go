// authkey.go - Guarded api-key comparison.
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

// Package authkey guards the handshake's configured api-key in locked
// memory and performs the comparison the server-side handshake needs,
// resolving tolliver's "API-key hashing" open question: the raw key is
// hashed before it is ever compared, and only its blake2b digest is kept,
// in a memguard.LockedBuffer.
package authkey

import (
	"crypto/subtle"

	"github.com/awnumar/memguard"
	"golang.org/x/crypto/blake2b"

	"github.com/tug-dev/tolliver-go/wire"
)

// Key guards one configured api-key for the lifetime of a Listener or a
// client dialer.
type Key struct {
	digest *memguard.LockedBuffer
}

// New hashes raw (the configured 32-byte api-key) and locks the digest
// into guarded memory. raw is not retained; callers should Destroy
// their own copy if it was heap-allocated.
func New(raw [wire.APIKeySize]byte) *Key {
	sum := blake2b.Sum256(raw[:])
	return &Key{digest: memguard.NewBufferFromBytes(sum[:])}
}

// Equal reports whether presented (as received in a HandshakeRequest)
// matches the guarded key, comparing digests in constant time.
func (k *Key) Equal(presented [wire.APIKeySize]byte) bool {
	if k == nil || k.digest == nil || k.digest.IsDestroyed() {
		return false
	}
	sum := blake2b.Sum256(presented[:])
	return subtle.ConstantTimeCompare(k.digest.Bytes(), sum[:]) == 1
}

// Destroy wipes the guarded digest. Safe to call more than once.
func (k *Key) Destroy() {
	if k != nil && k.digest != nil {
		k.digest.Destroy()
	}
}
