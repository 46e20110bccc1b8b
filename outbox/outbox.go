// outbox.go - Durable, crash-safe outbox backed by bbolt.
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

package outbox

import (
	"encoding/binary"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	bolt "go.etcd.io/bbolt"

	"github.com/tug-dev/tolliver-go/metrics"
)

var bucketName = []byte("message")

// ErrStorageError wraps any failure returned by the underlying store. It
// unwraps to the original bbolt/os error so errors.Is/As keep working.
type ErrStorageError struct {
	Cause error
}

func (e *ErrStorageError) Error() string { return fmt.Sprintf("outbox: storage error: %v", e.Cause) }
func (e *ErrStorageError) Unwrap() error { return e.Cause }

func storageErr(cause error) error {
	if cause == nil {
		return nil
	}
	return &ErrStorageError{Cause: cause}
}

// ErrNotFound is an invariant violation: Delete was asked to remove a
// record that does not exist.
var ErrNotFound = errors.New("outbox: no such record")

// Record is one persisted, not-yet-delivered frame.
type Record struct {
	ID     uint64
	Target string
	Frame  []byte
}

// Outbox is a handle on the durable message log. Multiple Outbox handles
// in one process (one per Connection) share the same underlying
// *bolt.DB when they name the same path: bbolt takes an exclusive file
// lock per bolt.Open, so a second independent Open of the same file
// would simply block on (and eventually time out acquiring) the first
// handle's lock. Sharing one *bolt.DB per path, reference-counted in
// openDBs, is what actually gives every Connection in the process its
// own Outbox value while all of them drive the same underlying store;
// bbolt itself is safe for many goroutines to share one *bolt.DB
// concurrently.
type Outbox struct {
	path string
	db   *bolt.DB
	log  *log.Logger
	m    *metrics.Metrics
}

// Options configures Open. The zero value is valid and uses package
// defaults (no logging, no metrics).
type Options struct {
	Logger  *log.Logger
	Metrics *metrics.Metrics
}

// sharedDB is one bolt.Open'd file, reference-counted across the Outbox
// handles that share it.
type sharedDB struct {
	db   *bolt.DB
	refs int
}

var (
	openDBsMu sync.Mutex
	openDBs   = map[string]*sharedDB{}
)

// acquireDB returns the shared *bolt.DB for path, opening it (and
// creating the message bucket) on the first acquisition and bumping a
// refcount on every later one.
func acquireDB(path string) (*bolt.DB, error) {
	key, err := filepath.Abs(path)
	if err != nil {
		return nil, storageErr(err)
	}

	openDBsMu.Lock()
	defer openDBsMu.Unlock()

	if shared, ok := openDBs[key]; ok {
		shared.refs++
		return shared.db, nil
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, storageErr(err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, storageErr(err)
	}

	openDBs[key] = &sharedDB{db: db, refs: 1}
	return db, nil
}

// releaseDB drops one reference to path's shared *bolt.DB, closing and
// forgetting it once the last Outbox handle on it is gone.
func releaseDB(path string) error {
	key, err := filepath.Abs(path)
	if err != nil {
		return storageErr(err)
	}

	openDBsMu.Lock()
	defer openDBsMu.Unlock()

	shared, ok := openDBs[key]
	if !ok {
		return nil
	}
	shared.refs--
	if shared.refs > 0 {
		return nil
	}
	delete(openDBs, key)
	if err := shared.db.Close(); err != nil {
		return storageErr(err)
	}
	return nil
}

// Open opens (creating if necessary) the outbox file at path and ensures
// the message bucket exists. A path already open elsewhere in this
// process shares that file's *bolt.DB instead of reopening it.
func Open(path string, opts Options) (*Outbox, error) {
	db, err := acquireDB(path)
	if err != nil {
		return nil, err
	}

	lg := opts.Logger
	if lg == nil {
		lg = log.Default()
	}
	return &Outbox{path: path, db: db, log: lg, m: opts.Metrics}, nil
}

// Close releases this handle's reference to the underlying file, closing
// it once every Outbox sharing the path has been closed.
func (o *Outbox) Close() error {
	return releaseDB(o.path)
}

// Append atomically stores (target, frame) and returns the assigned,
// monotonically increasing id.
func (o *Outbox) Append(target string, frame []byte) (uint64, error) {
	var id uint64
	err := o.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		id = seq
		return b.Put(encodeKey(id), encodeValue(target, frame))
	})
	if err != nil {
		return 0, storageErr(err)
	}
	o.m.IncOutboxAppends()
	return id, nil
}

// Delete removes the record with the given id. It is the caller's
// invariant that the record exists; a missing record reports ErrNotFound.
func (o *Outbox) Delete(id uint64) error {
	err := o.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		key := encodeKey(id)
		if b.Get(key) == nil {
			return ErrNotFound
		}
		return b.Delete(key)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return storageErr(err)
	}
	o.m.IncOutboxDeletes()
	return nil
}

// Enumerate returns every pending record, ascending by id.
func (o *Outbox) Enumerate() ([]Record, error) {
	var records []Record
	err := o.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			target, frame := decodeValue(v)
			records = append(records, Record{
				ID:     decodeKey(k),
				Target: target,
				Frame:  frame,
			})
		}
		return nil
	})
	if err != nil {
		return nil, storageErr(err)
	}
	return records, nil
}

func encodeKey(id uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, id)
	return buf
}

func decodeKey(buf []byte) uint64 {
	return binary.BigEndian.Uint64(buf)
}

// encodeValue lays out (target, frame) as a 2-byte big-endian target
// length, the target bytes, then the frame bytes verbatim. This is the
// outbox's own storage encoding, separate from (and simpler than) the
// wire frame format it is storing.
func encodeValue(target string, frame []byte) []byte {
	buf := make([]byte, 2+len(target)+len(frame))
	binary.BigEndian.PutUint16(buf[:2], uint16(len(target)))
	copy(buf[2:], target)
	copy(buf[2+len(target):], frame)
	return buf
}

func decodeValue(buf []byte) (target string, frame []byte) {
	targetLen := binary.BigEndian.Uint16(buf[:2])
	target = string(buf[2 : 2+targetLen])
	frame = buf[2+targetLen:]
	return target, frame
}
