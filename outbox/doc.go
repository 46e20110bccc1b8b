// doc.go - Package outbox overview.
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

// Package outbox persists frames accepted for durable delivery but not
// yet confirmed on the wire, so a crash or restart cannot lose them.
//
// The storage engine is go.etcd.io/bbolt: a single-file, copy-on-write,
// crash-safe embedded store. It stands in for the spec's literal SQL
// table (message(id, target, data) with WAL journalling) because it
// gives the same single-file, ordered, durable append/delete/enumerate
// contract without needing a SQL driver that talks to a local file (the
// only SQL driver available to this project, jackc/pgx, speaks to a
// network Postgres server, which the spec's "isolated per-process"
// requirement rules out). The bucket is named "message" and records keep
// their "target"/"data" field names so the schema vocabulary survives.
//
// bbolt takes an exclusive file lock per bolt.Open, so two independent
// opens of the same path in one process do not share a handle — they
// contend for the same lock. Open instead hands out Outbox values backed
// by a single, process-wide, reference-counted *bolt.DB per path: every
// Connection gets its own Outbox, and all of them that name the same
// path drive the same underlying store, which is what bbolt is designed
// to let many goroutines do concurrently.
package outbox
