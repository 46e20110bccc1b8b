// errors.go - Package-level sentinel errors.
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

import "errors"

// ErrClosed is returned by Read/UnreliableSend/DurableSend once a
// Connection has been explicitly Close()d.
var ErrClosed = errors.New("tolliver: connection closed")

// ErrProtocol is reserved for a malformed-but-not-short wire response; no
// current wire revision can trigger it (widening the frame header is a
// wire-incompatible change, see SPEC_FULL.md §7/§9).
var ErrProtocol = errors.New("tolliver: protocol error")
