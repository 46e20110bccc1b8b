// doc.go - Package wire overview.
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

// Package wire implements the tolliver wire format: the fixed client
// handshake request, the fixed server handshake response, and the
// length-prefixed frame that carries an opaque, schema-tagged body.
//
// Everything here is a pure function over an io.Reader/io.Writer. The
// package performs no dialing, no accepting, and no persistence; it only
// knows how to turn bytes on the wire into Go values and back.
package wire
