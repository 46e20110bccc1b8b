// version.go - Build version reporting.
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
	"github.com/carlmjohnson/versioninfo"

	"github.com/tug-dev/tolliver-go/wire"
)

// BuildVersion reports the module's build provenance (tag, commit, dirty
// flag) as derived from the embedded VCS info, for logging on startup. It
// is independent of wire.ProtocolVersion, which governs wire
// compatibility rather than the build that produced a binary.
func BuildVersion() string {
	return versioninfo.Short()
}

// LogBuildInfo writes a single startup line identifying the running
// build; Bind and Connect callers typically call this once before the
// first Accept/handshake.
func LogBuildInfo(opts Options) {
	opts.logger().Infof("tolliver %s (wire protocol v%d)", BuildVersion(), wire.ProtocolVersion)
}
