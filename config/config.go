// config.go - TOML-backed configuration loading.
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

// Package config loads tolliver deployment settings from a TOML file. It
// is an external collaborator, not part of the core: none of wire,
// outbox, or the root tolliver package import it. A process wires its own
// config however it likes (this package, flags, env vars) and passes the
// resolved values into tolliver.Bind / tolliver.Connect.
package config

import (
	"encoding/hex"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/tug-dev/tolliver-go/wire"
)

const (
	// DefaultListenAddress is bound by a no-arg server per the protocol's
	// documented default.
	DefaultListenAddress = "0.0.0.0:8080"

	// DefaultDBPath is the fixed outbox file name in the working directory.
	DefaultDBPath = "tolliver.db"
)

// Config is the set of already-resolved values a tolliver client or
// server needs. The zero value, after Defaults is applied, matches the
// protocol's documented defaults exactly.
type Config struct {
	// ListenAddress is the address a server binds. Empty means DefaultListenAddress.
	ListenAddress string `toml:"listen_address"`

	// APIKeyHex is the 32-byte api-key, hex-encoded (64 hex characters).
	// Empty means the all-zero key the protocol currently hard-codes
	// pending externalisation.
	APIKeyHex string `toml:"api_key_hex"`

	// DBPath is the outbox's backing file. Empty means DefaultDBPath.
	DBPath string `toml:"db_path"`
}

// Load reads and parses a TOML file at path into a Config, then applies
// Defaults to any field the file left unset.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Defaults returns a Config already populated with the protocol's
// documented defaults, for callers that have no config file at all.
func Defaults() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.ListenAddress == "" {
		c.ListenAddress = DefaultListenAddress
	}
	if c.DBPath == "" {
		c.DBPath = DefaultDBPath
	}
}

// APIKey decodes APIKeyHex into the fixed-size array the handshake
// expects. An empty APIKeyHex decodes to the all-zero key.
func (c *Config) APIKey() ([wire.APIKeySize]byte, error) {
	var key [wire.APIKeySize]byte
	if c.APIKeyHex == "" {
		return key, nil
	}
	raw, err := hex.DecodeString(c.APIKeyHex)
	if err != nil {
		return key, fmt.Errorf("config: api_key_hex: %w", err)
	}
	if len(raw) != wire.APIKeySize {
		return key, fmt.Errorf("config: api_key_hex: want %d bytes, got %d", wire.APIKeySize, len(raw))
	}
	copy(key[:], raw)
	return key, nil
}
