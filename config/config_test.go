// config_test.go - Tests for TOML-backed configuration loading.
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

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tug-dev/tolliver-go/config"
)

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tolliver.toml")
	require.NoError(t, os.WriteFile(path, []byte(`listen_address = "127.0.0.1:9000"`+"\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9000", cfg.ListenAddress)
	require.Equal(t, config.DefaultDBPath, cfg.DBPath)

	key, err := cfg.APIKey()
	require.NoError(t, err)
	require.Equal(t, [32]byte{}, key)
}

func TestDefaults(t *testing.T) {
	cfg := config.Defaults()
	require.Equal(t, config.DefaultListenAddress, cfg.ListenAddress)
	require.Equal(t, config.DefaultDBPath, cfg.DBPath)
}

func TestAPIKeyWrongLength(t *testing.T) {
	cfg := &config.Config{APIKeyHex: "abcd"}
	_, err := cfg.APIKey()
	require.Error(t, err)
}
