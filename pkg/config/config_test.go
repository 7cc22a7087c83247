// Zaparoo Now Playing
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo Now Playing.
//
// Zaparoo Now Playing is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo Now Playing is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo Now Playing.  If not, see <http://www.gnu.org/licenses/>.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/games"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), CfgFile)
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o600))
	return cfgPath
}

func TestNewConfig_WritesDefaults(t *testing.T) {
	t.Parallel()

	cfgPath := filepath.Join(t.TempDir(), "nested", CfgFile)
	cfg, err := NewConfigAt(cfgPath, BaseDefaults)
	require.NoError(t, err)

	_, err = os.Stat(cfgPath)
	require.NoError(t, err, "default config should be written")

	for _, p := range games.AllPlatforms {
		assert.True(t, cfg.PlatformEnabled(p), "%s should be enabled by default", p)
	}
	assert.Equal(t, DefaultHTTPTimeout, cfg.HTTPTimeout())
	assert.False(t, cfg.CacheEnabled())
	assert.Equal(t, DefaultCacheTTL, cfg.CacheTTL())
	assert.Empty(t, cfg.CustomGames())
	assert.Equal(t, cfgPath, cfg.Path())
}

func TestLoad_PreservesDefaultsForMissingFields(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t, fmt.Sprintf("config_schema = %d\n\n[platforms]\nroblox = false\n", SchemaVersion))

	cfg := &Instance{
		cfgPath:  cfgPath,
		vals:     BaseDefaults,
		defaults: BaseDefaults,
	}
	require.NoError(t, cfg.Load())

	assert.False(t, cfg.PlatformEnabled(games.PlatformRoblox), "roblox should be overridden")
	assert.True(t, cfg.PlatformEnabled(games.PlatformSteam), "steam should retain default true")
	assert.True(t, cfg.PlatformEnabled(games.PlatformLutris), "lutris should retain default true")
	assert.Equal(t, DefaultHTTPTimeout, cfg.HTTPTimeout())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t, fmt.Sprintf(`config_schema = %d
debug_logging = true
http_timeout = "5s"

[platforms]
steam = false
minecraft = false

[paths]
lutris_db = "/srv/lutris/pga.db"
roblox_logs = "/wine/roblox/logs"

[cache]
enabled = true
ttl = "1h"

[[custom_games]]
id = "notepad"
match = "notepad.exe"

[[custom_games]]
id = "doom"
match = "gzdoom"
`, SchemaVersion))

	cfg := &Instance{
		cfgPath:  cfgPath,
		vals:     BaseDefaults,
		defaults: BaseDefaults,
	}
	require.NoError(t, cfg.Load())

	assert.True(t, cfg.DebugLogging())
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout())
	assert.False(t, cfg.PlatformEnabled(games.PlatformSteam))
	assert.False(t, cfg.PlatformEnabled(games.PlatformMinecraftLauncher))
	assert.True(t, cfg.PlatformEnabled(games.PlatformItchIo))
	assert.Equal(t, "/srv/lutris/pga.db", cfg.Paths().LutrisDB)
	assert.Equal(t, "/wine/roblox/logs", cfg.Paths().RobloxLogs)
	assert.True(t, cfg.CacheEnabled())
	assert.Equal(t, time.Hour, cfg.CacheTTL())
	assert.Equal(t, []CustomGame{
		{ID: "notepad", Match: "notepad.exe"},
		{ID: "doom", Match: "gzdoom"},
	}, cfg.CustomGames())
}

func TestLoad_SchemaMismatch(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t, "config_schema = 99\n")
	_, err := NewConfigAt(cfgPath, BaseDefaults)
	require.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestLoad_InvalidTOML(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t, "config_schema = \n")
	_, err := NewConfigAt(cfgPath, BaseDefaults)
	require.Error(t, err)
}

func TestLoad_ReloadCycle(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfig(t.TempDir(), BaseDefaults)
	require.NoError(t, err)

	cfg.SetPlatformEnabled(games.PlatformGameJolt, false)
	cfg.AddCustomGames(CustomGame{ID: "notepad", Match: "notepad.exe"})
	require.NoError(t, cfg.Save())
	require.NoError(t, cfg.Load())

	assert.False(t, cfg.PlatformEnabled(games.PlatformGameJolt), "gamejolt should stay disabled after reload")
	assert.True(t, cfg.PlatformEnabled(games.PlatformSteam), "steam should retain default after reload")
	assert.Equal(t, []CustomGame{{ID: "notepad", Match: "notepad.exe"}}, cfg.CustomGames())
}

func TestDurationsFallBack(t *testing.T) {
	t.Parallel()

	cfg := &Instance{}
	cfg.vals.HTTPTimeout = "soon"
	cfg.vals.Cache.TTL = "-1h"
	assert.Equal(t, DefaultHTTPTimeout, cfg.HTTPTimeout())
	assert.Equal(t, DefaultCacheTTL, cfg.CacheTTL())
}

func TestPlatformEnabled_Custom(t *testing.T) {
	t.Parallel()

	cfg := &Instance{}
	assert.True(t, cfg.PlatformEnabled(games.PlatformCustom), "custom games cannot be disabled")
	assert.False(t, cfg.PlatformEnabled(games.PlatformSteam))
	assert.False(t, cfg.PlatformEnabled("Origin"))
}
