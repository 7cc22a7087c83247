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
	"time"

	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/games"
	"github.com/rs/zerolog/log"
)

type Platforms struct {
	Steam     bool `toml:"steam"`
	ItchIo    bool `toml:"itchio"`
	GameJolt  bool `toml:"gamejolt"`
	Lutris    bool `toml:"lutris"`
	Roblox    bool `toml:"roblox"`
	Minecraft bool `toml:"minecraft"`
}

// Paths override where probes look for platform state. Empty values use
// the platform's default location.
type Paths struct {
	SteamRegistry   string `toml:"steam_registry"`
	LutrisDB        string `toml:"lutris_db"`
	ItchPreferences string `toml:"itch_preferences"`
	GameJoltData    string `toml:"gamejolt_data"`
	RobloxLogs      string `toml:"roblox_logs"`
}

type Cache struct {
	TTL     string `toml:"ttl"`
	Enabled bool   `toml:"enabled"`
}

// PlatformEnabled reports whether the probe for p should run. Custom games
// are always enabled.
func (c *Instance) PlatformEnabled(p games.GamePlatform) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch p {
	case games.PlatformSteam:
		return c.vals.Platforms.Steam
	case games.PlatformItchIo:
		return c.vals.Platforms.ItchIo
	case games.PlatformGameJolt:
		return c.vals.Platforms.GameJolt
	case games.PlatformLutris:
		return c.vals.Platforms.Lutris
	case games.PlatformRoblox:
		return c.vals.Platforms.Roblox
	case games.PlatformMinecraftLauncher:
		return c.vals.Platforms.Minecraft
	case games.PlatformCustom:
		return true
	default:
		return false
	}
}

func (c *Instance) SetPlatformEnabled(p games.GamePlatform, enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch p {
	case games.PlatformSteam:
		c.vals.Platforms.Steam = enabled
	case games.PlatformItchIo:
		c.vals.Platforms.ItchIo = enabled
	case games.PlatformGameJolt:
		c.vals.Platforms.GameJolt = enabled
	case games.PlatformLutris:
		c.vals.Platforms.Lutris = enabled
	case games.PlatformRoblox:
		c.vals.Platforms.Roblox = enabled
	case games.PlatformMinecraftLauncher:
		c.vals.Platforms.Minecraft = enabled
	case games.PlatformCustom:
	}
}

func (c *Instance) Paths() Paths {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Paths
}

// HTTPTimeout returns the timeout applied around metadata resolution.
// Invalid or non-positive values fall back to DefaultHTTPTimeout.
func (c *Instance) HTTPTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return parseDuration("http_timeout", c.vals.HTTPTimeout, DefaultHTTPTimeout)
}

func (c *Instance) CacheEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Cache.Enabled
}

// CacheTTL returns how long resolved game info stays cached. Invalid or
// non-positive values fall back to DefaultCacheTTL.
func (c *Instance) CacheTTL() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return parseDuration("cache.ttl", c.vals.Cache.TTL, DefaultCacheTTL)
}

func parseDuration(key, s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		log.Warn().Str("key", key).Str("value", s).Msg("invalid duration in config, using default")
		return def
	}
	return d
}
