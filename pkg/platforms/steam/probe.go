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

// Package steam detects the game currently running through the Steam
// client and resolves its metadata from the Steam store.
package steam

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/env"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/games"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/procsnapshot"
	"github.com/rs/zerolog/log"
)

const (
	// RegistryKeyPath is the HKCU key Steam writes its state to on Windows.
	RegistryKeyPath = `Software\Valve\Steam`
	// RunningAppIDValue is set to the app id of the running game, or 0.
	RunningAppIDValue = "RunningAppID"
)

// Options overrides where the probe looks for Steam state.
type Options struct {
	// RegistryVDF replaces the default registry.vdf location on
	// Linux and macOS.
	RegistryVDF string
}

// Probe detects the running Steam game.
type Probe struct {
	env  *env.Env
	opts Options
}

// NewProbe creates a Steam probe.
func NewProbe(e *env.Env, opts Options) *Probe {
	return &Probe{env: e, opts: opts}
}

// Name implements the probe interface.
func (*Probe) Name() string {
	return "steam"
}

// Detect reports the running Steam game. Steam not being installed or
// not running a game is not an error.
func (p *Probe) Detect(_ context.Context, _ procsnapshot.Snapshot) (games.DetectedGame, error) {
	var (
		appID int64
		err   error
	)
	if p.env.IsWindows() {
		appID, err = p.readRegistry()
	} else {
		appID, err = p.readRegistryVDF()
	}
	if err != nil {
		return nil, err
	}
	if appID == 0 {
		return nil, nil
	}

	log.Debug().Int64("appID", appID).Msg("steam game running")
	return NewGame(appID), nil
}

// NewGame builds the detected Steam game for an app id.
func NewGame(appID int64) games.Steam {
	return games.Steam{
		ID:   appID,
		URL:  StoreURL(appID),
		Icon: fmt.Sprintf("https://cdn.cloudflare.steamstatic.com/steam/apps/%d/hero_capsule.jpg", appID),
	}
}

// StoreURL returns the store page of an app.
func StoreURL(appID int64) string {
	return fmt.Sprintf("https://store.steampowered.com/app/%d", appID)
}

func (p *Probe) readRegistry() (int64, error) {
	v, err := p.env.Registry.ReadInteger(RegistryKeyPath, RunningAppIDValue)
	switch {
	case errors.Is(err, env.ErrKeyNotFound):
		log.Debug().Msg("steam registry key not found")
		return 0, nil
	case err != nil:
		return 0, games.Malformed("steam registry "+RunningAppIDValue, err)
	}
	if v > math.MaxInt64 {
		return 0, games.Malformed("steam registry "+RunningAppIDValue, fmt.Errorf("value %d out of range", v))
	}
	return int64(v), nil
}

func (p *Probe) registryVDFPath() string {
	if p.opts.RegistryVDF != "" {
		return p.opts.RegistryVDF
	}
	if p.env.IsDarwin() {
		return p.env.HomePath("Library", "Application Support", "Steam", "registry.vdf")
	}
	return p.env.HomePath(".steam", "registry.vdf")
}

func (p *Probe) readRegistryVDF() (int64, error) {
	path := p.registryVDFPath()

	f, err := p.env.Fs.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Debug().Str("path", path).Msg("steam registry.vdf not found")
		return 0, nil
	} else if err != nil {
		return 0, games.Malformed(path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing registry.vdf")
		}
	}()

	m, err := parseVDF(f)
	if err != nil {
		return 0, games.Malformed(path, err)
	}

	raw, err := lookupString(m, runningAppIDPath...)
	if err != nil {
		return 0, games.Malformed(path, err)
	}

	appID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, games.Malformed(path, fmt.Errorf("invalid running app id %q: %w", raw, err))
	}
	return appID, nil
}
