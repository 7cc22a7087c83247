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

// Package nowplaying runs detection passes over the platform probes and
// resolves detected games into metadata records.
package nowplaying

import (
	"context"
	"fmt"

	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/config"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/env"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/games"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/platforms/gamejolt"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/platforms/itchio"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/platforms/lutris"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/platforms/minecraft"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/platforms/roblox"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/platforms/steam"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/procsnapshot"
	"github.com/rs/zerolog/log"
)

// Probe checks a single platform for a running game. Detect returns nil, nil
// when the platform has nothing running.
type Probe interface {
	Name() string
	Detect(ctx context.Context, snap procsnapshot.Snapshot) (games.DetectedGame, error)
}

// Detector runs a detection pass: custom games first, then each probe in
// order. The first hit wins.
type Detector struct {
	Collector   procsnapshot.Collector
	Probes      []Probe
	CustomGames []config.CustomGame
}

// NewDetector registers the probes enabled in cfg in priority order.
func NewDetector(cfg *config.Instance, e *env.Env, collector procsnapshot.Collector) *Detector {
	paths := cfg.Paths()

	var probes []Probe
	if cfg.PlatformEnabled(games.PlatformSteam) {
		probes = append(probes, steam.NewProbe(e, steam.Options{RegistryVDF: paths.SteamRegistry}))
	}
	if cfg.PlatformEnabled(games.PlatformItchIo) {
		probes = append(probes, itchio.NewProbe(e, itchio.Options{Preferences: paths.ItchPreferences}))
	}
	if cfg.PlatformEnabled(games.PlatformGameJolt) {
		probes = append(probes, gamejolt.NewProbe(e, gamejolt.Options{DataDir: paths.GameJoltData}))
	}
	if cfg.PlatformEnabled(games.PlatformLutris) && !e.IsWindows() {
		probes = append(probes, lutris.NewProbe(e, lutris.Options{DB: paths.LutrisDB}))
	}
	if cfg.PlatformEnabled(games.PlatformRoblox) {
		probes = append(probes, roblox.NewProbe(e, roblox.Options{LogDir: paths.RobloxLogs}))
	}
	if cfg.PlatformEnabled(games.PlatformMinecraftLauncher) {
		probes = append(probes, minecraft.NewProbe())
	}

	return &Detector{
		Collector:   collector,
		Probes:      probes,
		CustomGames: cfg.CustomGames(),
	}
}

// Detect captures a fresh process snapshot and runs a detection pass over it.
func (d *Detector) Detect(ctx context.Context) (games.DetectedGame, error) {
	snap, err := d.Collector.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect processes: %w", err)
	}
	return d.DetectWithSnapshot(ctx, snap)
}

// DetectWithSnapshot runs a detection pass over snap. A probe error aborts
// the pass.
func (d *Detector) DetectWithSnapshot(
	ctx context.Context,
	snap procsnapshot.Snapshot,
) (games.DetectedGame, error) {
	if g := d.matchCustom(snap); g != nil {
		return g, nil
	}

	for _, p := range d.Probes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		g, err := p.Detect(ctx, snap)
		if err != nil {
			return nil, fmt.Errorf("%s probe: %w", p.Name(), err)
		}
		if g != nil {
			log.Debug().
				Str("probe", p.Name()).
				Str("identity", g.Identity()).
				Msg("detected game")
			return g, nil
		}
	}

	return nil, nil
}

func (d *Detector) matchCustom(snap procsnapshot.Snapshot) games.DetectedGame {
	for _, cg := range d.CustomGames {
		proc, ok := snap.Find(procsnapshot.NewCmdlineContainsFoldMatcher(cg.Match))
		if !ok {
			continue
		}
		log.Debug().
			Str("id", cg.ID).
			Int("pid", proc.PID).
			Msg("matched custom game")
		return games.Custom{ID: cg.ID}
	}
	return nil
}
