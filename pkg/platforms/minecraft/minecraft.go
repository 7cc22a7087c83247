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

// Package minecraft classifies running Minecraft launcher titles. There is
// no local state to read and all metadata is static.
package minecraft

import (
	"context"
	"strings"

	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/games"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/procsnapshot"
	"github.com/rs/zerolog/log"
)

const (
	Cover = "https://www.minecraft.net/content/dam/minecraft/home/home-hero-1200x600.jpg"
	Icon  = "https://www.minecraft.net/etc.clientlibs/minecraft/clientlibs/main/resources/favicon-96x96.png"

	developer   = "Mojang Studios"
	requiredAge = 10

	dungeonsAppID = 1672970
	legendsAppID  = 1928870
)

const (
	dungeonsDescription = "Fight your way through an exciting action-adventure game, inspired by " +
		"classic dungeon crawlers and set in the Minecraft universe!"
	legendsDescription = "Discover the mysteries of Minecraft Legends, a new action strategy game. " +
		"Explore a gentle land of rich resources and lush biomes on the brink of destruction. " +
		"The ravaging piglins have arrived, and it’s up to you to inspire your allies and lead " +
		"them in strategic battles to save the Overworld!"
)

// Probe detects Minecraft titles by their command line.
type Probe struct{}

// NewProbe creates a Minecraft probe.
func NewProbe() *Probe {
	return &Probe{}
}

// Name implements the probe interface.
func (*Probe) Name() string {
	return "minecraft"
}

// Detect classifies the first process mentioning minecraft.
func (*Probe) Detect(_ context.Context, snap procsnapshot.Snapshot) (games.DetectedGame, error) {
	proc, ok := snap.Find(procsnapshot.NewCmdlineContainsFoldMatcher("minecraft"))
	if !ok {
		return nil, nil
	}
	log.Debug().Int("pid", proc.PID).Msg("minecraft running")
	return Classify(proc.Cmdline), nil
}

// Classify picks the Minecraft title a command line belongs to. The
// caller has already established that it mentions minecraft.
func Classify(cmdline string) games.DetectedGame {
	cmd := strings.ToLower(cmdline)
	switch {
	case strings.Contains(cmd, "legends"):
		return games.MinecraftLegends{Cover: Cover, Icon: Icon}
	case strings.Contains(cmd, "dungeons"):
		return games.MinecraftDungeons{Cover: Cover, Icon: Icon}
	default:
		return games.Minecraft{Cover: Cover, Icon: Icon}
	}
}

func record(name, description, url, cover, icon string, appID int64) games.GameInfo {
	info := games.GameInfo{
		RequiredAge: games.IntPtr(requiredAge),
		ViaPlatform: games.PlatformMinecraftLauncher,
		Name:        name,
		Description: description,
		Cover:       cover,
		Icon:        icon,
		URL:         url,
		Developers:  []string{developer},
		Publishers:  []string{developer},
	}
	if appID != 0 {
		info.AppID = games.Int64Ptr(appID)
	}
	return info
}

// Resolver serves the static Minecraft records.
type Resolver struct{}

// ResolveDetected resolves any of the Minecraft variants.
func (Resolver) ResolveDetected(_ context.Context, g games.DetectedGame) (games.GameInfo, error) {
	switch v := g.(type) {
	case games.Minecraft:
		return record("Minecraft", "", "https://www.xbox.com/en-US/games/store/-/9NXP44L49SHJ",
			v.Cover, v.Icon, 0), nil
	case games.MinecraftDungeons:
		return record("Minecraft Dungeons", dungeonsDescription, "https://store.steampowered.com/app/1672970",
			v.Cover, v.Icon, dungeonsAppID), nil
	case games.MinecraftLegends:
		return record("Minecraft Legends", legendsDescription, "https://store.steampowered.com/app/1928870",
			v.Cover, v.Icon, legendsAppID), nil
	default:
		return games.GameInfo{}, games.Unsupported("minecraft", g)
	}
}
