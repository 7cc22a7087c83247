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

// Package games defines the normalized identities and metadata records
// shared by the detection probes and the metadata resolvers.
package games

import (
	"strconv"
)

// GamePlatform identifies the source of a detected game or resolved GameInfo.
type GamePlatform string

const (
	PlatformMinecraftLauncher GamePlatform = "MinecraftLauncher"
	PlatformSteam             GamePlatform = "Steam"
	PlatformGameJolt          GamePlatform = "GameJolt"
	PlatformItchIo            GamePlatform = "ItchIo"
	PlatformLutris            GamePlatform = "Lutris"
	PlatformRoblox            GamePlatform = "Roblox"
	PlatformCustom            GamePlatform = "Custom"
)

// AllPlatforms lists every platform tag in detection priority order,
// followed by Custom.
var AllPlatforms = []GamePlatform{
	PlatformSteam,
	PlatformItchIo,
	PlatformGameJolt,
	PlatformLutris,
	PlatformRoblox,
	PlatformMinecraftLauncher,
	PlatformCustom,
}

// GameInfo is the normalized metadata record produced by a resolver.
// String fields are empty when unknown; AppID and RequiredAge are nil.
type GameInfo struct {
	AppID       *int64       `json:"app_id"`
	RequiredAge *int         `json:"required_age"`
	ViaPlatform GamePlatform `json:"via_platform"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Cover       string       `json:"cover"`
	Icon        string       `json:"icon"`
	URL         string       `json:"url"`
	Developers  []string     `json:"developers"`
	Publishers  []string     `json:"publishers"`
}

// DetectedGame is the minimal identity of a game found by a detection pass.
// The set of implementations is closed: only the variant types in this
// package satisfy it.
type DetectedGame interface {
	// Platform returns the platform the game was detected through.
	Platform() GamePlatform
	// Identity returns the identifying key of the game. Two values with
	// the same identity are the same game. Safe to use as a cache key.
	Identity() string

	detectedGame()
}

// Equal reports whether a and b identify the same game. Values of
// different variants are never equal; values of the same variant compare
// by their identifying key only.
func Equal(a, b DetectedGame) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Identity() == b.Identity()
}

func numericIdentity(prefix string, id int64) string {
	return prefix + ":" + strconv.FormatInt(id, 10)
}

// Steam is a game running through the Steam client.
type Steam struct {
	URL  string
	Icon string
	ID   int64
}

func (Steam) Platform() GamePlatform { return PlatformSteam }
func (g Steam) Identity() string     { return numericIdentity("steam", g.ID) }
func (Steam) detectedGame()          {}

// GameJolt is a game running through the Game Jolt client.
type GameJolt struct {
	URL        string
	Name       string
	Cover      string
	Icon       string
	Developers []string
	Publishers []string
	ID         int64
}

func (GameJolt) Platform() GamePlatform { return PlatformGameJolt }
func (g GameJolt) Identity() string     { return numericIdentity("gamejolt", g.ID) }
func (GameJolt) detectedGame()          {}

// ItchIo is a game installed and launched through the itch app.
type ItchIo struct {
	URL         string
	Name        string
	Description string
	Cover       string
	Icon        string
	Developers  []string
	Publishers  []string
	ID          int64
}

func (ItchIo) Platform() GamePlatform { return PlatformItchIo }
func (g ItchIo) Identity() string     { return numericIdentity("itchio", g.ID) }
func (ItchIo) detectedGame()          {}

// Lutris is a game launched through Lutris.
type Lutris struct {
	Slug  string
	Name  string
	Cover string
	Icon  string
	ID    int64
}

func (Lutris) Platform() GamePlatform { return PlatformLutris }
func (g Lutris) Identity() string     { return numericIdentity("lutris", g.ID) }
func (Lutris) detectedGame()          {}

// Roblox is a Roblox experience, identified by its place ID.
type Roblox struct {
	URL string
	ID  int64
}

func (Roblox) Platform() GamePlatform { return PlatformRoblox }
func (g Roblox) Identity() string     { return numericIdentity("roblox", g.ID) }
func (Roblox) detectedGame()          {}

// Minecraft is the base game. There is only one, so every value is equal.
type Minecraft struct {
	Cover string
	Icon  string
}

func (Minecraft) Platform() GamePlatform { return PlatformMinecraftLauncher }
func (Minecraft) Identity() string       { return "minecraft" }
func (Minecraft) detectedGame()          {}

// MinecraftDungeons is the Minecraft Dungeons spin-off.
type MinecraftDungeons struct {
	Cover string
	Icon  string
}

func (MinecraftDungeons) Platform() GamePlatform { return PlatformMinecraftLauncher }
func (MinecraftDungeons) Identity() string       { return "minecraft:dungeons" }
func (MinecraftDungeons) detectedGame()          {}

// MinecraftLegends is the Minecraft Legends spin-off.
type MinecraftLegends struct {
	Cover string
	Icon  string
}

func (MinecraftLegends) Platform() GamePlatform { return PlatformMinecraftLauncher }
func (MinecraftLegends) Identity() string       { return "minecraft:legends" }
func (MinecraftLegends) detectedGame()          {}

// Custom is a user-defined game matched by a command line substring.
type Custom struct {
	ID string
}

func (Custom) Platform() GamePlatform { return PlatformCustom }
func (g Custom) Identity() string     { return "custom:" + g.ID }
func (Custom) detectedGame()          {}

// ResolveCustom builds the minimal GameInfo for a custom game: its ID is
// the name and everything else is left empty.
func ResolveCustom(g Custom) GameInfo {
	return GameInfo{
		ViaPlatform: PlatformCustom,
		Name:        g.ID,
		Developers:  []string{},
		Publishers:  []string{},
	}
}

// Int64Ptr returns a pointer to v.
func Int64Ptr(v int64) *int64 {
	return &v
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}
