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

package nowplaying

import (
	"context"
	"fmt"

	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/games"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/platforms/gamejolt"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/platforms/itchio"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/platforms/lutris"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/platforms/minecraft"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/platforms/roblox"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/platforms/steam"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/shared/httpclient"
)

// PlatformResolver turns a detected game of one platform into GameInfo.
type PlatformResolver interface {
	ResolveDetected(ctx context.Context, g games.DetectedGame) (games.GameInfo, error)
}

// Resolver dispatches a detected game to the resolver of its platform.
type Resolver struct {
	platforms map[games.GamePlatform]PlatformResolver
}

// NewResolver wires every platform resolver to client.
func NewResolver(client *httpclient.Client) *Resolver {
	return NewResolverWith(map[games.GamePlatform]PlatformResolver{
		games.PlatformSteam:             steam.NewResolver(client),
		games.PlatformItchIo:            itchio.Resolver{},
		games.PlatformGameJolt:          gamejolt.NewResolver(client),
		games.PlatformLutris:            lutris.NewResolver(client),
		games.PlatformRoblox:            roblox.NewResolver(client),
		games.PlatformMinecraftLauncher: minecraft.Resolver{},
	})
}

// NewResolverWith builds a Resolver from an explicit platform table.
func NewResolverWith(platforms map[games.GamePlatform]PlatformResolver) *Resolver {
	return &Resolver{platforms: platforms}
}

// Resolve fetches or builds the metadata for g. Custom games resolve
// locally; other platforms go through their registered resolver.
func (r *Resolver) Resolve(ctx context.Context, g games.DetectedGame) (games.GameInfo, error) {
	if g == nil {
		return games.GameInfo{}, fmt.Errorf("%w: nil game", games.ErrUnsupportedVariant)
	}
	if custom, ok := g.(games.Custom); ok {
		return games.ResolveCustom(custom), nil
	}

	pr, ok := r.platforms[g.Platform()]
	if !ok {
		return games.GameInfo{}, games.Unsupported("nowplaying", g)
	}

	info, err := pr.ResolveDetected(ctx, g)
	if err != nil {
		return games.GameInfo{}, fmt.Errorf("failed to resolve %s: %w", g.Identity(), err)
	}
	return info, nil
}
