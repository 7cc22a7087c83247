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

package itchio

import (
	"context"
	"slices"

	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/games"
)

// Resolve builds the GameInfo of an itch game from its receipt data.
func Resolve(g games.ItchIo) games.GameInfo {
	return games.GameInfo{
		ViaPlatform: games.PlatformItchIo,
		Name:        g.Name,
		Description: g.Description,
		Cover:       g.Cover,
		Icon:        g.Icon,
		URL:         g.URL,
		Developers:  cloneStrings(g.Developers),
		Publishers:  cloneStrings(g.Publishers),
	}
}

// Resolver adapts Resolve to the common resolver shape.
type Resolver struct{}

// ResolveDetected resolves g if it is an itch game.
func (Resolver) ResolveDetected(_ context.Context, g games.DetectedGame) (games.GameInfo, error) {
	ig, ok := g.(games.ItchIo)
	if !ok {
		return games.GameInfo{}, games.Unsupported("itchio", g)
	}
	return Resolve(ig), nil
}

func cloneStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}
