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

package roblox

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/games"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/shared/httpclient"
	"golang.org/x/sync/errgroup"
)

// Endpoints are the base URLs of the Roblox APIs used for resolution.
type Endpoints struct {
	APIs       string
	Thumbnails string
	Games      string
}

// DefaultEndpoints are the public Roblox API hosts.
var DefaultEndpoints = Endpoints{
	APIs:       "https://apis.roblox.com",
	Thumbnails: "https://thumbnails.roblox.com",
	Games:      "https://games.roblox.com",
}

// The pipeline runs placeStage -> universeStage -> mediaStage. Each stage
// only has the ids the previous one produced.
type placeStage struct {
	PlaceID int64
}

type universeStage struct {
	UniverseID int64
}

type mediaStage struct {
	Icon      string
	Thumbnail string
	Game      experience
}

type experience struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Creator     struct {
		Name string `json:"name"`
	} `json:"creator"`
	RootPlaceID int64 `json:"rootPlaceId"`
}

type imageAsset struct {
	ImageURL string `json:"imageUrl"`
}

// Resolver fetches experience metadata from the Roblox APIs.
type Resolver struct {
	Client    *httpclient.Client
	Endpoints Endpoints
}

// NewResolver creates a resolver against the public Roblox APIs.
func NewResolver(c *httpclient.Client) *Resolver {
	return &Resolver{Client: c, Endpoints: DefaultEndpoints}
}

// Resolve looks up the universe of the place, then fetches its icon,
// thumbnail and details concurrently.
func (r *Resolver) Resolve(ctx context.Context, g games.Roblox) (games.GameInfo, error) {
	universe, err := r.universe(ctx, placeStage{PlaceID: g.ID})
	if err != nil {
		return games.GameInfo{}, err
	}
	media, err := r.media(ctx, universe)
	if err != nil {
		return games.GameInfo{}, err
	}
	return media.info(), nil
}

// ResolveDetected resolves g if it is a Roblox game.
func (r *Resolver) ResolveDetected(ctx context.Context, g games.DetectedGame) (games.GameInfo, error) {
	rg, ok := g.(games.Roblox)
	if !ok {
		return games.GameInfo{}, games.Unsupported("roblox", g)
	}
	return r.Resolve(ctx, rg)
}

func (r *Resolver) universe(ctx context.Context, p placeStage) (universeStage, error) {
	url := fmt.Sprintf("%s/universes/v1/places/%d/universe", trim(r.Endpoints.APIs), p.PlaceID)

	var resp struct {
		UniverseID *int64 `json:"universeId"`
	}
	if err := r.Client.GetJSON(ctx, url, &resp); err != nil {
		return universeStage{}, err
	}
	if resp.UniverseID == nil {
		return universeStage{}, fmt.Errorf("%w: place %d has no universe", games.ErrNotFound, p.PlaceID)
	}
	return universeStage{UniverseID: *resp.UniverseID}, nil
}

func (r *Resolver) media(ctx context.Context, u universeStage) (mediaStage, error) {
	var out mediaStage
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		icon, err := r.icon(gctx, u)
		out.Icon = icon
		return err
	})
	g.Go(func() error {
		thumb, err := r.thumbnail(gctx, u)
		out.Thumbnail = thumb
		return err
	})
	g.Go(func() error {
		game, err := r.experience(gctx, u)
		out.Game = game
		return err
	})

	if err := g.Wait(); err != nil {
		return mediaStage{}, err
	}
	return out, nil
}

func (r *Resolver) icon(ctx context.Context, u universeStage) (string, error) {
	url := fmt.Sprintf("%s/v1/games/icons?universeIds=%d&size=50x50&format=png",
		trim(r.Endpoints.Thumbnails), u.UniverseID)

	var resp struct {
		Data []imageAsset `json:"data"`
	}
	if err := r.Client.GetJSON(ctx, url, &resp); err != nil {
		return "", err
	}
	if len(resp.Data) == 0 {
		return "", games.SchemaMismatch("roblox icons", errors.New("no icon data"))
	}
	return resp.Data[0].ImageURL, nil
}

func (r *Resolver) thumbnail(ctx context.Context, u universeStage) (string, error) {
	url := fmt.Sprintf("%s/v1/games/multiget/thumbnails?universeIds=%d&size=768x432&format=png&countPerUniverse=1",
		trim(r.Endpoints.Thumbnails), u.UniverseID)

	var resp struct {
		Data []struct {
			Thumbnails []imageAsset `json:"thumbnails"`
		} `json:"data"`
	}
	if err := r.Client.GetJSON(ctx, url, &resp); err != nil {
		return "", err
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Thumbnails) == 0 {
		return "", games.SchemaMismatch("roblox thumbnails", errors.New("no thumbnail data"))
	}
	return resp.Data[0].Thumbnails[0].ImageURL, nil
}

func (r *Resolver) experience(ctx context.Context, u universeStage) (experience, error) {
	url := fmt.Sprintf("%s/v1/games?universeIds=%d", trim(r.Endpoints.Games), u.UniverseID)

	var resp struct {
		Data []experience `json:"data"`
	}
	if err := r.Client.GetJSON(ctx, url, &resp); err != nil {
		return experience{}, err
	}
	if len(resp.Data) == 0 {
		return experience{}, games.SchemaMismatch("roblox games", errors.New("no game data"))
	}
	return resp.Data[0], nil
}

func (m mediaStage) info() games.GameInfo {
	creator := m.Game.Creator.Name
	return games.GameInfo{
		ViaPlatform: games.PlatformRoblox,
		Name:        m.Game.Name,
		Description: m.Game.Description,
		Cover:       m.Thumbnail,
		Icon:        m.Icon,
		URL:         GameURL(m.Game.RootPlaceID),
		Developers:  []string{creator},
		Publishers:  []string{creator},
	}
}

func trim(base string) string {
	return strings.TrimSuffix(base, "/")
}
