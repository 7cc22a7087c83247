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

package gamejolt

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/games"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/richtext"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/shared/httpclient"
)

// DefaultSiteAPI is the base URL of the Game Jolt site API.
const DefaultSiteAPI = "https://gamejolt.com/site-api"

const (
	adultAge   = 18
	generalAge = 13
)

type remoteGame struct {
	Slug               *string    `json:"slug"`
	Developer          *developer `json:"developer"`
	Header             *mediaItem `json:"header_media_item"`
	Thumbnail          *mediaItem `json:"thumbnail_media_item"`
	Title              string     `json:"title"`
	DescriptionContent string     `json:"description_content"`
	HasAdultContent    bool       `json:"has_adult_content"`
}

type discoverResponse struct {
	Payload struct {
		Game *remoteGame `json:"game"`
	} `json:"payload"`
}

// Resolver fetches game metadata from the Game Jolt site API.
type Resolver struct {
	Client  *httpclient.Client
	BaseURL string
}

// NewResolver creates a resolver against the public site API.
func NewResolver(c *httpclient.Client) *Resolver {
	return &Resolver{Client: c, BaseURL: DefaultSiteAPI}
}

// RequiredAge maps the adult content flag to a minimum age.
func RequiredAge(adult bool) int {
	if adult {
		return adultAge
	}
	return generalAge
}

// Resolve fetches the site metadata of a Game Jolt game.
func (r *Resolver) Resolve(ctx context.Context, g games.GameJolt) (games.GameInfo, error) {
	url := fmt.Sprintf("%s/web/discover/games/%d", strings.TrimSuffix(r.BaseURL, "/"), g.ID)

	var resp discoverResponse
	if err := r.Client.GetJSON(ctx, url, &resp); err != nil {
		return games.GameInfo{}, err
	}
	game := resp.Payload.Game
	if game == nil {
		return games.GameInfo{}, games.SchemaMismatch("game jolt discover", fmt.Errorf("game %d missing from payload", g.ID))
	}

	description := ""
	if game.DescriptionContent != "" {
		var err error
		description, err = richtext.Render(game.DescriptionContent)
		if err != nil {
			return games.GameInfo{}, games.SchemaMismatch("game jolt description", err)
		}
	}

	dev := game.Developer.displayName()
	return games.GameInfo{
		RequiredAge: games.IntPtr(RequiredAge(game.HasAdultContent)),
		ViaPlatform: games.PlatformGameJolt,
		Name:        game.Title,
		Description: description,
		Cover:       game.Thumbnail.url(),
		Icon:        game.Header.url(),
		URL:         GameURL(game.Slug, g.ID),
		Developers:  []string{dev},
		Publishers:  []string{dev},
	}, nil
}

// ResolveDetected resolves g if it is a Game Jolt game.
func (r *Resolver) ResolveDetected(ctx context.Context, g games.DetectedGame) (games.GameInfo, error) {
	gg, ok := g.(games.GameJolt)
	if !ok {
		return games.GameInfo{}, games.Unsupported("gamejolt", g)
	}
	return r.Resolve(ctx, gg)
}
