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

package lutris

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/games"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/shared/httpclient"
)

// DefaultAPI is the base URL of the lutris.net API.
const DefaultAPI = "https://lutris.net"

type apiGame struct {
	SteamID     *int64  `json:"steamid"`
	Description *string `json:"description"`
}

// Resolver fetches game metadata from lutris.net.
type Resolver struct {
	Client  *httpclient.Client
	BaseURL string
}

// NewResolver creates a resolver against the public lutris.net API.
func NewResolver(c *httpclient.Client) *Resolver {
	return &Resolver{Client: c, BaseURL: DefaultAPI}
}

// Resolve fetches the lutris.net entry of a game. The Steam app id is
// filled in when lutris.net knows one.
func (r *Resolver) Resolve(ctx context.Context, g games.Lutris) (games.GameInfo, error) {
	slug := url.PathEscape(g.Slug)
	endpoint := fmt.Sprintf("%s/api/games/%s", strings.TrimSuffix(r.BaseURL, "/"), slug)

	var resp apiGame
	if err := r.Client.GetJSON(ctx, endpoint, &resp); err != nil {
		return games.GameInfo{}, err
	}

	description := ""
	if resp.Description != nil {
		description = *resp.Description
	}

	return games.GameInfo{
		AppID:       resp.SteamID,
		ViaPlatform: games.PlatformLutris,
		Name:        g.Name,
		Description: description,
		Cover:       g.Cover,
		Icon:        g.Icon,
		URL:         "https://lutris.net/games/" + slug,
		Developers:  []string{},
		Publishers:  []string{},
	}, nil
}

// ResolveDetected resolves g if it is a Lutris game.
func (r *Resolver) ResolveDetected(ctx context.Context, g games.DetectedGame) (games.GameInfo, error) {
	lg, ok := g.(games.Lutris)
	if !ok {
		return games.GameInfo{}, games.Unsupported("lutris", g)
	}
	return r.Resolve(ctx, lg)
}
