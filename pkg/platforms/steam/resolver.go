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

package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/games"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/shared/httpclient"
)

// DefaultStoreAPI is the base URL of the Steam store API.
const DefaultStoreAPI = "https://store.steampowered.com"

type appDetails struct {
	Name             string          `json:"name"`
	ShortDescription string          `json:"short_description"`
	BackgroundRaw    string          `json:"background_raw"`
	RequiredAge      json.RawMessage `json:"required_age"`
	Developers       []string        `json:"developers"`
	Publishers       []string        `json:"publishers"`
}

type appDetailsEntry struct {
	Data    *appDetails `json:"data"`
	Success bool        `json:"success"`
}

// Resolver fetches Steam game metadata from the store appdetails API.
type Resolver struct {
	Client  *httpclient.Client
	BaseURL string
}

// NewResolver creates a resolver against the public store API.
func NewResolver(c *httpclient.Client) *Resolver {
	return &Resolver{Client: c, BaseURL: DefaultStoreAPI}
}

// Resolve fetches the store details of a detected Steam game.
func (r *Resolver) Resolve(ctx context.Context, g games.Steam) (games.GameInfo, error) {
	key := strconv.FormatInt(g.ID, 10)
	url := fmt.Sprintf("%s/api/appdetails?appids=%s", strings.TrimSuffix(r.BaseURL, "/"), key)

	var resp map[string]appDetailsEntry
	if err := r.Client.GetJSON(ctx, url, &resp); err != nil {
		return games.GameInfo{}, err
	}

	entry, ok := resp[key]
	if !ok || !entry.Success {
		return games.GameInfo{}, fmt.Errorf("%w: steam app %d", games.ErrNotFound, g.ID)
	}
	if entry.Data == nil {
		return games.GameInfo{}, games.SchemaMismatch("steam appdetails", fmt.Errorf("app %d has no data", g.ID))
	}
	app := entry.Data

	return games.GameInfo{
		AppID:       games.Int64Ptr(g.ID),
		RequiredAge: parseRequiredAge(app.RequiredAge),
		ViaPlatform: games.PlatformSteam,
		Name:        app.Name,
		Description: app.ShortDescription,
		Cover:       app.BackgroundRaw,
		Icon:        g.Icon,
		URL:         g.URL,
		Developers:  nonNil(app.Developers),
		Publishers:  nonNil(app.Publishers),
	}, nil
}

// ResolveDetected resolves g if it is a Steam game.
func (r *Resolver) ResolveDetected(ctx context.Context, g games.DetectedGame) (games.GameInfo, error) {
	sg, ok := g.(games.Steam)
	if !ok {
		return games.GameInfo{}, games.Unsupported("steam", g)
	}
	return r.Resolve(ctx, sg)
}

// parseRequiredAge accepts the age as a JSON number or a numeric string.
// Anything else yields nil.
func parseRequiredAge(raw json.RawMessage) *int {
	if len(raw) == 0 {
		return nil
	}

	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return &n
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &n
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
