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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/env"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/games"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/procsnapshot"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/shared/httpclient"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	dataDir = "/home/u/.config/game-jolt-client/Default"

	pixelHeistIcon  = "https://i.gjcdn.net/public-data/games/4/126/303626/backgroundpixelheistbanner-2smwc36v.png"
	pixelHeistCover = "https://i.gjcdn.net/public-data/games/4/126/303626/screenshot02-1920x1080-fe105cac968c5f05ea91be18a7888cfc-dxd2t2jh.png"
)

const gamesWTTF = `{
	"objects": {
		"303626": {
			"title": "Pixel Heist",
			"slug": "Pixel_Heist",
			"developer": {"display_name": "REALyeswecamp", "name": "realyeswecamp"},
			"header_media_item": {"img_url": "` + pixelHeistIcon + `"},
			"thumbnail_media_item": {"img_url": "` + pixelHeistCover + `"}
		},
		"42": {
			"title": "No Slug",
			"developer": {"display_name": "dev"},
			"header_media_item": {"img_url": "h"},
			"thumbnail_media_item": {"img_url": "t"}
		}
	}
}`

func writeState(t *testing.T, e *env.Env, packages, catalog string) {
	t.Helper()
	require.NoError(t, e.Fs.MkdirAll(dataDir, 0o750))
	if packages != "" {
		require.NoError(t, afero.WriteFile(e.Fs, filepath.Join(dataDir, packagesFile), []byte(packages), 0o600))
	}
	if catalog != "" {
		require.NoError(t, afero.WriteFile(e.Fs, filepath.Join(dataDir, gamesFile), []byte(catalog), 0o600))
	}
}

func TestDetect(t *testing.T) {
	t.Parallel()

	e := env.NewMemEnv("linux")
	writeState(t, e, `{"objects": {
		"10": {"game_id": 42},
		"11": {"game_id": 303626, "running_pid": "w:4242"}
	}}`, gamesWTTF)

	snap := procsnapshot.Snapshot{{PID: 1, Cmdline: "init"}, {PID: 4242, Cmdline: "./PixelHeist"}}

	got, err := NewProbe(e, Options{}).Detect(context.Background(), snap)
	require.NoError(t, err)
	assert.Equal(t, games.GameJolt{
		ID:         303626,
		Name:       "Pixel Heist",
		URL:        "https://gamejolt.com/games/Pixel_Heist/303626",
		Icon:       pixelHeistIcon,
		Cover:      pixelHeistCover,
		Developers: []string{"REALyeswecamp"},
		Publishers: []string{"REALyeswecamp"},
	}, got)
}

func TestDetectPackageOrder(t *testing.T) {
	t.Parallel()

	e := env.NewMemEnv("linux")
	writeState(t, e, `{"objects": {
		"200": {"game_id": 303626, "running_pid": "w:5"},
		"100": {"game_id": 42, "running_pid": "w:5"}
	}}`, gamesWTTF)

	snap := procsnapshot.Snapshot{{PID: 5, Cmdline: "game"}}

	for range 5 {
		got, err := NewProbe(e, Options{}).Detect(context.Background(), snap)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "gamejolt:42", got.Identity())
		assert.Equal(t, "https://gamejolt.com/games/redirect/42", got.(games.GameJolt).URL)
	}
}

func TestDetectSkipsUnknownGame(t *testing.T) {
	t.Parallel()

	e := env.NewMemEnv("linux")
	writeState(t, e, `{"objects": {
		"1": {"game_id": 999, "running_pid": "w:5"},
		"2": {"game_id": 303626, "running_pid": "w:6"}
	}}`, gamesWTTF)

	snap := procsnapshot.Snapshot{{PID: 5, Cmdline: "a"}, {PID: 6, Cmdline: "b"}}

	got, err := NewProbe(e, Options{}).Detect(context.Background(), snap)
	require.NoError(t, err)
	assert.Equal(t, "gamejolt:303626", got.Identity())
}

func TestDetectAbsence(t *testing.T) {
	t.Parallel()

	t.Run("not_installed", func(t *testing.T) {
		t.Parallel()
		got, err := NewProbe(env.NewMemEnv("linux"), Options{}).Detect(context.Background(), nil)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("nothing_running", func(t *testing.T) {
		t.Parallel()
		e := env.NewMemEnv("linux")
		writeState(t, e, `{"objects": {"1": {"game_id": 303626, "running_pid": "w:5"}}}`, gamesWTTF)

		got, err := NewProbe(e, Options{}).Detect(context.Background(), procsnapshot.Snapshot{{PID: 6}})
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestDetectMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		packages string
		catalog  string
	}{
		{name: "packages_missing", catalog: gamesWTTF},
		{name: "games_missing", packages: `{"objects": {}}`},
		{name: "packages_not_json", packages: `{"objects": `, catalog: gamesWTTF},
		{name: "no_objects", packages: `{}`, catalog: gamesWTTF},
		{name: "bad_pid", packages: `{"objects": {"1": {"game_id": 42, "running_pid": "w:abc"}}}`, catalog: gamesWTTF},
		{name: "short_pid", packages: `{"objects": {"1": {"game_id": 42, "running_pid": "w:"}}}`, catalog: gamesWTTF},
		{name: "bad_package_id", packages: `{"objects": {"x": {"game_id": 42}}}`, catalog: gamesWTTF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := env.NewMemEnv("linux")
			writeState(t, e, tt.packages, tt.catalog)

			_, err := NewProbe(e, Options{}).Detect(context.Background(), procsnapshot.Snapshot{{PID: 1}})
			require.ErrorIs(t, err, games.ErrMalformedLocalState)
		})
	}
}

func TestDetectDataDirOverride(t *testing.T) {
	t.Parallel()

	e := env.NewMemEnv("windows")
	dir := "/custom/gj"
	require.NoError(t, e.Fs.MkdirAll(dir, 0o750))
	require.NoError(t, afero.WriteFile(e.Fs, filepath.Join(dir, packagesFile),
		[]byte(`{"objects": {"1": {"game_id": 42, "running_pid": "w:5"}}}`), 0o600))
	require.NoError(t, afero.WriteFile(e.Fs, filepath.Join(dir, gamesFile), []byte(gamesWTTF), 0o600))

	got, err := NewProbe(e, Options{DataDir: dir}).Detect(context.Background(), procsnapshot.Snapshot{{PID: 5}})
	require.NoError(t, err)
	assert.Equal(t, "gamejolt:42", got.Identity())
}

func discoverBody(t *testing.T, adult bool, description string) []byte {
	t.Helper()
	body := map[string]any{
		"payload": map[string]any{
			"game": map[string]any{
				"title":                "Pixel Heist",
				"slug":                 "Pixel_Heist",
				"has_adult_content":    adult,
				"developer":            map[string]any{"display_name": nil, "name": "REALyeswecamp"},
				"header_media_item":    map[string]any{"img_url": pixelHeistIcon},
				"thumbnail_media_item": map[string]any{"img_url": pixelHeistCover},
				"description_content":  description,
			},
		},
	}
	data, err := json.Marshal(body)
	require.NoError(t, err)
	return data
}

func TestResolve(t *testing.T) {
	t.Parallel()

	description := `{"version":"1.0.0","content":[{"type":"paragraph","content":[` +
		`{"type":"text","text":"Abandon","marks":[{"type":"strong"}]}]}]}`

	tests := []struct {
		name    string
		desc    string
		wantAge int
		adult   bool
	}{
		{name: "general", adult: false, wantAge: 13, desc: description},
		{name: "adult", adult: true, wantAge: 18, desc: description},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			body := discoverBody(t, tt.adult, tt.desc)
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/site-api/web/discover/games/303626" {
					w.WriteHeader(http.StatusNotFound)
					return
				}
				_, _ = w.Write(body)
			}))
			defer srv.Close()

			r := &Resolver{Client: httpclient.NewClient(), BaseURL: srv.URL + "/site-api"}
			info, err := r.Resolve(context.Background(), games.GameJolt{ID: 303626})
			require.NoError(t, err)

			require.NotNil(t, info.RequiredAge)
			assert.Equal(t, tt.wantAge, *info.RequiredAge)
			assert.Equal(t, "Pixel Heist", info.Name)
			assert.Equal(t, "**Abandon**\n", info.Description)
			assert.Equal(t, []string{"REALyeswecamp"}, info.Developers)
			assert.Equal(t, []string{"REALyeswecamp"}, info.Publishers)
			assert.Equal(t, "https://gamejolt.com/games/Pixel_Heist/303626", info.URL)
			assert.Equal(t, pixelHeistIcon, info.Icon)
			assert.Equal(t, pixelHeistCover, info.Cover)
			assert.Equal(t, games.PlatformGameJolt, info.ViaPlatform)
			assert.Nil(t, info.AppID)
		})
	}
}

func TestResolveErrors(t *testing.T) {
	t.Parallel()

	badDescription := discoverBody(t, false, `{"content": [{"type": "video"}]}`)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/web/discover/games/1":
			_, _ = w.Write(badDescription)
		case "/web/discover/games/2":
			_, _ = w.Write([]byte(`{"payload": {}}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	r := &Resolver{Client: httpclient.NewClient(), BaseURL: srv.URL}

	_, err := r.Resolve(context.Background(), games.GameJolt{ID: 1})
	require.ErrorIs(t, err, games.ErrSchemaMismatch)

	_, err = r.Resolve(context.Background(), games.GameJolt{ID: 2})
	require.ErrorIs(t, err, games.ErrSchemaMismatch)

	_, err = r.Resolve(context.Background(), games.GameJolt{ID: 3})
	require.ErrorIs(t, err, games.ErrFetch)

	_, err = r.ResolveDetected(context.Background(), games.Steam{ID: 3})
	require.ErrorIs(t, err, games.ErrUnsupportedVariant)
}

func TestRequiredAge(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 18, RequiredAge(true))
	assert.Equal(t, 13, RequiredAge(false))
}
