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

// Package gamejolt detects games running through the Game Jolt client and
// resolves their metadata from the Game Jolt site API.
package gamejolt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/env"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/games"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/procsnapshot"
	"github.com/rs/zerolog/log"
)

const (
	packagesFile = "packages.wttf"
	gamesFile    = "games.wttf"
	// pidPrefixLen is the length of the marker the client puts in front
	// of running_pid.
	pidPrefixLen = 2
)

type localPackage struct {
	RunningPID *string `json:"running_pid"`
	GameID     int64   `json:"game_id"`
}

type mediaItem struct {
	ImgURL string `json:"img_url"`
}

type localGame struct {
	Slug      *string    `json:"slug"`
	Developer *developer `json:"developer"`
	Header    *mediaItem `json:"header_media_item"`
	Thumbnail *mediaItem `json:"thumbnail_media_item"`
	Title     string     `json:"title"`
}

type developer struct {
	DisplayName *string `json:"display_name"`
	Name        string  `json:"name"`
}

func (d *developer) displayName() string {
	if d == nil {
		return ""
	}
	if d.DisplayName != nil {
		return *d.DisplayName
	}
	return d.Name
}

func (m *mediaItem) url() string {
	if m == nil {
		return ""
	}
	return m.ImgURL
}

// GameURL returns the site URL of a game. The site redirects to the
// canonical slug when the slug is unknown.
func GameURL(slug *string, id int64) string {
	s := "redirect"
	if slug != nil && *slug != "" {
		s = *slug
	}
	return fmt.Sprintf("https://gamejolt.com/games/%s/%d", s, id)
}

// Options overrides where the probe looks for Game Jolt client state.
type Options struct {
	// DataDir replaces the client's default data directory.
	DataDir string
}

// Probe detects games launched by the Game Jolt client.
type Probe struct {
	env  *env.Env
	opts Options
}

// NewProbe creates a Game Jolt probe.
func NewProbe(e *env.Env, opts Options) *Probe {
	return &Probe{env: e, opts: opts}
}

// Name implements the probe interface.
func (*Probe) Name() string {
	return "gamejolt"
}

func (p *Probe) dataDir() string {
	if p.opts.DataDir != "" {
		return p.opts.DataDir
	}
	return p.env.AppDataPath("game-jolt-client", "Default")
}

// Detect reports the first installed package, in package id order, whose
// running pid is in the snapshot.
func (p *Probe) Detect(_ context.Context, snap procsnapshot.Snapshot) (games.DetectedGame, error) {
	dir := p.dataDir()
	if !p.env.IsDir(dir) {
		log.Debug().Str("path", dir).Msg("game jolt client data not found")
		return nil, nil
	}

	var packages map[string]localPackage
	if err := p.readObjects(filepath.Join(dir, packagesFile), &packages); err != nil {
		return nil, err
	}
	var catalog map[string]localGame
	if err := p.readObjects(filepath.Join(dir, gamesFile), &catalog); err != nil {
		return nil, err
	}

	ids, err := sortedPackageIDs(packages)
	if err != nil {
		return nil, games.Malformed(packagesFile, err)
	}

	for _, id := range ids {
		pkg := packages[strconv.FormatInt(id, 10)]
		if pkg.RunningPID == nil {
			continue
		}
		pid, err := parseRunningPID(*pkg.RunningPID)
		if err != nil {
			return nil, games.Malformed(packagesFile, err)
		}
		if !snap.ContainsPID(pid) {
			continue
		}

		game, ok := catalog[strconv.FormatInt(pkg.GameID, 10)]
		if !ok {
			log.Debug().Int64("gameID", pkg.GameID).Msg("running package has unknown game, skipping")
			continue
		}

		log.Debug().Int64("gameID", pkg.GameID).Int("pid", pid).Msg("game jolt game running")
		dev := game.Developer.displayName()
		return games.GameJolt{
			ID:         pkg.GameID,
			Name:       game.Title,
			URL:        GameURL(game.Slug, pkg.GameID),
			Icon:       game.Header.url(),
			Cover:      game.Thumbnail.url(),
			Developers: []string{dev},
			Publishers: []string{dev},
		}, nil
	}

	return nil, nil
}

// readObjects decodes the "objects" map of a client state file into v.
func (p *Probe) readObjects(path string, v any) error {
	data, err := p.env.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return games.Malformed(path, errors.New("file missing"))
		}
		return games.Malformed(path, err)
	}

	var wrapper struct {
		Objects json.RawMessage `json:"objects"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return games.Malformed(path, err)
	}
	if len(wrapper.Objects) == 0 {
		return games.Malformed(path, errors.New("no objects"))
	}
	if err := json.Unmarshal(wrapper.Objects, v); err != nil {
		return games.Malformed(path, err)
	}
	return nil
}

func sortedPackageIDs(packages map[string]localPackage) ([]int64, error) {
	ids := make([]int64, 0, len(packages))
	for k := range packages {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid package id %q: %w", k, err)
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

// parseRunningPID strips the two character marker from a running_pid
// value such as "w:1234".
func parseRunningPID(s string) (int, error) {
	if len(s) <= pidPrefixLen {
		return 0, fmt.Errorf("invalid running pid %q", s)
	}
	pid, err := strconv.Atoi(s[pidPrefixLen:])
	if err != nil {
		return 0, fmt.Errorf("invalid running pid %q: %w", s, err)
	}
	return pid, nil
}
