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

// Package itchio detects games launched from the itch app's install
// locations. Everything needed is in the game's local receipt, so there
// is no remote resolution.
package itchio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/env"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/games"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/procsnapshot"
	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog/log"
)

// WindowsDefaultAppsDir is where itch installs games on Windows unless
// told otherwise.
const WindowsDefaultAppsDir = `C:\Games\Itch Games`

// receiptPath is the receipt location relative to a game's folder.
var receiptPath = filepath.Join(".itch", "receipt.json.gz")

type preferences struct {
	InstallLocations []string `json:"installLocations"`
}

type receipt struct {
	Game struct {
		Title    string `json:"title"`
		URL      string `json:"url"`
		CoverURL string `json:"coverUrl"`
		Text     string `json:"shortText"`
		User     struct {
			DisplayName string `json:"displayName"`
		} `json:"user"`
		ID int64 `json:"id"`
	} `json:"game"`
}

// Options overrides where the probe looks for itch state.
type Options struct {
	// Preferences replaces the default preferences.json location.
	Preferences string
}

// Probe detects running itch games.
type Probe struct {
	env  *env.Env
	opts Options
}

// NewProbe creates an itch probe.
func NewProbe(e *env.Env, opts Options) *Probe {
	return &Probe{env: e, opts: opts}
}

// Name implements the probe interface.
func (*Probe) Name() string {
	return "itchio"
}

// Detect reports the first process running from inside an itch install
// location whose game folder carries a receipt.
func (p *Probe) Detect(_ context.Context, snap procsnapshot.Snapshot) (games.DetectedGame, error) {
	dirs, err := p.installLocations()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		matcher := procsnapshot.NewCmdlineContainsFoldMatcher(dir)
		for _, proc := range snap {
			if !matcher.Match(proc) {
				continue
			}
			folder, ok := GameFolder(dir, proc.Cmdline)
			if !ok {
				continue
			}
			game, err := p.readReceipt(folder)
			if err != nil {
				return nil, err
			}
			if game != nil {
				log.Debug().Str("folder", folder).Int("pid", proc.PID).Msg("itch game running")
				return *game, nil
			}
		}
	}

	return nil, nil
}

func (p *Probe) preferencesPath() string {
	if p.opts.Preferences != "" {
		return p.opts.Preferences
	}
	return p.env.AppDataPath("itch", "preferences.json")
}

func (p *Probe) defaultAppsDir() string {
	if p.env.IsWindows() {
		return WindowsDefaultAppsDir
	}
	return p.env.AppDataPath("itch", "apps")
}

// installLocations returns the existing install directories: the default
// one first, then those configured in the itch preferences.
func (p *Probe) installLocations() ([]string, error) {
	var dirs []string
	if def := p.defaultAppsDir(); p.env.IsDir(def) {
		dirs = append(dirs, def)
	}

	path := p.preferencesPath()
	data, err := p.env.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Debug().Str("path", path).Msg("itch preferences not found")
		return dirs, nil
	} else if err != nil {
		return nil, games.Malformed(path, err)
	}

	var prefs preferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return nil, games.Malformed(path, err)
	}

	for _, loc := range prefs.InstallLocations {
		loc = strings.TrimRight(loc, `/\`)
		if loc == "" || !p.env.IsDir(loc) {
			continue
		}
		dirs = append(dirs, loc)
	}
	return dirs, nil
}

// GameFolder extracts the game folder directly below dir from a command
// line, e.g. "/apps/Ignited Entry" from "/apps/Ignited Entry/game/run".
// The directory is matched case-insensitively.
func GameFolder(dir, cmdline string) (string, bool) {
	dir = strings.TrimRight(dir, `/\`)
	re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(dir) + `[/\\]([A-Za-z0-9_\- &.]+)[/\\]`)
	if err != nil {
		return "", false
	}
	m := re.FindStringSubmatch(cmdline)
	if m == nil {
		return "", false
	}
	return filepath.Join(dir, m[1]), true
}

// readReceipt returns nil without error when the folder has no receipt.
func (p *Probe) readReceipt(folder string) (*games.ItchIo, error) {
	path := filepath.Join(folder, receiptPath)

	f, err := p.env.Fs.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Debug().Str("path", path).Msg("no itch receipt")
		return nil, nil
	} else if err != nil {
		return nil, games.Malformed(path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing itch receipt")
		}
	}()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, games.Malformed(path, fmt.Errorf("failed to decompress receipt: %w", err))
	}
	defer func() { _ = zr.Close() }()

	var r receipt
	if err := json.NewDecoder(zr).Decode(&r); err != nil {
		return nil, games.Malformed(path, fmt.Errorf("failed to parse receipt: %w", err))
	}

	dev := r.Game.User.DisplayName
	return &games.ItchIo{
		ID:          r.Game.ID,
		Name:        r.Game.Title,
		URL:         r.Game.URL,
		Cover:       r.Game.CoverURL,
		Icon:        r.Game.CoverURL,
		Description: r.Game.Text,
		Developers:  []string{dev},
		Publishers:  []string{dev},
	}, nil
}
