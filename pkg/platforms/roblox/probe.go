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

// Package roblox detects the Roblox experience being played and resolves
// its metadata through the public Roblox APIs.
package roblox

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/env"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/games"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/procsnapshot"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	// PlayerMarker appears in the command line of the Roblox player.
	PlayerMarker = "robloxplayerbeta"

	joinMarker       = "Report game_join_loadtime: placeid:"
	disconnectMarker = "[FLog::Network] Time to disconnect replication data:"
)

var (
	placeIDArgRe = regexp.MustCompile(`(?i)placeId=(\d+)`)
	joinRe       = regexp.MustCompile(regexp.QuoteMeta(joinMarker) + `\s*(\d+)`)
)

// Options overrides where the probe looks for Roblox logs.
type Options struct {
	// LogDir replaces the player's default log directory.
	LogDir string
}

// Probe detects the running Roblox experience.
type Probe struct {
	env  *env.Env
	opts Options
}

// NewProbe creates a Roblox probe.
func NewProbe(e *env.Env, opts Options) *Probe {
	return &Probe{env: e, opts: opts}
}

// Name implements the probe interface.
func (*Probe) Name() string {
	return "roblox"
}

// GameURL returns the web page of a place.
func GameURL(placeID int64) string {
	return fmt.Sprintf("https://roblox.com/games/%d", placeID)
}

// NewGame builds the detected Roblox game for a place id.
func NewGame(placeID int64) games.Roblox {
	return games.Roblox{ID: placeID, URL: GameURL(placeID)}
}

func (p *Probe) logDir() string {
	switch {
	case p.opts.LogDir != "":
		return p.opts.LogDir
	case p.env.IsWindows():
		return filepath.Join(p.env.Dirs.LocalAppData, "Roblox", "logs")
	case p.env.IsDarwin():
		return p.env.HomePath("Library", "Logs", "Roblox")
	default:
		return ""
	}
}

// Detect reports the place the running Roblox player joined. The player
// log is preferred; the command line is used when no log names a place.
func (p *Probe) Detect(_ context.Context, snap procsnapshot.Snapshot) (games.DetectedGame, error) {
	proc, ok := snap.Find(procsnapshot.NewCmdlineContainsFoldMatcher(PlayerMarker))
	if !ok {
		return nil, nil
	}

	if dir := p.logDir(); dir != "" && p.env.IsDir(dir) {
		id, found, err := p.placeFromLogs(dir)
		if err != nil {
			return nil, err
		}
		if found {
			log.Debug().Int64("placeID", id).Msg("roblox place found in log")
			return NewGame(id), nil
		}
	}

	if id, found := PlaceIDFromCmdline(proc.Cmdline); found {
		log.Debug().Int64("placeID", id).Msg("roblox place found in command line")
		return NewGame(id), nil
	}

	log.Debug().Int("pid", proc.PID).Msg("roblox running without a known place")
	return nil, nil
}

// PlaceIDFromCmdline extracts a placeId=<n> launch argument.
func PlaceIDFromCmdline(cmdline string) (int64, bool) {
	m := placeIDArgRe.FindStringSubmatch(cmdline)
	if m == nil {
		return 0, false
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (p *Probe) placeFromLogs(dir string) (int64, bool, error) {
	path, ok, err := latestLog(p.env.Fs, dir)
	if err != nil {
		return 0, false, games.Malformed(dir, err)
	}
	if !ok {
		return 0, false, nil
	}

	data, err := p.env.ReadFile(path)
	if err != nil {
		return 0, false, games.Malformed(path, err)
	}

	id, found := ScanLog(string(data))
	return id, found, nil
}

// latestLog returns the most recently modified *.log file in dir.
func latestLog(fs afero.Fs, dir string) (string, bool, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return "", false, fmt.Errorf("failed to list roblox logs: %w", err)
	}

	var (
		latest  string
		modTime time.Time
	)
	for _, fi := range entries {
		if fi.IsDir() || !strings.EqualFold(filepath.Ext(fi.Name()), ".log") {
			continue
		}
		if latest == "" || fi.ModTime().After(modTime) {
			latest = filepath.Join(dir, fi.Name())
			modTime = fi.ModTime()
		}
	}
	return latest, latest != "", nil
}

// ScanLog walks a player log from its last line backwards and returns the
// place id of the most recent join. A disconnect seen before any join
// only marks that the latest session ended; scanning continues so the
// place of that session is still reported.
func ScanLog(data string) (int64, bool) {
	lines := strings.Split(data, "\n")
	disconnected := false

	for i := len(lines) - 1; i >= 0; i-- {
		line := lines[i]
		if strings.Contains(line, disconnectMarker) {
			disconnected = true
			continue
		}
		m := joinRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		id, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			continue
		}
		log.Debug().Bool("disconnected", disconnected).Int64("placeID", id).Msg("roblox join found in log")
		return id, true
	}
	return 0, false
}
