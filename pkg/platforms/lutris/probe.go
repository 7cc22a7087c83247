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

// Package lutris detects games launched through Lutris by matching its
// game library against running lutris-wrapper processes.
package lutris

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/env"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/games"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/procsnapshot"
	"github.com/rs/zerolog/log"
)

const (
	// FlatpakID is the Flatpak application ID of Lutris.
	FlatpakID = "net.lutris.Lutris"
	// WrapperMarker appears in the command line of every game Lutris runs.
	WrapperMarker = "lutris-wrapper"

	gamesQuery = "SELECT id, slug, name, directory FROM games"
)

// Options overrides where the probe looks for the Lutris database.
type Options struct {
	// DB replaces the pga.db location.
	DB string
}

// Probe detects the running Lutris game.
type Probe struct {
	env  *env.Env
	opts Options
}

// NewProbe creates a Lutris probe.
func NewProbe(e *env.Env, opts Options) *Probe {
	return &Probe{env: e, opts: opts}
}

// Name implements the probe interface.
func (*Probe) Name() string {
	return "lutris"
}

type libraryGame struct {
	Slug      string
	Name      string
	Directory string
	ID        int64
}

// FindDB returns the Lutris database path, preferring a native install
// over the Flatpak one.
func (p *Probe) FindDB() (string, bool) {
	if p.opts.DB != "" {
		return p.opts.DB, p.env.Exists(p.opts.DB)
	}

	native := p.env.HomePath(".local", "share", "lutris", "pga.db")
	if p.env.Exists(native) {
		return native, true
	}

	flatpak := p.env.HomePath(".var", "app", FlatpakID, "data", "lutris", "pga.db")
	if p.env.Exists(flatpak) {
		return flatpak, true
	}

	return "", false
}

// Detect reports the first library game, in database order, that a
// running lutris-wrapper process belongs to.
func (p *Probe) Detect(ctx context.Context, snap procsnapshot.Snapshot) (games.DetectedGame, error) {
	if !p.env.IsPOSIX() {
		return nil, nil
	}

	path, ok := p.FindDB()
	if !ok {
		log.Debug().Msg("lutris database not found")
		return nil, nil
	}

	library, err := p.readLibrary(ctx, path)
	if err != nil {
		return nil, games.Malformed(path, err)
	}

	wrapper := procsnapshot.NewCmdlineContainsFoldMatcher(WrapperMarker)
	for _, g := range library {
		if g.Directory == "" || g.Name == "" {
			continue
		}
		m := procsnapshot.NewAndMatcher(
			wrapper,
			procsnapshot.NewCmdlineContainsFoldMatcher(g.Name),
			procsnapshot.NewCmdlineContainsFoldMatcher(g.Directory),
		)
		if proc, found := snap.Find(m); found {
			log.Debug().Str("slug", g.Slug).Int("pid", proc.PID).Msg("lutris game running")
			return NewGame(g.ID, g.Slug, g.Name), nil
		}
	}

	return nil, nil
}

// NewGame builds the detected Lutris game with its artwork URLs.
func NewGame(id int64, slug, name string) games.Lutris {
	return games.Lutris{
		ID:    id,
		Slug:  slug,
		Name:  name,
		Cover: fmt.Sprintf("https://lutris.net/games/banner/%s.jpg", slug),
		Icon:  fmt.Sprintf("https://lutris.net/games/icon/%s.png", slug),
	}
}

func (p *Probe) readLibrary(ctx context.Context, path string) ([]libraryGame, error) {
	db, err := p.env.OpenDB(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close Lutris database")
		}
	}()

	rows, err := db.QueryContext(ctx, gamesQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query Lutris games: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close Lutris query rows")
		}
	}()

	var library []libraryGame
	for rows.Next() {
		var (
			id                    int64
			slug, name, directory sql.NullString
		)
		if err := rows.Scan(&id, &slug, &name, &directory); err != nil {
			return nil, fmt.Errorf("failed to scan Lutris game row: %w", err)
		}
		library = append(library, libraryGame{
			ID:        id,
			Slug:      slug.String,
			Name:      name.String,
			Directory: directory.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating Lutris game rows: %w", err)
	}

	log.Debug().Msgf("found %d Lutris games", len(library))
	return library, nil
}
