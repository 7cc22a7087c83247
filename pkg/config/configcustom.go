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

package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

// CustomGame is a user-defined game, detected when any process command
// line contains Match (case-insensitive). Custom games are checked in
// declared order before any platform probe.
type CustomGame struct {
	ID    string `toml:"id"`
	Match string `toml:"match"`
}

var ErrInvalidCustomGame = errors.New("invalid custom game")

// ParseCustomGame parses an "id=substring" definition.
func ParseCustomGame(s string) (CustomGame, error) {
	id, match, ok := strings.Cut(s, "=")
	id = strings.TrimSpace(id)
	if !ok || id == "" || match == "" {
		return CustomGame{}, fmt.Errorf("%w: %q, expected id=substring", ErrInvalidCustomGame, s)
	}
	return CustomGame{ID: id, Match: match}, nil
}

// CustomGames returns a copy of the configured custom games in declared
// order.
func (c *Instance) CustomGames() []CustomGame {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.vals.CustomGames)
}

// AddCustomGames appends custom games after the configured ones. They
// are not saved unless Save is called.
func (c *Instance) AddCustomGames(cgs ...CustomGame) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.CustomGames = append(c.vals.CustomGames, validCustomGames(cgs)...)
}

func validCustomGames(cgs []CustomGame) []CustomGame {
	valid := make([]CustomGame, 0, len(cgs))
	for _, cg := range cgs {
		if cg.ID == "" || cg.Match == "" {
			log.Warn().Str("id", cg.ID).Str("match", cg.Match).Msg("ignoring custom game without id or match")
			continue
		}
		valid = append(valid, cg)
	}
	return valid
}
