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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCustomGame(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    CustomGame
		wantErr bool
	}{
		{name: "simple", input: "notepad=notepad.exe", want: CustomGame{ID: "notepad", Match: "notepad.exe"}},
		{name: "match_with_equals", input: "emu=--rom=doom.wad", want: CustomGame{ID: "emu", Match: "--rom=doom.wad"}},
		{name: "trims_id", input: " doom =gzdoom", want: CustomGame{ID: "doom", Match: "gzdoom"}},
		{name: "no_separator", input: "notepad", wantErr: true},
		{name: "empty_id", input: "=notepad.exe", wantErr: true},
		{name: "empty_match", input: "notepad=", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseCustomGame(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidCustomGame)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAddCustomGames_KeepsOrderAndDropsInvalid(t *testing.T) {
	t.Parallel()

	cfg := &Instance{}
	cfg.vals.CustomGames = []CustomGame{{ID: "first", Match: "a"}}
	cfg.AddCustomGames(
		CustomGame{ID: "second", Match: "b"},
		CustomGame{ID: "", Match: "c"},
		CustomGame{ID: "third", Match: ""},
		CustomGame{ID: "fourth", Match: "d"},
	)

	assert.Equal(t, []CustomGame{
		{ID: "first", Match: "a"},
		{ID: "second", Match: "b"},
		{ID: "fourth", Match: "d"},
	}, cfg.CustomGames())
}

func TestCustomGames_ReturnsCopy(t *testing.T) {
	t.Parallel()

	cfg := &Instance{}
	cfg.AddCustomGames(CustomGame{ID: "a", Match: "a"})

	got := cfg.CustomGames()
	got[0].ID = "changed"
	assert.Equal(t, "a", cfg.CustomGames()[0].ID)
}
