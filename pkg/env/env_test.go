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

package env

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppDataPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		goos string
		want string
	}{
		{goos: "linux", want: filepath.Join("/home/u", ".config", "itch", "preferences.json")},
		{goos: "darwin", want: filepath.Join("/home/u", "Library", "Application Support", "itch", "preferences.json")},
		{goos: "windows", want: filepath.Join("/appdata/local", "itch", "preferences.json")},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			t.Parallel()
			e := NewMemEnv(tt.goos)
			assert.Equal(t, tt.want, e.AppDataPath("itch", "preferences.json"))
		})
	}
}

func TestExistsAndIsDir(t *testing.T) {
	t.Parallel()

	e := NewMemEnv("linux")
	require.NoError(t, e.Fs.MkdirAll("/home/u/games", 0o750))
	require.NoError(t, afero.WriteFile(e.Fs, "/home/u/games/a.txt", []byte("x"), 0o600))

	assert.True(t, e.Exists("/home/u/games"))
	assert.True(t, e.IsDir("/home/u/games"))
	assert.True(t, e.Exists("/home/u/games/a.txt"))
	assert.False(t, e.IsDir("/home/u/games/a.txt"))
	assert.False(t, e.Exists("/home/u/nope"))

	data, err := e.ReadFile("/home/u/games/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))

	_, err = e.ReadFile("/home/u/nope")
	require.Error(t, err)
}

func TestMapRegistry(t *testing.T) {
	t.Parallel()

	reg := MapRegistry{
		`Software\Valve\Steam`: {
			"RunningAppID": uint32(601050),
			"Language":     "english",
		},
	}

	v, err := reg.ReadInteger(`Software\Valve\Steam`, "RunningAppID")
	require.NoError(t, err)
	assert.Equal(t, uint64(601050), v)

	_, err = reg.ReadInteger(`Software\Valve\Missing`, "RunningAppID")
	require.ErrorIs(t, err, ErrKeyNotFound)

	_, err = reg.ReadInteger(`Software\Valve\Steam`, "Missing")
	require.ErrorIs(t, err, ErrValueNotFound)

	_, err = reg.ReadInteger(`Software\Valve\Steam`, "Language")
	require.ErrorIs(t, err, ErrValueType)
}

func TestOpenSQLite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test.db")
	rw, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = rw.ExecContext(context.Background(), "CREATE TABLE t (id INTEGER)")
	require.NoError(t, err)
	require.NoError(t, rw.Close())

	db, err := OpenSQLite(context.Background(), path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = db.ExecContext(context.Background(), "INSERT INTO t (id) VALUES (1)")
	require.Error(t, err, "database must be opened read-only")
}
