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

package helpers

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDirectories(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		setupDirs bool
	}{
		{name: "creates both directories successfully", setupDirs: false},
		{name: "works when directories already exist", setupDirs: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			testRoot := t.TempDir()
			d := Dirs{
				ConfigDir: filepath.Join(testRoot, "config"),
				CacheDir:  filepath.Join(testRoot, "cache", "nested"),
				LogDir:    filepath.Join(testRoot, "logs", "nested"),
			}

			if tt.setupDirs {
				require.NoError(t, os.MkdirAll(d.CacheDir, 0o750))
				require.NoError(t, os.MkdirAll(d.LogDir, 0o750))
			}

			require.NoError(t, EnsureDirectories(d))

			cacheInfo, err := os.Stat(d.CacheDir)
			require.NoError(t, err, "CacheDir should exist")
			assert.True(t, cacheInfo.IsDir())

			logInfo, err := os.Stat(d.LogDir)
			require.NoError(t, err, "LogDir should exist")
			assert.True(t, logInfo.IsDir())

			if runtime.GOOS != "windows" {
				assert.Equal(t, os.FileMode(0o750), logInfo.Mode().Perm(), "LogDir should have 0750 permissions")
			}
		})
	}
}

func TestEnsureDirectoriesErrorHandling(t *testing.T) {
	t.Parallel()

	err := EnsureDirectories(Dirs{CacheDir: "/proc/invalid\x00path", LogDir: t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create cache directory")

	err = EnsureDirectories(Dirs{CacheDir: t.TempDir(), LogDir: "/proc/invalid\x00path"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create log directory")
}

func TestDefaultDirs(t *testing.T) {
	t.Parallel()

	d := DefaultDirs()
	assert.Equal(t, "zaparoo-nowplaying", filepath.Base(d.ConfigDir))
	assert.Equal(t, "zaparoo-nowplaying", filepath.Base(d.CacheDir))
	assert.Equal(t, "zaparoo-nowplaying", filepath.Base(d.LogDir))
}

//nolint:paralleltest // InitLogging modifies the global logger
func TestInitLogging(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	var buf bytes.Buffer
	logDir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, InitLogging(logDir, []io.Writer{&buf}))

	log.Info().Str("probe", "steam").Msg("hello")
	assert.Contains(t, buf.String(), `"probe":"steam"`)
	assert.Contains(t, buf.String(), `"message":"hello"`)

	_, err := os.Stat(filepath.Join(logDir, "nowplaying.log"))
	require.NoError(t, err, "log file should be written")
}

//nolint:paralleltest // SetLogLevel modifies the global level
func TestSetLogLevel(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	SetLogLevel(true)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	SetLogLevel(false)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
