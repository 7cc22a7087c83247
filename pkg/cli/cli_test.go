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

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/config"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/env"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/games"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/procsnapshot"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const steamRegistryVDF = `"Registry"
{
	"HKCU"
	{
		"Software"
		{
			"valve"
			{
				"Steam"
				{
					"RunningAppID"		"601050"
				}
			}
		}
	}
}`

type runResult struct {
	out    Output
	stdout string
}

func runCLI(t *testing.T, opts Options, args ...string) (runResult, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	opts.Stdout = &stdout
	opts.Stderr = &stderr
	if opts.Env == nil {
		opts.Env = env.NewMemEnv("linux")
	}
	if opts.Collector == nil {
		opts.Collector = procsnapshot.StaticCollector{}
	}

	cfgPath := filepath.Join(t.TempDir(), config.CfgFile)
	err := Run(context.Background(), append([]string{"-config", cfgPath}, args...), opts)
	res := runResult{stdout: stdout.String()}
	if err == nil && !bytes.HasPrefix(stdout.Bytes(), []byte("Zaparoo")) {
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &res.out))
	}
	return res, err
}

func TestRunNothingDetected(t *testing.T) {
	t.Parallel()

	res, err := runCLI(t, Options{})
	require.NoError(t, err)
	assert.Nil(t, res.out.Detected)
	assert.Nil(t, res.out.Info)
	assert.JSONEq(t, `{"detected": null, "info": null}`, res.stdout)
}

func TestRunDetectSteam(t *testing.T) {
	t.Parallel()

	e := env.NewMemEnv("linux")
	require.NoError(t, afero.WriteFile(e.Fs, "/home/u/.steam/registry.vdf", []byte(steamRegistryVDF), 0o600))

	res, err := runCLI(t, Options{Env: e})
	require.NoError(t, err)
	require.NotNil(t, res.out.Detected)
	assert.Equal(t, Detected{Platform: games.PlatformSteam, Identity: "steam:601050"}, *res.out.Detected)
	assert.Nil(t, res.out.Info, "info is only filled with -resolve")
}

func TestRunCustomResolve(t *testing.T) {
	t.Parallel()

	collector := procsnapshot.StaticCollector{Processes: procsnapshot.Snapshot{
		{PID: 4, Cmdline: `C:\Windows\notepad.exe foo.txt`},
	}}

	res, err := runCLI(t, Options{Collector: collector}, "-resolve", "-custom", "editor=NOTEPAD")
	require.NoError(t, err)
	require.NotNil(t, res.out.Detected)
	assert.Equal(t, "custom:editor", res.out.Detected.Identity)
	require.NotNil(t, res.out.Info)
	assert.Equal(t, "editor", res.out.Info.Name)
	assert.Equal(t, games.PlatformCustom, res.out.Info.ViaPlatform)
}

func TestRunResolveWithCache(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	cfgPath := filepath.Join(root, config.CfgFile)
	require.NoError(t, os.WriteFile(cfgPath, []byte("config_schema = 1\n[cache]\nenabled = true\nttl = \"1h\"\n"), 0o600))

	dirs := helpers.Dirs{CacheDir: filepath.Join(root, "cache")}
	require.NoError(t, helpers.EnsureDirectories(helpers.Dirs{CacheDir: dirs.CacheDir, LogDir: filepath.Join(root, "logs")}))

	collector := procsnapshot.StaticCollector{Processes: procsnapshot.Snapshot{{PID: 1, Cmdline: "mygame"}}}
	for range 2 {
		var stdout bytes.Buffer
		err := Run(context.Background(),
			[]string{"-config", cfgPath, "-resolve", "-custom", "g=mygame"},
			Options{Env: env.NewMemEnv("linux"), Collector: collector, Dirs: dirs, Stdout: &stdout, Stderr: &bytes.Buffer{}},
		)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), `"name": "g"`)
	}

	_, err := os.Stat(filepath.Join(dirs.CacheDir, config.CacheFile))
	require.NoError(t, err, "cache database should be created")
}

func TestRunVersion(t *testing.T) {
	t.Parallel()

	res, err := runCLI(t, Options{}, "-version")
	require.NoError(t, err)
	assert.Equal(t, "Zaparoo Now Playing v"+config.AppVersion+"\n", res.stdout)
}

func TestRunErrors(t *testing.T) {
	t.Parallel()

	t.Run("bad_custom", func(t *testing.T) {
		t.Parallel()
		_, err := runCLI(t, Options{}, "-custom", "missing-separator")
		require.ErrorContains(t, err, "invalid custom game")
	})

	t.Run("help", func(t *testing.T) {
		t.Parallel()
		_, err := runCLI(t, Options{}, "-h")
		assert.True(t, IsHelp(err))
	})

	t.Run("malformed_local_state", func(t *testing.T) {
		t.Parallel()
		e := env.NewMemEnv("linux")
		require.NoError(t, afero.WriteFile(e.Fs, "/home/u/.steam/registry.vdf", []byte(strings.Replace(steamRegistryVDF, "601050", "running", 1)), 0o600))
		_, err := runCLI(t, Options{Env: e})
		require.ErrorIs(t, err, games.ErrMalformedLocalState)
	})
}
