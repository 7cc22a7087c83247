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

// Package env provides the ambient capabilities the detection probes need:
// filesystem, registry and database access plus well-known directories.
// Probes only touch the host through an Env, so every probe can be tested
// against fakes.
package env

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adrg/xdg"
	_ "github.com/mattn/go-sqlite3" // sqlite driver for Lutris pga.db
	"github.com/spf13/afero"
)

// DBOpener opens a read-only handle to an sqlite database file.
type DBOpener func(ctx context.Context, path string) (*sql.DB, error)

// Dirs holds the directories platform clients store their state under.
type Dirs struct {
	// Home is the user's home directory.
	Home string
	// LocalAppData is %LOCALAPPDATA% on Windows. Unused elsewhere.
	LocalAppData string
}

// Env is the set of host capabilities available to probes.
type Env struct {
	Fs       afero.Fs
	Registry RegistryReader
	OpenDB   DBOpener
	Dirs     Dirs
	// GOOS selects which per-OS locations probes look at.
	GOOS string
}

// New returns an Env backed by the real host.
func New() *Env {
	return &Env{
		Fs:       afero.NewOsFs(),
		Registry: NewRegistryReader(),
		OpenDB:   OpenSQLite,
		Dirs: Dirs{
			Home:         xdg.Home,
			LocalAppData: localAppData(),
		},
		GOOS: runtime.GOOS,
	}
}

// IsWindows reports whether probes should use Windows locations.
func (e *Env) IsWindows() bool {
	return e.GOOS == "windows"
}

// IsDarwin reports whether probes should use macOS locations.
func (e *Env) IsDarwin() bool {
	return e.GOOS == "darwin"
}

// IsPOSIX reports whether the host is a Unix-like system.
func (e *Env) IsPOSIX() bool {
	return !e.IsWindows()
}

// Exists reports whether path exists. Errors other than not-exist are
// treated as absence; probes only use this to decide whether a platform is
// installed.
func (e *Env) Exists(path string) bool {
	ok, err := afero.Exists(e.Fs, path)
	return err == nil && ok
}

// IsDir reports whether path exists and is a directory.
func (e *Env) IsDir(path string) bool {
	ok, err := afero.IsDir(e.Fs, path)
	return err == nil && ok
}

// ReadFile reads a whole file.
func (e *Env) ReadFile(path string) ([]byte, error) {
	data, err := afero.ReadFile(e.Fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// HomePath joins elements onto the user's home directory.
func (e *Env) HomePath(elem ...string) string {
	return filepath.Join(append([]string{e.Dirs.Home}, elem...)...)
}

// AppDataPath returns the per-user application data directory for an app:
// %LOCALAPPDATA%\<app> on Windows, ~/Library/Application Support/<app> on
// macOS and ~/.config/<app> elsewhere.
func (e *Env) AppDataPath(app string, elem ...string) string {
	var base string
	switch {
	case e.IsWindows():
		base = filepath.Join(e.Dirs.LocalAppData, app)
	case e.IsDarwin():
		base = e.HomePath("Library", "Application Support", app)
	default:
		base = e.HomePath(".config", app)
	}
	return filepath.Join(append([]string{base}, elem...)...)
}

// OpenSQLite opens an sqlite database in read-only mode.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	dsn := "file:" + filepath.ToSlash(path) + "?mode=ro"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database %s: %w", path, err)
	}
	return db, nil
}

func localAppData() string {
	if runtime.GOOS != "windows" {
		return ""
	}
	// xdg maps DataHome to %LOCALAPPDATA% on Windows
	return strings.TrimSuffix(xdg.DataHome, `\`)
}
