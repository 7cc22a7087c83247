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
	"github.com/spf13/afero"
)

// NewMemEnv returns an Env backed by an in-memory filesystem and registry,
// posing as the given OS. Used by probe tests.
func NewMemEnv(goos string) *Env {
	return &Env{
		Fs:       afero.NewMemMapFs(),
		Registry: MapRegistry{},
		OpenDB:   OpenSQLite,
		Dirs: Dirs{
			Home:         "/home/u",
			LocalAppData: "/appdata/local",
		},
		GOOS: goos,
	}
}
