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

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/cli"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/helpers"
)

func main() {
	if err := run(); err != nil {
		if cli.IsHelp(err) {
			os.Exit(0)
		}
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	dirs := helpers.DefaultDirs()

	err := helpers.EnsureDirectories(dirs)
	if err != nil {
		return fmt.Errorf("error creating directories: %w", err)
	}

	err = helpers.InitLogging(dirs.LogDir, []io.Writer{})
	if err != nil {
		return fmt.Errorf("error initializing logging: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return cli.Run(ctx, os.Args[1:], cli.Options{Dirs: dirs})
}
