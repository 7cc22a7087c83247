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

// Package cli implements the nowplaying command: a single detection pass,
// optionally followed by metadata resolution, printed as JSON.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/cache"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/config"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/env"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/games"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/nowplaying"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/procsnapshot"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/shared/httpclient"
	"github.com/rs/zerolog/log"
)

const (
	requestsPerSecond = 5
	requestBurst      = 5
)

// ErrHelp is returned when the usage text was requested.
var ErrHelp = flag.ErrHelp

type Flags struct {
	Config  *string
	Resolve *bool
	Debug   *bool
	Version *bool
	Custom  *customGamesFlag
}

type customGamesFlag []config.CustomGame

func (f *customGamesFlag) String() string {
	parts := make([]string, 0, len(*f))
	for _, cg := range *f {
		parts = append(parts, cg.ID+"="+cg.Match)
	}
	return strings.Join(parts, ",")
}

func (f *customGamesFlag) Set(value string) error {
	cg, err := config.ParseCustomGame(value)
	if err != nil {
		return err
	}
	*f = append(*f, cg)
	return nil
}

func SetupFlags(fs *flag.FlagSet) *Flags {
	custom := &customGamesFlag{}
	fs.Var(custom, "custom", "add a custom game as id=substring (repeatable)")

	return &Flags{
		Config: fs.String(
			"config",
			"",
			"path to config file",
		),
		Resolve: fs.Bool(
			"resolve",
			false,
			"resolve metadata for the detected game",
		),
		Debug: fs.Bool(
			"debug",
			false,
			"enable debug logging",
		),
		Version: fs.Bool(
			"version",
			false,
			"print version and exit",
		),
		Custom: custom,
	}
}

// Options holds the dependencies of a run. Zero fields are filled with the
// real host implementations.
type Options struct {
	Env       *env.Env
	Collector procsnapshot.Collector
	Client    *httpclient.Client
	Stdout    io.Writer
	Stderr    io.Writer
	Dirs      helpers.Dirs
}

// Detected is the JSON form of a detected game.
type Detected struct {
	Platform games.GamePlatform `json:"platform"`
	Identity string             `json:"identity"`
}

// Output is the document printed on stdout.
type Output struct {
	Detected *Detected       `json:"detected"`
	Info     *games.GameInfo `json:"info"`
}

// Run parses args and performs one detection pass.
func Run(ctx context.Context, args []string, opts Options) error {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.SetOutput(opts.Stderr)
	flags := SetupFlags(fs)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}

	if *flags.Version {
		_, _ = fmt.Fprintf(opts.Stdout, "Zaparoo Now Playing v%s\n", config.AppVersion)
		return nil
	}

	cfg, err := loadConfig(*flags.Config, opts.Dirs)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	helpers.SetLogLevel(cfg.DebugLogging() || *flags.Debug)
	cfg.AddCustomGames(*flags.Custom...)

	if opts.Env == nil {
		opts.Env = env.New()
	}
	if opts.Collector == nil {
		opts.Collector = procsnapshot.NewCollector()
	}

	detector := nowplaying.NewDetector(cfg, opts.Env, opts.Collector)
	g, err := detector.Detect(ctx)
	if err != nil {
		log.Error().Err(err).Msg("detection failed")
		return fmt.Errorf("detection failed: %w", err)
	}

	var out Output
	if g != nil {
		out.Detected = &Detected{Platform: g.Platform(), Identity: g.Identity()}
	}

	if *flags.Resolve && g != nil {
		client := opts.Client
		if client == nil {
			client = httpclient.NewClient(
				httpclient.WithTimeout(cfg.HTTPTimeout()),
				httpclient.WithRateLimit(requestsPerSecond, requestBurst),
			)
		}

		info, err := resolve(ctx, cfg, opts.Dirs, nowplaying.NewResolver(client), g)
		if err != nil {
			log.Error().Err(err).Str("identity", g.Identity()).Msg("resolution failed")
			return fmt.Errorf("resolution failed: %w", err)
		}
		out.Info = &info
	}

	enc := json.NewEncoder(opts.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func loadConfig(path string, dirs helpers.Dirs) (*config.Instance, error) {
	if path != "" {
		//nolint:wrapcheck // wrapped by caller
		return config.NewConfigAt(path, config.BaseDefaults)
	}
	//nolint:wrapcheck // wrapped by caller
	return config.NewConfig(dirs.ConfigDir, config.BaseDefaults)
}

func resolve(
	ctx context.Context,
	cfg *config.Instance,
	dirs helpers.Dirs,
	r *nowplaying.Resolver,
	g games.DetectedGame,
) (games.GameInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.HTTPTimeout())
	defer cancel()

	if !cfg.CacheEnabled() || dirs.CacheDir == "" {
		//nolint:wrapcheck // wrapped by caller
		return r.Resolve(ctx, g)
	}

	c, err := cache.Open(filepath.Join(dirs.CacheDir, config.CacheFile), cfg.CacheTTL(), nil)
	if err != nil {
		log.Warn().Err(err).Msg("cache unavailable, resolving without it")
		//nolint:wrapcheck // wrapped by caller
		return r.Resolve(ctx, g)
	}
	defer func() {
		if closeErr := c.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing cache")
		}
	}()

	if info, ok := c.Get(g); ok {
		log.Debug().Str("identity", g.Identity()).Msg("cache hit")
		return info, nil
	}

	info, err := r.Resolve(ctx, g)
	if err != nil {
		return games.GameInfo{}, err //nolint:wrapcheck // wrapped by caller
	}
	if err := c.Put(g, info); err != nil {
		log.Warn().Err(err).Msg("failed to cache game info")
	}
	if _, err := c.Prune(); err != nil {
		log.Warn().Err(err).Msg("failed to prune cache")
	}
	return info, nil
}

// IsHelp reports whether err came from a -h/-help request.
func IsHelp(err error) bool {
	return errors.Is(err, ErrHelp)
}
