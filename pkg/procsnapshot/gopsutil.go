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

package procsnapshot

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v4/process"
)

// GopsutilCollector enumerates processes with gopsutil. It works on every
// platform the detector supports and is the default collector.
type GopsutilCollector struct{}

// NewCollector returns the default process collector.
func NewCollector() *GopsutilCollector {
	return &GopsutilCollector{}
}

// Collect enumerates all live processes. Processes whose command line can't
// be read, because they exited or are owned by another user, are skipped.
func (*GopsutilCollector) Collect(ctx context.Context) (Snapshot, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	snap := make(Snapshot, 0, len(procs))
	skipped := 0
	for _, p := range procs {
		args, err := p.CmdlineSliceWithContext(ctx)
		if err != nil {
			skipped++
			continue
		}

		// comm is informational only, a failure here doesn't drop the process
		name, _ := p.NameWithContext(ctx)

		snap = append(snap, ProcessInfo{
			PID:     int(p.Pid),
			Comm:    name,
			Cmdline: JoinArgs(args),
		})
	}

	log.Debug().
		Int("processes", len(snap)).
		Int("skipped", skipped).
		Msg("captured process snapshot")

	return snap, nil
}
