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
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// ProcCollector reads processes directly from a procfs mount.
type ProcCollector struct {
	procPath string
}

// ProcOption configures a ProcCollector.
type ProcOption func(*ProcCollector)

// WithProcPath sets a custom /proc path (for testing).
func WithProcPath(path string) ProcOption {
	return func(c *ProcCollector) {
		c.procPath = path
	}
}

// NewProcCollector creates a collector reading from /proc.
func NewProcCollector(opts ...ProcOption) *ProcCollector {
	c := &ProcCollector{procPath: "/proc"}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect reads every numeric directory under the proc path. Entries that
// vanish or can't be read mid-scan are skipped.
func (c *ProcCollector) Collect(ctx context.Context) (Snapshot, error) {
	entries, err := os.ReadDir(c.procPath)
	if err != nil {
		return nil, fmt.Errorf("read proc directory: %w", err)
	}

	snap := make(Snapshot, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("process scan cancelled: %w", err)
		}

		if !entry.IsDir() {
			continue
		}

		pid, err := strconv.Atoi(entry.Name())
		if err != nil {
			continue
		}

		proc, ok := c.readProcessInfo(pid)
		if !ok {
			continue
		}

		snap = append(snap, proc)
	}

	log.Debug().Int("processes", len(snap)).Msg("captured process snapshot from procfs")
	return snap, nil
}

// readProcessInfo reads comm and cmdline for a process.
func (c *ProcCollector) readProcessInfo(pid int) (ProcessInfo, bool) {
	pidStr := strconv.Itoa(pid)

	cmdlinePath := filepath.Join(c.procPath, pidStr, "cmdline")
	cmdlineData, err := os.ReadFile(cmdlinePath) //nolint:gosec // G304: procPath is controlled
	if err != nil {
		return ProcessInfo{}, false
	}

	commPath := filepath.Join(c.procPath, pidStr, "comm")
	commData, _ := os.ReadFile(commPath) //nolint:gosec // G304: procPath is controlled

	return ProcessInfo{
		PID:     pid,
		Comm:    strings.TrimSpace(string(commData)),
		Cmdline: parseCmdline(cmdlineData),
	}, true
}

// parseCmdline turns the NUL-separated argv from /proc/<pid>/cmdline into a
// space-joined command line.
func parseCmdline(data []byte) string {
	data = bytes.TrimRight(data, "\x00")
	if len(data) == 0 {
		return ""
	}
	parts := bytes.Split(data, []byte{0})
	args := make([]string, 0, len(parts))
	for _, p := range parts {
		args = append(args, string(p))
	}
	return JoinArgs(args)
}
