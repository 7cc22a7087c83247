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

// Package procsnapshot captures an immutable list of live processes and
// their command lines for a single detection pass.
package procsnapshot

import (
	"context"
	"strings"
)

// ProcessInfo contains information about a running process.
type ProcessInfo struct {
	Comm    string
	Cmdline string
	PID     int
}

// Snapshot is an ordered list of processes captured once per detection pass.
// It must be treated as read-only.
type Snapshot []ProcessInfo

// Collector captures a process snapshot.
type Collector interface {
	Collect(ctx context.Context) (Snapshot, error)
}

// Find returns the first process accepted by m.
func (s Snapshot) Find(m Matcher) (ProcessInfo, bool) {
	for _, proc := range s {
		if m.Match(proc) {
			return proc, true
		}
	}
	return ProcessInfo{}, false
}

// ContainsPID reports whether a process with the given PID is in the snapshot.
func (s Snapshot) ContainsPID(pid int) bool {
	for _, proc := range s {
		if proc.PID == pid {
			return true
		}
	}
	return false
}

// JoinArgs joins an argv slice the way command lines are compared:
// arguments separated by single spaces.
func JoinArgs(args []string) string {
	return strings.Join(args, " ")
}

// StaticCollector returns a fixed snapshot. Used for tests and for callers
// that enumerate processes themselves.
type StaticCollector struct {
	Processes Snapshot
}

// Collect implements Collector.
func (c StaticCollector) Collect(_ context.Context) (Snapshot, error) {
	return c.Processes, nil
}
