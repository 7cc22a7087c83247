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

import "strings"

// Matcher determines if a process is of interest to a probe.
type Matcher interface {
	// Match returns true if the process matches.
	Match(proc ProcessInfo) bool
}

// MatcherFunc is a function adapter for Matcher interface.
type MatcherFunc func(proc ProcessInfo) bool

// Match implements Matcher.
func (f MatcherFunc) Match(proc ProcessInfo) bool {
	return f(proc)
}

// CmdlineContainsMatcher matches processes whose cmdline contains a substring.
type CmdlineContainsMatcher struct {
	substring string
}

// NewCmdlineContainsMatcher creates a matcher that checks if cmdline contains a substring.
func NewCmdlineContainsMatcher(substring string) *CmdlineContainsMatcher {
	return &CmdlineContainsMatcher{substring: substring}
}

// Match returns true if the process cmdline contains the substring.
func (m *CmdlineContainsMatcher) Match(proc ProcessInfo) bool {
	return strings.Contains(proc.Cmdline, m.substring)
}

// CmdlineContainsFoldMatcher matches processes whose cmdline contains a
// substring, ignoring case. An empty substring never matches.
type CmdlineContainsFoldMatcher struct {
	substring string
}

// NewCmdlineContainsFoldMatcher creates a case-insensitive cmdline matcher.
func NewCmdlineContainsFoldMatcher(substring string) *CmdlineContainsFoldMatcher {
	return &CmdlineContainsFoldMatcher{substring: strings.ToLower(substring)}
}

// Match returns true if the lower-cased cmdline contains the substring.
func (m *CmdlineContainsFoldMatcher) Match(proc ProcessInfo) bool {
	if m.substring == "" {
		return false
	}
	return strings.Contains(strings.ToLower(proc.Cmdline), m.substring)
}

// AndMatcher combines multiple matchers with AND logic.
type AndMatcher struct {
	matchers []Matcher
}

// NewAndMatcher creates a matcher that requires all sub-matchers to match.
func NewAndMatcher(matchers ...Matcher) *AndMatcher {
	return &AndMatcher{matchers: matchers}
}

// Match returns true if all sub-matchers match.
func (m *AndMatcher) Match(proc ProcessInfo) bool {
	for _, matcher := range m.matchers {
		if !matcher.Match(proc) {
			return false
		}
	}
	return true
}
