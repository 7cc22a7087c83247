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

package steam

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/andygrunwald/vdf"
)

// runningAppIDPath is the lower-cased key path of the running app id in
// registry.vdf.
var runningAppIDPath = []string{"registry", "hkcu", "software", "valve", "steam", "runningappid"}

// normalizeVDFKeys recursively lowercases all keys in a map[string]any tree.
// Valve's VDF format is case-insensitive, but Go maps use exact string matching.
func normalizeVDFKeys(m map[string]any) map[string]any {
	result := make(map[string]any, len(m))
	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			v = normalizeVDFKeys(nested)
		}
		result[strings.ToLower(k)] = v
	}
	return result
}

func parseVDF(r io.Reader) (map[string]any, error) {
	m, err := vdf.NewParser(r).Parse()
	if err != nil {
		return nil, fmt.Errorf("failed to parse vdf: %w", err)
	}
	return normalizeVDFKeys(m), nil
}

// lookupString walks a normalized VDF tree and returns the string leaf at path.
func lookupString(m map[string]any, path ...string) (string, error) {
	node := m
	for i, key := range path {
		v, ok := node[key]
		if !ok {
			return "", fmt.Errorf("key %q not found", strings.Join(path[:i+1], "."))
		}
		if i == len(path)-1 {
			s, ok := v.(string)
			if !ok {
				return "", fmt.Errorf("key %q is not a value", strings.Join(path, "."))
			}
			return s, nil
		}
		next, ok := v.(map[string]any)
		if !ok {
			return "", fmt.Errorf("key %q is not a section", strings.Join(path[:i+1], "."))
		}
		node = next
	}
	return "", errors.New("empty key path")
}
