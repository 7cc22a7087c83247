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
	"errors"
	"fmt"
)

var (
	// ErrKeyNotFound means the registry key doesn't exist.
	ErrKeyNotFound = errors.New("registry key not found")
	// ErrValueNotFound means the key exists but the value doesn't.
	ErrValueNotFound = errors.New("registry value not found")
	// ErrValueType means the value exists but has an unexpected type.
	ErrValueType = errors.New("registry value has unexpected type")
)

// RegistryReader reads values from the current user's registry hive.
type RegistryReader interface {
	// ReadInteger reads a DWORD or QWORD value from HKEY_CURRENT_USER.
	ReadInteger(path, name string) (uint64, error)
}

// MapRegistry is an in-memory RegistryReader keyed by path, then value name.
// Values must be integers to be read with ReadInteger.
type MapRegistry map[string]map[string]any

// ReadInteger implements RegistryReader.
func (r MapRegistry) ReadInteger(path, name string) (uint64, error) {
	key, ok := r[path]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrKeyNotFound, path)
	}
	v, ok := key[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s\\%s", ErrValueNotFound, path, name)
	}
	switch n := v.(type) {
	case uint32:
		return uint64(n), nil
	case uint64:
		return n, nil
	case int:
		if n < 0 {
			return 0, fmt.Errorf("%w: %s\\%s is negative", ErrValueType, path, name)
		}
		return uint64(n), nil
	default:
		return 0, fmt.Errorf("%w: %s\\%s is %T", ErrValueType, path, name, v)
	}
}
