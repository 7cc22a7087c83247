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

//go:build windows

package env

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sys/windows/registry"
)

type windowsRegistry struct{}

// NewRegistryReader returns a reader for the Windows registry.
func NewRegistryReader() RegistryReader {
	return windowsRegistry{}
}

func (windowsRegistry) ReadInteger(path, name string) (uint64, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, path, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return 0, fmt.Errorf("%w: %s", ErrKeyNotFound, path)
		}
		return 0, fmt.Errorf("open registry key %s: %w", path, err)
	}
	defer func() {
		if closeErr := key.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing registry key")
		}
	}()

	val, _, err := key.GetIntegerValue(name)
	switch {
	case err == nil:
		return val, nil
	case errors.Is(err, registry.ErrNotExist):
		return 0, fmt.Errorf("%w: %s\\%s", ErrValueNotFound, path, name)
	case errors.Is(err, registry.ErrUnexpectedType):
		return 0, fmt.Errorf("%w: %s\\%s", ErrValueType, path, name)
	default:
		return 0, fmt.Errorf("read registry value %s\\%s: %w", path, name, err)
	}
}
