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

package games

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedLocalState means a platform's local state exists but
	// could not be parsed. It aborts the whole detection pass, as it
	// usually means an incompatible client version.
	ErrMalformedLocalState = errors.New("malformed local state")

	// ErrFetch is the root of every resolution failure: transport errors,
	// unsuccessful statuses and unexpected response shapes.
	ErrFetch = errors.New("failed to fetch game info")

	// ErrSchemaMismatch means a remote response did not have the expected shape.
	ErrSchemaMismatch = fmt.Errorf("%w: unexpected response schema", ErrFetch)

	// ErrNotFound means the remote catalog has no entry for the game.
	ErrNotFound = fmt.Errorf("%w: game not found", ErrFetch)

	// ErrUnsupportedVariant is returned when a resolver is given a
	// DetectedGame variant it has no resolution for.
	ErrUnsupportedVariant = errors.New("unsupported detected game variant")
)

// Malformed wraps err as ErrMalformedLocalState with a description of the
// state that failed to parse.
func Malformed(what string, err error) error {
	if err == nil {
		return fmt.Errorf("%w: %s", ErrMalformedLocalState, what)
	}
	return fmt.Errorf("%w: %s: %w", ErrMalformedLocalState, what, err)
}

// SchemaMismatch wraps err as ErrSchemaMismatch.
func SchemaMismatch(what string, err error) error {
	if err == nil {
		return fmt.Errorf("%w: %s", ErrSchemaMismatch, what)
	}
	return fmt.Errorf("%w: %s: %w", ErrSchemaMismatch, what, err)
}

// Unsupported returns an ErrUnsupportedVariant error naming the variant.
func Unsupported(resolver string, g DetectedGame) error {
	return fmt.Errorf("%w: %s resolver cannot resolve %T", ErrUnsupportedVariant, resolver, g)
}
