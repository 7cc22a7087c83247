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

// Package mocks provides testify mocks for the detection and resolution
// interfaces.
package mocks

import (
	"context"

	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/games"
	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/procsnapshot"
	"github.com/stretchr/testify/mock"
)

// MockProbe is a mock implementation of a platform probe.
type MockProbe struct {
	mock.Mock
	name string
}

// NewMockProbe creates a mock probe reporting the given name.
func NewMockProbe(name string) *MockProbe {
	return &MockProbe{name: name}
}

// Name returns the probe name given to NewMockProbe.
func (m *MockProbe) Name() string {
	return m.name
}

// Detect mocks a detection. Use On("Detect", ...) to set the result.
//
// Example:
//
//	probe := mocks.NewMockProbe("steam")
//	probe.On("Detect", mock.Anything, mock.Anything).Return(games.Steam{ID: 10}, nil)
func (m *MockProbe) Detect(ctx context.Context, snap procsnapshot.Snapshot) (games.DetectedGame, error) {
	args := m.Called(ctx, snap)
	g, _ := args.Get(0).(games.DetectedGame)
	//nolint:wrapcheck // mock returns are wrapped by the caller
	return g, args.Error(1)
}

// MockCollector is a mock process snapshot collector.
type MockCollector struct {
	mock.Mock
}

// Collect mocks a process snapshot.
func (m *MockCollector) Collect(ctx context.Context) (procsnapshot.Snapshot, error) {
	args := m.Called(ctx)
	snap, _ := args.Get(0).(procsnapshot.Snapshot)
	//nolint:wrapcheck // mock returns are wrapped by the caller
	return snap, args.Error(1)
}

// MockPlatformResolver is a mock per-platform resolver.
type MockPlatformResolver struct {
	mock.Mock
}

// ResolveDetected mocks resolving a detected game.
func (m *MockPlatformResolver) ResolveDetected(ctx context.Context, g games.DetectedGame) (games.GameInfo, error) {
	args := m.Called(ctx, g)
	info, _ := args.Get(0).(games.GameInfo)
	//nolint:wrapcheck // mock returns are wrapped by the caller
	return info, args.Error(1)
}
