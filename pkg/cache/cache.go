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

// Package cache stores resolved GameInfo records in a bolt database keyed
// by the detected game's identity.
package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ZaparooProject/zaparoo-nowplaying/pkg/games"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	bolt "go.etcd.io/bbolt"
)

const BucketGameInfo = "game_info"

type entry struct {
	Info    games.GameInfo `json:"info"`
	Expires int64          `json:"expires"`
}

// Cache is a TTL cache of resolved metadata.
type Cache struct {
	bdb   *bolt.DB
	clock clockwork.Clock
	ttl   time.Duration
}

// Open opens or creates the cache database at path. A nil clock uses the
// real clock.
func Open(path string, ttl time.Duration, clock clockwork.Clock) (*Cache, error) {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	err = db.Update(func(txn *bolt.Tx) error {
		_, bErr := txn.CreateBucketIfNotExists([]byte(BucketGameInfo))
		return bErr
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create bucket %q: %w", BucketGameInfo, err)
	}

	return &Cache{bdb: db, clock: clock, ttl: ttl}, nil
}

func (c *Cache) Close() error {
	if err := c.bdb.Close(); err != nil {
		return fmt.Errorf("failed to close bolt database: %w", err)
	}
	return nil
}

// Get returns the cached info for g. Expired and unreadable entries are
// reported as misses.
func (c *Cache) Get(g games.DetectedGame) (games.GameInfo, bool) {
	var e entry
	found := false

	err := c.bdb.View(func(txn *bolt.Tx) error {
		v := txn.Bucket([]byte(BucketGameInfo)).Get([]byte(g.Identity()))
		if v == nil {
			return nil
		}
		if err := json.Unmarshal(v, &e); err != nil {
			return fmt.Errorf("failed to unmarshal cache entry: %w", err)
		}
		found = true
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Str("identity", g.Identity()).Msg("error reading cache")
		return games.GameInfo{}, false
	}

	if !found || c.clock.Now().Unix() >= e.Expires {
		return games.GameInfo{}, false
	}

	return e.Info, true
}

// Put stores info for g until the TTL passes.
func (c *Cache) Put(g games.DetectedGame, info games.GameInfo) error {
	data, err := json.Marshal(entry{
		Info:    info,
		Expires: c.clock.Now().Add(c.ttl).Unix(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	err = c.bdb.Update(func(txn *bolt.Tx) error {
		return txn.Bucket([]byte(BucketGameInfo)).Put([]byte(g.Identity()), data)
	})
	if err != nil {
		return fmt.Errorf("failed to update bolt database: %w", err)
	}
	return nil
}

// Prune deletes every expired entry and returns how many were removed.
func (c *Cache) Prune() (int, error) {
	now := c.clock.Now().Unix()
	removed := 0

	err := c.bdb.Update(func(txn *bolt.Tx) error {
		b := txn.Bucket([]byte(BucketGameInfo))
		var stale [][]byte
		err := b.ForEach(func(k, v []byte) error {
			var e entry
			if json.Unmarshal(v, &e) != nil || now >= e.Expires {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		removed = len(stale)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to prune cache: %w", err)
	}

	return removed, nil
}
