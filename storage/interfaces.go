// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package storage

import (
	"context"

	"github.com/poiesic/auctionlens/core"
)

// MatchCache stores title matcher results keyed by listing title.
type MatchCache interface {
	// Get returns the cached match for title.
	// Returns ErrNotFound if the title has not been cached.
	Get(ctx context.Context, title string) (core.Match, error)

	// Put stores the match for title, replacing any previous entry.
	Put(ctx context.Context, title string, match core.Match) error

	// PutMany stores several entries in one transaction.
	PutMany(ctx context.Context, entries map[string]core.Match) error

	// Count returns the number of entries in the current namespace.
	Count(ctx context.Context) (int, error)

	// Clear removes every entry in the current namespace.
	Clear(ctx context.Context) error

	// Close releases resources held by the cache.
	Close() error
}
