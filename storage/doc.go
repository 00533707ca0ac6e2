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

// Package storage defines the persistence abstractions used by auctionlens.
//
// The only persisted state is the match cache: title matcher results keyed by
// a content hash of the listing title. Titles repeat heavily across daily
// auction feeds, so batch enrichment consults the cache before running the
// matcher.
//
// # Constructor Return Type Pattern
//
// Public constructors in backend packages return the storage interfaces:
//
//	cache, err := badger.OpenMatchCache(dir)  // returns storage.MatchCache
//
// # Namespaces
//
// Cached matches are only valid for the taxonomy that produced them. Each
// cache is bound to a namespace, normally the taxonomy fingerprint, and
// entries written under a different namespace are never returned.
//
// # Thread Safety
//
// All implementations must be safe for concurrent use.
package storage
