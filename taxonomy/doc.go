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

// Package taxonomy loads and caches the Manufacturer → Model → Trim reference
// tree used to resolve listing titles.
//
// A Store fetches the taxonomy from a Source exactly once for its lifetime.
// Concurrent first callers share a single in-flight fetch. When the fetch or
// decode fails, the Store caches an empty taxonomy and logs the error, so
// matching and filtering degrade instead of failing.
//
// Basic usage:
//
//	store, err := taxonomy.NewStore(taxonomy.NewHTTPSource(url))
//	if err != nil {
//		return err
//	}
//	tree := store.Load(ctx)
//	hyundai := store.FindManufacturerByLabel(ctx, "현대")
//
// Sources:
//   - FileSource reads a local JSON document
//   - HTTPSource issues a cache-bypassing GET with retry and backoff
//   - StaticSource serves an in-memory taxonomy
package taxonomy
