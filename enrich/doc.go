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

// Package enrich fills taxonomy identifiers into listing rows in bulk.
//
// A Pipeline runs the title matcher across a worker pool, once per distinct
// title, optionally backed by a persistent match cache. Rows that already
// carry an upstream identifier are passed through untouched, and results are
// always returned in input order as copies.
//
// Basic usage:
//
//	p, err := enrich.NewPipeline(m, enrich.WithCache(cache))
//	if err != nil {
//	    return err
//	}
//	defer p.Release()
//
//	rows, err = p.Enrich(ctx, rows)
package enrich
