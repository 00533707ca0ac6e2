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

package taxonomy

import "errors"

var (
	// ErrSourceRequired is returned when a Store is created without a Source.
	ErrSourceRequired = errors.New("taxonomy source required")

	// ErrUnexpectedStatus indicates the taxonomy resource answered with a non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected taxonomy response status")

	// ErrDecodeFailed indicates the taxonomy document could not be parsed.
	ErrDecodeFailed = errors.New("failed to decode taxonomy")

	// ErrDocumentTooLarge indicates the taxonomy response exceeded the size limit.
	ErrDocumentTooLarge = errors.New("taxonomy document too large")

	// ErrNilTaxonomy is returned by a StaticSource that wraps no taxonomy.
	ErrNilTaxonomy = errors.New("static taxonomy is nil")

	// ErrInvalidMaxAttempts is returned when maxAttempts is less than 1.
	ErrInvalidMaxAttempts = errors.New("max attempts must be greater than 0")

	// ErrInvalidTimeout is returned when a non-positive fetch timeout is configured.
	ErrInvalidTimeout = errors.New("timeout must be greater than 0")
)
