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

package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidTaxonomy indicates a Taxonomy failed validation.
	ErrInvalidTaxonomy = errors.New("invalid taxonomy")

	// ErrDuplicateID indicates an identifier appears more than once in the taxonomy.
	ErrDuplicateID = errors.New("duplicate taxonomy id")

	// ErrDuplicateLabel indicates two siblings share a label.
	ErrDuplicateLabel = errors.New("duplicate sibling label")

	// ErrEmptyID indicates a taxonomy node has no identifier.
	ErrEmptyID = errors.New("taxonomy id cannot be empty")

	// ErrInvalidListing indicates a listing row could not be decoded.
	ErrInvalidListing = errors.New("invalid listing")

	// ErrInvalidRange indicates a range whose minimum exceeds its maximum.
	ErrInvalidRange = errors.New("invalid range")
)
