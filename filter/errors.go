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

package filter

import "errors"

var (
	// ErrInvalidBucket indicates a malformed bucket table.
	ErrInvalidBucket = errors.New("invalid bucket")

	// ErrInvalidQuery indicates a query whose ranges are inverted.
	ErrInvalidQuery = errors.New("invalid query")
)
