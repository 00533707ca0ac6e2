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

package auction

import "errors"

var (
	// ErrNotReady is returned by queries that need at least one indexed auction.
	ErrNotReady = errors.New("auction aggregate not ready")

	// ErrInvalidMode indicates a filter mode other than vehicleType or fuel.
	ErrInvalidMode = errors.New("invalid filter mode")
)
