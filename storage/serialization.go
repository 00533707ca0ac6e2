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
	"fmt"

	"github.com/poiesic/auctionlens/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return id, nil
}

// MarshalMatch serializes a Match to bytes.
func MarshalMatch(match core.Match) []byte {
	buf := make([]byte, core.MatchMUS.Size(match))
	core.MatchMUS.Marshal(match, buf)
	return buf
}

// UnmarshalMatch deserializes a Match from bytes.
func UnmarshalMatch(data []byte) (core.Match, error) {
	match, _, err := core.MatchMUS.Unmarshal(data)
	if err != nil {
		return core.Match{}, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return match, nil
}
