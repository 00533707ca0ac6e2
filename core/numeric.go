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

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Numeric holds the raw textual form of a numeric listing field.
// Upstream feeds deliver price, year and mileage as JSON numbers, numeric
// strings, free text or null; Numeric keeps whatever arrived and parses lazily.
type Numeric string

// NumericOf returns the Numeric for an integer value.
func NumericOf(v int64) Numeric {
	return Numeric(strconv.FormatInt(v, 10))
}

// Int parses the value with ParseInt semantics.
func (n Numeric) Int() (int64, bool) {
	return ParseInt(string(n))
}

// IntOrZero parses the value, treating failures as 0.
// Used for sort keys, where a bad value must sink rather than fail.
func (n Numeric) IntOrZero() int64 {
	v, ok := n.Int()
	if !ok {
		return 0
	}
	return v
}

// IsNull reports whether no value was supplied.
func (n Numeric) IsNull() bool {
	return n == ""
}

// UnmarshalJSON accepts numbers, strings and null.
func (n *Numeric) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Numeric(s)
		return nil
	}
	*n = Numeric(data)
	return nil
}

// MarshalJSON writes numbers as numbers, anything else as a string, and the
// empty value as null.
func (n Numeric) MarshalJSON() ([]byte, error) {
	if n == "" {
		return []byte("null"), nil
	}
	if json.Valid([]byte(n)) && isNumberLiteral(string(n)) {
		return []byte(n), nil
	}
	return json.Marshal(string(n))
}

func isNumberLiteral(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// ParseInt is a tolerant integer parse: leading whitespace and an optional sign
// are accepted, then the longest run of decimal digits is read and anything
// after it ignored. "2021년" yields 2021, "1500.7" yields 1500. Input without a
// leading digit run reports false instead of failing.
func ParseInt(s string) (int64, bool) {
	s = strings.TrimLeft(s, " \t\r\n ")
	if s == "" {
		return 0, false
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}

	v, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		v = -v
	}
	return v, true
}
