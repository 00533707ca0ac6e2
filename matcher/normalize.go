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

package matcher

import (
	"regexp"
	"strings"
)

var (
	bracketPattern     = regexp.MustCompile(`^\[([^\]]+)\]\s*`)
	qualifiedToken     = regexp.MustCompile(`^([^(]+)(\([^)]+\))?`)
	yearRangePattern   = regexp.MustCompile(`\((\d{2})년~[^)]+\)`)
	generationPattern  = regexp.MustCompile(`\([A-Z]{1,3}\d{1,3}\)`)
	knownGenerations   = regexp.MustCompile(`\((?:DM|DN8|CN7|NX4|MQ4|RG3|G)\)`)
	displacementCC     = regexp.MustCompile(`(?i)\d{3,4}\s*cc`)
	displacementLiters = regexp.MustCompile(`\d\.\d\s*(?:터보|T)?`)
)

// extractManufacturer splits a title into a canonical manufacturer label and
// the remaining text. The label is empty when no manufacturer was recognized,
// in which case remaining is the whole title.
func (m *Matcher) extractManufacturer(title string) (label, remaining string) {
	if title == "" {
		return "", ""
	}

	if sub := bracketPattern.FindStringSubmatch(title); sub != nil {
		raw := sub[1]
		remaining = title[len(sub[0]):]
		if canonical, ok := m.tables.ManufacturerLabel(raw); ok {
			return canonical, remaining
		}
		return raw, remaining
	}

	parts := strings.Fields(title)
	if len(parts) == 0 {
		return "", title
	}
	if sub := qualifiedToken.FindStringSubmatch(parts[0]); sub != nil {
		rest := strings.Join(parts[1:], " ")
		if canonical, ok := m.tables.ManufacturerLabel(sub[0]); ok {
			return canonical, rest
		}
		if canonical, ok := m.tables.ManufacturerLabel(sub[1]); ok {
			return canonical, rest
		}
	}
	return "", title
}

// normalize strips noise that never appears in taxonomy model labels.
func (m *Matcher) normalize(text string) string {
	if text == "" {
		return ""
	}
	for _, p := range m.tables.prefixes {
		text = p.ReplaceAllString(text, "")
	}
	text = yearRangePattern.ReplaceAllString(text, "")
	text = generationPattern.ReplaceAllString(text, "")
	text = knownGenerations.ReplaceAllString(text, "")
	text = displacementCC.ReplaceAllString(text, "")
	text = displacementLiters.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}

// yearToken returns the two-digit start year of the first "(NN년~...)" range.
func yearToken(s string) (string, bool) {
	sub := yearRangePattern.FindStringSubmatch(s)
	if sub == nil {
		return "", false
	}
	return sub[1], true
}

// containsKeyword reports whether kw occurs in s. Latin keywords must stand
// alone, so "N" does not match inside "NEW" or "CN7".
func containsKeyword(s, kw string) bool {
	if !isLatin(kw) {
		return strings.Contains(s, kw)
	}
	for offset := 0; ; {
		i := strings.Index(s[offset:], kw)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(kw)
		if (start == 0 || !isLatinOrDigit(s[start-1])) && (end == len(s) || !isLatinOrDigit(s[end])) {
			return true
		}
		offset = start + 1
	}
}

func isLatin(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'A' && c <= 'Z') && !(c >= 'a' && c <= 'z') {
			return false
		}
	}
	return s != ""
}

func isLatinOrDigit(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}
