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

package groups

import (
	"strings"

	"github.com/poiesic/auctionlens/core"
)

type keywordGroup struct {
	label    string
	keywords []string
}

// Checked in order; keywords are lower case.
var fuelKeywords = []keywordGroup{
	{"가솔린", []string{"가솔린", "휘발유", "gasoline", "petrol"}},
	{"디젤", []string{"디젤", "경유", "diesel"}},
	{"하이브리드", []string{"하이브리드", "hybrid", "hev"}},
	{"LPG", []string{"lpg", "엘피지"}},
	{"전기", []string{"전기", "ev", "electric", "전동"}},
}

var vehicleTypeKeywords = []keywordGroup{
	{"렌터카", []string{"렌터카", "렌트카", "rent", "대여", "렌탈"}},
	{"자가용", []string{"자가용", "개인", "일반", "private", "승용"}},
	{"업무용", []string{"업무용", "사업용", "business", "법인"}},
	{"영업용", []string{"영업용", "택시", "화물", "운송업"}},
}

// ExtractVehicleType returns the first non-blank of the row's VehicleType,
// Usage, Type and Purpose fields, else a usage category guessed from the title.
func ExtractVehicleType(row *core.Listing) string {
	if v := DeclaredVehicleType(row); v != "" {
		return v
	}
	return VehicleTypeFromTitle(row.Title)
}

// DeclaredVehicleType returns the first non-blank of the row's VehicleType,
// Usage, Type and Purpose fields without consulting the title.
func DeclaredVehicleType(row *core.Listing) string {
	for _, v := range []string{row.VehicleType, row.Usage, row.Type, row.Purpose} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// ExtractFuelType returns the row's Fuel field, else a fuel guessed from the title.
func ExtractFuelType(row *core.Listing) string {
	if fuel := DeclaredFuelType(row); fuel != "" {
		return fuel
	}
	return FuelFromTitle(row.Title)
}

// DeclaredFuelType returns the trimmed Fuel field.
func DeclaredFuelType(row *core.Listing) string {
	return strings.TrimSpace(row.Fuel)
}

// FuelFromTitle guesses a fuel group from keywords in a title.
func FuelFromTitle(title string) string {
	return matchKeywords(title, fuelKeywords)
}

// VehicleTypeFromTitle guesses a usage group from keywords in a title.
func VehicleTypeFromTitle(title string) string {
	return matchKeywords(title, vehicleTypeKeywords)
}

func matchKeywords(title string, table []keywordGroup) string {
	if title == "" {
		return ""
	}
	lower := strings.ToLower(title)
	for _, g := range table {
		for _, kw := range g.keywords {
			if strings.Contains(lower, kw) {
				return g.label
			}
		}
	}
	return ""
}
