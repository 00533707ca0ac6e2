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
	"maps"
	"regexp"
	"slices"
	"sync"
)

// Variant maps an alternative model spelling to its canonical taxonomy label.
type Variant struct {
	Alias     string `yaml:"alias" json:"alias"`
	Canonical string `yaml:"canonical" json:"canonical"`
}

// Tables holds the static lookup data used while parsing.
// Tables are immutable once built and safe to share between matchers.
type Tables struct {
	aliases      map[string]string
	variants     []Variant
	variantIndex map[string]string
	prefixes     []*regexp.Regexp
	keywords     []string
}

var defaultManufacturerAliases = map[string]string{
	// domestic
	"현대":         "현대",
	"기아":         "기아",
	"제네시스":       "제네시스",
	"쉐보레":        "쉐보레",
	"쉐보레(한국GM)":  "쉐보레",
	"쉐보레(대우)":    "쉐보레",
	"한국GM":       "쉐보레",
	"르노삼성":       "르노삼성",
	"르노(삼성)":     "르노삼성",
	"르노코리아":      "르노삼성",
	"KG모빌리티":     "KG모빌리티",
	"KG모빌리티(쌍용)": "KG모빌리티",
	"쌍용":         "KG모빌리티",

	// import, Germany
	"벤츠":       "벤츠",
	"메르세데스-벤츠": "벤츠",
	"메르세데스벤츠":  "벤츠",
	"BMW":      "BMW",
	"아우디":      "아우디",
	"폭스바겐":     "폭스바겐",
	"포르쉐":      "포르쉐",
	"미니":       "미니",

	// import, Japan
	"토요타": "토요타",
	"도요타": "토요타",
	"렉서스": "렉서스",
	"혼다":  "혼다",
	"닛산":  "닛산",
	"스바루": "스바루",

	// import, USA
	"포드":    "포드",
	"링컨":    "링컨",
	"지프":    "지프",
	"캐딜락":   "캐딜락",
	"테슬라":   "테슬라",
	"크라이슬러": "크라이슬러",

	// import, other
	"볼보":   "볼보",
	"랜드로버": "랜드로버",
	"재규어":  "재규어",
	"마세라티": "마세라티",
	"푸조":   "푸조",
}

// Checked in order; the first alias contained in the text wins.
var defaultModelVariants = []Variant{
	{"그랜져", "그랜저"},
	{"싼타페", "싼타페"},
	{"산타페", "싼타페"},
	{"투싼", "투싼"},
	{"투쌍", "투싼"},
	{"그랜드스타렉스", "스타렉스"},
	{"스타렉스", "스타렉스"},
	{"포터2", "포터"},
	{"포터II", "포터"},

	{"쏘렌토", "쏘렌토"},
	{"소렌토", "쏘렌토"},
	{"봉고3", "봉고"},
	{"봉고Ⅲ", "봉고"},
	{"봉고III", "봉고"},

	{"E-클래스", "E클래스"},
	{"C-클래스", "C클래스"},
	{"S-클래스", "S클래스"},
	{"A-클래스", "A클래스"},
	{"GLE-클래스", "GLE클래스"},
	{"GLC-클래스", "GLC클래스"},
	{"GLB-클래스", "GLB클래스"},
	{"GLA-클래스", "GLA클래스"},
	{"G-클래스", "G클래스"},

	{"모델 3", "모델3"},
	{"Model 3", "모델3"},
	{"Model3", "모델3"},
	{"모델 Y", "모델Y"},
	{"Model Y", "모델Y"},
	{"ModelY", "모델Y"},
	{"모델 S", "모델S"},
	{"Model S", "모델S"},
	{"모델 X", "모델X"},
	{"Model X", "모델X"},
}

// Applied once each, in order.
var defaultPrefixPatterns = []string{
	`^더\s*뉴\s*`,
	`^더뉴\s*`,
	`^올\s*뉴\s*`,
	`^디\s*올\s*뉴\s*`,
	`^신형\s*`,
	`(?i)^NEW\s+`,
	`^뉴\s*`,
	`(?i)^NF\s+`,
	`(?i)^LF\s+`,
	`(?i)^YF\s+`,
	`(?i)^THE\s+ALL\s+NEW\s+`,
	`(?i)^THE\s+NEW\s+`,
	`(?i)^ALL\s+NEW\s+`,
}

var defaultTrimKeywords = []string{"하이브리드", "N", "일렉트릭", "플러그인", "PHEV"}

var defaultTables = sync.OnceValue(func() *Tables {
	return NewTables(defaultManufacturerAliases, defaultModelVariants, defaultTrimKeywords)
})

// DefaultTables returns the built-in tables. The result is shared.
func DefaultTables() *Tables {
	return defaultTables()
}

// NewTables builds tables from the given manufacturer aliases, model variants
// and trim keywords. The built-in marketing prefix patterns are always used.
// A variant alias listed twice keeps its first position and its last canonical
// label.
func NewTables(aliases map[string]string, variants []Variant, keywords []string) *Tables {
	t := &Tables{
		aliases:      maps.Clone(aliases),
		variantIndex: make(map[string]string, len(variants)),
		keywords:     slices.Clone(keywords),
	}
	if t.aliases == nil {
		t.aliases = make(map[string]string)
	}
	for _, v := range variants {
		t.addVariant(v)
	}
	t.prefixes = make([]*regexp.Regexp, len(defaultPrefixPatterns))
	for i, p := range defaultPrefixPatterns {
		t.prefixes[i] = regexp.MustCompile(p)
	}
	return t
}

func (t *Tables) addVariant(v Variant) {
	if v.Alias == "" {
		return
	}
	if _, ok := t.variantIndex[v.Alias]; ok {
		for i := range t.variants {
			if t.variants[i].Alias == v.Alias {
				t.variants[i].Canonical = v.Canonical
			}
		}
	} else {
		t.variants = append(t.variants, v)
	}
	t.variantIndex[v.Alias] = v.Canonical
}

// Extend returns new tables with extra aliases and variants layered on top.
func (t *Tables) Extend(aliases map[string]string, variants []Variant) *Tables {
	out := &Tables{
		aliases:      maps.Clone(t.aliases),
		variants:     slices.Clone(t.variants),
		variantIndex: maps.Clone(t.variantIndex),
		prefixes:     t.prefixes,
		keywords:     t.keywords,
	}
	maps.Copy(out.aliases, aliases)
	for _, v := range variants {
		out.addVariant(v)
	}
	return out
}

// ManufacturerLabel maps a raw manufacturer token to its canonical label.
func (t *Tables) ManufacturerLabel(raw string) (string, bool) {
	label, ok := t.aliases[raw]
	return label, ok
}

// Variants returns the model variants in match order.
func (t *Tables) Variants() []Variant {
	return slices.Clone(t.variants)
}

// Keywords returns the trim keywords.
func (t *Tables) Keywords() []string {
	return slices.Clone(t.keywords)
}

func (t *Tables) canonicalModel(word string) string {
	if canonical, ok := t.variantIndex[word]; ok {
		return canonical
	}
	return word
}
