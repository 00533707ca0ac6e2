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

import "github.com/poiesic/auctionlens/core"

// NewFixtureStore creates a Store serving FixtureTaxonomy, for testing.
func NewFixtureStore() *Store {
	s, _ := NewStore(StaticSource{Taxonomy: FixtureTaxonomy()})
	return s
}

// FixtureTaxonomy returns a small, valid taxonomy for tests.
// Each call returns a fresh copy.
func FixtureTaxonomy() *core.Taxonomy {
	return &core.Taxonomy{
		Domestic: []core.Manufacturer{
			{ID: "hyundai", Label: "현대", Models: []core.Model{
				{ID: "grandeur", Label: "그랜저", Trims: []core.Trim{
					{ID: "grandeur-ig", Label: "그랜저 IG (16년~19년)"},
					{ID: "grandeur-ig-fl", Label: "더 뉴 그랜저 IG (19년~22년)"},
					{ID: "grandeur-ig-fl-hev", Label: "더 뉴 그랜저 IG 하이브리드 (19년~22년)"},
					{ID: "grandeur-gn7", Label: "디 올 뉴 그랜저 (22년~현재)"},
				}},
				{ID: "avante", Label: "아반떼", Trims: []core.Trim{
					{ID: "avante-ad", Label: "아반떼 AD (15년~18년)"},
					{ID: "avante-cn7", Label: "아반떼 CN7 (20년~현재)"},
					{ID: "avante-n", Label: "아반떼 N (21년~현재)"},
				}},
				{ID: "santafe", Label: "싼타페", Trims: []core.Trim{
					{ID: "santafe-tm", Label: "싼타페 TM (18년~20년)"},
					{ID: "santafe-tm-fl", Label: "더 뉴 싼타페 (20년~23년)"},
				}},
				{ID: "porter", Label: "포터", Trims: []core.Trim{
					{ID: "porter-2", Label: "포터2 (04년~현재)"},
				}},
				{ID: "starex", Label: "스타렉스", Trims: []core.Trim{}},
			}},
			{ID: "kia", Label: "기아", Models: []core.Model{
				{ID: "kia-k5", Label: "K5", Trims: []core.Trim{
					{ID: "kia-k5-2", Label: "K5 2세대 (15년~19년)"},
					{ID: "kia-k5-3", Label: "K5 3세대 (19년~23년)"},
					{ID: "kia-k5-3-hev", Label: "K5 3세대 하이브리드 (20년~23년)"},
				}},
				{ID: "sorento", Label: "쏘렌토", Trims: []core.Trim{
					{ID: "sorento-mq4", Label: "쏘렌토 4세대 (20년~현재)"},
				}},
				{ID: "bongo", Label: "봉고", Trims: []core.Trim{
					{ID: "bongo-3", Label: "봉고3 (04년~현재)"},
				}},
			}},
			{ID: "genesis", Label: "제네시스", Models: []core.Model{
				{ID: "genesis-g80", Label: "G80", Trims: []core.Trim{
					{ID: "genesis-g80-rg3", Label: "G80 (RG3) (20년~현재)"},
				}},
			}},
			{ID: "chevrolet", Label: "쉐보레", Models: []core.Model{
				{ID: "spark", Label: "스파크", Trims: []core.Trim{
					{ID: "spark-next", Label: "더 넥스트 스파크 (15년~22년)"},
				}},
			}},
		},
		Import: []core.Manufacturer{
			{ID: "bmw", Label: "BMW", Models: []core.Model{
				{ID: "bmw-5", Label: "5시리즈", Trims: []core.Trim{
					{ID: "bmw-5-g30", Label: "5시리즈 G30 (17년~20년)"},
					{ID: "bmw-5-g30-fl", Label: "뉴 5시리즈 G30 (20년~23년)"},
				}},
			}},
			{ID: "benz", Label: "벤츠", Models: []core.Model{
				{ID: "benz-e", Label: "E클래스", Trims: []core.Trim{
					{ID: "benz-e-w213", Label: "E클래스 W213 (16년~20년)"},
					{ID: "benz-e-w213-fl", Label: "더 뉴 E클래스 W213 (20년~23년)"},
				}},
			}},
			{ID: "tesla", Label: "테슬라", Models: []core.Model{
				{ID: "tesla-model3", Label: "모델3", Trims: []core.Trim{
					{ID: "tesla-model3-lr", Label: "모델3 롱레인지 (19년~현재)"},
				}},
				{ID: "tesla-modely", Label: "모델Y", Trims: []core.Trim{}},
			}},
		},
	}
}
