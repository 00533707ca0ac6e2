package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	m := newFixtureMatcher(t)

	tests := []struct {
		in   string
		want string
	}{
		{"더 뉴 그랜저 2.5 하이브리드 (21년~23년)", "그랜저 하이브리드"},
		{"디 올 뉴 싼타페 2.2 디젤", "싼타페 디젤"},
		{"THE NEW 5시리즈 (G30) 520d", "5시리즈 520d"},
		{"all new 투싼 (NX4) 1.6 T", "투싼"},
		{"NF 쏘나타 2000cc", "쏘나타"},
		{"쏘나타 (DN8) 2.0 터보", "쏘나타"},
		{"G80 (RG3)   3.5T  AWD", "G80 AWD"},
		{"신형 K5", "K5"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, m.normalize(tt.in))
		})
	}
}

func TestExtractManufacturer(t *testing.T) {
	m := newFixtureMatcher(t)

	tests := []struct {
		title         string
		wantLabel     string
		wantRemaining string
	}{
		{"[현대] 그랜저", "현대", "그랜저"},
		{"[메르세데스-벤츠] E-클래스", "벤츠", "E-클래스"},
		{"[알수없음] 차량", "알수없음", "차량"},
		{"쉐보레(한국GM) 스파크", "쉐보레", "스파크"},
		{"쉐보레(수입) 볼트", "쉐보레", "볼트"},
		{"KG모빌리티(쌍용) 토레스", "KG모빌리티", "토레스"},
		{"그랜저 2.5", "", "그랜저 2.5"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			label, remaining := m.extractManufacturer(tt.title)
			assert.Equal(t, tt.wantLabel, label)
			assert.Equal(t, tt.wantRemaining, remaining)
		})
	}
}

func TestContainsKeyword(t *testing.T) {
	assert.True(t, containsKeyword("아반떼 N 2.0", "N"))
	assert.True(t, containsKeyword("아반떼N", "N"))
	assert.False(t, containsKeyword("NEW 아반떼", "N"))
	assert.False(t, containsKeyword("아반떼 CN7", "N"))
	assert.True(t, containsKeyword("쏘나타 하이브리드", "하이브리드"))
	assert.True(t, containsKeyword("니로 PHEV", "PHEV"))
}
