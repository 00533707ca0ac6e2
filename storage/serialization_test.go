package storage

import (
	"testing"

	"github.com/poiesic/auctionlens/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("[현대] 아반떼")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestMarshalUnmarshalMatch(t *testing.T) {
	tests := []struct {
		name  string
		match core.Match
	}{
		{"empty match", core.Match{}},
		{"manufacturer only", core.Match{ManufacturerID: "bmw", ManufacturerName: "BMW"}},
		{"full match", core.Match{
			ManufacturerID:   "hyundai",
			ManufacturerName: "현대",
			ModelID:          "grandeur",
			ModelName:        "그랜저",
			TrimID:           "grandeur-ig-fl-hev",
			TrimName:         "더 뉴 그랜저 IG 하이브리드 (19년~22년)",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := UnmarshalMatch(MarshalMatch(tt.match))
			require.NoError(t, err)
			assert.Equal(t, tt.match, decoded)
		})
	}
}

func TestUnmarshalMatch_Truncated(t *testing.T) {
	data := MarshalMatch(core.Match{ManufacturerID: "kia", ModelID: "kia-k5"})
	_, err := UnmarshalMatch(data[:len(data)-2])
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
