package groups

import (
	"testing"

	"github.com/poiesic/auctionlens/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	rows := []core.Listing{
		{Fuel: "디젤"},
		{Fuel: "디젤"},
		{Fuel: "경유"},
		{Fuel: "가솔린"},
		{Fuel: "수소"},
		{Title: "[기아] 모닝"},
	}

	def, extract := ForMode(core.FilterModeFuel)
	stats := Analyze(rows, def, extract)

	assert.Equal(t, 6, stats.TotalItems)
	assert.Equal(t, 3, stats.Counts.Groups["디젤"])
	assert.Equal(t, 1, stats.Counts.Other)
	require.NotNil(t, stats.MostCommon)
	assert.Equal(t, LabelCount{Label: "디젤", Count: 3}, *stats.MostCommon)
	assert.Equal(t, []string{"디젤", "경유", "가솔린", "수소"}, stats.UniqueValues)
	// 4 of 6 rows classified.
	assert.Equal(t, 66.67, stats.Coverage)
}

func TestAnalyze_Empty(t *testing.T) {
	def, extract := ForMode(core.FilterModeVehicleType)
	stats := Analyze(nil, def, extract)
	assert.Zero(t, stats.TotalItems)
	assert.Nil(t, stats.MostCommon)
	assert.Empty(t, stats.UniqueValues)
	assert.Zero(t, stats.Coverage)
}

func TestAnalyze_CustomDefinition(t *testing.T) {
	rows := []core.Listing{
		{Fuel: "디젤"},
		{Fuel: "경유"},
		{Fuel: "수소"},
		{Fuel: "가솔린"},
	}
	def := Definition{
		{Label: "친환경", Variants: []string{"수소"}},
		{Label: "디젤", Variants: []string{"디젤"}},
	}

	stats := Analyze(rows, def, ExtractFuelType)

	assert.Equal(t, map[string]int{"친환경": 1, "디젤": 1}, stats.Counts.Groups)
	assert.Equal(t, 2, stats.Counts.Other)
	// 경유 and 가솔린 fall outside the configured groups.
	assert.Equal(t, 50.0, stats.Coverage)

	shipped, extract := ForMode(core.FilterModeFuel)
	assert.Equal(t, 75.0, Analyze(rows, shipped, extract).Coverage)
}

func TestValidate(t *testing.T) {
	t.Run("shipped definitions are valid", func(t *testing.T) {
		assert.True(t, Validate(FuelGroups).Valid)
		assert.True(t, Validate(VehicleTypeGroups).Valid)
		assert.Equal(t, 23, Validate(VehicleTypeGroups).TotalVariants)
	})

	t.Run("problems are reported", func(t *testing.T) {
		def := Definition{
			{Label: "A", Variants: []string{"x", "y"}},
			{Label: "B", Variants: []string{"y"}},
			{Label: "C"},
			{Label: OtherLabel, Variants: []string{"z"}},
			{Label: "A", Variants: []string{"w"}},
		}
		result := Validate(def)
		assert.False(t, result.Valid)
		assert.Equal(t, []string{"y"}, result.Duplicates)
		assert.Len(t, result.Issues, 3)
		assert.Equal(t, 5, result.TotalGroups)
		assert.Equal(t, 4, result.TotalVariants)
	})
}
