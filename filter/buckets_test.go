package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBucket_Contains(t *testing.T) {
	low, _ := MileageBuckets.Lookup("3만km 이하")
	next, _ := MileageBuckets.Lookup("3만km ~ 5만km")
	mid, _ := MileageBuckets.Lookup("5만km ~ 10만km")
	top, _ := MileageBuckets.Lookup("20만km 이상")

	assert.True(t, low.Contains(0))
	assert.True(t, low.Contains(30000))
	assert.False(t, low.Contains(30001))

	assert.False(t, next.Contains(30000))
	assert.True(t, next.Contains(30001))
	assert.True(t, next.Contains(49999))
	assert.False(t, next.Contains(50000))

	assert.True(t, mid.Contains(50000))
	assert.False(t, mid.Contains(100000))

	assert.True(t, top.Contains(200000))
	assert.True(t, top.Contains(1_000_000))
	assert.False(t, top.Contains(199999))
}

func TestDefaultTablesPartition(t *testing.T) {
	for name, table := range map[string]Buckets{"mileage": MileageBuckets, "price": PriceBuckets} {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, table.Validate())
			for _, v := range []int64{0, 1, 499, 500, 501, 999, 1000, 29999, 30000, 30001, 50000, 199999, 200000, 5_000_000} {
				hits := 0
				for _, b := range table {
					if b.Contains(v) {
						hits++
					}
				}
				assert.Equal(t, 1, hits, "value %d", v)
			}
		})
	}
}

func TestBuckets_Validate(t *testing.T) {
	tests := []struct {
		name  string
		table Buckets
	}{
		{name: "empty label", table: Buckets{{Label: "", Max: 1}}},
		{name: "duplicate label", table: Buckets{{Label: "a", Max: 1}, {Label: "a", Min: 1, Max: 2}}},
		{name: "inverted", table: Buckets{{Label: "a", Min: 5, Max: 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.table.Validate(), ErrInvalidBucket)
		})
	}
	assert.NoError(t, Buckets{{Label: "open", Min: 5, Unbounded: true}}.Validate())
}

func TestBuckets_LookupMissing(t *testing.T) {
	_, ok := PriceBuckets.Lookup("1억 이상")
	assert.False(t, ok)
}
