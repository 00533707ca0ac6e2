package groups

import (
	"testing"

	"github.com/poiesic/auctionlens/core"
	"github.com/stretchr/testify/assert"
)

func TestExtractVehicleType(t *testing.T) {
	tests := []struct {
		name string
		row  core.Listing
		want string
	}{
		{name: "vehicleType field first", row: core.Listing{VehicleType: "렌터카", Usage: "자가용"}, want: "렌터카"},
		{name: "blank fields are skipped", row: core.Listing{VehicleType: "  ", Usage: "", Type: "법인"}, want: "법인"},
		{name: "purpose last", row: core.Listing{Purpose: " 택시 "}, want: "택시"},
		{name: "title keyword", row: core.Listing{Title: "[기아] K5 렌트카 출고"}, want: "렌터카"},
		{name: "latin title keyword is case-insensitive", row: core.Listing{Title: "K5 RENT"}, want: "렌터카"},
		{name: "first keyword group wins", row: core.Listing{Title: "개인 택시"}, want: "자가용"},
		{name: "nothing found", row: core.Listing{Title: "[현대] 아반떼"}, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractVehicleType(&tt.row))
		})
	}
}

func TestDeclaredTypes(t *testing.T) {
	row := core.Listing{Title: "[현대] 포터2 화물 하이브리드"}
	assert.Empty(t, DeclaredVehicleType(&row))
	assert.Empty(t, DeclaredFuelType(&row))
	assert.Equal(t, "영업용", ExtractVehicleType(&row))
	assert.Equal(t, "하이브리드", ExtractFuelType(&row))

	row.Usage = " 자가용 "
	row.Purpose = "택시"
	row.Fuel = "경유"
	assert.Equal(t, "자가용", DeclaredVehicleType(&row))
	assert.Equal(t, "경유", DeclaredFuelType(&row))
}

func TestExtractFuelType(t *testing.T) {
	tests := []struct {
		name string
		row  core.Listing
		want string
	}{
		{name: "fuel field", row: core.Listing{Fuel: " 경유 ", Title: "가솔린"}, want: "경유"},
		{name: "title keyword", row: core.Listing{Title: "[현대] 쏘나타 Hybrid"}, want: "하이브리드"},
		{name: "diesel latin", row: core.Listing{Title: "BMW 520d DIESEL"}, want: "디젤"},
		{name: "lpg", row: core.Listing{Title: "[기아] K5 LPi 엘피지"}, want: "LPG"},
		{name: "electric", row: core.Listing{Title: "[테슬라] 모델3 전기"}, want: "전기"},
		{name: "nothing found", row: core.Listing{Title: "[기아] 모닝"}, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractFuelType(&tt.row))
		})
	}
}
