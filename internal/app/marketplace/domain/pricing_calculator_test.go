package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPricingCalculator_PercentageDiscount(t *testing.T) {
	pc := NewPricingCalculator()

	tests := []struct {
		name     string
		original string
		newPrice string
		want     int64
	}{
		{"plain discount", "100", "80", 20},
		{"rounds down", "3", "2", 33},
		{"half rounds up", "8", "7", 13},
		{"no discount", "50", "50", 0},
		{"free", "50", "0", 100},
		{"price increase is negative", "100", "120", -20},
		{"negative half rounds away from zero", "8", "9", -13},
		{"zero original yields zero", "0", "10", 0},
		{"cents", "19.99", "14.99", 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pc.PercentageDiscount(mustMoney(t, tt.original), mustMoney(t, tt.newPrice))
			assert.Equal(t, tt.want, got)
		})
	}
}
