package calc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEffectiveUnitPrice(t *testing.T) {
	price := decimal.NewFromInt(100)

	tests := []struct {
		name string
		sale decimal.NullDecimal
		want int64
	}{
		{"no sale price", decimal.NullDecimal{}, 100},
		{"lower sale price", decimal.NewNullDecimal(decimal.NewFromInt(80)), 80},
		{"sale price equal to price", decimal.NewNullDecimal(decimal.NewFromInt(100)), 100},
		{"sale price above price", decimal.NewNullDecimal(decimal.NewFromInt(120)), 100},
		{"zero sale price", decimal.NewNullDecimal(decimal.Zero), 100},
		{"negative sale price", decimal.NewNullDecimal(decimal.NewFromInt(-5)), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectiveUnitPrice(price, tt.sale)
			assert.True(t, got.Equal(decimal.NewFromInt(tt.want)), "got %s", got)
		})
	}
}

func TestLineTotal(t *testing.T) {
	got := LineTotal(decimal.RequireFromString("80.50"), 3)
	assert.True(t, got.Equal(decimal.RequireFromString("241.50")))
}

func TestDiscountPercent(t *testing.T) {
	assert.True(t, DiscountPercent(decimal.NewFromInt(100), decimal.NewFromInt(80)).Equal(decimal.NewFromInt(20)))
	assert.True(t, DiscountPercent(decimal.NewFromInt(100), decimal.NewFromInt(100)).IsZero())
	assert.True(t, DiscountPercent(decimal.Zero, decimal.Zero).IsZero())
}
