package calc

import "github.com/shopspring/decimal"

// DiscountPercent is how much cheaper effective is than price, rounded to a
// whole percent. Zero when there is no discount.
func DiscountPercent(price, effective decimal.Decimal) decimal.Decimal {
	if !price.IsPositive() || !effective.LessThan(price) {
		return decimal.Zero
	}
	return price.Sub(effective).Mul(decimal.NewFromInt(100)).Div(price).Round(0)
}
