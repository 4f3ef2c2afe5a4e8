package calc

import "github.com/shopspring/decimal"

// EffectiveUnitPrice returns the sale price when it is set, positive and
// lower than the list price. Otherwise the list price.
func EffectiveUnitPrice(price decimal.Decimal, salePrice decimal.NullDecimal) decimal.Decimal {
	if salePrice.Valid && salePrice.Decimal.IsPositive() && salePrice.Decimal.LessThan(price) {
		return salePrice.Decimal
	}
	return price
}

func LineTotal(unitPrice decimal.Decimal, qty int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(qty)))
}
