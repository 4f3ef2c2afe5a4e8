package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var vnd = accounting.Accounting{
	Symbol:    "₫",
	Precision: 0,
	Thousand:  ".",
	Decimal:   ",",
	Format:    "%v %s",
}

func FormatVND(amount interface{}) string {
	var decAmount decimal.Decimal
	switch v := amount.(type) {
	case decimal.Decimal:
		decAmount = v
	case float64:
		decAmount = decimal.NewFromFloat(v)
	case int:
		decAmount = decimal.NewFromInt(int64(v))
	case int64:
		decAmount = decimal.NewFromInt(v)
	case string:
		parsed, err := decimal.NewFromString(v)
		if err != nil {
			return vnd.FormatMoneyDecimal(decimal.Zero)
		}
		decAmount = parsed
	default:
		return vnd.FormatMoneyDecimal(decimal.Zero)
	}

	return vnd.FormatMoneyDecimal(decAmount)
}
