package response

import "github.com/shopspring/decimal"

// Money renders amounts with two decimal places, e.g. "400.00".
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
