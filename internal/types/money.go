package types

import "github.com/shopspring/decimal"

// CurrencyPrecision is the number of minor-unit decimal places used for all
// monetary output. Intermediate arithmetic is never rounded; callers round
// exactly once at the output boundary.
const CurrencyPrecision int32 = 2

// RoundToCurrency rounds an amount to the currency's minor unit using
// round-half-to-even, which avoids systematic bias across many bills.
func RoundToCurrency(amount decimal.Decimal) decimal.Decimal {
	return amount.RoundBank(CurrencyPrecision)
}
