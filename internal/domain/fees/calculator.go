// Package fees implements the partner fee calculation.
package fees

import "github.com/shopspring/decimal"

// Calculate applies a fee schedule to a charge amount.
//
// The percentage component is rounded half-up to whole currency units before
// the fixed fee is added; the fixed fee is assumed minor-unit-exact and is
// never rounded. The returned pair always satisfies fee + net == amount.
func Calculate(amount, percentage, fixedFee decimal.Decimal) (fee, net decimal.Decimal) {
	fee = amount.Mul(percentage).Round(0).Add(fixedFee)
	net = amount.Sub(fee)
	return fee, net
}
