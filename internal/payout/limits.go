package payout

import (
	"math"

	"github.com/shopspring/decimal"
)

var maxInt64 = decimal.NewFromInt(math.MaxInt64)

// MulStake - stake * m с насыщением на границах int64
func MulStake(stake, m int64) int64 {
	if stake == 0 || m == 0 {
		return 0
	}
	p := stake * m
	if p/m == stake && !(m == -1 && stake == math.MinInt64) && !(stake == -1 && m == math.MinInt64) {
		return p
	}
	if (stake > 0) == (m > 0) {
		return math.MaxInt64
	}
	return math.MinInt64
}

// StakeLimit - наибольшая ставка, выигрыш по которой с множителем m помещается в int64
func StakeLimit(m int64) int64 {
	if m <= 1 {
		return math.MaxInt64
	}
	return math.MaxInt64 / m
}

// NaturalStakeLimit - то же для дробного множителя 21 на раздаче
func NaturalStakeLimit(m decimal.Decimal) int64 {
	if m.LessThanOrEqual(decimal.NewFromInt(1)) {
		return math.MaxInt64
	}
	return maxInt64.Div(m).Truncate(0).IntPart()
}
