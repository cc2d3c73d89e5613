package trend

import (
	"math"
	"math/big"
	"strconv"
)

// OneDecimal formats v with one digit after the point. The exact binary
// value of v is rounded, and a tie goes away from zero, so 76.25 gives
// "76.3" and -0.25 gives "-0.3".
func OneDecimal(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}

	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	scaled := new(big.Rat).SetFloat64(v)
	scaled.Mul(scaled, big.NewRat(10, 1))

	tenths := new(big.Int).Quo(scaled.Num(), scaled.Denom())
	rest := new(big.Rat).Sub(scaled, new(big.Rat).SetInt(tenths))
	if rest.Cmp(big.NewRat(1, 2)) >= 0 {
		tenths.Add(tenths, big.NewInt(1))
	}

	whole, digit := new(big.Int).QuoRem(tenths, big.NewInt(10), new(big.Int))
	return sign + whole.String() + "." + digit.String()
}
