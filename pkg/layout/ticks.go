package layout

import (
	"math/big"
)

// SciThreshold is the plot limit above which tick labels use scientific notation.
const SciThreshold = 100000

// Ticks places n+1 evenly spaced ticks over [0, limit].
// Positions are floored to integers.
func Ticks(limit *big.Int, n int) []Tick {
	if n <= 0 || limit == nil || limit.Sign() <= 0 {
		return nil
	}

	sci := limit.Cmp(big.NewInt(SciThreshold)) > 0
	den := big.NewInt(int64(n))
	ticks := make([]Tick, 0, n+1)
	for k := 0; k <= n; k++ {
		pos := new(big.Int).Mul(limit, big.NewInt(int64(k)))
		pos.Quo(pos, den)
		ticks = append(ticks, Tick{Position: pos, Text: FormatTick(pos, sci)})
	}
	return ticks
}

// FormatTick renders an axis value, optionally as mantissa×10^exp.
func FormatTick(v *big.Int, sci bool) string {
	if !sci || v.Sign() == 0 {
		return v.String()
	}
	return new(big.Float).SetInt(v).Text('e', 2)
}
