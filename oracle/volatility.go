package oracle

import (
	stdmath "math"
	"math/big"

	"github.com/pkg/errors"

	ammmath "github.com/krazyTry/ammcore-go/math"
	"github.com/krazyTry/ammcore-go/shared"
)

// VolatilityTracker keeps squared relative price moves in a ring buffer
// and rolls them up into 24h and 7d figures in basis points. Index is the
// next slot to write.
type VolatilityTracker struct {
	Observations     [shared.MaxVolatilityObservations]shared.VolatilityObservation
	Index            uint16
	Cardinality      uint16
	LastUpdate       int64
	LastPrice        *big.Int
	Volatility24hBps uint64
	Volatility7dBps  uint64
}

var volatilityScale = ammmath.NewU256(shared.VolatilityScale)

// LogReturnSquared approximates ln(after/before)^2 * VolatilityScale with
// (after-before)^2 / before^2. Moves too large for a uint64 saturate.
func LogReturnSquared(before, after *big.Int) (uint64, error) {
	if before == nil || before.Sign() <= 0 || after == nil || after.Sign() <= 0 {
		return 0, shared.ErrInvalidPrice
	}
	b, err := ammmath.U256FromBig(before)
	if err != nil {
		return 0, err
	}
	d, err := ammmath.U256FromBig(new(big.Int).Abs(new(big.Int).Sub(after, before)))
	if err != nil {
		return 0, err
	}
	numerator, err := d.CheckedMul(volatilityScale)
	if err != nil {
		return 0, err
	}
	denominator, err := b.CheckedMul(b)
	if err != nil {
		return 0, err
	}
	r, err := ammmath.MulDivU256(numerator, d, denominator, shared.RoundingDown)
	if errors.Is(err, shared.ErrMathOverflow) {
		return stdmath.MaxUint64, nil
	}
	if err != nil {
		return 0, err
	}
	out, err := r.ToU64()
	if err != nil {
		return stdmath.MaxUint64, nil
	}
	return out, nil
}

// UpdateVolatility records the move from the last seen price. The first
// call only seeds the price.
func (v *VolatilityTracker) UpdateVolatility(price *big.Int, timestamp int64) error {
	if price == nil || price.Sign() <= 0 {
		return shared.ErrInvalidPrice
	}
	if v.LastPrice == nil || v.LastPrice.Sign() == 0 {
		v.LastPrice = new(big.Int).Set(price)
		v.LastUpdate = timestamp
		return nil
	}
	if timestamp <= v.LastUpdate {
		return shared.NewErrorInt(shared.ErrorCodeStaleData, timestamp)
	}

	r, err := LogReturnSquared(v.LastPrice, price)
	if err != nil {
		return err
	}

	v.Observations[v.Index] = shared.VolatilityObservation{
		LogReturnSquared: r,
		Timestamp:        timestamp,
	}
	v.Index = (v.Index + 1) % shared.MaxVolatilityObservations
	if v.Cardinality < shared.MaxVolatilityObservations {
		v.Cardinality++
	}

	v.Volatility24hBps = v.windowBps(timestamp, shared.SecondsPerDay)
	v.Volatility7dBps = v.windowBps(timestamp, shared.SecondsPerWeek)
	v.LastPrice = new(big.Int).Set(price)
	v.LastUpdate = timestamp
	return nil
}

// windowBps averages observations no older than window seconds and returns
// sqrt(avg * 100), which is the rms move in basis points. Sums saturate.
func (v *VolatilityTracker) windowBps(now, window int64) uint64 {
	var sum, count uint64
	for i := uint16(0); i < v.Cardinality; i++ {
		obs := v.Observations[i]
		if now-obs.Timestamp > window {
			continue
		}
		next, err := ammmath.CheckedAddU64(sum, obs.LogReturnSquared)
		if err != nil {
			next = stdmath.MaxUint64
		}
		sum = next
		count++
	}
	if count == 0 {
		return 0
	}
	scaled, err := ammmath.CheckedMulU64(sum/count, 100)
	if err != nil {
		scaled = stdmath.MaxUint64
	}
	return ammmath.SqrtU64(scaled)
}
