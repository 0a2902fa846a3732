package oracle

import (
	"math/big"

	ammmath "github.com/krazyTry/ammcore-go/math"
	"github.com/krazyTry/ammcore-go/shared"
)

// Oracle is a ring buffer of cumulative tick observations. Cardinality grows
// from one up to MaxObservations and never shrinks. Index is the slot of
// the latest write.
type Oracle struct {
	Observations [shared.MaxObservations]shared.Observation
	Index        uint16
	Cardinality  uint16
}

func (o *Oracle) State() shared.OracleState {
	switch {
	case o.Cardinality == 0:
		return shared.OracleStateEmpty
	case o.Cardinality < shared.MaxObservations:
		return shared.OracleStateGrowing
	default:
		return shared.OracleStateFull
	}
}

func (o *Oracle) Initialize(timestamp int64) {
	o.Observations = [shared.MaxObservations]shared.Observation{}
	o.Observations[0] = shared.Observation{
		BlockTimestamp: timestamp,
		TickCumulative: big.NewInt(0),
		Initialized:    true,
	}
	o.Index = 0
	o.Cardinality = 1
}

// Observe records tick as the tick held since the latest observation.
// Timestamps at or before the latest observation are ignored.
func (o *Oracle) Observe(tick int32, timestamp int64) error {
	if o.State() == shared.OracleStateEmpty {
		o.Initialize(timestamp)
		return nil
	}

	last := o.Observations[o.Index]
	if timestamp <= last.BlockTimestamp {
		return nil
	}

	delta := new(big.Int).Mul(big.NewInt(int64(tick)), big.NewInt(timestamp-last.BlockTimestamp))
	cumulative, err := ammmath.CheckedAddI128(last.TickCumulative, delta)
	if err != nil {
		return err
	}

	cardinality := o.Cardinality
	next := (o.Index + 1) % cardinality
	if next == 0 && cardinality < shared.MaxObservations {
		cardinality++
		next = cardinality - 1
	}

	o.Observations[next] = shared.Observation{
		BlockTimestamp: timestamp,
		TickCumulative: cumulative,
		Initialized:    true,
	}
	o.Index = next
	o.Cardinality = cardinality
	return nil
}

// GetTwapTick returns the floor of the average tick between the newest
// observation at or before now-secondsAgo and the latest observation.
// Windows shorter than MinTWAPWindowSeconds are raised to it.
func (o *Oracle) GetTwapTick(now, secondsAgo int64) (int32, error) {
	if o.State() == shared.OracleStateEmpty {
		return 0, shared.ErrOracleInsufficientData
	}
	effective := max(secondsAgo, shared.MinTWAPWindowSeconds)
	target := now - effective

	var (
		older shared.Observation
		found bool
	)
	for i := uint16(0); i < o.Cardinality; i++ {
		obs := o.Observations[i]
		if !obs.Initialized || obs.BlockTimestamp > target {
			continue
		}
		if !found || obs.BlockTimestamp > older.BlockTimestamp {
			older = obs
			found = true
		}
	}
	if !found {
		return 0, shared.NewErrorInt(shared.ErrorCodeOracleInsufficientData, target)
	}

	newer := o.Observations[o.Index]
	window := newer.BlockTimestamp - older.BlockTimestamp
	if window < shared.MinTWAPWindowSeconds {
		return 0, shared.NewErrorInt(shared.ErrorCodeInsufficientTWAPDuration, window)
	}

	diff, err := ammmath.CheckedSubI128(newer.TickCumulative, older.TickCumulative)
	if err != nil {
		return 0, err
	}
	// Euclidean division with a positive divisor is floor division.
	avg := new(big.Int).Div(diff, big.NewInt(window))
	twap, err := ammmath.SafeCastI128ToI64(avg)
	if err != nil {
		return 0, err
	}
	return ammmath.SafeCastI64ToI32(twap)
}

func (o *Oracle) Latest() (shared.Observation, error) {
	if o.State() == shared.OracleStateEmpty {
		return shared.Observation{}, shared.ErrOracleInsufficientData
	}
	return o.Observations[o.Index], nil
}

func (o *Oracle) Oldest() (shared.Observation, error) {
	switch o.State() {
	case shared.OracleStateEmpty:
		return shared.Observation{}, shared.ErrOracleInsufficientData
	case shared.OracleStateFull:
		return o.Observations[(o.Index+1)%o.Cardinality], nil
	default:
		return o.Observations[0], nil
	}
}

func (o *Oracle) ObservationAt(i uint16) (shared.Observation, error) {
	if i >= o.Cardinality {
		return shared.Observation{}, shared.NewErrorInt(shared.ErrorCodeInvalidInput, int64(i))
	}
	return o.Observations[i], nil
}
