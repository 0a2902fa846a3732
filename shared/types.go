package shared

import (
	"math/big"
)

type Rounding uint8

const (
	RoundingUp   Rounding = 0
	RoundingDown Rounding = 1
)

type WidthGrowthMode uint8

const (
	WidthGrowthModeLinear      WidthGrowthMode = 0
	WidthGrowthModeExponential WidthGrowthMode = 1
)

func (m WidthGrowthMode) String() string {
	switch m {
	case WidthGrowthModeLinear:
		return "linear"
	case WidthGrowthModeExponential:
		return "exponential"
	default:
		return "unknown"
	}
}

type OracleState uint8

const (
	OracleStateEmpty   OracleState = 0
	OracleStateGrowing OracleState = 1
	OracleStateFull    OracleState = 2
)

func (s OracleState) String() string {
	switch s {
	case OracleStateEmpty:
		return "empty"
	case OracleStateGrowing:
		return "growing"
	case OracleStateFull:
		return "full"
	default:
		return "unknown"
	}
}

// Tick is the per-boundary liquidity and fee state.
// LiquidityNet is an i128, the other wide fields are u128.
type Tick struct {
	LiquidityNet      *big.Int
	LiquidityGross    *big.Int
	FeeGrowthOutside0 *big.Int
	FeeGrowthOutside1 *big.Int
	Initialized       bool
}

func NewTick() *Tick {
	return &Tick{
		LiquidityNet:      big.NewInt(0),
		LiquidityGross:    big.NewInt(0),
		FeeGrowthOutside0: big.NewInt(0),
		FeeGrowthOutside1: big.NewInt(0),
	}
}

type Position struct {
	TickLower            int32
	TickUpper            int32
	Liquidity            *big.Int
	FeeGrowthInsideLast0 *big.Int
	FeeGrowthInsideLast1 *big.Int
	TokensOwed0          uint64
	TokensOwed1          uint64
}

func NewPosition(tickLower, tickUpper int32) *Position {
	return &Position{
		TickLower:            tickLower,
		TickUpper:            tickUpper,
		Liquidity:            big.NewInt(0),
		FeeGrowthInsideLast0: big.NewInt(0),
		FeeGrowthInsideLast1: big.NewInt(0),
	}
}

type Observation struct {
	BlockTimestamp int64
	TickCumulative *big.Int
	Initialized    bool
}

type VolatilityObservation struct {
	LogReturnSquared uint64
	Timestamp        int64
}

// ConservationProof is built by the keeper for a single rebase call.
// WeightedLogSum is computed off-engine and scaled by ConservationScale.
type ConservationProof struct {
	GrowthFactors  []*big.Int
	Weights        []uint32
	WeightedLogSum int64
	ToleranceBps   uint32
}

type ConservationCheckResult struct {
	IsValid        bool   `json:"is_valid"`
	WeightedLogSum int64  `json:"weighted_log_sum"`
	Deviation      uint64 `json:"deviation"`
	MaxDeviation   int64  `json:"max_deviation"`
}

type Tranche struct {
	TickLower       int32
	TickUpper       int32
	LiquidityWeight uint16
	FeeTierBps      uint16
}

type TrancheAllocation struct {
	Amount0 uint64
	Amount1 uint64
}

type CalculateTranchesParams struct {
	BaseTick        int32
	NumTranches     uint8
	TickSpacing     int32
	WidthGrowthMode WidthGrowthMode
	RangeMultiplier uint32
	BaseFeeBps      uint16
}
