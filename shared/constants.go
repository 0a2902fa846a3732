package shared

import (
	"math/big"
)

const (
	Resolution  = 64
	ScaleOffset = 64

	MinTick int32 = -443636
	MaxTick int32 = 443636

	TickRatioTableSize = 20

	BasisPointMax = 10_000

	MaxObservations      = 100
	MinTWAPWindowSeconds = 60

	MaxVolatilityObservations = 168
	VolatilityScale           = 1_000_000
	SecondsPerDay             = 86_400
	SecondsPerWeek            = 7 * SecondsPerDay

	ConservationScale = 1_000_000_000

	BaseTrancheSpacings     = 10
	DefaultTrancheFeeBps    = 30
	MaxTranches             = 64
	MinExponentialRangeMult = 100

	TrancheWeightBase = 100
	TrancheWeightStep = 50
)

var (
	OneQ64  = new(big.Int).Lsh(big.NewInt(1), Resolution)
	OneQ128 = new(big.Int).Lsh(big.NewInt(1), 2*Resolution)

	U64Max  = new(big.Int).SetUint64(^uint64(0))
	U128Max = bigIntFromString("340282366920938463463374607431768211455")
	I128Max = bigIntFromString("170141183460469231731687303715884105727")
	I128Min = bigIntFromString("-170141183460469231731687303715884105728")

	MinSqrtPriceX64 = bigIntFromString("4295048016")
	MaxSqrtPriceX64 = bigIntFromString("79226673515401279963822778343")
)

// TickRatioTable holds floor(sqrt(1.0001)^(2^i) * 2^64) for i in [0, 20).
// The entries are consensus data: never regenerate them.
var TickRatioTable = [TickRatioTableSize]string{
	"18447666387855959850",
	"18448588748116922571",
	"18450433606991734263",
	"18454123878217468680",
	"18461506635090006701",
	"18476281010653910144",
	"18505865242158250041",
	"18565175891880433522",
	"18684368066214940582",
	"18925053041275764671",
	"19415764168677886926",
	"20435687552633177494",
	"22639080592224303007",
	"27784196929998399742",
	"41848122137994986128",
	"94936283578220370716",
	"488590176327622479860",
	"12941056668319229769860",
	"9078618265828848800676189",
	"4468068147273140139091016147737",
}

func bigIntFromString(v string) *big.Int {
	out, ok := new(big.Int).SetString(v, 10)
	if !ok {
		panic("invalid big integer literal")
	}
	return out
}
