package ammcore

import (
	"github.com/krazyTry/ammcore-go/helpers"
	"github.com/krazyTry/ammcore-go/liquidity"
	ammmath "github.com/krazyTry/ammcore-go/math"
	"github.com/krazyTry/ammcore-go/rebase"
	"github.com/krazyTry/ammcore-go/simulator"
)

// NewPool creates an in-memory pool.
//
// Example:
//
// pool, _ := NewPool(log, simulator.NewDefaultConfig(), address, sqrtPrice, now)
//
// pool.ModifyPosition(owner, -640, 640, big.NewInt(1_000_000))
//
// pool.AccrueFees(5000, 0)
var NewPool = simulator.NewPool

// LoadSnapshot rebuilds a pool from its JSON snapshot.
var LoadSnapshot = simulator.LoadSnapshot

var GetSqrtPriceAtTick = ammmath.GetSqrtPriceAtTick

var GetTickAtSqrtPrice = ammmath.GetTickAtSqrtPrice

var GetFeeGrowthInside = liquidity.GetFeeGrowthInside

// CalculateTranches lays out the bonding curve.
//
// Example:
//
// tranches, _ := CalculateTranches(shared.CalculateTranchesParams{BaseTick: -6400, NumTranches: 5, TickSpacing: 64})
//
// allocations, _ := DistributeLiquidityWithRemainder(total0, total1, tranches)
var CalculateTranches = helpers.CalculateTranches

var DistributeLiquidityWithRemainder = helpers.DistributeLiquidityWithRemainder

var VerifyConservation = rebase.VerifyConservation
