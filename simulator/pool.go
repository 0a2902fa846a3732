package simulator

import (
	stdmath "math"
	"math/big"
	"sort"
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/krazyTry/ammcore-go/liquidity"
	"github.com/krazyTry/ammcore-go/logging"
	ammmath "github.com/krazyTry/ammcore-go/math"
	"github.com/krazyTry/ammcore-go/oracle"
	"github.com/krazyTry/ammcore-go/shared"
)

const namedLogger = "simulator"

// Pool is an in-memory concentrated liquidity pool driven by the engine.
// It is safe for concurrent use.
type Pool struct {
	log *logging.Logger
	cfg Config

	mu                  sync.RWMutex
	address             solana.PublicKey
	tickCurrent         int32
	sqrtPrice           *big.Int
	liquidity           *big.Int
	feeGrowthGlobal0    *big.Int
	feeGrowthGlobal1    *big.Int
	maxLiquidityPerTick *big.Int
	lastTimestamp       int64
	ticks               map[int32]*shared.Tick
	positions           map[solana.PublicKey]*shared.Position
	oracle              oracle.Oracle
	volatility          oracle.VolatilityTracker
}

type Summary struct {
	Address          string          `json:"address"`
	Tick             int32           `json:"tick"`
	SqrtPrice        string          `json:"sqrt_price"`
	Price            decimal.Decimal `json:"price"`
	Liquidity        string          `json:"liquidity"`
	FeeGrowthGlobal0 string          `json:"fee_growth_global_0"`
	FeeGrowthGlobal1 string          `json:"fee_growth_global_1"`
	Positions        int             `json:"positions"`
	InitializedTicks int             `json:"initialized_ticks"`
	OracleState      string          `json:"oracle_state"`
	Volatility24hBps uint64          `json:"volatility_24h_bps"`
	Volatility7dBps  uint64          `json:"volatility_7d_bps"`
}

func NewPool(log *logging.Logger, cfg Config, address solana.PublicKey, sqrtPrice *big.Int, timestamp int64) (*Pool, error) {
	if cfg.TickSpacing <= 0 {
		return nil, errors.Wrapf(shared.ErrInvalidParameter, "tick spacing %d", cfg.TickSpacing)
	}
	tick, err := ammmath.GetTickAtSqrtPrice(sqrtPrice)
	if err != nil {
		return nil, errors.Wrap(err, "initial sqrt price")
	}

	p := &Pool{
		log:                 log.Named(namedLogger).With(zap.String("pool", address.String())),
		cfg:                 cfg,
		address:             address,
		tickCurrent:         tick,
		sqrtPrice:           new(big.Int).Set(sqrtPrice),
		liquidity:           big.NewInt(0),
		feeGrowthGlobal0:    big.NewInt(0),
		feeGrowthGlobal1:    big.NewInt(0),
		maxLiquidityPerTick: liquidity.TickSpacingToMaxLiquidityPerTick(cfg.TickSpacing),
		lastTimestamp:       timestamp,
		ticks:               map[int32]*shared.Tick{},
		positions:           map[solana.PublicKey]*shared.Position{},
	}
	p.oracle.Initialize(timestamp)
	p.updateVolatility(timestamp)

	p.log.Debug("pool created",
		zap.Int32("tick", tick),
		zap.String("sqrt_price", sqrtPrice.String()),
		zap.Int64("timestamp", timestamp))
	return p, nil
}

func (p *Pool) Address() solana.PublicKey {
	return p.address
}

// LastTimestamp is the time of the latest price move.
func (p *Pool) LastTimestamp() int64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastTimestamp
}

func (p *Pool) tickOrNew(index int32) *shared.Tick {
	if t, ok := p.ticks[index]; ok {
		return cloneTick(t)
	}
	return shared.NewTick()
}

func (p *Pool) validateRange(lower, upper int32) error {
	if lower >= upper ||
		!ammmath.IsValidTickIndex(lower, p.cfg.TickSpacing) ||
		!ammmath.IsValidTickIndex(upper, p.cfg.TickSpacing) {
		return errors.Wrapf(shared.ErrInvalidTick, "range [%d, %d] spacing %d", lower, upper, p.cfg.TickSpacing)
	}
	return nil
}

// ModifyPosition adds (positive delta) or removes (negative delta) liquidity
// for owner in [lower, upper). Nothing changes when an error is returned.
func (p *Pool) ModifyPosition(owner solana.PublicKey, lower, upper int32, liquidityDelta *big.Int) error {
	if err := p.validateRange(lower, upper); err != nil {
		return err
	}
	if liquidityDelta == nil {
		return errors.Wrap(shared.ErrInvalidInput, "missing liquidity delta")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	pos, ok := p.positions[owner]
	switch {
	case !ok:
		pos = shared.NewPosition(lower, upper)
	case pos.TickLower != lower || pos.TickUpper != upper:
		return errors.Wrapf(shared.ErrInvalidInput, "owner %s already holds [%d, %d]", owner, pos.TickLower, pos.TickUpper)
	default:
		pos = clonePosition(pos)
	}

	lowerTick, upperTick := p.tickOrNew(lower), p.tickOrNew(upper)
	flippedLower, err := liquidity.UpdateTick(lowerTick, lower, p.tickCurrent, liquidityDelta,
		p.feeGrowthGlobal0, p.feeGrowthGlobal1, false, p.maxLiquidityPerTick)
	if err != nil {
		return errors.Wrapf(err, "update lower tick %d", lower)
	}
	flippedUpper, err := liquidity.UpdateTick(upperTick, upper, p.tickCurrent, liquidityDelta,
		p.feeGrowthGlobal0, p.feeGrowthGlobal1, true, p.maxLiquidityPerTick)
	if err != nil {
		return errors.Wrapf(err, "update upper tick %d", upper)
	}

	inside0, inside1 := liquidity.GetFeeGrowthInside(lowerTick, upperTick, lower, upper,
		p.tickCurrent, p.feeGrowthGlobal0, p.feeGrowthGlobal1)
	if err := liquidity.UpdatePosition(pos, liquidityDelta, inside0, inside1); err != nil {
		return errors.Wrapf(err, "update position of %s", owner)
	}

	active := p.liquidity
	if lower <= p.tickCurrent && p.tickCurrent < upper {
		active, err = addDelta(p.liquidity, liquidityDelta)
		if err != nil {
			return errors.Wrap(err, "active liquidity")
		}
	}

	p.liquidity = active
	p.storeTick(lower, lowerTick)
	p.storeTick(upper, upperTick)
	if liquidity.IsPositionEmpty(pos) {
		delete(p.positions, owner)
	} else {
		p.positions[owner] = pos
	}

	p.log.Debug("position modified",
		zap.String("owner", owner.String()),
		zap.Int32("tick_lower", lower),
		zap.Int32("tick_upper", upper),
		zap.String("delta", liquidityDelta.String()),
		zap.Bool("flipped_lower", flippedLower),
		zap.Bool("flipped_upper", flippedUpper),
		zap.String("active_liquidity", p.liquidity.String()))
	return nil
}

func (p *Pool) storeTick(index int32, tick *shared.Tick) {
	if tick.LiquidityGross.Sign() == 0 {
		liquidity.ClearTick(tick)
		delete(p.ticks, index)
		return
	}
	p.ticks[index] = tick
}

// AccrueFees spreads swap fees over the liquidity active at the current tick.
func (p *Pool) AccrueFees(amount0, amount1 uint64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	growth0, err := feeGrowth(amount0, p.liquidity)
	if err != nil {
		p.log.Warn("fee accrual rejected", zap.Uint64("amount0", amount0), zap.Error(err))
		return errors.Wrap(err, "token 0 fee growth")
	}
	growth1, err := feeGrowth(amount1, p.liquidity)
	if err != nil {
		p.log.Warn("fee accrual rejected", zap.Uint64("amount1", amount1), zap.Error(err))
		return errors.Wrap(err, "token 1 fee growth")
	}

	p.feeGrowthGlobal0 = ammmath.WrappingAddFeeGrowth(p.feeGrowthGlobal0, growth0)
	p.feeGrowthGlobal1 = ammmath.WrappingAddFeeGrowth(p.feeGrowthGlobal1, growth1)
	p.log.Debug("fees accrued",
		zap.Uint64("amount0", amount0),
		zap.Uint64("amount1", amount1),
		zap.String("fee_growth_global_0", p.feeGrowthGlobal0.String()),
		zap.String("fee_growth_global_1", p.feeGrowthGlobal1.String()))
	return nil
}

func feeGrowth(amount uint64, active *big.Int) (*big.Int, error) {
	if amount == 0 {
		return big.NewInt(0), nil
	}
	return ammmath.CalculateFeeGrowthQ64(amount, active)
}

// MoveTo sets a new price at timestamp, crossing every initialized tick in
// between. The previous tick is recorded in the oracle for the elapsed time.
func (p *Pool) MoveTo(sqrtPrice *big.Int, timestamp int64) error {
	newTick, err := ammmath.GetTickAtSqrtPrice(sqrtPrice)
	if err != nil {
		return errors.Wrap(err, "target sqrt price")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if timestamp < p.lastTimestamp {
		return errors.Wrapf(shared.ErrStaleData, "timestamp %d before %d", timestamp, p.lastTimestamp)
	}

	crossed := p.ticksBetween(p.tickCurrent, newTick)
	active := p.liquidity
	for _, index := range crossed {
		net := p.ticks[index].LiquidityNet
		if newTick < p.tickCurrent {
			net = new(big.Int).Neg(net)
		}
		active, err = addDelta(active, net)
		if err != nil {
			return errors.Wrapf(err, "crossing tick %d", index)
		}
	}

	if err := p.oracle.Observe(p.tickCurrent, timestamp); err != nil {
		return errors.Wrap(err, "oracle observe")
	}
	for _, index := range crossed {
		liquidity.CrossTick(p.ticks[index], p.feeGrowthGlobal0, p.feeGrowthGlobal1)
	}

	previous := p.tickCurrent
	p.liquidity = active
	p.tickCurrent = newTick
	p.sqrtPrice = new(big.Int).Set(sqrtPrice)
	p.lastTimestamp = timestamp
	p.updateVolatility(timestamp)

	p.log.Debug("price moved",
		zap.Int32("from_tick", previous),
		zap.Int32("to_tick", newTick),
		zap.Int("crossed", len(crossed)),
		zap.String("active_liquidity", active.String()))
	return nil
}

// ticksBetween returns the initialized ticks crossed moving from one tick to
// another, in crossing order.
func (p *Pool) ticksBetween(from, to int32) []int32 {
	var out []int32
	for index := range p.ticks {
		if (to > from && index > from && index <= to) || (to < from && index <= from && index > to) {
			out = append(out, index)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if to > from {
			return out[i] < out[j]
		}
		return out[i] > out[j]
	})
	return out
}

func (p *Pool) updateVolatility(timestamp int64) {
	if p.volatility.LastPrice != nil && timestamp <= p.volatility.LastUpdate {
		return
	}
	price, err := ammmath.MulShr(p.sqrtPrice, p.sqrtPrice, shared.Resolution)
	if err == nil {
		err = p.volatility.UpdateVolatility(price, timestamp)
	}
	if err != nil {
		p.log.Warn("volatility not updated", zap.Int64("timestamp", timestamp), zap.Error(err))
	}
}

func (p *Pool) positionFeeGrowthInside(pos *shared.Position) (*big.Int, *big.Int) {
	lower, upper := p.tickOrNew(pos.TickLower), p.tickOrNew(pos.TickUpper)
	return liquidity.GetFeeGrowthInside(lower, upper, pos.TickLower, pos.TickUpper,
		p.tickCurrent, p.feeGrowthGlobal0, p.feeGrowthGlobal1)
}

// QuoteFees returns what owner could collect now, without touching state.
func (p *Pool) QuoteFees(owner solana.PublicKey) (uint64, uint64, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	pos, ok := p.positions[owner]
	if !ok {
		return 0, 0, errors.Wrapf(shared.ErrInvalidInput, "no position for %s", owner)
	}
	quote := clonePosition(pos)
	inside0, inside1 := p.positionFeeGrowthInside(quote)
	if err := liquidity.UpdatePosition(quote, big.NewInt(0), inside0, inside1); err != nil {
		return 0, 0, errors.Wrap(err, "quote fees")
	}
	return quote.TokensOwed0, quote.TokensOwed1, nil
}

// Collect credits pending fees and pays out at most MaxFeeCollect per token.
func (p *Pool) Collect(owner solana.PublicKey) (uint64, uint64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pos, ok := p.positions[owner]
	if !ok {
		return 0, 0, errors.Wrapf(shared.ErrInvalidInput, "no position for %s", owner)
	}
	inside0, inside1 := p.positionFeeGrowthInside(pos)
	if err := liquidity.UpdatePosition(pos, big.NewInt(0), inside0, inside1); err != nil {
		return 0, 0, errors.Wrap(err, "credit fees")
	}

	limit := p.cfg.MaxFeeCollect
	if limit == 0 {
		limit = stdmath.MaxUint64
	}
	amount0, amount1 := liquidity.CollectFees(pos, limit, limit)
	if liquidity.IsPositionEmpty(pos) {
		delete(p.positions, owner)
	}

	p.log.Debug("fees collected",
		zap.String("owner", owner.String()),
		zap.Uint64("amount0", amount0),
		zap.Uint64("amount1", amount1))
	return amount0, amount1, nil
}

// PositionAmounts values owner's liquidity in tokens at the current price.
func (p *Pool) PositionAmounts(owner solana.PublicKey) (*big.Int, *big.Int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	pos, ok := p.positions[owner]
	if !ok {
		return nil, nil, errors.Wrapf(shared.ErrInvalidInput, "no position for %s", owner)
	}
	lower, err := ammmath.GetSqrtPriceAtTick(pos.TickLower)
	if err != nil {
		return nil, nil, err
	}
	upper, err := ammmath.GetSqrtPriceAtTick(pos.TickUpper)
	if err != nil {
		return nil, nil, err
	}
	amount0, amount1, err := ammmath.GetAmountsForLiquidity(p.sqrtPrice, lower, upper, pos.Liquidity, shared.RoundingDown)
	if err != nil {
		return nil, nil, errors.Wrap(err, "position amounts")
	}
	return amount0, amount1, nil
}

func (p *Pool) Position(owner solana.PublicKey) (shared.Position, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	pos, ok := p.positions[owner]
	if !ok {
		return shared.Position{}, false
	}
	return *clonePosition(pos), true
}

// Owners lists position owners in base58 order.
func (p *Pool) Owners() []solana.PublicKey {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]solana.PublicKey, 0, len(p.positions))
	for owner := range p.positions {
		out = append(out, owner)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

func (p *Pool) TWAP(now int64) (int32, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	tick, err := p.oracle.GetTwapTick(now, p.cfg.TWAPWindowSeconds)
	if err != nil {
		return 0, errors.Wrapf(err, "twap over %ds", p.cfg.TWAPWindowSeconds)
	}
	return tick, nil
}

// Volatility returns the 24h and 7d figures in basis points.
func (p *Pool) Volatility() (uint64, uint64) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.volatility.Volatility24hBps, p.volatility.Volatility7dBps
}

func (p *Pool) Summary() Summary {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return Summary{
		Address:          p.address.String(),
		Tick:             p.tickCurrent,
		SqrtPrice:        p.sqrtPrice.String(),
		Price:            ammmath.SqrtPriceX64ToPrice(p.sqrtPrice, 0, 0),
		Liquidity:        p.liquidity.String(),
		FeeGrowthGlobal0: p.feeGrowthGlobal0.String(),
		FeeGrowthGlobal1: p.feeGrowthGlobal1.String(),
		Positions:        len(p.positions),
		InitializedTicks: len(p.ticks),
		OracleState:      p.oracle.State().String(),
		Volatility24hBps: p.volatility.Volatility24hBps,
		Volatility7dBps:  p.volatility.Volatility7dBps,
	}
}

func addDelta(value, delta *big.Int) (*big.Int, error) {
	if delta.Sign() < 0 {
		return ammmath.SafeSubU128(value, new(big.Int).Neg(delta))
	}
	return ammmath.CheckedAddU128(value, delta)
}

func cloneTick(t *shared.Tick) *shared.Tick {
	return &shared.Tick{
		LiquidityNet:      new(big.Int).Set(t.LiquidityNet),
		LiquidityGross:    new(big.Int).Set(t.LiquidityGross),
		FeeGrowthOutside0: new(big.Int).Set(t.FeeGrowthOutside0),
		FeeGrowthOutside1: new(big.Int).Set(t.FeeGrowthOutside1),
		Initialized:       t.Initialized,
	}
}

func clonePosition(pos *shared.Position) *shared.Position {
	c := *pos
	c.Liquidity = new(big.Int).Set(pos.Liquidity)
	c.FeeGrowthInsideLast0 = new(big.Int).Set(pos.FeeGrowthInsideLast0)
	c.FeeGrowthInsideLast1 = new(big.Int).Set(pos.FeeGrowthInsideLast1)
	return &c
}
