package simulator

import (
	"encoding/json"
	"math/big"
	"sort"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/krazyTry/ammcore-go/liquidity"
	"github.com/krazyTry/ammcore-go/logging"
	ammmath "github.com/krazyTry/ammcore-go/math"
	"github.com/krazyTry/ammcore-go/shared"
	"github.com/krazyTry/ammcore-go/u128"
)

const (
	EventFees    = "fees"
	EventMove    = "move"
	EventModify  = "modify"
	EventCollect = "collect"
)

type snapshotPosition struct {
	Owner       string         `json:"owner"`
	TickLower   int32          `json:"tick_lower"`
	TickUpper   int32          `json:"tick_upper"`
	Liquidity   binary.Uint128 `json:"liquidity"`
	TokensOwed0 uint64         `json:"tokens_owed_0"`
	TokensOwed1 uint64         `json:"tokens_owed_1"`
}

type snapshotDocument struct {
	Address   string             `json:"address"`
	SqrtPrice binary.Uint128     `json:"sqrt_price"`
	Timestamp int64              `json:"timestamp"`
	Positions []snapshotPosition `json:"positions"`
}

// LoadSnapshot builds a pool from a JSON document. u128 fields are decimal
// strings. The price comes from sqrt_price, or from tick when sqrt_price is
// absent. Owed tokens are restored, also on positions without liquidity.
func LoadSnapshot(log *logging.Logger, cfg Config, data []byte) (*Pool, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.Wrap(shared.ErrInvalidInput, "snapshot is not valid json")
	}
	doc := gjson.ParseBytes(data)

	address, err := solana.PublicKeyFromBase58(doc.Get("address").String())
	if err != nil {
		return nil, errors.Wrap(err, "snapshot address")
	}
	sqrtPrice, err := sqrtPriceField(doc)
	if err != nil {
		return nil, err
	}

	pool, err := NewPool(log, cfg, address, sqrtPrice, doc.Get("timestamp").Int())
	if err != nil {
		return nil, err
	}

	for i, pos := range doc.Get("positions").Array() {
		owner, err := solana.PublicKeyFromBase58(pos.Get("owner").String())
		if err != nil {
			return nil, errors.Wrapf(err, "position %d owner", i)
		}
		amount, err := u128.Parse(pos.Get("liquidity").String())
		if err != nil {
			return nil, errors.Wrapf(err, "position %d liquidity", i)
		}
		lower, upper := int32(pos.Get("tick_lower").Int()), int32(pos.Get("tick_upper").Int())
		owed0, owed1 := pos.Get("tokens_owed_0").Uint(), pos.Get("tokens_owed_1").Uint()
		if amount.Sign() > 0 {
			if err := pool.ModifyPosition(owner, lower, upper, amount); err != nil {
				return nil, errors.Wrapf(err, "position %d", i)
			}
		}
		if owed0 == 0 && owed1 == 0 {
			continue
		}
		if err := pool.creditOwed(owner, lower, upper, owed0, owed1); err != nil {
			return nil, errors.Wrapf(err, "position %d owed tokens", i)
		}
	}

	pool.log.Info("snapshot loaded",
		zap.Int("positions", len(pool.positions)),
		zap.Int32("tick", pool.tickCurrent))
	return pool, nil
}

func (p *Pool) creditOwed(owner solana.PublicKey, lower, upper int32, owed0, owed1 uint64) error {
	if err := p.validateRange(lower, upper); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	pos, ok := p.positions[owner]
	switch {
	case !ok:
		pos = shared.NewPosition(lower, upper)
	case pos.TickLower != lower || pos.TickUpper != upper:
		return errors.Wrapf(shared.ErrInvalidInput, "owner %s already holds [%d, %d]", owner, pos.TickLower, pos.TickUpper)
	}
	total0, err := ammmath.CheckedAddU64(pos.TokensOwed0, owed0)
	if err != nil {
		return err
	}
	total1, err := ammmath.CheckedAddU64(pos.TokensOwed1, owed1)
	if err != nil {
		return err
	}
	pos.TokensOwed0, pos.TokensOwed1 = total0, total1
	p.positions[owner] = pos
	return nil
}

func sqrtPriceField(doc gjson.Result) (*big.Int, error) {
	if v := doc.Get("sqrt_price"); v.Exists() {
		sqrtPrice, err := u128.Parse(v.String())
		if err != nil {
			return nil, errors.Wrap(err, "sqrt_price")
		}
		return sqrtPrice, nil
	}
	if v := doc.Get("tick"); v.Exists() {
		sqrtPrice, err := ammmath.GetSqrtPriceAtTick(int32(v.Int()))
		if err != nil {
			return nil, errors.Wrap(err, "tick")
		}
		return sqrtPrice, nil
	}
	return nil, errors.Wrap(shared.ErrInvalidPrice, "snapshot has neither sqrt_price nor tick")
}

// Replay applies the "events" array of a snapshot document in order and
// returns the number of events applied.
func (p *Pool) Replay(data []byte) (int, error) {
	if !gjson.ValidBytes(data) {
		return 0, errors.Wrap(shared.ErrInvalidInput, "events are not valid json")
	}
	events := gjson.GetBytes(data, "events").Array()
	for i, ev := range events {
		if err := p.applyEvent(ev); err != nil {
			p.log.Warn("event rejected", zap.Int("index", i), zap.String("type", ev.Get("type").String()), zap.Error(err))
			return i, errors.Wrapf(err, "event %d", i)
		}
	}
	return len(events), nil
}

func (p *Pool) applyEvent(ev gjson.Result) error {
	switch kind := ev.Get("type").String(); kind {
	case EventFees:
		return p.AccrueFees(ev.Get("amount0").Uint(), ev.Get("amount1").Uint())
	case EventMove:
		sqrtPrice, err := sqrtPriceField(ev)
		if err != nil {
			return err
		}
		return p.MoveTo(sqrtPrice, ev.Get("timestamp").Int())
	case EventModify:
		owner, err := solana.PublicKeyFromBase58(ev.Get("owner").String())
		if err != nil {
			return errors.Wrap(err, "owner")
		}
		delta, ok := new(big.Int).SetString(ev.Get("liquidity").String(), 10)
		if !ok {
			return errors.Wrap(shared.ErrConversion, "liquidity delta")
		}
		return p.ModifyPosition(owner, int32(ev.Get("tick_lower").Int()), int32(ev.Get("tick_upper").Int()), delta)
	case EventCollect:
		owner, err := solana.PublicKeyFromBase58(ev.Get("owner").String())
		if err != nil {
			return errors.Wrap(err, "owner")
		}
		_, _, err = p.Collect(owner)
		return err
	default:
		return errors.Wrapf(shared.ErrInvalidInput, "unknown event type %q", kind)
	}
}

// Snapshot encodes the pool price and positions in the LoadSnapshot format.
// Fee growth is not part of the document, so pending growth is credited into
// the owed tokens of each position.
func (p *Pool) Snapshot() ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	sqrtPrice, err := u128.FromBig(p.sqrtPrice)
	if err != nil {
		return nil, err
	}
	doc := snapshotDocument{
		Address:   p.address.String(),
		SqrtPrice: sqrtPrice,
		Timestamp: p.lastTimestamp,
		Positions: make([]snapshotPosition, 0, len(p.positions)),
	}
	for owner, pos := range p.positions {
		credited := clonePosition(pos)
		inside0, inside1 := p.positionFeeGrowthInside(credited)
		if err := liquidity.UpdatePosition(credited, big.NewInt(0), inside0, inside1); err != nil {
			return nil, errors.Wrapf(err, "credit fees of %s", owner)
		}
		amount, err := u128.FromBig(pos.Liquidity)
		if err != nil {
			return nil, err
		}
		doc.Positions = append(doc.Positions, snapshotPosition{
			Owner:       owner.String(),
			TickLower:   pos.TickLower,
			TickUpper:   pos.TickUpper,
			Liquidity:   amount,
			TokensOwed0: credited.TokensOwed0,
			TokensOwed1: credited.TokensOwed1,
		})
	}
	sort.Slice(doc.Positions, func(i, j int) bool {
		return doc.Positions[i].Owner < doc.Positions[j].Owner
	})
	return json.Marshal(doc)
}
