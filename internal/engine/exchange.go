package engine

import (
	"sync"

	"github.com/efreitasn/deliexchange/internal/domain"
	"github.com/efreitasn/deliexchange/internal/store"
)

// Limits bound the prices and volumes an Exchange accepts. Orders outside
// the closed bounds are rejected before touching either book.
type Limits struct {
	MinPrice  int64
	MaxPrice  int64
	MinVolume int64
	MaxVolume int64
}

// DefaultLimits returns the standard venue bounds.
func DefaultLimits() Limits {
	return Limits{
		MinPrice:  1,
		MaxPrice:  20000,
		MinVolume: 1,
		MaxVolume: 20000,
	}
}

// Placement is the outcome of a successful PlaceOrder call: the trades
// emitted while matching, in execution order, and the residual order left
// resting on the book (nil when the incoming order was fully consumed).
type Placement struct {
	Trades  []domain.Trade
	Resting *domain.Order
}

// Exchange is the matching core for a single asset. It owns one bid book
// and one ask book, matches incoming limit orders under price-time
// priority, and assigns monotonic trade ids.
//
// All calls run under one exclusive critical section, so an Exchange is
// safe for concurrent use; the matching pass itself is purely synchronous.
type Exchange struct {
	asset  domain.Asset
	limits Limits
	policy domain.SelfTradePolicy

	mu          sync.Mutex
	bids        *BookSide
	asks        *BookSide
	tradeLog    *store.TradeStore
	lastTradeID int64
}

// NewExchange creates an exchange bound to one asset with empty books.
// Every emitted trade is appended to tradeLog.
func NewExchange(asset domain.Asset, tradeLog *store.TradeStore, limits Limits, policy domain.SelfTradePolicy) *Exchange {
	return &Exchange{
		asset:    asset,
		limits:   limits,
		policy:   policy,
		bids:     NewBookSide(domain.SideBuy),
		asks:     NewBookSide(domain.SideSell),
		tradeLog: tradeLog,
	}
}

// Asset returns the asset this exchange is bound to.
func (e *Exchange) Asset() domain.Asset {
	return e.asset
}

// PlaceOrder runs an incoming limit order through the matching engine.
// It validates bounds, asset, and id uniqueness, drains crossing liquidity
// from the opposite book oldest-first within each price level, and rests
// any unfilled remainder on the own-side book.
//
// Validation happens strictly before any book mutation: a rejected call
// leaves both books untouched.
func (e *Exchange) PlaceOrder(order domain.Order) (*Placement, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.validate(order); err != nil {
		return nil, err
	}
	if e.policy == domain.SelfTradeReject && e.wouldSelfTrade(order) {
		return nil, domain.ErrSelfTrade
	}

	own, opposite := e.sides(order.Side)

	// Snapshot the crossing levels best-outward. Matching only unlinks
	// nodes and prunes emptied levels, so the snapshot stays valid for
	// the duration of the pass.
	var crossing []*priceLevel
	opposite.AscendLevels(func(l *priceLevel) bool {
		if !crosses(order.Side, order.Price, l.price) {
			return false
		}
		crossing = append(crossing, l)
		return true
	})

	remaining := order.Volume
	var trades []domain.Trade

	for _, level := range crossing {
		if remaining == 0 {
			break
		}
		for n := level.front(); n != nil && remaining > 0; {
			next := n.next
			if e.policy == domain.SelfTradeSkip && n.order.UserID == order.UserID {
				n = next
				continue
			}
			matched := min(remaining, n.order.Volume)
			trades = append(trades, e.execute(order, n.order, matched))
			remaining -= matched
			level.reduce(n, matched)
			if n.order.Volume == 0 {
				opposite.removeNode(n)
			}
			n = next
		}
	}

	outcome := &Placement{Trades: trades}
	if remaining > 0 {
		rested := order
		rested.Volume = remaining
		own.Insert(rested)
		outcome.Resting = &rested
	}
	return outcome, nil
}

// CancelOrder removes a resting order by id from whichever side holds it
// and returns it. Order ids are unique per exchange, not per side.
func (e *Exchange) CancelOrder(orderID int64) (domain.Order, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if o, ok := e.bids.Remove(orderID); ok {
		return o, nil
	}
	if o, ok := e.asks.Remove(orderID); ok {
		return o, nil
	}
	return domain.Order{}, domain.ErrOrderNotFound
}

// BestBid returns the highest resting bid price, if any.
func (e *Exchange) BestBid() (int64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bids.BestPrice()
}

// BestAsk returns the lowest resting ask price, if any.
func (e *Exchange) BestAsk() (int64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.asks.BestPrice()
}

// TopBids returns up to n aggregated bid levels, price descending.
func (e *Exchange) TopBids(n int) []Level {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bids.TopLevels(n)
}

// TopAsks returns up to n aggregated ask levels, price ascending.
func (e *Exchange) TopAsks(n int) []Level {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.asks.TopLevels(n)
}

// BidCount returns the number of resting bid orders.
func (e *Exchange) BidCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bids.Len()
}

// AskCount returns the number of resting ask orders.
func (e *Exchange) AskCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.asks.Len()
}

// validate checks bounds, asset, and id uniqueness without mutating state.
func (e *Exchange) validate(o domain.Order) error {
	if o.Price < e.limits.MinPrice || o.Price > e.limits.MaxPrice {
		return domain.ErrInvalidPrice
	}
	if o.Volume < e.limits.MinVolume || o.Volume > e.limits.MaxVolume {
		return domain.ErrInvalidVolume
	}
	if o.Asset != e.asset {
		return domain.ErrAssetMismatch
	}
	if e.bids.Contains(o.OrderID) || e.asks.Contains(o.OrderID) {
		return domain.ErrDuplicateOrderID
	}
	return nil
}

// wouldSelfTrade performs a read-only walk of the crossing liquidity and
// reports whether matching would consume an order from the same user.
func (e *Exchange) wouldSelfTrade(o domain.Order) bool {
	_, opposite := e.sides(o.Side)
	remaining := o.Volume
	hit := false
	opposite.AscendLevels(func(l *priceLevel) bool {
		if remaining <= 0 || !crosses(o.Side, o.Price, l.price) {
			return false
		}
		for n := l.front(); n != nil && remaining > 0; n = n.next {
			if n.order.UserID == o.UserID {
				hit = true
				return false
			}
			remaining -= min(remaining, n.order.Volume)
		}
		return true
	})
	return hit
}

// execute emits one trade at the maker's price, assigning buyer and seller
// by the taker's side and the next monotonic trade id. The trade is
// appended to the trade log.
func (e *Exchange) execute(taker domain.Order, maker domain.Order, volume int64) domain.Trade {
	e.lastTradeID++
	t := domain.Trade{
		Asset:   e.asset,
		Price:   maker.Price,
		Volume:  volume,
		TradeID: e.lastTradeID,
	}
	if taker.Side == domain.SideBuy {
		t.BuyerID = taker.UserID
		t.SellerID = maker.UserID
	} else {
		t.BuyerID = maker.UserID
		t.SellerID = taker.UserID
	}
	e.tradeLog.Append(e.asset, t)
	return t
}

// sides returns the own-side and opposite-side books for an order side.
func (e *Exchange) sides(side domain.Side) (own, opposite *BookSide) {
	if side == domain.SideBuy {
		return e.bids, e.asks
	}
	return e.asks, e.bids
}

// crosses reports whether the opposite book's best price overlaps the
// incoming limit: best ≤ limit for a buy, best ≥ limit for a sell.
func crosses(side domain.Side, limit, best int64) bool {
	if side == domain.SideBuy {
		return best <= limit
	}
	return best >= limit
}
