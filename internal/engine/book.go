package engine

import (
	"github.com/efreitasn/deliexchange/internal/domain"
	"github.com/google/btree"
)

// Level is an aggregated view of one price level, used for depth snapshots.
type Level struct {
	Price       int64
	TotalVolume int64
	OrderCount  int
}

// bidLevelLess orders bid levels best-first: highest price at Min().
func bidLevelLess(a, b *priceLevel) bool {
	return a.price > b.price
}

// askLevelLess orders ask levels best-first: lowest price at Min().
func askLevelLess(a, b *priceLevel) bool {
	return a.price < b.price
}

// BookSide holds the resting orders of one side: a B-tree of price levels
// ordered best-first, plus an order-id index for O(1) cancellation lookup.
// An empty level is deleted from the tree immediately, so every level in
// the tree holds at least one order.
type BookSide struct {
	side   domain.Side
	levels *btree.BTreeG[*priceLevel]
	index  map[int64]*restingOrder // order_id → node
}

// NewBookSide creates an empty book side.
func NewBookSide(side domain.Side) *BookSide {
	const degree = 32
	less := askLevelLess
	if side == domain.SideBuy {
		less = bidLevelLess
	}
	return &BookSide{
		side:   side,
		levels: btree.NewG[*priceLevel](degree, less),
		index:  make(map[int64]*restingOrder),
	}
}

// BestPrice returns the best price on this side: highest for bids, lowest
// for asks. The second return is false when the side is empty.
func (b *BookSide) BestPrice() (int64, bool) {
	level, ok := b.levels.Min()
	if !ok {
		return 0, false
	}
	return level.price, true
}

// Insert appends an order at the back of its price level, creating the
// level if absent, and records it in the id index.
func (b *BookSide) Insert(o domain.Order) {
	level, ok := b.levels.Get(&priceLevel{price: o.Price})
	if !ok {
		level = newPriceLevel(o.Price)
		b.levels.ReplaceOrInsert(level)
	}
	b.index[o.OrderID] = level.pushBack(o)
}

// Remove deletes an order by id via the index, pruning its level if it
// becomes empty. The second return is false when the id is not resting here.
func (b *BookSide) Remove(orderID int64) (domain.Order, bool) {
	n, ok := b.index[orderID]
	if !ok {
		return domain.Order{}, false
	}
	b.removeNode(n)
	return n.order, true
}

// removeNode unlinks a node from its level, drops it from the id index, and
// prunes the level if it became empty.
func (b *BookSide) removeNode(n *restingOrder) {
	level := n.level
	level.unlink(n)
	delete(b.index, n.order.OrderID)
	if level.empty() {
		b.levels.Delete(level)
	}
}

// Contains reports whether an order with the given id rests on this side.
func (b *BookSide) Contains(orderID int64) bool {
	_, ok := b.index[orderID]
	return ok
}

// Len returns the number of resting orders on this side.
func (b *BookSide) Len() int {
	return len(b.index)
}

// AscendLevels visits price levels from best outward: descending prices for
// bids, ascending for asks. The callback returns true to continue. The
// iteration is re-invoked per call; no cursor persists.
func (b *BookSide) AscendLevels(fn func(*priceLevel) bool) {
	b.levels.Ascend(fn)
}

// TopLevels returns up to n aggregated levels from best outward.
func (b *BookSide) TopLevels(n int) []Level {
	if n <= 0 {
		return nil
	}
	levels := make([]Level, 0, n)
	b.levels.Ascend(func(l *priceLevel) bool {
		if len(levels) >= n {
			return false
		}
		levels = append(levels, Level{
			Price:       l.price,
			TotalVolume: l.totalVolume,
			OrderCount:  l.orderCount,
		})
		return true
	})
	return levels
}
