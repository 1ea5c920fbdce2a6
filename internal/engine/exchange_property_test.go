package engine

import (
	"fmt"
	"testing"

	"github.com/efreitasn/deliexchange/internal/domain"
	"pgregory.net/rapid"
)

// Equal-priced resting orders must always be consumed oldest-first: the
// trade order against a crossing taker matches insertion order.
func TestProperty_TimePriorityAtOnePrice(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ex, _ := newTestExchange(domain.SelfTradeAllow)

		n := rapid.IntRange(1, 10).Draw(t, "numAsks")
		price := rapid.Int64Range(1, 100).Draw(t, "price")

		var total int64
		for i := 0; i < n; i++ {
			vol := rapid.Int64Range(1, 20).Draw(t, fmt.Sprintf("vol-%d", i))
			total += vol
			// UserID doubles as insertion rank.
			if _, err := ex.PlaceOrder(order(domain.SideSell, int64(i+1), price, vol, int64(i+1))); err != nil {
				t.Fatalf("ask %d error: %v", i, err)
			}
		}

		outcome, err := ex.PlaceOrder(order(domain.SideBuy, 100, price, total, 100))
		if err != nil {
			t.Fatalf("taker error: %v", err)
		}
		if len(outcome.Trades) != n {
			t.Fatalf("expected %d trades, got %d", n, len(outcome.Trades))
		}
		for i, tr := range outcome.Trades {
			if tr.SellerID != int64(i+1) {
				t.Fatalf("trade %d consumed seller %d, want %d (insertion order)", i, tr.SellerID, i+1)
			}
		}
		if outcome.Resting != nil {
			t.Fatalf("taker sized to total liquidity should not rest, got %+v", outcome.Resting)
		}
	})
}

// Trade volumes against a single taker never exceed the taker's original
// volume in sum, and every resting order keeps a positive volume.
func TestProperty_VolumeConservation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ex, _ := newTestExchange(domain.SelfTradeAllow)

		n := rapid.IntRange(1, 15).Draw(t, "numAsks")
		for i := 0; i < n; i++ {
			price := rapid.Int64Range(1, 50).Draw(t, fmt.Sprintf("price-%d", i))
			vol := rapid.Int64Range(1, 30).Draw(t, fmt.Sprintf("vol-%d", i))
			if _, err := ex.PlaceOrder(order(domain.SideSell, 1, price, vol, int64(i+1))); err != nil {
				t.Fatalf("ask %d error: %v", i, err)
			}
		}

		takerVol := rapid.Int64Range(1, 200).Draw(t, "takerVol")
		takerPrice := rapid.Int64Range(1, 50).Draw(t, "takerPrice")
		outcome, err := ex.PlaceOrder(order(domain.SideBuy, 2, takerPrice, takerVol, 1000))
		if err != nil {
			t.Fatalf("taker error: %v", err)
		}

		var matched int64
		for _, tr := range outcome.Trades {
			if tr.Volume <= 0 {
				t.Fatalf("trade with non-positive volume: %+v", tr)
			}
			if tr.Price > takerPrice {
				t.Fatalf("trade price %d above taker limit %d", tr.Price, takerPrice)
			}
			matched += tr.Volume
		}
		if matched > takerVol {
			t.Fatalf("matched %d exceeds taker volume %d", matched, takerVol)
		}
		if outcome.Resting != nil {
			if outcome.Resting.Volume != takerVol-matched {
				t.Fatalf("resting volume %d, want %d", outcome.Resting.Volume, takerVol-matched)
			}
		} else if matched != takerVol {
			t.Fatalf("no remainder rested but matched %d < taker volume %d", matched, takerVol)
		}

		// Every surviving resting order has positive volume.
		for _, side := range []*BookSide{ex.bids, ex.asks} {
			side.AscendLevels(func(l *priceLevel) bool {
				for n := l.front(); n != nil; n = n.next {
					if n.order.Volume <= 0 {
						t.Fatalf("resting order %d with volume %d", n.order.OrderID, n.order.Volume)
					}
				}
				return true
			})
		}
	})
}

// After any placement under the allow policy the book is uncrossed: the
// best bid stays strictly below the best ask.
func TestProperty_BookNeverCrossed(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ex, _ := newTestExchange(domain.SelfTradeAllow)

		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			side := domain.SideBuy
			if rapid.Bool().Draw(t, fmt.Sprintf("sell-%d", i)) {
				side = domain.SideSell
			}
			price := rapid.Int64Range(1, 30).Draw(t, fmt.Sprintf("price-%d", i))
			vol := rapid.Int64Range(1, 10).Draw(t, fmt.Sprintf("vol-%d", i))
			user := rapid.Int64Range(1, 5).Draw(t, fmt.Sprintf("user-%d", i))
			if _, err := ex.PlaceOrder(order(side, user, price, vol, int64(i+1))); err != nil {
				t.Fatalf("order %d error: %v", i, err)
			}

			bestBid, hasBid := ex.BestBid()
			bestAsk, hasAsk := ex.BestAsk()
			if hasBid && hasAsk && bestBid >= bestAsk {
				t.Fatalf("book crossed after step %d: best bid %d >= best ask %d", i, bestBid, bestAsk)
			}
		}
	})
}

// Trade ids across an interleaved sequence of placements form a strictly
// increasing sequence, consistent with call order.
func TestProperty_TradeIDsTotallyOrdered(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ex, trades := newTestExchange(domain.SelfTradeAllow)

		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			side := domain.SideBuy
			if rapid.Bool().Draw(t, fmt.Sprintf("sell-%d", i)) {
				side = domain.SideSell
			}
			price := rapid.Int64Range(1, 20).Draw(t, fmt.Sprintf("price-%d", i))
			vol := rapid.Int64Range(1, 10).Draw(t, fmt.Sprintf("vol-%d", i))
			if _, err := ex.PlaceOrder(order(side, int64(i%3+1), price, vol, int64(i+1))); err != nil {
				t.Fatalf("order %d error: %v", i, err)
			}
		}

		logged := trades.GetByAsset(domain.AssetPastrami)
		for i := 1; i < len(logged); i++ {
			if logged[i].TradeID <= logged[i-1].TradeID {
				t.Fatalf("trade ids not strictly increasing at %d: %d then %d",
					i, logged[i-1].TradeID, logged[i].TradeID)
			}
		}
	})
}

// Cancelling a resting order succeeds exactly once.
func TestProperty_CancelIdempotenceOfAbsence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ex, _ := newTestExchange(domain.SelfTradeAllow)

		n := rapid.IntRange(1, 20).Draw(t, "numOrders")
		for i := 0; i < n; i++ {
			side := domain.SideBuy
			price := rapid.Int64Range(1, 10).Draw(t, fmt.Sprintf("price-%d", i))
			if rapid.Bool().Draw(t, fmt.Sprintf("sell-%d", i)) {
				side = domain.SideSell
				price += 10 // keep the sides from crossing
			}
			if _, err := ex.PlaceOrder(order(side, 1, price, 1, int64(i+1))); err != nil {
				t.Fatalf("order %d error: %v", i, err)
			}
		}

		victim := rapid.Int64Range(1, int64(n)).Draw(t, "victim")
		if _, err := ex.CancelOrder(victim); err != nil {
			t.Fatalf("first cancel error: %v", err)
		}
		if _, err := ex.CancelOrder(victim); err == nil {
			t.Fatal("second cancel of the same id succeeded")
		}
	})
}
