package store

import (
	"sync"

	"github.com/efreitasn/deliexchange/internal/domain"
)

// TradeStore is a thread-safe in-memory log of executed trades, keyed by
// asset. Trades are append-only and chronological: the per-asset slice
// order matches trade id order for a single exchange instance.
type TradeStore struct {
	mu     sync.RWMutex
	trades map[domain.Asset][]domain.Trade
}

// NewTradeStore creates an empty TradeStore.
func NewTradeStore() *TradeStore {
	return &TradeStore{
		trades: make(map[domain.Asset][]domain.Trade),
	}
}

// Append adds a trade to the asset's chronological log.
func (s *TradeStore) Append(asset domain.Asset, t domain.Trade) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trades[asset] = append(s.trades[asset], t)
}

// GetByAsset returns all trades for an asset in chronological order.
// Returns an empty slice if no trades exist for the asset.
func (s *TradeStore) GetByAsset(asset domain.Asset) []domain.Trade {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trades := s.trades[asset]
	if trades == nil {
		return []domain.Trade{}
	}

	// Return a copy to avoid callers mutating the internal slice.
	result := make([]domain.Trade, len(trades))
	copy(result, trades)
	return result
}

// Count returns the number of trades recorded for an asset.
func (s *TradeStore) Count(asset domain.Asset) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.trades[asset])
}
