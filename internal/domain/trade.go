package domain

// Trade represents a matched execution between a resting order and an
// incoming order. It is immutable once emitted. Price is the resting
// (maker) order's price. TradeID increases monotonically per exchange
// instance.
type Trade struct {
	Asset    Asset
	BuyerID  int64
	SellerID int64
	Price    int64
	Volume   int64
	TradeID  int64
}
