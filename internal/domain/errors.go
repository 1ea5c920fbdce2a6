package domain

import "errors"

// Sentinel errors returned by the exchange. All are local, recoverable
// conditions; the exchange instance remains usable after any of them.
var (
	ErrInvalidPrice     = errors.New("invalid_price")
	ErrInvalidVolume    = errors.New("invalid_volume")
	ErrAssetMismatch    = errors.New("asset_mismatch")
	ErrDuplicateOrderID = errors.New("duplicate_order_id")
	ErrOrderNotFound    = errors.New("order_not_found")
	ErrSelfTrade        = errors.New("self_trade")
)
