package domain

// Order is a limit order submitted by a collaborator. Identity fields are
// immutable; while the order rests on a book, Volume is the remaining
// unfilled quantity and is owned exclusively by the book slot holding it.
type Order struct {
	Asset   Asset
	Side    Side
	UserID  int64
	Price   int64
	Volume  int64
	OrderID int64
}
