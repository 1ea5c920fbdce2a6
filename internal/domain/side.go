package domain

import "fmt"

// Side indicates whether an order buys or sells. It determines which book
// the order rests in and which book it matches against.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// Valid reports whether s is a known side.
func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

// Opposite returns the side an order of side s matches against.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// ParseSide converts a string to a Side, rejecting unknown values.
func ParseSide(s string) (Side, error) {
	v := Side(s)
	if !v.Valid() {
		return "", fmt.Errorf("unknown side %q", s)
	}
	return v, nil
}
