package domain

import "fmt"

// SelfTradePolicy controls what happens when an incoming order crosses a
// resting order from the same user.
type SelfTradePolicy string

const (
	// SelfTradeAllow matches own liquidity like any other.
	SelfTradeAllow SelfTradePolicy = "allow"
	// SelfTradeSkip leaves own resting orders in place and keeps matching
	// against the next order in priority.
	SelfTradeSkip SelfTradePolicy = "skip"
	// SelfTradeReject fails the incoming order before any book mutation if
	// the match would touch own liquidity.
	SelfTradeReject SelfTradePolicy = "reject"
)

// Valid reports whether p is a known policy.
func (p SelfTradePolicy) Valid() bool {
	switch p {
	case SelfTradeAllow, SelfTradeSkip, SelfTradeReject:
		return true
	}
	return false
}

// ParseSelfTradePolicy converts a string to a SelfTradePolicy, rejecting
// unknown values.
func ParseSelfTradePolicy(s string) (SelfTradePolicy, error) {
	p := SelfTradePolicy(s)
	if !p.Valid() {
		return "", fmt.Errorf("unknown self-trade policy %q", s)
	}
	return p, nil
}
