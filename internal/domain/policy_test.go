package domain

import "testing"

func TestParseSelfTradePolicy(t *testing.T) {
	for _, p := range []SelfTradePolicy{SelfTradeAllow, SelfTradeSkip, SelfTradeReject} {
		got, err := ParseSelfTradePolicy(string(p))
		if err != nil {
			t.Errorf("ParseSelfTradePolicy(%q) error: %v", p, err)
		}
		if got != p {
			t.Errorf("ParseSelfTradePolicy(%q) = %q", p, got)
		}
	}
	if _, err := ParseSelfTradePolicy("cancel-both"); err == nil {
		t.Error("unknown policy accepted")
	}
}
