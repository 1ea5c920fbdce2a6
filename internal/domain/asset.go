package domain

import "fmt"

// Asset identifies a tradable instrument. The set is closed; one exchange
// instance is bound to exactly one asset.
type Asset string

const (
	AssetDressing Asset = "DRESSING"
	AssetRye      Asset = "RYE"
	AssetSwiss    Asset = "SWISS"
	AssetPastrami Asset = "PASTRAMI"
)

// Assets lists every known asset.
var Assets = []Asset{AssetDressing, AssetRye, AssetSwiss, AssetPastrami}

// Valid reports whether a is one of the known assets.
func (a Asset) Valid() bool {
	switch a {
	case AssetDressing, AssetRye, AssetSwiss, AssetPastrami:
		return true
	}
	return false
}

// ParseAsset converts a string to an Asset, rejecting unknown values.
func ParseAsset(s string) (Asset, error) {
	a := Asset(s)
	if !a.Valid() {
		return "", fmt.Errorf("unknown asset %q", s)
	}
	return a, nil
}
