package asset

import (
	"sort"
	"strings"
)

const delim = "/"

// MakeSymbol returns the canonical symbol key for a set of asset identifiers.
// The result is independent of argument order:
//
//	MakeSymbol("BTC", "USD") == MakeSymbol("USD", "BTC") == "BTC/USD"
func MakeSymbol(assets ...string) string {
	parts := make([]string, len(assets))
	copy(parts, assets)
	sort.Strings(parts)
	return strings.Join(parts, delim)
}

// Components splits a canonical symbol back into its asset identifiers.
func Components(symbol string) []string {
	return strings.Split(symbol, delim)
}
