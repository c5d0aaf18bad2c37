package models

import "strings"

// Symbol identifies one of the supported crypto assets.
//
// The set is closed: only the constants below are valid. Their order in
// Symbols() is the canonical listing order used by every record store.
type Symbol string

const (
	BTC  Symbol = "BTC"
	DOGE Symbol = "DOGE"
	ETH  Symbol = "ETH"
	LTC  Symbol = "LTC"
	XRP  Symbol = "XRP"
)

var symbols = []Symbol{BTC, DOGE, ETH, LTC, XRP}

// Symbols returns a copy of the supported symbols in canonical order.
func Symbols() []Symbol {
	out := make([]Symbol, len(symbols))
	copy(out, symbols)
	return out
}

// ParseSymbol returns the Symbol matching s exactly (case-sensitive).
// Blank or unknown input yields ok=false.
func ParseSymbol(s string) (Symbol, bool) {
	if strings.TrimSpace(s) == "" {
		return "", false
	}
	for _, sym := range symbols {
		if string(sym) == s {
			return sym, true
		}
	}
	return "", false
}

// Index returns the position of the symbol in canonical order, or -1.
func (s Symbol) Index() int {
	for i, sym := range symbols {
		if sym == s {
			return i
		}
	}
	return -1
}

func (s Symbol) String() string { return string(s) }
