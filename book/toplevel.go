// Package book holds per-instrument top-of-book state.
package book

import "github.com/bdasgupta02/phoenix-sub000/decimal"

// TopLevel is the best bid/ask and their resting quantity for one symbol.
// The bid side is initialized to the zero sentinel and the ask side to the
// maximum representable value at the given scale, so the first real
// decimal.MinOrZero update on either side always takes effect.
type TopLevel struct {
	BestBid Decimal
	BidQty  Decimal
	BestAsk Decimal
	AskQty  Decimal
}

// Decimal is a local alias kept for readability in this package's exported
// field declarations.
type Decimal = decimal.Decimal

// New builds a TopLevel at the given price/volume scales with the bid/ask
// sentinels set per §3.
func New(priceScale, volumeScale uint8) TopLevel {
	return TopLevel{
		BestBid: decimal.New(priceScale),
		BidQty:  decimal.New(volumeScale),
		BestAsk: decimal.Max(priceScale),
		AskQty:  decimal.New(volumeScale),
	}
}
