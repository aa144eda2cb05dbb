/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package datacapture implements the supplemented recording-only strategy
// core for cmd/datacapture: it never places an order, only persists every
// book level and trade print it observes (SPEC_FULL.md's trade-capture
// sink, grounded on the teacher's tradestore.go + database/marketdata.go).
package datacapture

import (
	"github.com/bdasgupta02/phoenix-sub000/dispatch"
	"github.com/bdasgupta02/phoenix-sub000/persistence"
	"github.com/bdasgupta02/phoenix-sub000/wire"
)

// PriceScale and VolumeScale fix the fixed-point precision used to decode
// incoming book/trade entries before they are widened to float64 for
// storage.
const (
	PriceScale  uint8 = 8
	VolumeScale uint8 = 8
)

// Capturer implements dispatch.Strategy in record-only mode: MDUpdate fans
// every 269=0/1/2 entry out to feed as an OrderBookEntry or TradeEntry;
// ExecutionReport is unreachable in normal operation (this binary never
// submits orders) and is only logged if the venue sends one anyway.
type Capturer struct {
	logger dispatch.Logger
	feed   *persistence.MarketDataFeed
}

// New builds a Capturer writing every observed entry to feed.
func New(logger dispatch.Logger, feed *persistence.MarketDataFeed) *Capturer {
	return &Capturer{logger: logger, feed: feed}
}

// MDUpdate decodes one MarketDataSnapshot/Incremental message and records
// each entry: MDEntryType 0/1 (bid/ask) as an OrderBookEntry, 2 (trade) as
// a TradeEntry, matching the FIX MDEntryType vocabulary §4.2 reuses.
func (c *Capturer) MDUpdate(r *wire.Reader, update bool) {
	symbol := r.GetString(wire.TagSymbol, 0)
	numEntries := r.FieldCount(wire.TagMDEntryType)

	for i := 0; i < numEntries; i++ {
		price := r.GetDecimal(wire.TagMDEntryPx, i, PriceScale)
		size := r.GetDecimal(wire.TagMDEntrySize, i, VolumeScale)

		switch r.GetInt(wire.TagMDEntryType, i) {
		case 0:
			c.feed.RecordOrderBook(persistence.OrderBookEntry{
				Symbol: symbol, Side: "bid", Price: price.AsDouble(), Size: size.AsDouble(),
				Position: i, IsSnapshot: !update,
			})
		case 1:
			c.feed.RecordOrderBook(persistence.OrderBookEntry{
				Symbol: symbol, Side: "ask", Price: price.AsDouble(), Size: size.AsDouble(),
				Position: i, IsSnapshot: !update,
			})
		case 2:
			c.feed.RecordTrade(persistence.TradeEntry{
				Symbol: symbol, Price: price.AsDouble(), Size: size.AsDouble(), IsSnapshot: !update,
			})
		default:
			c.logger.Debug("datacapture: unrecognized MDEntryType at index", i)
		}
	}
}

// ExecutionReport logs and discards; cmd/datacapture never places an order,
// so this is unreachable in normal operation.
func (c *Capturer) ExecutionReport(r *wire.Reader) {
	c.logger.Warn("datacapture: unexpected ExecutionReport received")
}
