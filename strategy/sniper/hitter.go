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

package sniper

import (
	"time"

	"github.com/bdasgupta02/phoenix-sub000/decimal"
	"github.com/bdasgupta02/phoenix-sub000/dispatch"
	"github.com/bdasgupta02/phoenix-sub000/orders"
	"github.com/bdasgupta02/phoenix-sub000/wire"
)

// Hitter is the pickoff strategy. It implements dispatch.Strategy; the
// session engine invokes MDUpdate on every top-of-book message and
// ExecutionReport on every fill/cancel/reject.
//
// Confirmed against BTC/USDC: when the index runs more than 10 ticks past
// the quoted touch, one side of the book is stale. Hitting it and resting
// the other leg one tick behind it captures the difference once both legs
// fill; if only one leg fills within exitTimeout, the position is flattened
// at market instead of left open.
type Hitter struct {
	cfg      Config
	sender   dispatch.Sender
	logger   dispatch.Logger
	riskChk  dispatch.RiskChecker
	recorder dispatch.FillRecorder

	bestBid   decimal.Decimal
	bestAsk   decimal.Decimal
	bestIndex decimal.Decimal

	fillMode    bool
	filled      uint
	sentBid     orders.Order
	sentAsk     orders.Order
	lastOrdered time.Time

	pnlQty float64
}

// New builds a Hitter.
func New(cfg Config, sender dispatch.Sender, logger dispatch.Logger, riskChk dispatch.RiskChecker) *Hitter {
	return &Hitter{
		cfg:       cfg,
		sender:    sender,
		logger:    logger,
		riskChk:   riskChk,
		bestBid:   decimal.New(PriceScale),
		bestAsk:   decimal.Max(PriceScale),
		bestIndex: decimal.Max(PriceScale),
	}
}

// SetFillRecorder wires an optional trade-capture sink. Left nil, fills are
// never persisted (the --trade-db flag is off).
func (h *Hitter) SetFillRecorder(r dispatch.FillRecorder) { h.recorder = r }

// MDUpdate handles a MarketDataSnapshot/Incremental message. The 268 entry
// block mixes bid (269=0), ask (269=1) and index (269=2) updates; each is
// folded into the running best value with MinOrZero, which keeps the lowest
// non-zero price of each type (the closest level for asks, the farthest for
// bids when several bid levels arrive), and a round with no entry of a given
// type leaves that side unchanged.
func (h *Hitter) MDUpdate(r *wire.Reader, update bool) {
	newBid := decimal.New(PriceScale)
	newAsk := decimal.New(PriceScale)
	newIndex := decimal.New(PriceScale)

	numUpdates := r.FieldCount(wire.TagMDEntryType)
	for i := 0; i < numUpdates; i++ {
		price := r.GetDecimal(wire.TagMDEntryPx, i, PriceScale)
		switch r.GetInt(wire.TagMDEntryType, i) {
		case 0:
			newBid.MinOrZero(price)
		case 1:
			newAsk.MinOrZero(price)
		case 2:
			newIndex.MinOrZero(price)
		}
	}

	if !newBid.IsZero() {
		h.bestBid = newBid
	}
	if !newAsk.IsZero() {
		h.bestAsk = newAsk
	}
	if !newIndex.IsZero() {
		h.bestIndex = newIndex
	}

	if h.fillMode {
		if time.Since(h.lastOrdered) >= exitTimeout {
			h.exitStalePosition()
		}
		return
	}

	if !update {
		return
	}

	tick := h.cfg.TickSize
	threshold := tick.AsDouble() * triggerTicks

	// Case 1: index has run below the bid by more than threshold ticks -
	// sell at the bid, rest the bid one tick below it.
	if h.bestIndex.AsDouble() < h.bestBid.AsDouble()-threshold {
		h.quoteSpread(h.bestBid.Sub(tick), h.bestBid)
	}

	// Case 2: index has run above the ask by more than threshold ticks -
	// buy at the ask, rest the ask one tick above it.
	if h.bestIndex.AsDouble() > h.bestAsk.AsDouble()+threshold {
		h.quoteSpread(h.bestAsk, h.bestAsk.Add(tick))
	}
}

// exitStalePosition tears down a round trip that has been open past
// exitTimeout, per the filled count: neither leg filled cancels both,
// exactly one leg filled cancels the other and exits the filled leg at
// market, and any other value indicates corrupted state.
func (h *Hitter) exitStalePosition() {
	switch h.filled {
	case 0:
		h.logger.Info("Cancelling both unfilled orders")
		h.sender.CancelQuote(h.cfg.Symbol, h.sentBid.OrderId)
		h.sender.CancelQuote(h.cfg.Symbol, h.sentAsk.OrderId)

	case 1:
		h.logger.Warn("Exiting one sided stale order")
		if !h.sentBid.IsFilled {
			h.sender.CancelQuote(h.cfg.Symbol, h.sentBid.OrderId)
			h.sentBid.IsLimit = false
			h.sender.TakeMarketOrder(h.sentBid)
		}
		if !h.sentAsk.IsFilled {
			h.sender.CancelQuote(h.cfg.Symbol, h.sentAsk.OrderId)
			h.sentAsk.IsLimit = false
			h.sender.TakeMarketOrder(h.sentAsk)
		}

	default:
		h.logger.Fatal("Invalid filled value:", h.filled)
	}
}

func (h *Hitter) quoteSpread(bidPrice, askPrice decimal.Decimal) {
	if h.riskChk.Aborted() {
		return
	}

	bid := orders.Order{Symbol: h.cfg.Symbol, Price: bidPrice, Volume: h.cfg.Lots, Side: orders.SideBid, IsLimit: true}
	ask := orders.Order{Symbol: h.cfg.Symbol, Price: askPrice, Volume: h.cfg.Lots, Side: orders.SideAsk, IsLimit: true}

	if h.sender.SendQuotes(bid, ask) {
		h.fillMode = true
		h.filled = 0
		h.sentBid = bid
		h.sentAsk = ask
		h.lastOrdered = time.Now()
	}
}

// ExecutionReport branches on OrdStatus (39), mirroring §4.6.2's New /
// PartialFill / Filled / Cancelled / Rejected handling.
func (h *Hitter) ExecutionReport(r *wire.Reader) {
	status := r.GetInt(wire.TagOrdStatus, 0)
	orderId := r.GetString(wire.TagClOrdID, 0)
	side := uint(r.GetInt(wire.TagSide, 0))
	remaining := r.GetDecimal(wire.TagLeavesQty, 0, VolumeScale)
	price := r.GetDecimal(wire.TagPrice, 0, PriceScale)
	h.logger.Verify(!price.Error && !remaining.Error, "sniper: decimal parse error")

	switch status {
	case wire.OrdStatusPartiallyFilled:
		h.logOrder("[PARTIAL FILL]", orderId, side, price, remaining)

	case wire.OrdStatusCancelled:
		h.logOrder("[CANCELLED]", orderId, side, price, remaining)
		h.filled--
		if h.filled == 0 {
			h.fillMode = false
		}

	case wire.OrdStatusNew:
		h.logOrder("[NEW ORDER]", orderId, side, price, remaining)
		h.fillMode = true
		if side == orders.SideBid {
			h.sentBid.OrderId = orderId
		} else {
			h.sentAsk.OrderId = orderId
		}

	case wire.OrdStatusFilled:
		numFills := r.FieldCount(wire.TagFillQty)
		var avgFillPrice, totalQty float64
		for i := 0; i < numFills; i++ {
			fillQty := r.GetDecimal(wire.TagFillQty, i, VolumeScale).AsDouble()
			fillPrice := r.GetDecimal(wire.TagFillPx, i, PriceScale).AsDouble()
			totalQty += fillQty
			avgFillPrice += fillQty * fillPrice
		}
		if totalQty != 0 && avgFillPrice != 0 {
			avgFillPrice /= totalQty
		}

		h.logOrderFloat("[FILL]", orderId, side, avgFillPrice, remaining)
		if h.recorder != nil {
			h.recorder.RecordFill(h.cfg.Symbol, orderId, "", side, avgFillPrice, totalQty)
		}

		if side == orders.SideBid {
			h.sentBid.IsFilled = true
			h.sentBid.Price = decimal.FromFloat(avgFillPrice, PriceScale)
		} else {
			h.sentAsk.IsFilled = true
			h.sentAsk.Price = decimal.FromFloat(avgFillPrice, PriceScale)
		}

		h.filled++
		if h.filled == 2 {
			h.fillMode = false
			h.filled = 0
			h.pnlQty += (h.sentAsk.Price.AsDouble() - h.sentBid.Price.AsDouble()) * h.cfg.Lots.AsDouble()
			h.logger.Info("All orders filled with pnl", h.pnlQty, "(in contract size)")
		}

	case wire.OrdStatusRejected:
		reason := r.GetString(wire.TagText, 0)
		h.logOrder("[REJECTED]", orderId, side, price, remaining)
		h.logger.Info("with reason", reason)
		h.filled--
		if h.filled == 0 {
			h.fillMode = false
		}

	default:
		h.logger.Warn("Other status type", status)
	}
}

func (h *Hitter) logOrder(kind, orderId string, side uint, price, remaining decimal.Decimal) {
	h.logOrderFloat(kind, orderId, side, price.AsDouble(), remaining)
}

func (h *Hitter) logOrderFloat(kind, orderId string, side uint, price float64, remaining decimal.Decimal) {
	label := "BID"
	if side == orders.SideAsk {
		label = "ASK"
	}
	h.logger.Info(kind, orderId, label, "with remaining", remaining.AsDouble(), "@", price)
}
