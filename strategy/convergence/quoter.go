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

package convergence

import (
	"github.com/bdasgupta02/phoenix-sub000/decimal"
	"github.com/bdasgupta02/phoenix-sub000/dispatch"
	"github.com/bdasgupta02/phoenix-sub000/orders"
	"github.com/bdasgupta02/phoenix-sub000/wire"
)

// Quoter is the two-sided convergence market maker. It implements
// dispatch.Strategy; the session engine invokes MDUpdate on every top-of-
// book message and ExecutionReport on every fill/cancel/reject.
type Quoter struct {
	cfg      Config
	sender   dispatch.Sender
	logger   dispatch.Logger
	riskChk  dispatch.RiskChecker
	recorder dispatch.FillRecorder

	bestBid decimal.Decimal
	bestAsk decimal.Decimal
	index   decimal.Decimal

	orders       map[string]decimal.Decimal // orderId -> remaining
	quotedLevels map[uint64]string          // price raw value -> orderId
	bidsQuoted   *levelSet
	asksQuoted   *levelSet

	takeProfitFilled uint64
	baseFilled       uint64
}

// New builds a Quoter. The sender/logger/riskChk dependencies are narrow
// interfaces from the dispatch package rather than the session/logging
// packages themselves, so this package has no import cycle with session.
func New(cfg Config, sender dispatch.Sender, logger dispatch.Logger, riskChk dispatch.RiskChecker) *Quoter {
	return &Quoter{
		cfg:          cfg,
		sender:       sender,
		logger:       logger,
		riskChk:      riskChk,
		bestBid:      decimal.New(PriceScale),
		bestAsk:      decimal.Max(PriceScale),
		orders:       make(map[string]decimal.Decimal),
		quotedLevels: make(map[uint64]string),
		bidsQuoted:   newLevelSet(true),
		asksQuoted:   newLevelSet(false),
	}
}

// SetFillRecorder wires an optional trade-capture sink. Left nil, fills are
// never persisted (the --trade-db flag is off).
func (q *Quoter) SetFillRecorder(r dispatch.FillRecorder) { q.recorder = r }

// MDUpdate handles a MarketDataSnapshot/Incremental message: refresh
// bestBid/bestAsk from the 269=0/1 entries, sweep stale quotes, then requote
// (§4.6.1 steps 1-3).
func (q *Quoter) MDUpdate(r *wire.Reader, _ bool) {
	lastBid, lastAsk := q.bestBid, q.bestAsk

	bidIdx, askIdx := -1, -1
	numUpdates := r.FieldCount(wire.TagMDEntryType)
	for i := 0; i < numUpdates; i++ {
		switch r.GetInt(wire.TagMDEntryType, i) {
		case 0:
			bidIdx = i
		case 1:
			askIdx = i
		}
	}

	if bidIdx > -1 {
		bid := r.GetDecimal(wire.TagMDEntryPx, bidIdx, PriceScale)
		q.logger.Verify(!bid.Error, "convergence: decimal parse error on bid")
		q.bestBid = bid
	}
	if askIdx > -1 {
		ask := r.GetDecimal(wire.TagMDEntryPx, askIdx, PriceScale)
		q.logger.Verify(!ask.Error, "convergence: decimal parse error on ask")
		q.bestAsk = ask
	}
	q.updateIndex(r)

	q.sweepStale(q.bidsQuoted, q.bestBid, q.cfg.QuoteResetThreshold, true, "BID")
	q.sweepStale(q.asksQuoted, q.bestAsk, q.cfg.QuoteResetThreshold, false, "ASK")

	q.requote(lastBid, lastAsk)
}

// sweepStale cancels quotes the reset threshold has left behind, matching
// the source's `best - threshold > price` (bid) / `best + threshold <
// price` (ask) rule. Visited in priority order (best price first) with an
// early break at the first non-match, so levels after a quote that is still
// within threshold are not examined in that pass.
func (q *Quoter) sweepStale(set *levelSet, best, threshold decimal.Decimal, bidSide bool, label string) {
	for _, raw := range set.Values() {
		var trigger bool
		if bidSide {
			trigger = best.Sub(threshold).Value > raw
		} else {
			trigger = best.Add(threshold).Value < raw
		}
		if !trigger {
			break
		}
		orderId := q.quotedLevels[raw]
		q.sender.CancelQuote(q.cfg.Symbol, orderId)
		q.logger.Info("[RESET]", label, decimal.FromRaw(raw, best.Scale).AsDouble(), "with best", best.AsDouble())
	}
}

func (q *Quoter) requote(lastBid, lastAsk decimal.Decimal) {
	tick := q.cfg.TickSize
	lot := q.cfg.LotSize
	doubleLot := lot.Add(lot)

	if q.bestBid.LessFloat(q.cfg.QuoteGuardLow) && !q.bestBid.Equal(lastBid) && !q.hasLevel(q.bestBid) {
		if q.cfg.Aggressive {
			aggressiveBid := q.bestBid.Add(tick)
			if aggressiveBid.LessFloat(q.cfg.QuoteGuardLow) && aggressiveBid.Less(q.bestAsk) && !q.hasLevel(aggressiveBid) {
				q.sendQuote(orders.Quote{Price: aggressiveBid, Volume: lot, Side: orders.SideBid})
				q.sendQuote(orders.Quote{Price: q.bestBid, Volume: doubleLot, Side: orders.SideBid})
			} else {
				q.sendQuote(orders.Quote{Price: q.bestBid, Volume: doubleLot, Side: orders.SideBid})
			}
		} else {
			q.sendQuote(orders.Quote{Price: q.bestBid, Volume: lot, Side: orders.SideBid})
		}
	}

	if q.bestAsk.GreaterFloat(q.cfg.QuoteGuardHigh) && !q.bestAsk.Equal(lastAsk) && !q.hasLevel(q.bestAsk) {
		if q.cfg.Aggressive {
			aggressiveAsk := q.bestAsk.Sub(tick)
			if aggressiveAsk.GreaterFloat(q.cfg.QuoteGuardHigh) && q.bestBid.Less(aggressiveAsk) && !q.hasLevel(aggressiveAsk) {
				q.sendQuote(orders.Quote{Price: aggressiveAsk, Volume: lot, Side: orders.SideAsk})
				q.sendQuote(orders.Quote{Price: q.bestAsk, Volume: doubleLot, Side: orders.SideAsk})
			} else {
				q.sendQuote(orders.Quote{Price: q.bestAsk, Volume: doubleLot, Side: orders.SideAsk})
			}
		} else {
			q.sendQuote(orders.Quote{Price: q.bestAsk, Volume: lot, Side: orders.SideAsk})
		}
	}
}

func (q *Quoter) hasLevel(price decimal.Decimal) bool {
	_, ok := q.quotedLevels[price.Value]
	return ok
}

func (q *Quoter) sendQuote(quote orders.Quote) {
	if q.riskChk.Aborted() {
		return
	}
	q.sender.SendQuotes(orders.Order{
		Symbol:     q.cfg.Symbol,
		Price:      quote.Price,
		Volume:     quote.Volume,
		Side:       quote.Side,
		IsLimit:    true,
		TakeProfit: quote.TakeProfit,
	})
	side := "BID"
	if quote.Side == orders.SideAsk {
		side = "ASK"
	}
	q.logger.Info("[QUOTED]", takeProfitLabel(quote.TakeProfit), side, quote.Volume.AsDouble(), "@", quote.Price.AsDouble())
}

func takeProfitLabel(tp bool) string {
	if tp {
		return "[TAKE PROFIT]"
	}
	return ""
}

func (q *Quoter) updateIndex(r *wire.Reader) {
	newIndex := r.GetDecimal(wire.TagIndexPrice, 0, PriceScale)
	if !q.index.Equal(newIndex) && !newIndex.IsZero() {
		q.index = newIndex
		q.logger.Info("Index price changed to", q.index.AsDouble())
	}
}

// ExecutionReport branches on OrdStatus (39), mirroring §4.6.1's New /
// Partial|Filled / Cancelled|Rejected handling.
func (q *Quoter) ExecutionReport(r *wire.Reader) {
	status := r.GetInt(wire.TagOrdStatus, 0)
	orderId := r.GetString(wire.TagClOrdID, 0)
	clOrderId := r.GetString(wire.TagOrigClOrdID, 0)
	remaining := r.GetDecimal(wire.TagLeavesQty, 0, VolumeScale)
	justExecuted := r.GetDecimal(wire.TagCumQty, 0, VolumeScale)
	side := uint(r.GetInt(wire.TagSide, 0))
	price := r.GetDecimal(wire.TagPrice, 0, PriceScale)
	q.logger.Verify(!price.Error && !remaining.Error, "convergence: decimal parse error")

	switch status {
	case wire.OrdStatusNew:
		q.logOrder("[NEW ORDER]", orderId, clOrderId, side, price, remaining)
		q.orders[orderId] = remaining
		q.quotedLevels[price.Value] = orderId
		q.sideSet(side).Insert(price.Value)

	case wire.OrdStatusPartiallyFilled, wire.OrdStatusFilled:
		q.logOrder("[FILL]", orderId, clOrderId, side, price, justExecuted)
		if q.recorder != nil {
			q.recorder.RecordFill(q.cfg.Symbol, orderId, clOrderId, side, price.AsDouble(), justExecuted.AsDouble())
		}
		lastRemaining := q.orders[orderId]
		executed := lastRemaining.Sub(remaining)

		if len(clOrderId) > 0 && clOrderId[0] == 't' {
			q.takeProfitFilled += justExecuted.Value
			q.baseFilled += justExecuted.Value
		} else if executed.Value > 0 {
			reversedSide := orders.SideAsk
			reversedPrice := price.Add(q.cfg.TickSize)
			if side == orders.SideAsk {
				reversedSide = orders.SideBid
				reversedPrice = price.Sub(q.cfg.TickSize)
			}
			q.sendQuote(orders.Quote{Price: reversedPrice, Volume: executed, Side: reversedSide, TakeProfit: true})
		}

		q.logger.Info("[EDGE CAPTURED]", q.takeProfitFilled)
		q.logger.Info("[EXPOSURE]", q.baseFilled)

		if remaining.IsZero() {
			delete(q.orders, orderId)
			delete(q.quotedLevels, price.Value)
			q.sideSet(side).Erase(price.Value)
		} else {
			q.orders[orderId] = remaining
		}

	case wire.OrdStatusCancelled:
		q.logOrder("[CANCELLED]", orderId, clOrderId, side, price, remaining)
		delete(q.orders, orderId)
		delete(q.quotedLevels, price.Value)
		q.sideSet(side).Erase(price.Value)

	case wire.OrdStatusRejected:
		reason := r.GetString(wire.TagText, 0)
		q.logOrder("[REJECTED]", orderId, clOrderId, side, price, remaining)
		q.logger.Info("with reason", reason)
		delete(q.orders, orderId)
		delete(q.quotedLevels, price.Value)
		q.sideSet(side).Erase(price.Value)
	}
}

func (q *Quoter) sideSet(side uint) *levelSet {
	if side == orders.SideBid {
		return q.bidsQuoted
	}
	return q.asksQuoted
}

func (q *Quoter) logOrder(kind, orderId, clOrderId string, side uint, price, volume decimal.Decimal) {
	label := "BID"
	if side == orders.SideAsk {
		label = "ASK"
	}
	q.logger.Info(kind, orderId, clOrderId, label, volume.AsDouble(), "@", price.AsDouble())
}
