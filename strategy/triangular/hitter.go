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

package triangular

import (
	"runtime"

	"github.com/bdasgupta02/phoenix-sub000/decimal"
	"github.com/bdasgupta02/phoenix-sub000/dispatch"
	"github.com/bdasgupta02/phoenix-sub000/orders"
	"github.com/bdasgupta02/phoenix-sub000/wire"
)

// topLevel is a single leg's top-of-book. New starts bid at zero and ask at
// the maximum value (quantities at zero), following book.TopLevel's
// convention.
type topLevel struct {
	bid, ask       decimal.Decimal
	bidQty, askQty decimal.Decimal
}

// Hitter is the three-leg arbitrageur. It implements dispatch.Strategy; the
// session engine invokes MDUpdate on every top-of-book message (across all
// three subscribed instruments) and ExecutionReport on every fill/cancel/
// reject.
type Hitter struct {
	cfg      Config
	sender   dispatch.Sender
	logger   dispatch.Logger
	riskChk  dispatch.RiskChecker
	recorder dispatch.FillRecorder

	bestPrices [3]topLevel
	sentOrders [3]orders.Order

	fillMode bool
	filled   uint
	pnl      float64
}

// New builds a Hitter.
func New(cfg Config, sender dispatch.Sender, logger dispatch.Logger, riskChk dispatch.RiskChecker) *Hitter {
	h := &Hitter{cfg: cfg, sender: sender, logger: logger, riskChk: riskChk}
	for i := range h.bestPrices {
		h.bestPrices[i] = topLevel{
			bid: decimal.New(PriceScale),
			ask: decimal.Max(PriceScale),
		}
	}
	return h
}

// SetFillRecorder wires an optional trade-capture sink. Left nil, fills are
// never persisted (the --trade-db flag is off).
func (h *Hitter) SetFillRecorder(r dispatch.FillRecorder) { h.recorder = r }

// MDUpdate refreshes one leg's top-of-book and, only when the middle
// (Steth) leg is the one that just updated, re-checks both no-arbitrage
// directions across all three legs (§4.6.3).
func (h *Hitter) MDUpdate(r *wire.Reader, update bool) {
	symbol := r.GetString(wire.TagSymbol, 0)
	leg, ok := h.cfg.instrumentIndex[symbol]
	if !ok {
		h.logger.Warn("triangular: unknown instrument", symbol)
		return
	}

	newBid := decimal.New(PriceScale)
	newAsk := decimal.New(PriceScale)
	newBidQty := decimal.New(VolumeScale)
	newAskQty := decimal.New(VolumeScale)

	numUpdates := r.FieldCount(wire.TagMDEntryType)
	for i := 0; i < numUpdates; i++ {
		switch r.GetInt(wire.TagMDEntryType, i) {
		case 0:
			newBid.MinOrZero(r.GetDecimal(wire.TagMDEntryPx, i, PriceScale))
			newBidQty.MinOrZero(r.GetDecimal(wire.TagMDEntrySize, i, VolumeScale))
		case 1:
			newAsk.MinOrZero(r.GetDecimal(wire.TagMDEntryPx, i, PriceScale))
			newAskQty.MinOrZero(r.GetDecimal(wire.TagMDEntrySize, i, VolumeScale))
		}
	}

	if newBid.IsZero() || newAsk.IsZero() {
		h.logger.Warn("Invalid prices")
		return
	}
	h.bestPrices[leg] = topLevel{bid: newBid, ask: newAsk, bidQty: newBidQty, askQty: newAskQty}

	if leg != LegSteth || h.fillMode || !update {
		return
	}
	h.checkArbitrage()
}

func (h *Hitter) checkArbitrage() {
	eth := h.bestPrices[LegEth]
	steth := h.bestPrices[LegSteth]
	cross := h.bestPrices[LegCross]
	margin := h.cfg.TriggerThreshold

	// Case 1: buy ETH, sell STETH, buy the STETH/ETH cross.
	if eth.ask.AsDouble()*cross.ask.AsDouble()*(1+margin) < steth.bid.AsDouble() {
		volume := minVolume(eth.askQty, cross.askQty, steth.bidQty, h.cfg.VolumeSize)

		buyEth := orders.Order{Symbol: h.cfg.Instruments[LegEth], Price: eth.ask, Volume: volume, Side: orders.SideBid}
		sellSteth := orders.Order{Symbol: h.cfg.Instruments[LegSteth], Price: steth.bid, Volume: volume, Side: orders.SideAsk}
		buyCross := orders.Order{Symbol: h.cfg.Instruments[LegCross], Price: cross.ask, Volume: volume, Side: orders.SideBid}

		if !h.riskChk.Aborted() && h.sender.TakeMarketOrders(sellSteth, buyEth, buyCross) {
			h.sentOrders = [3]orders.Order{buyEth, sellSteth, buyCross}
			h.fillMode = true
			h.filled = 0
		}
		h.logger.Info("[OPP CASE 1] ETH", eth.ask.AsDouble(), "* STETH/ETH", cross.ask.AsDouble(), "< STETH", steth.bid.AsDouble())
	}

	// Case 2: sell ETH, buy STETH, sell the STETH/ETH cross.
	if steth.ask.AsDouble() < eth.bid.AsDouble()*cross.bid.AsDouble()*(1-margin) {
		volume := minVolume(steth.askQty, eth.bidQty, cross.bidQty, h.cfg.VolumeSize)

		sellEth := orders.Order{Symbol: h.cfg.Instruments[LegEth], Price: eth.bid, Volume: volume, Side: orders.SideAsk}
		buySteth := orders.Order{Symbol: h.cfg.Instruments[LegSteth], Price: steth.ask, Volume: volume, Side: orders.SideBid}
		sellCross := orders.Order{Symbol: h.cfg.Instruments[LegCross], Price: cross.bid, Volume: volume, Side: orders.SideAsk}

		if !h.riskChk.Aborted() && h.sender.TakeMarketOrders(buySteth, sellEth, sellCross) {
			h.sentOrders = [3]orders.Order{sellEth, buySteth, sellCross}
			h.fillMode = true
			h.filled = 0
		}
		h.logger.Info("[OPP CASE 2] ETH", eth.bid.AsDouble(), "* STETH/ETH", cross.bid.AsDouble(), "> STETH", steth.ask.AsDouble())
	}
}

func minVolume(vals ...decimal.Decimal) decimal.Decimal {
	min := vals[0]
	for _, v := range vals[1:] {
		if v.Less(min) {
			min = v
		}
	}
	return min
}

// ExecutionReport branches on OrdStatus (39), mirroring §4.6.3's New /
// PartialFill / Filled / Cancelled / Rejected handling. A cancelled leg is
// bumped in price (or re-priced off the current cross touch, for the cross
// leg) and resubmitted at market in a busy-retry loop, matching the
// source's `while (!retrieve(...));`.
func (h *Hitter) ExecutionReport(r *wire.Reader) {
	symbol := r.GetString(wire.TagSymbol, 0)
	status := r.GetInt(wire.TagOrdStatus, 0)
	orderId := r.GetString(wire.TagClOrdID, 0)
	remaining := r.GetDecimal(wire.TagLeavesQty, 0, VolumeScale)
	justExecuted := r.GetDecimal(wire.TagCumQty, 0, VolumeScale)
	side := uint(r.GetInt(wire.TagSide, 0))
	price := r.GetDecimal(wire.TagPrice, 0, PriceScale)

	switch status {
	case wire.OrdStatusNew:
		h.logOrder("[NEW ORDER]", orderId, side, price, remaining)
		leg, ok := h.cfg.instrumentIndex[symbol]
		h.logger.Verify(ok, "triangular: symbol", symbol, "doesn't exist")
		if !ok {
			return
		}
		h.sentOrders[leg].OrderId = orderId
		h.sentOrders[leg].IsInFlight = false

	case wire.OrdStatusPartiallyFilled:
		h.logOrder("[PARTIAL FILL]", orderId, side, price, justExecuted)

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
		h.logOrderFloat("[FILL]", orderId, side, avgFillPrice, justExecuted)

		leg, ok := h.cfg.instrumentIndex[symbol]
		h.logger.Verify(ok, "triangular: symbol", symbol, "doesn't exist")
		if !ok {
			return
		}
		if h.recorder != nil {
			h.recorder.RecordFill(symbol, orderId, "", side, avgFillPrice, totalQty)
		}
		h.sentOrders[leg].IsFilled = true
		h.sentOrders[leg].Price = decimal.FromFloat(avgFillPrice, PriceScale)
		h.sentOrders[leg].IsInFlight = false

		h.filled++
		if h.filled == 3 {
			h.fillMode = false
			h.filled = 0
			h.logger.Info("All orders filled")
			h.updatePnl()
		}

	case wire.OrdStatusCancelled:
		h.logOrder("[CANCELLED]", orderId, side, price, remaining)
		leg, ok := h.cfg.instrumentIndex[symbol]
		h.logger.Verify(ok, "triangular: symbol", symbol, "doesn't exist")
		if !ok {
			return
		}
		h.retryCancelledLeg(leg)
		h.logger.Info("Retrying", symbol)

	case wire.OrdStatusRejected:
		reason := r.GetString(wire.TagText, 0)
		h.logOrder("[REJECTED]", orderId, side, price, remaining)
		h.logger.Info("with reason", reason)

	default:
		h.logger.Warn("Other status type", status)
	}
}

func (h *Hitter) retryCancelledLeg(leg int) {
	order := &h.sentOrders[leg]

	if leg != LegCross {
		if order.Side == orders.SideBid {
			order.Price = decimal.FromFloat(order.Price.AsDouble()+retryPriceBump, PriceScale)
		} else {
			order.Price = decimal.FromFloat(order.Price.AsDouble()-retryPriceBump, PriceScale)
		}
	} else if order.Side == orders.SideBid {
		order.Price = h.bestPrices[leg].bid
	} else {
		order.Price = h.bestPrices[leg].ask
	}

	for !h.sender.TakeMarketOrders(*order) {
		runtime.Gosched()
	}
	order.IsInFlight = false
}

func (h *Hitter) updatePnl() {
	steth := h.sentOrders[LegSteth]
	stethPrice := steth.Price.AsDouble()
	ethPrice := h.sentOrders[LegEth].Price.AsDouble()
	crossPrice := h.sentOrders[LegCross].Price.AsDouble()
	multiplier := steth.Volume.AsDouble() * h.cfg.ContractSize

	if h.sentOrders[LegEth].Side == orders.SideBid {
		h.pnl += (stethPrice - (ethPrice * crossPrice)) * multiplier
	} else {
		h.pnl += ((ethPrice * crossPrice) - stethPrice) * multiplier
	}
	h.logger.Info("[PNL]", h.pnl, "in USD (estimate)")
}

func (h *Hitter) logOrder(kind, orderId string, side uint, price, volume decimal.Decimal) {
	h.logOrderFloat(kind, orderId, side, price.AsDouble(), volume)
}

// logOrderFloat's volume*0.0001 display scaling is a literal carryover from
// the source; preserved rather than second-guessed.
func (h *Hitter) logOrderFloat(kind, orderId string, side uint, price float64, volume decimal.Decimal) {
	label := "BUY"
	if side == orders.SideAsk {
		label = "SELL"
	}
	h.logger.Info(kind, orderId, label, volume.AsDouble()*0.0001, "@", price)
}
