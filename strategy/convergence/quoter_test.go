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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdasgupta02/phoenix-sub000/decimal"
	"github.com/bdasgupta02/phoenix-sub000/orders"
	"github.com/bdasgupta02/phoenix-sub000/wire"
)

type fakeSender struct {
	sent      []orders.Order
	cancelled []string
}

func (f *fakeSender) SendQuotes(os ...orders.Order) bool {
	f.sent = append(f.sent, os...)
	return true
}
func (f *fakeSender) TakeMarketOrder(o orders.Order)           {}
func (f *fakeSender) TakeMarketOrders(os ...orders.Order) bool { return true }
func (f *fakeSender) CancelQuote(symbol, orderId string) {
	f.cancelled = append(f.cancelled, orderId)
}

type fakeLogger struct{}

func (fakeLogger) Debug(args ...any)   {}
func (fakeLogger) Info(args ...any)    {}
func (fakeLogger) Warn(args ...any)    {}
func (fakeLogger) Error(args ...any)   {}
func (fakeLogger) Fatal(args ...any)   {}
func (fakeLogger) Verify(bool, ...any) {}
func (fakeLogger) CSV(args ...any)     {}

type fakeRisk struct{ aborted bool }

func (f *fakeRisk) Aborted() bool { return f.aborted }

func mdUpdate(t *testing.T, bid, ask float64) *wire.Reader {
	t.Helper()
	enc := wire.NewEncoder("TEST")
	enc.Reset(1, wire.MsgTypeMarketDataSnapshot)
	enc.AppendInt(wire.TagNoMDEntries, 2)
	enc.AppendChar(wire.TagMDEntryType, '0')
	enc.AppendString(wire.TagMDEntryPx, decimal.FromFloat(bid, PriceScale).String())
	enc.AppendChar(wire.TagMDEntryType, '1')
	enc.AppendString(wire.TagMDEntryPx, decimal.FromFloat(ask, PriceScale).String())
	return wire.NewReader(enc.Serialize())
}

func newQuoter(sender *fakeSender) *Quoter {
	cfg := Config{
		Symbol:              "USDC-PERP",
		TickSize:            decimal.FromFloat(0.0001, PriceScale),
		LotSize:             decimal.FromFloat(100, VolumeScale),
		QuoteResetThreshold: decimal.FromFloat(0.002, PriceScale),
		QuoteGuardLow:       1.0,
		QuoteGuardHigh:      1.0,
	}
	return New(cfg, sender, fakeLogger{}, &fakeRisk{})
}

func TestMDUpdateQuotesBothSidesAroundParity(t *testing.T) {
	sender := &fakeSender{}
	q := newQuoter(sender)

	q.MDUpdate(mdUpdate(t, 0.998, 1.002), false)

	require.Len(t, sender.sent, 2)
	assert.Equal(t, orders.SideBid, sender.sent[0].Side)
	assert.Equal(t, orders.SideAsk, sender.sent[1].Side)
}

func TestMDUpdateDoesNotRequoteSamePrice(t *testing.T) {
	sender := &fakeSender{}
	q := newQuoter(sender)

	q.MDUpdate(mdUpdate(t, 0.998, 1.002), false)
	sender.sent = nil
	q.MDUpdate(mdUpdate(t, 0.998, 1.002), false)
	assert.Empty(t, sender.sent)
}

func TestExecutionReportNewOrderTracksState(t *testing.T) {
	sender := &fakeSender{}
	q := newQuoter(sender)
	q.MDUpdate(mdUpdate(t, 0.998, 1.002), false)

	enc := wire.NewEncoder("TEST")
	enc.Reset(2, wire.MsgTypeExecutionReport)
	enc.AppendInt(wire.TagOrdStatus, wire.OrdStatusNew)
	enc.AppendString(wire.TagClOrdID, "order-1")
	enc.AppendUint(wire.TagSide, uint64(orders.SideBid))
	enc.AppendDecimal(wire.TagPrice, decimal.FromFloat(0.998, PriceScale))
	enc.AppendDecimal(wire.TagLeavesQty, decimal.FromFloat(100, VolumeScale))
	r := wire.NewReader(enc.Serialize())

	q.ExecutionReport(r)
	assert.Contains(t, q.orders, "order-1")
	assert.True(t, q.bidsQuoted.Contains(decimal.FromFloat(0.998, PriceScale).Value))
}

func TestExecutionReportFillPlacesTakeProfitQuote(t *testing.T) {
	sender := &fakeSender{}
	q := newQuoter(sender)
	price := decimal.FromFloat(0.998, PriceScale)
	q.orders["order-1"] = decimal.FromFloat(100, VolumeScale)
	q.quotedLevels[price.Value] = "order-1"
	q.bidsQuoted.Insert(price.Value)

	enc := wire.NewEncoder("TEST")
	enc.Reset(3, wire.MsgTypeExecutionReport)
	enc.AppendInt(wire.TagOrdStatus, wire.OrdStatusFilled)
	enc.AppendString(wire.TagClOrdID, "order-1")
	enc.AppendUint(wire.TagSide, uint64(orders.SideBid))
	enc.AppendDecimal(wire.TagPrice, price)
	enc.AppendDecimal(wire.TagLeavesQty, decimal.New(VolumeScale))
	enc.AppendDecimal(wire.TagCumQty, decimal.FromFloat(100, VolumeScale))
	r := wire.NewReader(enc.Serialize())

	q.ExecutionReport(r)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, orders.SideAsk, sender.sent[0].Side)
	assert.True(t, sender.sent[0].TakeProfit)
	assert.NotContains(t, q.orders, "order-1")
}

func TestExecutionReportCancelledClearsState(t *testing.T) {
	sender := &fakeSender{}
	q := newQuoter(sender)
	price := decimal.FromFloat(0.998, PriceScale)
	q.orders["order-1"] = decimal.FromFloat(100, VolumeScale)
	q.quotedLevels[price.Value] = "order-1"
	q.bidsQuoted.Insert(price.Value)

	enc := wire.NewEncoder("TEST")
	enc.Reset(4, wire.MsgTypeExecutionReport)
	enc.AppendInt(wire.TagOrdStatus, wire.OrdStatusCancelled)
	enc.AppendString(wire.TagClOrdID, "order-1")
	enc.AppendUint(wire.TagSide, uint64(orders.SideBid))
	enc.AppendDecimal(wire.TagPrice, price)
	enc.AppendDecimal(wire.TagLeavesQty, decimal.FromFloat(100, VolumeScale))
	r := wire.NewReader(enc.Serialize())

	q.ExecutionReport(r)
	assert.NotContains(t, q.orders, "order-1")
	assert.False(t, q.bidsQuoted.Contains(price.Value))
}

func TestLevelSetPriorityOrder(t *testing.T) {
	bids := newLevelSet(true)
	bids.Insert(100)
	bids.Insert(300)
	bids.Insert(200)
	assert.Equal(t, []uint64{300, 200, 100}, bids.Values())

	asks := newLevelSet(false)
	asks.Insert(300)
	asks.Insert(100)
	asks.Insert(200)
	assert.Equal(t, []uint64{100, 200, 300}, asks.Values())
}
