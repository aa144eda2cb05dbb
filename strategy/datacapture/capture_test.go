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

package datacapture

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bdasgupta02/phoenix-sub000/decimal"
	"github.com/bdasgupta02/phoenix-sub000/persistence"
	"github.com/bdasgupta02/phoenix-sub000/wire"
)

type fakeLogger struct{}

func (fakeLogger) Debug(args ...any)   {}
func (fakeLogger) Info(args ...any)    {}
func (fakeLogger) Warn(args ...any)    {}
func (fakeLogger) Error(args ...any)   {}
func (fakeLogger) Fatal(args ...any)   {}
func (fakeLogger) Verify(bool, ...any) {}
func (fakeLogger) CSV(args ...any)     {}

func snapshot(t *testing.T, symbol string) *wire.Reader {
	t.Helper()
	enc := wire.NewEncoder("TEST")
	enc.Reset(1, wire.MsgTypeMarketDataSnapshot)
	enc.AppendString(wire.TagSymbol, symbol)
	enc.AppendInt(wire.TagNoMDEntries, 3)
	enc.AppendChar(wire.TagMDEntryType, '0')
	enc.AppendString(wire.TagMDEntryPx, decimal.FromFloat(99.5, PriceScale).String())
	enc.AppendString(wire.TagMDEntrySize, decimal.FromFloat(10, VolumeScale).String())
	enc.AppendChar(wire.TagMDEntryType, '1')
	enc.AppendString(wire.TagMDEntryPx, decimal.FromFloat(100.5, PriceScale).String())
	enc.AppendString(wire.TagMDEntrySize, decimal.FromFloat(5, VolumeScale).String())
	enc.AppendChar(wire.TagMDEntryType, '2')
	enc.AppendString(wire.TagMDEntryPx, decimal.FromFloat(100.0, PriceScale).String())
	enc.AppendString(wire.TagMDEntrySize, decimal.FromFloat(1, VolumeScale).String())
	return wire.NewReader(enc.Serialize())
}

func TestMDUpdateRecordsBookLevelsAndTrade(t *testing.T) {
	store, err := persistence.Open(filepath.Join(t.TempDir(), "capture.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	feed := persistence.NewMarketDataFeed(store)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- feed.Run(ctx) }()

	c := New(fakeLogger{}, feed)
	c.MDUpdate(snapshot(t, "BTC-PERP"), false)

	require.Eventually(t, func() bool {
		bookCount, _ := store.CountRows("order_book")
		tradeCount, _ := store.CountRows("trades")
		return bookCount == 2 && tradeCount == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
