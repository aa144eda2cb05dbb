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

package persistence

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestFillFeedStoresRecordBeforeContextCancel(t *testing.T) {
	store := openTestStore(t)
	feed := NewFillFeed(store, "convergence")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- feed.Run(ctx) }()

	feed.Record(FillRecord{Timestamp: time.Now(), Symbol: "USDC-PERP", Strategy: "convergence", OrderId: "1", ClOrdId: "c1", Side: 1, Price: 0.998, Volume: 100, SeqNum: 5})

	require.Eventually(t, func() bool {
		var count int
		row := store.db.QueryRow("SELECT COUNT(*) FROM fills")
		_ = row.Scan(&count)
		return count == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestFillFeedDrainsRemainingOnCancel(t *testing.T) {
	store := openTestStore(t)
	feed := NewFillFeed(store, "convergence")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	feed.Record(FillRecord{Timestamp: time.Now(), Symbol: "BTC-PERP", Strategy: "sniper", OrderId: "2", ClOrdId: "c2", Side: 2, Price: 100.5, Volume: 10, SeqNum: 9})
	require.NoError(t, feed.Run(ctx))

	var count int
	row := store.db.QueryRow("SELECT COUNT(*) FROM fills")
	require.NoError(t, row.Scan(&count))
	assert.Equal(t, 1, count)
}

func TestMarketDataFeedStoresOrderBookAndTradeEntries(t *testing.T) {
	store := openTestStore(t)
	feed := NewMarketDataFeed(store)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- feed.Run(ctx) }()

	feed.RecordOrderBook(OrderBookEntry{Symbol: "ETH-PERP", Side: "bid", Price: 1000, Size: 5, Position: 0, SeqNum: 1})
	feed.RecordTrade(TradeEntry{Symbol: "ETH-PERP", Price: 1000.5, Size: 1, Aggressor: "buy", SeqNum: 2})

	require.Eventually(t, func() bool {
		var bookCount, tradeCount int
		_ = store.db.QueryRow("SELECT COUNT(*) FROM order_book").Scan(&bookCount)
		_ = store.db.QueryRow("SELECT COUNT(*) FROM trades").Scan(&tradeCount)
		return bookCount == 1 && tradeCount == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
