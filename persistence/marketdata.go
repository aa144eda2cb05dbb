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
	"log"
)

// marketDataQueueCapacity bounds how many book/trade entries can queue
// between the snapshot parser and the database writer.
const marketDataQueueCapacity = 8192

// OrderBookEntry is one bid or ask level from a MarketDataSnapshot/Incremental.
type OrderBookEntry struct {
	Symbol     string
	Side       string
	Price      float64
	Size       float64
	Position   int
	SeqNum     uint64
	IsSnapshot bool
}

// TradeEntry is one print (MDEntryType=2) from a MarketDataSnapshot/Incremental.
type TradeEntry struct {
	Symbol     string
	Price      float64
	Size       float64
	Aggressor  string
	SeqNum     uint64
	IsSnapshot bool
}

// MarketDataFeed queues book levels and trade prints off the hot path and
// stores each entry in its own transaction (see Run).
type MarketDataFeed struct {
	store       *Store
	orderBookCh chan OrderBookEntry
	tradeCh     chan TradeEntry
}

// NewMarketDataFeed builds a MarketDataFeed writing to store.
func NewMarketDataFeed(store *Store) *MarketDataFeed {
	return &MarketDataFeed{
		store:       store,
		orderBookCh: make(chan OrderBookEntry, marketDataQueueCapacity),
		tradeCh:     make(chan TradeEntry, marketDataQueueCapacity),
	}
}

// RecordOrderBook enqueues a book level without blocking the parser.
func (f *MarketDataFeed) RecordOrderBook(e OrderBookEntry) {
	select {
	case f.orderBookCh <- e:
	default:
		log.Printf("persistence: order book queue full, dropping entry for %s", e.Symbol)
	}
}

// RecordTrade enqueues a print without blocking the parser.
func (f *MarketDataFeed) RecordTrade(e TradeEntry) {
	select {
	case f.tradeCh <- e:
	default:
		log.Printf("persistence: trade queue full, dropping entry for %s", e.Symbol)
	}
}

// Run drains both queues until ctx is cancelled, each received entry
// stored in its own transaction (a batch boundary finer than the
// teacher's one-transaction-per-message, since this feed has already lost
// the message grouping by the time entries reach the channel).
func (f *MarketDataFeed) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			f.drainRemaining()
			return nil
		case e := <-f.orderBookCh:
			f.storeOrderBook(e)
		case e := <-f.tradeCh:
			f.storeTrade(e)
		}
	}
}

func (f *MarketDataFeed) storeOrderBook(e OrderBookEntry) {
	tx, err := f.store.BeginTransaction()
	if err != nil {
		log.Printf("persistence: begin order book transaction: %v", err)
		return
	}
	if err := f.store.storeOrderBookBatch(tx, e); err != nil {
		log.Printf("persistence: store order book entry: %v", err)
		_ = tx.Rollback()
		return
	}
	if err := tx.Commit(); err != nil {
		log.Printf("persistence: commit order book transaction: %v", err)
	}
}

func (f *MarketDataFeed) storeTrade(e TradeEntry) {
	tx, err := f.store.BeginTransaction()
	if err != nil {
		log.Printf("persistence: begin trade transaction: %v", err)
		return
	}
	if err := f.store.storeTradeBatch(tx, e); err != nil {
		log.Printf("persistence: store trade entry: %v", err)
		_ = tx.Rollback()
		return
	}
	if err := tx.Commit(); err != nil {
		log.Printf("persistence: commit trade transaction: %v", err)
	}
}

func (f *MarketDataFeed) drainRemaining() {
	for {
		select {
		case e := <-f.orderBookCh:
			f.storeOrderBook(e)
		case e := <-f.tradeCh:
			f.storeTrade(e)
		default:
			return
		}
	}
}
