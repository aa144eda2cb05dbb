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
	"time"
)

// fillQueueCapacity bounds how many fills can be buffered between the
// strategy goroutine and the database writer before records start dropping.
const fillQueueCapacity = 4096

// FillRecord is one execution report worth persisting: a single leg of a
// strategy's round trip, independent of which strategy produced it.
type FillRecord struct {
	Timestamp time.Time
	Symbol    string
	Strategy  string
	OrderId   string
	ClOrdId   string
	Side      uint
	Price     float64
	Volume    float64
	SeqNum    uint64
}

// FillFeed buffers FillRecords off the strategy hot path and drains them
// into Store on its own goroutine, the same hot-path/persistence split
// fixclient.TradeStore draws between the message handler and the database.
type FillFeed struct {
	store    *Store
	strategy string
	queue    chan FillRecord
}

// NewFillFeed builds a FillFeed writing to store, stamping every record
// RecordFill creates with the given strategy label (e.g. "convergence").
func NewFillFeed(store *Store, strategy string) *FillFeed {
	return &FillFeed{store: store, strategy: strategy, queue: make(chan FillRecord, fillQueueCapacity)}
}

// RecordFill implements dispatch.FillRecorder: builds a FillRecord stamped
// with the current time and this feed's strategy label, then enqueues it the
// same way Record does.
func (f *FillFeed) RecordFill(symbol, orderId, clOrdId string, side uint, price, volume float64) {
	f.Record(FillRecord{
		Timestamp: time.Now(),
		Symbol:    symbol,
		Strategy:  f.strategy,
		OrderId:   orderId,
		ClOrdId:   clOrdId,
		Side:      side,
		Price:     price,
		Volume:    volume,
	})
}

// Record enqueues a fill without blocking the caller. If the queue is full
// the record is dropped and logged rather than applying backpressure to the
// strategy goroutine — a full queue means the database has fallen behind,
// not that the strategy should stall.
func (f *FillFeed) Record(rec FillRecord) {
	select {
	case f.queue <- rec:
	default:
		log.Printf("persistence: fill queue full, dropping record for %s", rec.Symbol)
	}
}

// Run drains the queue until ctx is cancelled, storing each fill as it
// arrives. Intended to be launched as one errgroup member alongside the
// session engine's Run loop.
func (f *FillFeed) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			f.drainRemaining()
			return nil
		case rec := <-f.queue:
			if err := f.store.storeFill(rec); err != nil {
				log.Printf("persistence: store fill failed: %v", err)
			}
		}
	}
}

func (f *FillFeed) drainRemaining() {
	for {
		select {
		case rec := <-f.queue:
			if err := f.store.storeFill(rec); err != nil {
				log.Printf("persistence: store fill failed: %v", err)
			}
		default:
			return
		}
	}
}
