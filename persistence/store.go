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

// Package persistence provides durable SQLite storage for fills and market
// data, off the strategy hot path (supplemented feature: the retrieved
// source has no trade-capture database at all; this adapts the teacher's
// own market-data SQLite layer to also record strategy fills).
package persistence

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3"
)

// Store provides SQLite storage with prepared statements, reused across
// every insert so the hot path never pays SQL-parsing cost.
type Store struct {
	db *sql.DB

	stmtFill      *sql.Stmt
	stmtOrderBook *sql.Stmt
	stmtTrade     *sql.Stmt
}

// Open creates (or reuses) the SQLite file at dbPath, enabling WAL mode for
// concurrent reader/writer access while the feed goroutine is writing.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=1000")
	if err != nil {
		return nil, fmt.Errorf("persistence: opening database: %w", err)
	}

	if _, err := db.Exec(schemaDDL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("persistence: initializing schema: %w", err)
	}

	s := &Store{db: db}
	if s.stmtFill, err = db.Prepare(insertFillQuery); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("persistence: preparing fill statement: %w", err)
	}
	if s.stmtOrderBook, err = db.Prepare(insertOrderBookQuery); err != nil {
		_ = s.stmtFill.Close()
		_ = db.Close()
		return nil, fmt.Errorf("persistence: preparing order book statement: %w", err)
	}
	if s.stmtTrade, err = db.Prepare(insertTradeQuery); err != nil {
		_ = s.stmtFill.Close()
		_ = s.stmtOrderBook.Close()
		_ = db.Close()
		return nil, fmt.Errorf("persistence: preparing trade statement: %w", err)
	}

	log.Printf("persistence: SQLite database initialized at %s", dbPath)
	return s, nil
}

// Close closes every prepared statement, then the underlying database.
func (s *Store) Close() error {
	if s.stmtFill != nil {
		_ = s.stmtFill.Close()
	}
	if s.stmtOrderBook != nil {
		_ = s.stmtOrderBook.Close()
	}
	if s.stmtTrade != nil {
		_ = s.stmtTrade.Close()
	}
	return s.db.Close()
}

func (s *Store) storeFill(f FillRecord) error {
	_, err := s.stmtFill.Exec(f.Timestamp.UnixMilli(), f.Symbol, f.Strategy, f.OrderId, f.ClOrdId, f.Side, f.Price, f.Volume, f.SeqNum)
	return err
}

// BeginTransaction starts a transaction for the market data feed, which
// opens one per stored entry.
func (s *Store) BeginTransaction() (*sql.Tx, error) {
	return s.db.Begin()
}

func (s *Store) storeOrderBookBatch(tx *sql.Tx, e OrderBookEntry) error {
	_, err := tx.Stmt(s.stmtOrderBook).Exec(e.Symbol, e.Side, e.Price, e.Size, e.Position, e.SeqNum, e.IsSnapshot)
	return err
}

func (s *Store) storeTradeBatch(tx *sql.Tx, e TradeEntry) error {
	_, err := tx.Stmt(s.stmtTrade).Exec(e.Symbol, e.Price, e.Size, e.Aggressor, e.SeqNum, e.IsSnapshot)
	return err
}

// CountRows reports how many rows table holds. Exported for test callers in
// other packages that only see Store's public surface (table is never
// user-supplied in this codebase, so this is not an injection vector).
func (s *Store) CountRows(table string) (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n)
	return n, err
}
