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

// schemaDDL creates every table this package writes to. Run once per Open,
// guarded by IF NOT EXISTS so repeated opens of the same file are cheap.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS fills (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	ts_ms      INTEGER NOT NULL,
	symbol     TEXT NOT NULL,
	strategy   TEXT NOT NULL,
	order_id   TEXT NOT NULL,
	cl_ord_id  TEXT NOT NULL,
	side       INTEGER NOT NULL,
	price      REAL NOT NULL,
	volume     REAL NOT NULL,
	seq_num    INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS order_book (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	symbol      TEXT NOT NULL,
	side        TEXT NOT NULL,
	price       REAL NOT NULL,
	size        REAL NOT NULL,
	position    INTEGER NOT NULL,
	seq_num     INTEGER NOT NULL,
	is_snapshot INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS trades (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	symbol      TEXT NOT NULL,
	price       REAL NOT NULL,
	size        REAL NOT NULL,
	aggressor   TEXT NOT NULL,
	seq_num     INTEGER NOT NULL,
	is_snapshot INTEGER NOT NULL
);
`

const insertFillQuery = `
INSERT INTO fills (ts_ms, symbol, strategy, order_id, cl_ord_id, side, price, volume, seq_num)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

const insertOrderBookQuery = `
INSERT INTO order_book (symbol, side, price, size, position, seq_num, is_snapshot)
VALUES (?, ?, ?, ?, ?, ?, ?)`

const insertTradeQuery = `
INSERT INTO trades (symbol, price, size, aggressor, seq_num, is_snapshot)
VALUES (?, ?, ?, ?, ?, ?)`
