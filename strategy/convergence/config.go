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

import "github.com/bdasgupta02/phoenix-sub000/decimal"

// PriceScale and VolumeScale fix the fixed-point precision used throughout
// this strategy's Decimal values.
const (
	PriceScale  uint8 = 8
	VolumeScale uint8 = 8
)

// Config holds the quoter's tunable parameters, sourced from the
// convergence binary's CLI flags.
type Config struct {
	Symbol string

	TickSize            decimal.Decimal
	LotSize             decimal.Decimal
	QuoteResetThreshold decimal.Decimal
	Aggressive          bool

	// QuoteGuardLow/QuoteGuardHigh are the literal 1.0 near-parity guard
	// thresholds from the source (bestBid < 1.0, bestAsk > 1.0). Preserved
	// as config fields rather than hardcoded, per the ambiguous-behavior
	// note in DESIGN.md: this is a stablecoin-peg assumption baked into the
	// original quoter, not a universal invariant, so it is surfaced for a
	// caller to override rather than silently hardcoded.
	QuoteGuardLow  float64
	QuoteGuardHigh float64
}

// DefaultConfig returns a Config with the source's literal guard values and
// a zero reset threshold/lot size the caller must fill in.
func DefaultConfig(symbol string) Config {
	return Config{
		Symbol:         symbol,
		QuoteGuardLow:  1.0,
		QuoteGuardHigh: 1.0,
	}
}
