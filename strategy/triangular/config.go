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

// Package triangular implements the three-leg ETH/STETH/cross arbitrageur
// (spec §4.6.3): it watches three instruments' top-of-book simultaneously
// and, whenever the STETH quote moves, checks both no-arbitrage directions
// across all three legs at once.
package triangular

import "github.com/bdasgupta02/phoenix-sub000/decimal"

// PriceScale and VolumeScale fix the fixed-point precision for this
// strategy's Decimal values.
const (
	PriceScale  uint8 = 8
	VolumeScale uint8 = 8
)

// Leg indices into Config.Instruments / Hitter.bestPrices / Hitter.sentOrders.
// Only the middle leg (Steth) re-evaluates the arbitrage trigger on update;
// the other two legs only refresh their stored top-of-book.
const (
	LegEth   = 0
	LegSteth = 1
	LegCross = 2
)

// retryPriceBump is the absolute price adjustment applied to a cancelled
// non-cross leg before resubmitting at market, matching the source's
// literal `price += 0.1` / `price -= 0.1`.
const retryPriceBump = 0.1

// Config holds the arbitrageur's tunable parameters, sourced from the
// triangular binary's CLI flags.
type Config struct {
	Instruments [3]string
	// instrumentIndex maps a wire symbol back to its leg index; built by
	// NewConfig from Instruments rather than requiring the caller to keep
	// both in sync by hand.
	instrumentIndex map[string]int

	VolumeSize   decimal.Decimal
	ContractSize float64

	// TriggerThreshold is a supplemented safety margin (not present in the
	// retrieved source, which triggers on any strictly-positive edge) added
	// as a fractional margin on both no-arbitrage inequalities so the
	// strategy doesn't fire on an edge too thin to survive both legs'
	// slippage. Zero reproduces the source's literal behavior.
	TriggerThreshold float64
}

// NewConfig builds a Config and its symbol->leg index.
func NewConfig(instruments [3]string, volumeSize decimal.Decimal, contractSize, triggerThreshold float64) Config {
	idx := make(map[string]int, 3)
	for i, sym := range instruments {
		idx[sym] = i
	}
	return Config{
		Instruments:      instruments,
		instrumentIndex:  idx,
		VolumeSize:       volumeSize,
		ContractSize:     contractSize,
		TriggerThreshold: triggerThreshold,
	}
}
