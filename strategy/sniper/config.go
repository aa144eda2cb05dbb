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

// Package sniper implements the pickoff hitter strategy (spec §4.6.2):
// when the index price runs ahead of the quoted book by more than 10 ticks,
// cross the stale level on one side and join it on the other, then manage
// the resulting two-sided fill as a single round-trip position.
package sniper

import (
	"time"

	"github.com/bdasgupta02/phoenix-sub000/decimal"
)

// PriceScale and VolumeScale fix the fixed-point precision for this
// strategy's Decimal values.
const (
	PriceScale  uint8 = 8
	VolumeScale uint8 = 8
)

// exitTimeout is how long a half-filled or unfilled round trip is allowed to
// sit before the hitter tears it down, matching the source's 15s EXIT_TIME.
const exitTimeout = 15 * time.Second

// triggerTicks is the number of ticks the index must run past the book
// before a level is considered stale enough to hit.
const triggerTicks = 10.0

// Config holds the hitter's tunable parameters, sourced from the sniper
// binary's CLI flags.
type Config struct {
	Symbol   string
	TickSize decimal.Decimal
	Lots     decimal.Decimal
}
