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

// Package orders holds the shared Order/Quote vocabulary types passed
// between the strategy cores and the session/stream engine.
package orders

import "github.com/bdasgupta02/phoenix-sub000/decimal"

// Side values match the wire protocol's tag 54.
const (
	SideBid uint = 1
	SideAsk uint = 2
)

// Order is a single working or in-flight order. OrderId is assigned by the
// venue on New acknowledgement; it is empty until then.
type Order struct {
	Symbol     string
	Price      decimal.Decimal
	Volume     decimal.Decimal
	Side       uint
	IsLimit    bool
	IsFOK      bool
	TakeProfit bool
	IsFilled   bool
	IsInFlight bool
	OrderId    string
}

// Quote is a resting two-sided quote leg, used where a strategy needs to
// track price/volume/side without the full Order lifecycle fields.
type Quote struct {
	Price      decimal.Decimal
	Volume     decimal.Decimal
	Side       uint
	TakeProfit bool
}
