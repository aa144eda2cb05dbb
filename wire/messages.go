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

package wire

import (
	"strconv"

	"github.com/bdasgupta02/phoenix-sub000/orders"
)

// BuildLogon resets enc and appends the Logon (A) body per spec §4.2:
// heartbeat seconds (108), raw-data nonce (96), username (553), password
// (554), and cancel-on-disconnect (9001=Y).
func BuildLogon(enc *Encoder, seqNum uint64, username, secret string, heartbeatSecs int, nowMs int64) ([]byte, error) {
	auth, err := NewLogonAuth(secret, nowMs)
	if err != nil {
		return nil, err
	}

	enc.Reset(seqNum, MsgTypeLogon)
	enc.AppendInt(TagHeartBtInt, int64(heartbeatSecs))
	enc.AppendString(TagRawData, auth.RawData)
	enc.AppendString(TagUsername, username)
	enc.AppendString(TagPassword, auth.Password)
	enc.AppendBool(TagCancelOnDisconnect, true)
	return enc.Serialize(), nil
}

// BuildLogout resets enc and appends an empty Logout (5) body.
func BuildLogout(enc *Encoder, seqNum uint64) []byte {
	enc.Reset(seqNum, MsgTypeLogout)
	return enc.Serialize()
}

// BuildHeartbeat resets enc and appends a Heartbeat (0) body, echoing
// testReqID (112) when replying to a TestRequest.
func BuildHeartbeat(enc *Encoder, seqNum uint64, testReqID string) []byte {
	enc.Reset(seqNum, MsgTypeHeartbeat)
	if testReqID != "" {
		enc.AppendString(TagTestReqID, testReqID)
	}
	return enc.Serialize()
}

// BuildMarketDataRequestSnapshot requests a one-shot top-of-book snapshot
// for symbol (263=0, 264=1, 267=2, 269=0/1).
func BuildMarketDataRequestSnapshot(enc *Encoder, seqNum uint64, symbol string) []byte {
	enc.Reset(seqNum, MsgTypeMarketDataRequest)
	enc.AppendChar(TagSubscriptionType, '0')
	enc.AppendInt(TagMarketDepth, 1)
	enc.AppendString(TagSymbol, symbol)
	enc.AppendInt(TagNoMDEntryTypes, 2)
	enc.AppendChar(TagMDEntryType, '0')
	enc.AppendChar(TagMDEntryType, '1')
	return enc.Serialize()
}

// BuildMarketDataRequestIncremental subscribes to incremental top-of-book
// updates for symbol (263=1, 265=1, 267=2, 269=0/1).
func BuildMarketDataRequestIncremental(enc *Encoder, seqNum uint64, symbol string) []byte {
	enc.Reset(seqNum, MsgTypeMarketDataRequest)
	enc.AppendChar(TagSubscriptionType, '1')
	enc.AppendInt(TagMDUpdateType, 1)
	enc.AppendString(TagSymbol, symbol)
	enc.AppendInt(TagNoMDEntryTypes, 2)
	enc.AppendChar(TagMDEntryType, '0')
	enc.AppendChar(TagMDEntryType, '1')
	return enc.Serialize()
}

// BuildMarketDataRequestTriple subscribes to incremental top-of-book updates
// for three symbols in one request (146=3), used by the triangular
// arbitrageur's startup subscription.
func BuildMarketDataRequestTriple(enc *Encoder, seqNum uint64, symbols [3]string) []byte {
	enc.Reset(seqNum, MsgTypeMarketDataRequest)
	enc.AppendChar(TagSubscriptionType, '1')
	enc.AppendInt(TagMarketDepth, 1)
	enc.AppendInt(TagNoRelatedSym, 3)
	for _, s := range symbols {
		enc.AppendString(TagSymbol, s)
	}
	enc.AppendInt(TagNoMDEntryTypes, 2)
	enc.AppendChar(TagMDEntryType, '0')
	enc.AppendChar(TagMDEntryType, '1')
	return enc.Serialize()
}

func clOrdID(seqNum uint64, takeProfit bool) string {
	if takeProfit {
		return "t" + strconv.FormatUint(seqNum, 10)
	}
	return strconv.FormatUint(seqNum, 10)
}

// BuildNewOrderSingle encodes a limit order: ClOrdID (prefixed "t" for
// take-profit legs), side, qty, price, symbol.
func BuildNewOrderSingle(enc *Encoder, seqNum uint64, order orders.Order) []byte {
	enc.Reset(seqNum, MsgTypeNewOrderSingle)
	enc.AppendString(TagClOrdID, clOrdID(seqNum, order.TakeProfit))
	enc.AppendUint(TagSide, uint64(order.Side))
	enc.AppendDecimal(TagOrderQty, order.Volume)
	enc.AppendDecimal(TagPrice, order.Price)
	enc.AppendString(TagSymbol, order.Symbol)
	return enc.Serialize()
}

// BuildMarketOrderSingle encodes a fill-or-kill market order: OrdType=1
// (market), TimeInForce=4 (FOK), qty, price (last-seen reference price,
// ignored by the venue for OrdType=1 but still sent per the source), side,
// symbol.
func BuildMarketOrderSingle(enc *Encoder, seqNum uint64, order orders.Order) []byte {
	enc.Reset(seqNum, MsgTypeNewOrderSingle)
	enc.AppendChar(TagOrdType, '1')
	enc.AppendDecimal(TagPrice, order.Price)
	enc.AppendDecimal(TagOrderQty, order.Volume)
	enc.AppendUint(TagSide, uint64(order.Side))
	enc.AppendString(TagSymbol, order.Symbol)
	enc.AppendChar(TagTimeInForce, '4')
	return enc.Serialize()
}

// BuildOrderCancelRequest encodes a cancel for origClOrdID on symbol.
func BuildOrderCancelRequest(enc *Encoder, seqNum uint64, symbol, origClOrdID string) []byte {
	enc.Reset(seqNum, MsgTypeOrderCancelRequest)
	enc.AppendString(TagOrigClOrdID, origClOrdID)
	enc.AppendString(TagSymbol, symbol)
	return enc.Serialize()
}

// BuildRequestForPositions encodes the supplemented RequestForPositions
// (AN) message sent once at session start, after Logon and before market
// data subscription (SPEC_FULL.md §SUPPLEMENTED FEATURES).
func BuildRequestForPositions(enc *Encoder, seqNum uint64) []byte {
	enc.Reset(seqNum, MsgTypeRequestForPositions)
	enc.AppendUint(TagPosReqID, seqNum)
	enc.AppendChar(TagPosReqType, '0')
	enc.AppendChar(TagSubscriptionType, '1')
	return enc.Serialize()
}
